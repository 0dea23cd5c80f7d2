package game

// AdjacencyProvider supplies neighboring county ids, derived outside the
// engine from shared map boundaries plus manual override edges.
type AdjacencyProvider interface {
	Neighbors(countyID string) []string
}

// recomputeDiscovered extends the discovered set with every owned county and
// its adjacency frontier. Discovery is permanent: already discovered counties
// stay in the set even if ownership is lost.
func recomputeDiscovered(gs GameState, adj AdjacencyProvider) []string {
	out := append([]string(nil), gs.DiscoveredCountyIDs...)
	for _, id := range gs.OwnedCountyIDs {
		out = insertSorted(out, id)
		if adj == nil {
			continue
		}
		for _, n := range adj.Neighbors(id) {
			if _, ok := gs.Counties[n]; !ok {
				continue
			}
			out = insertSorted(out, n)
		}
	}
	return out
}

// isAdjacent reports whether two counties share a border.
func isAdjacent(adj AdjacencyProvider, a, b string) bool {
	if adj == nil {
		return false
	}
	for _, n := range adj.Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}
