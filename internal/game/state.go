package game

import (
	"sort"

	"github.com/duncanmcewan/marchlands/internal/game/county"
	"github.com/duncanmcewan/marchlands/internal/game/queue"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

// Kingdom is a faction: an owner of counties sharing one stockpile.
type Kingdom struct {
	ID        string
	Name      string
	Color     string // hex color from map data, display only
	CountyIDs []string
}

// Character is a playable start: picking one at setup seeds the player's
// faction from the kingdom its start county belongs to.
type Character struct {
	ID            string
	Name          string
	StartCountyID string
}

// OrderRef records an order enqueued since the last resolution so the
// resolver can check it still points at a live county before advancing
// queues.
type OrderRef struct {
	CountyID string // empty for the global warehouse queue
	OrderID  string
}

// GameState is the complete engine state. Every transform is copy-on-write:
// a prior GameState value stays valid and comparable after any dispatch.
type GameState struct {
	Phase                GamePhase
	TurnNumber           int
	SelectedCountyID     string
	PlayerFactionID      string
	OwnedCountyIDs       []string // sorted
	DiscoveredCountyIDs  []string // sorted
	ResourcesByKingdomID map[string]resource.Stockpile
	BuildQueueByCountyID map[string]queue.Queue
	GlobalBuildQueue     queue.Queue
	WarehouseLevel       int
	Counties             map[string]county.County
	Kingdoms             map[string]Kingdom
	Characters           []Character
	FogOfWarEnabled      bool
	SuperhighwaysEnabled bool
	NoConquest           bool
	LastTurnReport       *TurnReport
	PendingOrders        []OrderRef
}

// Clone returns a deep copy of the state.
func (gs GameState) Clone() GameState {
	out := gs
	out.OwnedCountyIDs = append([]string(nil), gs.OwnedCountyIDs...)
	out.DiscoveredCountyIDs = append([]string(nil), gs.DiscoveredCountyIDs...)
	out.ResourcesByKingdomID = make(map[string]resource.Stockpile, len(gs.ResourcesByKingdomID))
	for id, s := range gs.ResourcesByKingdomID {
		out.ResourcesByKingdomID[id] = s.Clone()
	}
	out.BuildQueueByCountyID = make(map[string]queue.Queue, len(gs.BuildQueueByCountyID))
	for id, q := range gs.BuildQueueByCountyID {
		out.BuildQueueByCountyID[id] = q.Clone()
	}
	out.GlobalBuildQueue = gs.GlobalBuildQueue.Clone()
	out.Counties = make(map[string]county.County, len(gs.Counties))
	for id, c := range gs.Counties {
		out.Counties[id] = c.Clone()
	}
	out.Kingdoms = make(map[string]Kingdom, len(gs.Kingdoms))
	for id, k := range gs.Kingdoms {
		kc := k
		kc.CountyIDs = append([]string(nil), k.CountyIDs...)
		out.Kingdoms[id] = kc
	}
	out.Characters = append([]Character(nil), gs.Characters...)
	if gs.LastTurnReport != nil {
		r := gs.LastTurnReport.Clone()
		out.LastTurnReport = &r
	}
	out.PendingOrders = append([]OrderRef(nil), gs.PendingOrders...)
	return out
}

// PlayerStockpile returns the player faction's stockpile, nil before setup.
func (gs GameState) PlayerStockpile() resource.Stockpile {
	return gs.ResourcesByKingdomID[gs.PlayerFactionID]
}

// Owns reports whether the player faction owns the county.
func (gs GameState) Owns(countyID string) bool {
	i := sort.SearchStrings(gs.OwnedCountyIDs, countyID)
	return i < len(gs.OwnedCountyIDs) && gs.OwnedCountyIDs[i] == countyID
}

// Discovered reports whether the county is visible to the player.
func (gs GameState) Discovered(countyID string) bool {
	i := sort.SearchStrings(gs.DiscoveredCountyIDs, countyID)
	return i < len(gs.DiscoveredCountyIDs) && gs.DiscoveredCountyIDs[i] == countyID
}

// insertSorted adds id to a sorted id slice if absent, returning a new slice.
func insertSorted(ids []string, id string) []string {
	i := sort.SearchStrings(ids, id)
	if i < len(ids) && ids[i] == id {
		return ids
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	out = append(out, ids[i:]...)
	return out
}

// removeSorted drops id from a sorted id slice, returning a new slice.
func removeSorted(ids []string, id string) []string {
	i := sort.SearchStrings(ids, id)
	if i >= len(ids) || ids[i] != id {
		return ids
	}
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	out = append(out, ids[i+1:]...)
	return out
}
