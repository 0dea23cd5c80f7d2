package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/duncanmcewan/marchlands/internal/common"
	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/economy"
	"github.com/duncanmcewan/marchlands/internal/game/queue"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
	"github.com/duncanmcewan/marchlands/internal/game/rules"
)

// TurnResolver executes one atomic turn: queue advancement, ownership
// transitions, yield application, clamping, and reporting. Resolve is a pure
// transform over the state value; identical inputs always produce identical
// outputs. There is no fatal path: malformed orders are dropped with a
// warning and resolution always returns a valid state.
type TurnResolver struct {
	adj    AdjacencyProvider
	logger zerolog.Logger
}

// NewTurnResolver creates a resolver sharing the dispatcher's adjacency
// provider.
func NewTurnResolver(adj AdjacencyProvider, logger zerolog.Logger) *TurnResolver {
	return &TurnResolver{
		adj:    adj,
		logger: logger.With().Str("component", "turn_resolver").Logger(),
	}
}

// Resolve advances the game by one turn and returns the next state plus its
// report. The input state is never modified.
func (tr *TurnResolver) Resolve(gs GameState) (GameState, TurnReport) {
	out := gs.Clone()
	before := gs.PlayerStockpile().Clone()

	var completionLines, wasteLines, clampLines []string

	// 1. Drop pending orders that reference vanished counties.
	out = tr.validatePendingOrders(out)

	// 2. Advance every county queue in id order; apply completions.
	countyIDs := make([]string, 0, len(out.BuildQueueByCountyID))
	for id := range out.BuildQueueByCountyID {
		countyIDs = append(countyIDs, id)
	}
	sort.Strings(countyIDs)
	for _, id := range countyIDs {
		q, done := out.BuildQueueByCountyID[id].Advance()
		out.BuildQueueByCountyID[id] = q
		if done == nil {
			if q.IsEmpty() {
				delete(out.BuildQueueByCountyID, id)
			}
			continue
		}
		var line string
		out, line = tr.applyCompletedOrder(out, id, *done)
		if line != "" {
			completionLines = append(completionLines, line)
		}
		if out.BuildQueueByCountyID[id].IsEmpty() {
			delete(out.BuildQueueByCountyID, id)
		}
	}

	// 3. Advance the shared warehouse queue.
	gq, done := out.GlobalBuildQueue.Advance()
	out.GlobalBuildQueue = gq
	if done != nil {
		if out.WarehouseLevel < catalog.MaxLevel {
			out.WarehouseLevel++
		}
		completionLines = append(completionLines,
			fmt.Sprintf("Warehouse expanded to level %d", out.WarehouseLevel))
	}

	// 4. Every owned county keeps at least a dirt road, however it was
	// acquired.
	for _, id := range out.OwnedCountyIDs {
		cty, ok := out.Counties[id]
		if !ok || cty.RoadLevel >= 1 {
			continue
		}
		cty = cty.Clone()
		cty.RoadLevel = 1
		out.Counties[id] = cty
	}
	out.DiscoveredCountyIDs = recomputeDiscovered(out, tr.adj)

	// 5. Yields from the post-build state, so tracks completed this turn
	// already produce this turn.
	summary := economy.PlayerTurnYieldSummary(out.Counties, out.OwnedCountyIDs)

	// 6. Population growth lands on the counties before any cap clamping.
	growthIDs := make([]string, 0, len(summary.GrowthByCountyID))
	for id := range summary.GrowthByCountyID {
		growthIDs = append(growthIDs, id)
	}
	sort.Strings(growthIDs)
	for _, id := range growthIDs {
		cty := out.Counties[id].Clone()
		cty.Population += summary.GrowthByCountyID[id]
		out.Counties[id] = cty
	}

	// 7-8. Bank the turn's production, then clamp to warehouse capacity.
	if out.PlayerFactionID != "" {
		stock := out.PlayerStockpile().Add(summary.Total)
		clamped, wasted := stock.ClampToStorage(out.WarehouseLevel)
		out.ResourcesByKingdomID[out.PlayerFactionID] = clamped
		for _, k := range resource.Kinds {
			if w := wasted[k]; w > 0 {
				wasteLines = append(wasteLines, fmt.Sprintf(
					"%d %s wasted, warehouse full", w, strings.ToLower(string(k))))
			}
		}
	}

	// 9. Shrink county populations back under their farm caps; growth has
	// already happened so this step only clamps down.
	for _, id := range out.OwnedCountyIDs {
		cty, ok := out.Counties[id]
		if !ok {
			continue
		}
		cap := catalog.PopulationCap(cty.BuildingLevel(catalog.Farm))
		if cty.Population > cap {
			cty = cty.Clone()
			cty.Population = cap
			out.Counties[id] = cty
			clampLines = append(clampLines, fmt.Sprintf(
				"%s: population cap reached (%d)", cty.Name, cap))
		}
		if cty.Population < 0 {
			cty = cty.Clone()
			cty.Population = 0
			out.Counties[id] = cty
		}
	}

	// 10. The faction's population resource is a derived display value:
	// overwrite it with the aggregate of owned counties.
	if out.PlayerFactionID != "" {
		total := 0
		for _, id := range out.OwnedCountyIDs {
			total += out.Counties[id].Population
		}
		stock := out.PlayerStockpile().Clone()
		stock[resource.Population] = total
		out.ResourcesByKingdomID[out.PlayerFactionID] = stock
	}

	// 11. Finish the turn.
	out.TurnNumber++
	out.PendingOrders = nil

	report := TurnReport{TurnNumber: out.TurnNumber, Deltas: resource.Delta{}}
	after := out.PlayerStockpile()
	for _, k := range resource.Kinds {
		if diff := after.Get(k) - before.Get(k); diff != 0 {
			report.Deltas[k] = diff
		}
	}
	lines := append([]string(nil), completionLines...)
	lines = append(lines, wasteLines...)
	lines = append(lines, clampLines...)
	lines = append(lines, summary.Lines...)
	report.Lines = capLines(lines)
	out.LastTurnReport = &report

	tr.logger.Debug().
		Int("turn", out.TurnNumber).
		Int("completions", len(completionLines)).
		Str("net", report.Deltas.Format()).
		Msg("Turn resolved")
	return out, report
}

// validatePendingOrders drops orders queued against counties that no longer
// exist. Never fatal; each drop is logged.
func (tr *TurnResolver) validatePendingOrders(gs GameState) GameState {
	out := gs
	for _, ref := range gs.PendingOrders {
		if ref.CountyID == "" {
			continue // global queue, nothing to dangle
		}
		if _, ok := gs.Counties[ref.CountyID]; ok {
			continue
		}
		tr.logger.Warn().
			Str("county", ref.CountyID).
			Str("order", ref.OrderID).
			Msg("Dropping order for vanished county")
		q, _ := out.BuildQueueByCountyID[ref.CountyID].Cancel(ref.OrderID)
		if q.IsEmpty() {
			delete(out.BuildQueueByCountyID, ref.CountyID)
		} else {
			out.BuildQueueByCountyID[ref.CountyID] = q
		}
	}
	return out
}

// applyCompletedOrder applies the effect of a finished order and returns the
// report line crediting it.
func (tr *TurnResolver) applyCompletedOrder(gs GameState, countyID string, o queue.Order) (GameState, string) {
	out := gs
	switch o.Kind {
	case queue.OrderUpgrade:
		cty, ok := out.Counties[countyID]
		if !ok {
			tr.logger.Warn().Str("county", countyID).Str("order", o.ID).
				Msg("Completed order references vanished county")
			return out, ""
		}
		cty = cty.Clone()
		switch o.Track.Kind {
		case catalog.KindRoads:
			cty.RoadLevel = clampLevel(cty.RoadLevel + 1)
		case catalog.KindBuilding:
			cty.Buildings[o.Track.Building] = clampLevel(cty.Buildings[o.Track.Building] + 1)
		}
		out.Counties[countyID] = cty
		level := cty.RoadLevel
		if o.Track.IsBuilding() {
			level = cty.Buildings[o.Track.Building]
		}
		return out, fmt.Sprintf("%s: %s reached level %d", cty.Name,
			strings.ToLower(o.Track.String()), level)

	case queue.OrderClaim, queue.OrderConquer:
		target, ok := out.Counties[o.TargetCountyID]
		if !ok {
			return out, ""
		}
		if o.Kind == queue.OrderClaim {
			target = rules.ApplyClaim(target, gs.PlayerFactionID)
		} else {
			target = rules.ApplyConquest(target, gs.PlayerFactionID)
		}
		out.Counties[o.TargetCountyID] = target
		out.OwnedCountyIDs = insertSorted(out.OwnedCountyIDs, o.TargetCountyID)
		// A captured county starts fresh: the rest of its queue is void.
		out.BuildQueueByCountyID[o.TargetCountyID] = queue.Queue{}
		verb := "claimed"
		if o.Kind == queue.OrderConquer {
			verb = "conquered"
		}
		return out, fmt.Sprintf("%s %s", target.Name, verb)
	}
	return out, ""
}

func clampLevel(level int) int {
	return common.Min(level, catalog.MaxLevel)
}
