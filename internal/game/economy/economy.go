package economy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/county"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

// BaseIncomeGold is the flat per-county income before prosperity. Every owned
// county earns gold (BaseIncomeGold + prosperity) per turn regardless of
// buildings.
const BaseIncomeGold = 4

// DerivedStats are pure projections over a county's building levels and
// population. They are recomputed on demand and never stored on the county.
type DerivedStats struct {
	PopulationCap  int
	PopulationUsed int
	Population     int
	PopulationFree int
	SlotsTotal     int
	SlotsUsed      int
	// WorkforceRatio is the 0..1 multiplier applied to yields when the
	// population cannot staff every built track. Surplus population never
	// pushes it above 1.
	WorkforceRatio float64
}

// CountyStats computes the derived stats for one county.
func CountyStats(c county.County) DerivedStats {
	farm := c.BuildingLevel(catalog.Farm)
	stats := DerivedStats{
		PopulationCap: catalog.PopulationCap(farm),
		SlotsTotal:    catalog.BuildingSlots(farm),
	}
	for _, bt := range catalog.BuildingTypes {
		lvl := c.BuildingLevel(bt)
		if lvl <= 0 {
			continue
		}
		stats.PopulationUsed += catalog.Def(bt).WorkforcePerLevel * lvl
		if bt != catalog.Farm {
			stats.SlotsUsed++
		}
	}
	pop := c.Population
	if pop < 0 {
		pop = 0
	}
	stats.Population = pop
	stats.PopulationFree = pop - stats.PopulationUsed
	if stats.PopulationFree < 0 {
		stats.PopulationFree = 0
	}
	if stats.PopulationUsed <= 0 {
		stats.WorkforceRatio = 1
	} else {
		ratio := float64(pop) / float64(stats.PopulationUsed)
		if ratio > 1 {
			ratio = 1
		}
		if ratio < 0 {
			ratio = 0
		}
		stats.WorkforceRatio = ratio
	}
	return stats
}

// CountyYields is the per-turn production of one owned county.
type CountyYields struct {
	CountyID string
	Total    resource.Delta
	// PopulationGrowth is the homestead growth to apply to the county's own
	// population, already capped by remaining farm capacity.
	PopulationGrowth int
	Lines            []string
	WorkforceRatio   float64
}

// ComputeCountyYields returns the yields for one county. Only owned counties
// produce; callers pass neutral counties at their own peril.
func ComputeCountyYields(c county.County) CountyYields {
	stats := CountyStats(c)
	out := CountyYields{
		CountyID:       c.ID,
		Total:          resource.Delta{resource.Gold: BaseIncomeGold + c.Prosperity},
		WorkforceRatio: stats.WorkforceRatio,
	}
	out.Lines = append(out.Lines, fmt.Sprintf("%s: base income %s", c.Name,
		resource.Delta{resource.Gold: BaseIncomeGold + c.Prosperity}.Format()))

	growthRoom := stats.PopulationCap - stats.Population
	if growthRoom < 0 {
		growthRoom = 0
	}

	for _, bt := range catalog.BuildingTypes {
		lvl := c.BuildingLevel(bt)
		if lvl <= 0 {
			continue
		}
		nominal := catalog.YieldAtLevel(bt, lvl)
		scaled := resource.Delta{}
		for _, k := range resource.Kinds {
			amount, ok := nominal[k]
			if !ok || amount == 0 {
				continue
			}
			v := int(math.Round(float64(amount) * stats.WorkforceRatio))
			if v < 0 {
				v = 0
			}
			if k == resource.Population {
				// Homestead growth is bounded by the room left under the
				// farm cap, tracking growth already committed this pass. A
				// fully grown county drops the entry instead of reporting a
				// phantom +0.
				if v > growthRoom {
					v = growthRoom
				}
				if v <= 0 {
					continue
				}
				growthRoom -= v
				out.PopulationGrowth += v
			}
			if v == 0 {
				continue
			}
			scaled[k] = v
		}
		if len(scaled) == 0 {
			continue
		}
		out.Total = out.Total.Merge(scaled)
		out.Lines = append(out.Lines, fmt.Sprintf("%s: %s %s", c.Name,
			strings.ToLower(string(bt)), scaled.Format()))
	}

	if stats.WorkforceRatio < 1 {
		out.Lines = append(out.Lines, fmt.Sprintf(
			"%s: workforce shortage (%d of %d hands), yields at %d%%",
			c.Name, stats.Population, stats.PopulationUsed,
			int(stats.WorkforceRatio*100)))
	}
	return out
}

// TurnYieldSummary aggregates a faction's production for one turn.
type TurnYieldSummary struct {
	Total            resource.Delta
	Lines            []string
	GrowthByCountyID map[string]int
}

// PlayerTurnYieldSummary sums the yields of every owned county in canonical
// (id-sorted) order and returns the per-county population growth for the
// resolver to apply afterwards.
func PlayerTurnYieldSummary(counties map[string]county.County, ownedIDs []string) TurnYieldSummary {
	summary := TurnYieldSummary{
		Total:            resource.Delta{},
		GrowthByCountyID: make(map[string]int),
	}
	ids := append([]string(nil), ownedIDs...)
	sort.Strings(ids)
	for _, id := range ids {
		c, ok := counties[id]
		if !ok || c.IsNeutral() {
			continue
		}
		y := ComputeCountyYields(c)
		summary.Total = summary.Total.Merge(y.Total)
		summary.Lines = append(summary.Lines, y.Lines...)
		if y.PopulationGrowth > 0 {
			summary.GrowthByCountyID[id] = y.PopulationGrowth
		}
	}
	return summary
}
