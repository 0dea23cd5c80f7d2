package rules

import (
	"github.com/duncanmcewan/marchlands/internal/common"
	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/county"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

// Claim: peaceful annexation of neutral land. Cost and duration are flat;
// settlers are drawn from the adjacent owned source county. The source road
// level deliberately plays no part in the duration.
const (
	ClaimPopulationCost = 10
	ClaimDuration       = 2
)

// ClaimCost returns the resource cost of a claim order.
func ClaimCost() resource.Delta {
	return resource.Delta{resource.Gold: 100, resource.Wood: 50}
}

// Conquest: forceful seizure of enemy land.
const (
	ConquerPopulationCost = 25
	conquerBaseDuration   = 2
	conquerMaxDuration    = 6
	// Good roads from the staging county shave one turn off the campaign.
	conquerRoadThreshold = 10
)

// ConquerCost returns the resource cost of a conquest order.
func ConquerCost() resource.Delta {
	return resource.Delta{resource.Gold: 200, resource.Iron: 20, resource.Horses: 5}
}

// ConquerDuration scales with the target's palisade and is reduced by one
// turn when the source county has roads at level 10 or better. Clamped to
// [2, 6].
func ConquerDuration(targetPalisadeLevel, sourceRoadLevel int) int {
	d := conquerBaseDuration + targetPalisadeLevel/5
	if sourceRoadLevel >= conquerRoadThreshold {
		d--
	}
	return common.Clamp(d, conquerBaseDuration, conquerMaxDuration)
}

// ApplyClaim returns the target county as a fresh settlement of the new
// owner: a level-1 farm, level-1 roads, and a small settler population capped
// by the farm.
func ApplyClaim(c county.County, newOwnerID string) county.County {
	out := c.Clone()
	out.OwnerID = newOwnerID
	out.Buildings = map[catalog.BuildingType]int{catalog.Farm: 1}
	out.RoadLevel = 1
	out.Population = common.Min(30, catalog.PopulationCap(1))
	return out
}

// ApplyConquest returns the target county after the sack: every building
// level reduced by 30% (floored), the farm never below level 1, roads and
// population halved with floors of 1 and 20.
func ApplyConquest(c county.County, newOwnerID string) county.County {
	out := c.Clone()
	out.OwnerID = newOwnerID
	for bt, lvl := range c.Buildings {
		damaged := lvl * 7 / 10
		if bt == catalog.Farm && damaged < 1 {
			damaged = 1
		}
		if damaged <= 0 {
			delete(out.Buildings, bt)
			continue
		}
		out.Buildings[bt] = damaged
	}
	if out.Buildings[catalog.Farm] < 1 {
		out.Buildings[catalog.Farm] = 1
	}
	out.RoadLevel = common.Max(1, c.RoadLevel/2)
	out.Population = common.Max(20, c.Population/2)
	return out
}
