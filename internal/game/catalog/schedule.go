package catalog

import "github.com/duncanmcewan/marchlands/internal/game/resource"

// Farm-derived county limits.
const (
	basePopulationCap    = 20
	populationCapPerFarm = 15
	baseBuildingSlots    = 2
)

// PopulationCap returns the county population ceiling for a farm level.
func PopulationCap(farmLevel int) int {
	if farmLevel < 0 {
		farmLevel = 0
	}
	return basePopulationCap + populationCapPerFarm*farmLevel
}

// BuildingSlots returns how many non-farm buildings a county can support.
func BuildingSlots(farmLevel int) int {
	if farmLevel < 0 {
		farmLevel = 0
	}
	return baseBuildingSlots + farmLevel
}

// scaleCost applies the building cost curve: base × (1 + (level-1)×0.25),
// rounded half-up, with a minimum of 1 per nonzero base resource. Integer
// arithmetic keeps the result exact: base×(level+3)/4 rounded.
func scaleCost(base resource.Delta, level int) resource.Delta {
	out := resource.Delta{}
	for _, k := range resource.Kinds {
		b, ok := base[k]
		if !ok || b == 0 {
			continue
		}
		v := (b*(level+3) + 2) / 4
		if v < 1 {
			v = 1
		}
		out[k] = v
	}
	return out
}

// UpgradeCost returns the resource cost to raise a track to the given level.
func UpgradeCost(t Track, level int) resource.Delta {
	switch t.Kind {
	case KindRoads:
		return roadsCost(level)
	case KindWarehouse:
		return warehouseCost(level)
	default:
		return scaleCost(Def(t.Building).BaseCost, level)
	}
}

// UpgradeDuration returns how many turns the upgrade to the given level takes.
func UpgradeDuration(t Track, level int) int {
	switch t.Kind {
	case KindRoads, KindWarehouse:
		return bandedDuration(level)
	default:
		return 1 + (level-1)/4
	}
}

// roadsCost: level 1 is a flat token charge, higher levels cost 25×L² gold
// plus stone once the road network needs engineered bedding (level ≥4).
func roadsCost(level int) resource.Delta {
	if level <= 1 {
		return resource.Delta{resource.Gold: 10}
	}
	cost := resource.Delta{resource.Gold: 25 * level * level}
	if level >= 4 {
		cost[resource.Stone] = 10 * level
	}
	return cost
}

// warehouseCost follows its own linear schedule, stone joining at level ≥4.
func warehouseCost(level int) resource.Delta {
	if level < 1 {
		level = 1
	}
	cost := resource.Delta{resource.Gold: 50 * level, resource.Wood: 20 * level}
	if level >= 4 {
		cost[resource.Stone] = 10 * level
	}
	return cost
}

// bandedDuration is the shared roads/warehouse build-time banding.
func bandedDuration(level int) int {
	switch {
	case level <= 3:
		return 1
	case level <= 10:
		return 2
	default:
		return 3
	}
}

// YieldAtLevel returns a building's per-turn yield at a level: the per-level
// yield scaled linearly. Level 0 yields nothing.
func YieldAtLevel(bt BuildingType, level int) resource.Delta {
	if level <= 0 {
		return resource.Delta{}
	}
	return Def(bt).YieldsPerLevel.Scale(level)
}

// DefenseAtLevel returns the defense contribution of a building at a level.
// Only the palisade carries a defense bonus.
func DefenseAtLevel(bt BuildingType, level int) int {
	if level <= 0 {
		return 0
	}
	return Def(bt).DefensePerLevel * level
}
