package county

import (
	"github.com/duncanmcewan/marchlands/internal/game/catalog"
)

// Neutral is the owner id of unclaimed counties.
const Neutral = "NEUTRAL"

// County is the per-county game state. Counties are created once from static
// map data and never destroyed; ownership changes only through completed
// claim or conquest orders.
type County struct {
	ID         string
	Name       string
	OwnerID    string
	Buildings  map[catalog.BuildingType]int // level per building, absent = 0
	RoadLevel  int
	Population int
	Prosperity int // static modifier from map data, 0..5
}

// Clone returns a deep copy; the building map is never shared.
func (c County) Clone() County {
	out := c
	out.Buildings = make(map[catalog.BuildingType]int, len(c.Buildings))
	for bt, lvl := range c.Buildings {
		out.Buildings[bt] = lvl
	}
	return out
}

// BuildingLevel returns the level of a building, zero if not built.
func (c County) BuildingLevel(bt catalog.BuildingType) int {
	return c.Buildings[bt]
}

// Defense is derived from the palisade level on demand, never cached.
func (c County) Defense() int {
	return catalog.DefenseAtLevel(catalog.Palisade, c.Buildings[catalog.Palisade])
}

func (c County) IsNeutral() bool {
	return c.OwnerID == Neutral
}

func (c County) IsOwnedBy(factionID string) bool {
	return factionID != Neutral && c.OwnerID == factionID
}

// WithBuildingLevel returns a copy with one building set to the given level.
func (c County) WithBuildingLevel(bt catalog.BuildingType, level int) County {
	out := c.Clone()
	out.Buildings[bt] = level
	return out
}
