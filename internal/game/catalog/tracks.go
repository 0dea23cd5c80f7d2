package catalog

import (
	"fmt"
	"strings"

	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

// BuildingType identifies one of the leveled county buildings.
type BuildingType string

const (
	Homesteads BuildingType = "HOMESTEADS"
	LumberCamp BuildingType = "LUMBER_CAMP"
	Farm       BuildingType = "FARM"
	Quarry     BuildingType = "QUARRY"
	Mine       BuildingType = "MINE"
	Pasture    BuildingType = "PASTURE"
	Tannery    BuildingType = "TANNERY"
	Weavery    BuildingType = "WEAVERY"
	Market     BuildingType = "MARKET"
	Palisade   BuildingType = "PALISADE"
)

// BuildingTypes is the canonical ordering used for yield computation and
// report lines.
var BuildingTypes = []BuildingType{
	Homesteads, LumberCamp, Farm, Quarry, Mine,
	Pasture, Tannery, Weavery, Market, Palisade,
}

// MaxLevel is the ceiling for every track: buildings, roads and warehouse.
const MaxLevel = 20

// TrackKind discriminates the closed set of upgrade tracks.
type TrackKind int

const (
	KindBuilding TrackKind = iota
	KindRoads
	KindWarehouse
)

// Track is a tagged union over {building types, ROADS, WAREHOUSE}.
// Building is meaningful only when Kind == KindBuilding.
type Track struct {
	Kind     TrackKind
	Building BuildingType
}

// BuildingTrack wraps a building type as a track value.
func BuildingTrack(bt BuildingType) Track {
	return Track{Kind: KindBuilding, Building: bt}
}

// Roads and Warehouse are the two non-building tracks.
var (
	Roads     = Track{Kind: KindRoads}
	Warehouse = Track{Kind: KindWarehouse}
)

func (t Track) IsBuilding() bool  { return t.Kind == KindBuilding }
func (t Track) IsRoads() bool     { return t.Kind == KindRoads }
func (t Track) IsWarehouse() bool { return t.Kind == KindWarehouse }

func (t Track) String() string {
	switch t.Kind {
	case KindRoads:
		return "ROADS"
	case KindWarehouse:
		return "WAREHOUSE"
	default:
		return string(t.Building)
	}
}

// ParseTrack resolves a track name (case-insensitive) to its track value.
func ParseTrack(name string) (Track, error) {
	up := strings.ToUpper(strings.TrimSpace(name))
	switch up {
	case "ROADS":
		return Roads, nil
	case "WAREHOUSE":
		return Warehouse, nil
	}
	for _, bt := range BuildingTypes {
		if string(bt) == up {
			return BuildingTrack(bt), nil
		}
	}
	return Track{}, fmt.Errorf("unknown track %q", name)
}

// IsValidBuilding reports whether bt names a known building type.
func IsValidBuilding(bt BuildingType) bool {
	for _, b := range BuildingTypes {
		if b == bt {
			return true
		}
	}
	return false
}

// BuildingDef is the static definition of one building track.
type BuildingDef struct {
	BaseCost          resource.Delta
	YieldsPerLevel    resource.Delta
	WorkforcePerLevel int
	DefensePerLevel   int
}

var buildingDefs = map[BuildingType]BuildingDef{
	Homesteads: {
		BaseCost:          resource.Delta{resource.Gold: 50, resource.Wood: 30},
		YieldsPerLevel:    resource.Delta{resource.Population: 2},
		WorkforcePerLevel: 2,
	},
	LumberCamp: {
		BaseCost:          resource.Delta{resource.Gold: 40, resource.Wood: 10},
		YieldsPerLevel:    resource.Delta{resource.Wood: 10},
		WorkforcePerLevel: 5,
	},
	Farm: {
		BaseCost: resource.Delta{resource.Gold: 30, resource.Wood: 20},
		// Farms grant population capacity and building slots instead of a
		// per-turn yield, and staff themselves.
		YieldsPerLevel:    resource.Delta{},
		WorkforcePerLevel: 0,
	},
	Quarry: {
		BaseCost:          resource.Delta{resource.Gold: 60, resource.Wood: 25},
		YieldsPerLevel:    resource.Delta{resource.Stone: 8},
		WorkforcePerLevel: 6,
	},
	Mine: {
		BaseCost:          resource.Delta{resource.Gold: 80, resource.Wood: 30},
		YieldsPerLevel:    resource.Delta{resource.Iron: 5},
		WorkforcePerLevel: 8,
	},
	Pasture: {
		BaseCost:          resource.Delta{resource.Gold: 50, resource.Wood: 15},
		YieldsPerLevel:    resource.Delta{resource.Wool: 6, resource.Horses: 1},
		WorkforcePerLevel: 4,
	},
	Tannery: {
		BaseCost:          resource.Delta{resource.Gold: 70, resource.Wood: 20},
		YieldsPerLevel:    resource.Delta{resource.Leather: 4},
		WorkforcePerLevel: 5,
	},
	Weavery: {
		BaseCost:          resource.Delta{resource.Gold: 70, resource.Wood: 20},
		YieldsPerLevel:    resource.Delta{resource.Gold: 4},
		WorkforcePerLevel: 5,
	},
	Market: {
		BaseCost:          resource.Delta{resource.Gold: 100, resource.Wood: 50},
		YieldsPerLevel:    resource.Delta{resource.Gold: 2},
		WorkforcePerLevel: 3,
	},
	Palisade: {
		BaseCost:          resource.Delta{resource.Gold: 60, resource.Wood: 80},
		YieldsPerLevel:    resource.Delta{},
		WorkforcePerLevel: 2,
		DefensePerLevel:   5,
	},
}

// Def returns the static definition for a building type.
func Def(bt BuildingType) BuildingDef {
	return buildingDefs[bt]
}
