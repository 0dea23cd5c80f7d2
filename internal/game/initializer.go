package game

import (
	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/county"
	"github.com/duncanmcewan/marchlands/internal/game/queue"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
	"github.com/duncanmcewan/marchlands/internal/mapdata"
)

// NewGameState builds the initial state from loaded map data. Every county
// starts neutral; ownership is assigned when a game begins.
func NewGameState(data *mapdata.MapData) GameState {
	gs := GameState{
		Phase:                PhaseMenu,
		FogOfWarEnabled:      true,
		ResourcesByKingdomID: make(map[string]resource.Stockpile),
		BuildQueueByCountyID: make(map[string]queue.Queue),
		Counties:             make(map[string]county.County, len(data.Counties)),
		Kingdoms:             make(map[string]Kingdom, len(data.Kingdoms)),
	}

	for _, rec := range data.Counties {
		c := county.County{
			ID:         rec.ID,
			Name:       rec.Name,
			OwnerID:    county.Neutral,
			Buildings:  make(map[catalog.BuildingType]int),
			RoadLevel:  rec.RoadLevel,
			Population: rec.Population,
			Prosperity: rec.Prosperity,
		}
		for name, lvl := range rec.Buildings {
			bt := catalog.BuildingType(name)
			if !catalog.IsValidBuilding(bt) || lvl <= 0 {
				continue
			}
			if lvl > catalog.MaxLevel {
				lvl = catalog.MaxLevel
			}
			c.Buildings[bt] = lvl
		}
		// Every settlement feeds itself somehow.
		if c.Buildings[catalog.Farm] < 1 {
			c.Buildings[catalog.Farm] = 1
		}
		if c.Population <= 0 {
			c.Population = 20
		}
		gs.Counties[c.ID] = c
	}

	for _, rec := range data.Kingdoms {
		gs.Kingdoms[rec.ID] = Kingdom{
			ID:        rec.ID,
			Name:      rec.Name,
			Color:     rec.Color,
			CountyIDs: append([]string(nil), rec.CountyIDs...),
		}
	}

	for _, rec := range data.Characters {
		gs.Characters = append(gs.Characters, Character{
			ID:            rec.ID,
			Name:          rec.Name,
			StartCountyID: rec.StartCountyID,
		})
	}
	return gs
}
