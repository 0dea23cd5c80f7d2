package testutil

import (
	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

// TestMapYAML is a small three-kingdom map shared by engine tests:
// Wessex (Ashford, Bexley) vs Mercia (Calder), with neutral Dunmore
// reachable from both Bexley and Calder.
const TestMapYAML = `
counties:
  - id: ashford
    name: Ashford
    prosperity: 2
    population: 30
    road_level: 1
    buildings:
      FARM: 2
      MARKET: 1
    neighbors: [bexley]
  - id: bexley
    name: Bexley
    prosperity: 1
    population: 25
    road_level: 1
    buildings:
      FARM: 1
      LUMBER_CAMP: 1
    neighbors: [ashford, dunmore, calder]
  - id: calder
    name: Calder
    prosperity: 3
    population: 40
    road_level: 2
    buildings:
      FARM: 2
      PALISADE: 3
    neighbors: [bexley, dunmore]
  - id: dunmore
    name: Dunmore
    prosperity: 0
    population: 15
    neighbors: [bexley, calder]
kingdoms:
  - id: wessex
    name: Wessex
    color: "#c83232"
    counties: [ashford, bexley]
  - id: mercia
    name: Mercia
    color: "#3264c8"
    counties: [calder]
characters:
  - id: aldric
    name: Aldric of Ashford
    start_county: ashford
  - id: maeva
    name: Maeva of Calder
    start_county: calder
`

// StartingStockpile is a roomy test treasury.
func StartingStockpile() resource.Stockpile {
	return resource.Stockpile{
		resource.Gold:    500,
		resource.Wood:    300,
		resource.Stone:   100,
		resource.Iron:    50,
		resource.Wool:    50,
		resource.Leather: 20,
		resource.Horses:  10,
	}
}
