package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/county"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

func testCounty(buildings map[catalog.BuildingType]int, pop int) county.County {
	return county.County{
		ID:         "ASHFORD",
		Name:       "Ashford",
		OwnerID:    "wessex",
		Buildings:  buildings,
		RoadLevel:  1,
		Population: pop,
	}
}

func TestCountyStats_FullyStaffed(t *testing.T) {
	c := testCounty(map[catalog.BuildingType]int{
		catalog.Farm:   2,
		catalog.Market: 3, // workforce 3 per level
	}, 50)

	stats := CountyStats(c)

	assert.Equal(t, catalog.PopulationCap(2), stats.PopulationCap)
	assert.Equal(t, 9, stats.PopulationUsed)
	assert.Equal(t, 41, stats.PopulationFree)
	assert.Equal(t, catalog.BuildingSlots(2), stats.SlotsTotal)
	assert.Equal(t, 1, stats.SlotsUsed, "the farm does not consume a slot")
	assert.Equal(t, 1.0, stats.WorkforceRatio)
}

func TestCountyStats_Understaffed(t *testing.T) {
	c := testCounty(map[catalog.BuildingType]int{
		catalog.Farm: 1,
		catalog.Mine: 5, // workforce 8 per level = 40 hands
	}, 20)

	stats := CountyStats(c)

	assert.Equal(t, 40, stats.PopulationUsed)
	assert.Equal(t, 0, stats.PopulationFree)
	assert.InDelta(t, 0.5, stats.WorkforceRatio, 1e-9)
}

func TestCountyStats_SurplusNeverBoosts(t *testing.T) {
	c := testCounty(map[catalog.BuildingType]int{
		catalog.Farm:   10,
		catalog.Market: 1,
	}, 170)
	assert.Equal(t, 1.0, CountyStats(c).WorkforceRatio)
}

func TestComputeCountyYields_BaseIncome(t *testing.T) {
	c := testCounty(map[catalog.BuildingType]int{catalog.Farm: 1}, 20)
	c.Prosperity = 3

	y := ComputeCountyYields(c)

	assert.Equal(t, resource.Delta{resource.Gold: 7}, y.Total)
	require.Len(t, y.Lines, 1)
	assert.Contains(t, y.Lines[0], "base income")
}

func TestComputeCountyYields_MarketAndLumber(t *testing.T) {
	c := testCounty(map[catalog.BuildingType]int{
		catalog.Farm:       5,
		catalog.Market:     2, // 3*2 = 6 hands, 2 gold/level
		catalog.LumberCamp: 3, // 5*3 = 15 hands, 10 wood/level
	}, 100)

	y := ComputeCountyYields(c)

	assert.Equal(t, 4+4, y.Total[resource.Gold], "base 4 plus market 2*2")
	assert.Equal(t, 30, y.Total[resource.Wood])
	assert.Equal(t, 0, y.PopulationGrowth)
}

func TestComputeCountyYields_ShortageScalesAndRounds(t *testing.T) {
	// Mine 40 hands + market 12 hands = 52; 26 settlers gives ratio 0.5.
	c := testCounty(map[catalog.BuildingType]int{
		catalog.Farm:   3,
		catalog.Mine:   5,
		catalog.Market: 4,
	}, 26)

	y := ComputeCountyYields(c)

	assert.Equal(t, 13, y.Total[resource.Iron], "round(25 * 0.5)")
	assert.Equal(t, 4+4, y.Total[resource.Gold], "base plus round(8 * 0.5)")
	assert.Contains(t, y.Lines[len(y.Lines)-1], "workforce shortage")
}

func TestComputeCountyYields_HomesteadGrowthCapped(t *testing.T) {
	// Farm 1 caps population at 35; homesteads 5 would grow 10.
	c := testCounty(map[catalog.BuildingType]int{
		catalog.Farm:       1,
		catalog.Homesteads: 5, // 10 hands, +10 pop nominal
	}, 32)

	y := ComputeCountyYields(c)

	room := catalog.PopulationCap(1) - 32
	assert.Equal(t, room, y.PopulationGrowth, "growth limited to remaining farm capacity")
}

func TestComputeCountyYields_NoGrowthAtCap(t *testing.T) {
	cap := catalog.PopulationCap(2)
	c := testCounty(map[catalog.BuildingType]int{
		catalog.Farm:       2,
		catalog.Homesteads: 3,
	}, cap)

	y := ComputeCountyYields(c)

	assert.Equal(t, 0, y.PopulationGrowth)
	for _, line := range y.Lines {
		assert.NotContains(t, line, "homesteads", "a fully grown county reports no growth line")
	}
}

func TestPlayerTurnYieldSummary_SortsAndSkipsNeutral(t *testing.T) {
	counties := map[string]county.County{
		"BEXLEY": {
			ID: "BEXLEY", Name: "Bexley", OwnerID: "wessex",
			Buildings:  map[catalog.BuildingType]int{catalog.Farm: 1},
			Population: 20,
		},
		"ASHFORD": {
			ID: "ASHFORD", Name: "Ashford", OwnerID: "wessex",
			Buildings:  map[catalog.BuildingType]int{catalog.Farm: 1},
			Population: 20, Prosperity: 1,
		},
		"DUNMORE": {
			ID: "DUNMORE", Name: "Dunmore", OwnerID: county.Neutral,
			Buildings:  map[catalog.BuildingType]int{catalog.Farm: 1},
			Population: 20,
		},
	}

	s := PlayerTurnYieldSummary(counties, []string{"BEXLEY", "ASHFORD"})

	assert.Equal(t, 9, s.Total[resource.Gold], "ashford 5 plus bexley 4")
	require.Len(t, s.Lines, 2)
	assert.Contains(t, s.Lines[0], "Ashford", "county lines follow id order")
	assert.Contains(t, s.Lines[1], "Bexley")
	assert.Empty(t, s.GrowthByCountyID)
}

func TestPlayerTurnYieldSummary_CollectsGrowth(t *testing.T) {
	counties := map[string]county.County{
		"ASHFORD": {
			ID: "ASHFORD", Name: "Ashford", OwnerID: "wessex",
			Buildings: map[catalog.BuildingType]int{
				catalog.Farm:       2,
				catalog.Homesteads: 2,
			},
			Population: 30,
		},
	}

	s := PlayerTurnYieldSummary(counties, []string{"ASHFORD"})

	assert.Equal(t, map[string]int{"ASHFORD": 4}, s.GrowthByCountyID)
}
