package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

func TestUpgradeCost_BuildingScaling(t *testing.T) {
	// cost(level) = round(base × (1 + (level-1)×0.25))
	tests := []struct {
		level    int
		wantGold int
		wantWood int
	}{
		{1, 100, 50},
		{2, 125, 63}, // 50×1.25 = 62.5 rounds half-up
		{3, 150, 75},
		{5, 200, 100},
	}
	for _, tt := range tests {
		cost := UpgradeCost(BuildingTrack(Market), tt.level)
		assert.Equal(t, tt.wantGold, cost[resource.Gold], "gold at level %d", tt.level)
		assert.Equal(t, tt.wantWood, cost[resource.Wood], "wood at level %d", tt.level)
	}
}

func TestUpgradeCost_MinimumOnePerNonzeroResource(t *testing.T) {
	// A base of 1 never rounds down to zero.
	cost := scaleCost(resource.Delta{resource.Gold: 1}, 1)
	assert.Equal(t, 1, cost[resource.Gold])
}

func TestUpgradeDuration_Building(t *testing.T) {
	// turns(level) = 1 + floor((level-1)/4)
	wants := map[int]int{1: 1, 4: 1, 5: 2, 8: 2, 9: 3, 20: 5}
	for level, want := range wants {
		assert.Equal(t, want, UpgradeDuration(BuildingTrack(Farm), level), "level %d", level)
	}
}

func TestRoadsSchedule(t *testing.T) {
	assert.Equal(t, resource.Delta{resource.Gold: 10}, UpgradeCost(Roads, 1))
	assert.Equal(t, 1, UpgradeDuration(Roads, 1))

	lvl2 := UpgradeCost(Roads, 2)
	assert.Equal(t, 100, lvl2[resource.Gold])
	assert.NotContains(t, lvl2, resource.Stone, "no stone before level 4")

	lvl4 := UpgradeCost(Roads, 4)
	assert.Equal(t, 400, lvl4[resource.Gold])
	assert.Equal(t, 40, lvl4[resource.Stone])

	assert.Equal(t, 1, UpgradeDuration(Roads, 3))
	assert.Equal(t, 2, UpgradeDuration(Roads, 4))
	assert.Equal(t, 2, UpgradeDuration(Roads, 10))
	assert.Equal(t, 3, UpgradeDuration(Roads, 11))
}

func TestWarehouseSchedule(t *testing.T) {
	lvl1 := UpgradeCost(Warehouse, 1)
	assert.Equal(t, 50, lvl1[resource.Gold])
	assert.Equal(t, 20, lvl1[resource.Wood])
	assert.NotContains(t, lvl1, resource.Stone)

	lvl5 := UpgradeCost(Warehouse, 5)
	assert.Equal(t, 250, lvl5[resource.Gold])
	assert.Equal(t, 50, lvl5[resource.Stone])

	assert.Equal(t, 1, UpgradeDuration(Warehouse, 2))
	assert.Equal(t, 3, UpgradeDuration(Warehouse, 12))
}

func TestYieldAtLevel(t *testing.T) {
	assert.Equal(t, resource.Delta{resource.Gold: 6}, YieldAtLevel(Market, 3))
	assert.Empty(t, YieldAtLevel(Market, 0))
	assert.Empty(t, YieldAtLevel(Palisade, 5), "palisade yields defense, not goods")
}

func TestDefenseAtLevel(t *testing.T) {
	assert.Equal(t, 0, DefenseAtLevel(Market, 10))
	assert.Equal(t, 15, DefenseAtLevel(Palisade, 3))
	assert.Equal(t, 0, DefenseAtLevel(Palisade, 0))
}

func TestPopulationCapAndSlots(t *testing.T) {
	assert.Equal(t, 20, PopulationCap(0))
	assert.Equal(t, 35, PopulationCap(1))
	assert.Equal(t, 2, BuildingSlots(0))
	assert.Equal(t, 5, BuildingSlots(3))
}

func TestParseTrack(t *testing.T) {
	track, err := ParseTrack("market")
	require.NoError(t, err)
	assert.Equal(t, BuildingTrack(Market), track)

	track, err = ParseTrack(" roads ")
	require.NoError(t, err)
	assert.True(t, track.IsRoads())

	track, err = ParseTrack("WAREHOUSE")
	require.NoError(t, err)
	assert.True(t, track.IsWarehouse())

	_, err = ParseTrack("castle")
	assert.Error(t, err)
}

func TestTrackDiscriminants(t *testing.T) {
	assert.True(t, BuildingTrack(Farm).IsBuilding())
	assert.False(t, Roads.IsBuilding())
	assert.Equal(t, "ROADS", Roads.String())
	assert.Equal(t, "LUMBER_CAMP", BuildingTrack(LumberCamp).String())
}

func TestEveryBuildingHasADefinition(t *testing.T) {
	for _, bt := range BuildingTypes {
		def := Def(bt)
		assert.NotEmpty(t, def.BaseCost, "%s needs a base cost", bt)
	}
}
