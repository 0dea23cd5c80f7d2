package county

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duncanmcewan/marchlands/internal/game/catalog"
)

func TestClone_DoesNotShareBuildings(t *testing.T) {
	c := County{
		ID:        "ASHFORD",
		OwnerID:   "WESSEX",
		Buildings: map[catalog.BuildingType]int{catalog.Farm: 2},
	}

	clone := c.Clone()
	clone.Buildings[catalog.Farm] = 9

	assert.Equal(t, 2, c.Buildings[catalog.Farm])
}

func TestBuildingLevel(t *testing.T) {
	c := County{Buildings: map[catalog.BuildingType]int{catalog.Market: 3}}
	assert.Equal(t, 3, c.BuildingLevel(catalog.Market))
	assert.Equal(t, 0, c.BuildingLevel(catalog.Mine))
}

func TestDefense(t *testing.T) {
	c := County{Buildings: map[catalog.BuildingType]int{catalog.Palisade: 4}}
	assert.Equal(t, 20, c.Defense())
	assert.Equal(t, 0, County{}.Defense())
}

func TestOwnership(t *testing.T) {
	neutral := County{OwnerID: Neutral}
	assert.True(t, neutral.IsNeutral())
	assert.False(t, neutral.IsOwnedBy("WESSEX"))
	assert.False(t, neutral.IsOwnedBy(Neutral), "neutral is nobody's faction")

	owned := County{OwnerID: "WESSEX"}
	assert.False(t, owned.IsNeutral())
	assert.True(t, owned.IsOwnedBy("WESSEX"))
	assert.False(t, owned.IsOwnedBy("MERCIA"))
}

func TestWithBuildingLevel(t *testing.T) {
	c := County{Buildings: map[catalog.BuildingType]int{catalog.Farm: 1}}
	got := c.WithBuildingLevel(catalog.Farm, 5)
	assert.Equal(t, 5, got.BuildingLevel(catalog.Farm))
	assert.Equal(t, 1, c.BuildingLevel(catalog.Farm))
}
