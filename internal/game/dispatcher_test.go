package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/county"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
	"github.com/duncanmcewan/marchlands/internal/mapdata"
	"github.com/duncanmcewan/marchlands/internal/testutil"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, GameState) {
	t.Helper()
	data, err := mapdata.Parse([]byte(testutil.TestMapYAML))
	require.NoError(t, err)
	d := NewDispatcher(data, testutil.StartingStockpile(), testutil.NopLogger())
	return d, NewGameState(data)
}

// newPlayingState boots a game as Aldric of Ashford (kingdom Wessex).
func newPlayingState(t *testing.T) (*Dispatcher, GameState) {
	t.Helper()
	d, gs := newTestDispatcher(t)
	gs = d.Dispatch(gs, OpenSetup{})
	gs = d.Dispatch(gs, BeginGame{CharacterID: "ALDRIC"})
	require.Equal(t, PhasePlaying, gs.Phase)
	return d, gs
}

// endTurn resolves and closes the summary so the next command can run.
func endTurn(t *testing.T, d *Dispatcher, gs GameState) GameState {
	t.Helper()
	gs = d.Dispatch(gs, EndTurn{})
	require.Equal(t, PhaseSummary, gs.Phase)
	return d.Dispatch(gs, CloseTurnReport{})
}

func TestBeginGame(t *testing.T) {
	d, gs := newTestDispatcher(t)
	gs = d.Dispatch(gs, OpenSetup{})
	require.Equal(t, PhaseSetup, gs.Phase)

	gs = d.Dispatch(gs, BeginGame{CharacterID: "ALDRIC"})

	assert.Equal(t, PhasePlaying, gs.Phase)
	assert.Equal(t, "WESSEX", gs.PlayerFactionID)
	assert.Equal(t, []string{"ASHFORD", "BEXLEY"}, gs.OwnedCountyIDs)
	assert.Equal(t, "ASHFORD", gs.SelectedCountyID)

	// Every kingdom gets ownership and a treasury, not just the player.
	assert.Equal(t, "MERCIA", gs.Counties["CALDER"].OwnerID)
	assert.Equal(t, testutil.StartingStockpile(), gs.ResourcesByKingdomID["MERCIA"])
	assert.Equal(t, testutil.StartingStockpile(), gs.PlayerStockpile())

	// Owned counties plus their frontier are discovered.
	for _, id := range []string{"ASHFORD", "BEXLEY", "CALDER", "DUNMORE"} {
		assert.True(t, gs.Discovered(id), id)
	}
}

func TestBeginGame_UnknownCharacter(t *testing.T) {
	d, gs := newTestDispatcher(t)
	gs = d.Dispatch(gs, OpenSetup{})
	got := d.Dispatch(gs, BeginGame{CharacterID: "NOBODY"})
	assert.Equal(t, PhaseSetup, got.Phase)
	assert.Empty(t, got.OwnedCountyIDs)
}

func TestBeginGame_WrongPhase(t *testing.T) {
	d, gs := newTestDispatcher(t)
	got := d.Dispatch(gs, BeginGame{CharacterID: "ALDRIC"})
	assert.Equal(t, PhaseMenu, got.Phase)
}

func TestSelectCounty(t *testing.T) {
	d, gs := newPlayingState(t)

	got := d.Dispatch(gs, SelectCounty{CountyID: "BEXLEY"})
	assert.Equal(t, "BEXLEY", got.SelectedCountyID)

	got = d.Dispatch(got, SelectCounty{CountyID: "NOWHERE"})
	assert.Equal(t, "BEXLEY", got.SelectedCountyID)
}

func TestSelectCounty_FogHidesUndiscovered(t *testing.T) {
	// Ferrow is off the map: every mapped county is in Wessex's frontier.
	d, gs := newPlayingState(t)
	gs = gs.Clone()
	gs.Counties["FERROW"] = county.County{
		ID: "FERROW", Name: "Ferrow", OwnerID: county.Neutral,
		Buildings:  map[catalog.BuildingType]int{catalog.Farm: 1},
		Population: 20,
	}

	got := d.Dispatch(gs, SelectCounty{CountyID: "FERROW"})
	assert.NotEqual(t, "FERROW", got.SelectedCountyID, "undiscovered county is not selectable under fog")

	gs.FogOfWarEnabled = false
	got = d.Dispatch(gs, SelectCounty{CountyID: "FERROW"})
	assert.Equal(t, "FERROW", got.SelectedCountyID)
}

func TestToggleFlags(t *testing.T) {
	d, gs := newPlayingState(t)
	require.True(t, gs.FogOfWarEnabled)

	gs = d.Dispatch(gs, ToggleFogOfWar{})
	assert.False(t, gs.FogOfWarEnabled)

	gs = d.Dispatch(gs, ToggleNoConquest{})
	assert.True(t, gs.NoConquest)

	gs = d.Dispatch(gs, ToggleSuperhighways{})
	assert.True(t, gs.SuperhighwaysEnabled)
}

func TestQueueUpgrade_InsufficientResourcesIsNoOp(t *testing.T) {
	d, gs := newPlayingState(t)
	gs = gs.Clone()
	gs.ResourcesByKingdomID["WESSEX"] = resource.Stockpile{resource.Gold: 100}

	cmd := QueueUpgrade{CountyID: "ASHFORD", Track: catalog.BuildingTrack(catalog.Market)}
	got := d.Dispatch(gs, cmd)

	assert.True(t, got.BuildQueueByCountyID["ASHFORD"].IsEmpty())
	assert.Equal(t, resource.Stockpile{resource.Gold: 100}, got.PlayerStockpile())
	assert.Equal(t, gs.TurnNumber, got.TurnNumber)
	assert.ErrorIs(t, d.CanQueueUpgrade(gs, "ASHFORD", cmd.Track), ErrInsufficientResources)
}

func TestQueueUpgrade_MarketToLevelTwo(t *testing.T) {
	d, gs := newPlayingState(t)

	// Ashford's market is level 1; the level-2 upgrade costs 125 gold, 63 wood
	// and takes one turn.
	gs = d.Dispatch(gs, QueueUpgrade{CountyID: "ASHFORD", Track: catalog.BuildingTrack(catalog.Market)})

	q := gs.BuildQueueByCountyID["ASHFORD"]
	require.NotNil(t, q.Active)
	assert.Equal(t, 2, q.Active.TargetLevel)
	assert.Equal(t, 1, q.Active.TurnsRemaining)
	assert.Equal(t, 500-125, gs.PlayerStockpile().Get(resource.Gold))
	assert.Equal(t, 300-63, gs.PlayerStockpile().Get(resource.Wood))
	require.Len(t, gs.PendingOrders, 1)

	gs = d.Dispatch(gs, EndTurn{})

	assert.Equal(t, 2, gs.Counties["ASHFORD"].BuildingLevel(catalog.Market))
	assert.Equal(t, 1, gs.TurnNumber)
	assert.True(t, gs.BuildQueueByCountyID["ASHFORD"].IsEmpty())
	require.NotNil(t, gs.LastTurnReport)
	assert.Contains(t, gs.LastTurnReport.Lines[0], "market reached level 2")
}

func TestQueueUpgrade_ProjectedLevelStacks(t *testing.T) {
	d, gs := newPlayingState(t)

	track := catalog.BuildingTrack(catalog.Market)
	gs = d.Dispatch(gs, QueueUpgrade{CountyID: "ASHFORD", Track: track})
	gs = d.Dispatch(gs, QueueUpgrade{CountyID: "ASHFORD", Track: track})

	q := gs.BuildQueueByCountyID["ASHFORD"]
	require.Equal(t, 2, q.Len())
	assert.Equal(t, 2, q.Active.TargetLevel)
	assert.Equal(t, 3, q.Pending[0].TargetLevel)
	assert.NotEqual(t, q.Active.ID, q.Pending[0].ID)
	// 125+63 for level 2, 150+75 for level 3
	assert.Equal(t, 500-125-150, gs.PlayerStockpile().Get(resource.Gold))
	assert.Equal(t, 300-63-75, gs.PlayerStockpile().Get(resource.Wood))
}

func TestQueueUpgrade_SlotLimit(t *testing.T) {
	d, gs := newPlayingState(t)

	// Bexley: farm 1 gives 3 slots, lumber camp occupies one. Two more new
	// buildings fit; the third is refused before any resources move.
	gs = d.Dispatch(gs, QueueUpgrade{CountyID: "BEXLEY", Track: catalog.BuildingTrack(catalog.Market)})
	gs = d.Dispatch(gs, QueueUpgrade{CountyID: "BEXLEY", Track: catalog.BuildingTrack(catalog.Weavery)})
	require.Equal(t, 2, gs.BuildQueueByCountyID["BEXLEY"].Len())

	before := gs.PlayerStockpile().Clone()
	got := d.Dispatch(gs, QueueUpgrade{CountyID: "BEXLEY", Track: catalog.BuildingTrack(catalog.Pasture)})

	assert.Equal(t, 2, got.BuildQueueByCountyID["BEXLEY"].Len())
	assert.Equal(t, before, got.PlayerStockpile())
	assert.ErrorIs(t, d.CanQueueUpgrade(gs, "BEXLEY", catalog.BuildingTrack(catalog.Pasture)), ErrNoBuildingSlot)

	// Leveling an existing building needs no free slot.
	assert.NoError(t, d.CanQueueUpgrade(gs, "BEXLEY", catalog.BuildingTrack(catalog.LumberCamp)))
	// Neither does the farm itself.
	assert.NoError(t, d.CanQueueUpgrade(gs, "BEXLEY", catalog.BuildingTrack(catalog.Farm)))
}

func TestQueueUpgrade_MaxLevel(t *testing.T) {
	d, gs := newPlayingState(t)
	gs = gs.Clone()
	gs.Counties["ASHFORD"] = gs.Counties["ASHFORD"].WithBuildingLevel(catalog.Market, catalog.MaxLevel)

	err := d.CanQueueUpgrade(gs, "ASHFORD", catalog.BuildingTrack(catalog.Market))
	assert.ErrorIs(t, err, ErrTrackAtMaxLevel)
}

func TestQueueUpgrade_NotOwned(t *testing.T) {
	d, gs := newPlayingState(t)
	err := d.CanQueueUpgrade(gs, "CALDER", catalog.Roads)
	assert.ErrorIs(t, err, ErrCountyNotOwned)
}

func TestQueueWarehouseUpgrade(t *testing.T) {
	d, gs := newPlayingState(t)

	gs = d.Dispatch(gs, QueueWarehouseUpgrade{})

	q := gs.GlobalBuildQueue
	require.NotNil(t, q.Active)
	assert.Equal(t, 1, q.Active.TargetLevel)
	// Level 1: 50 gold, 20 wood, no stone yet.
	assert.Equal(t, 500-50, gs.PlayerStockpile().Get(resource.Gold))
	assert.Equal(t, 300-20, gs.PlayerStockpile().Get(resource.Wood))
	assert.Equal(t, 100, gs.PlayerStockpile().Get(resource.Stone))

	gs = d.Dispatch(gs, EndTurn{})
	assert.Equal(t, 1, gs.WarehouseLevel)
	assert.True(t, gs.GlobalBuildQueue.IsEmpty())
}

func TestQueueClaim(t *testing.T) {
	d, gs := newPlayingState(t)

	gs = d.Dispatch(gs, QueueClaim{SourceCountyID: "BEXLEY", TargetCountyID: "DUNMORE"})

	q := gs.BuildQueueByCountyID["DUNMORE"]
	require.NotNil(t, q.Active)
	assert.True(t, q.HasExclusiveOrder())
	assert.Equal(t, 2, q.Active.TurnsRemaining)
	assert.Equal(t, 500-100, gs.PlayerStockpile().Get(resource.Gold))
	assert.Equal(t, 300-50, gs.PlayerStockpile().Get(resource.Wood))
	assert.Equal(t, 25-10, gs.Counties["BEXLEY"].Population, "settlers leave the source county up front")

	gs = endTurn(t, d, gs)
	assert.False(t, gs.Owns("DUNMORE"), "claim takes two turns")

	gs = d.Dispatch(gs, EndTurn{})

	assert.True(t, gs.Owns("DUNMORE"))
	dun := gs.Counties["DUNMORE"]
	assert.Equal(t, "WESSEX", dun.OwnerID)
	assert.Equal(t, map[catalog.BuildingType]int{catalog.Farm: 1}, dun.Buildings)
	assert.Equal(t, 1, dun.RoadLevel)
	assert.Equal(t, 30, dun.Population)
	assert.True(t, gs.BuildQueueByCountyID["DUNMORE"].IsEmpty())
}

func TestQueueClaim_Rejections(t *testing.T) {
	d, gs := newPlayingState(t)

	// Ashford borders only Bexley.
	assert.ErrorIs(t, d.CanQueueClaim(gs, "ASHFORD", "DUNMORE"), ErrNotAdjacent)
	// Calder is enemy land, not neutral.
	assert.ErrorIs(t, d.CanQueueClaim(gs, "BEXLEY", "CALDER"), ErrCountyNotNeutral)
	// A county with any queued order cannot be claimed.
	queued := d.Dispatch(gs, QueueClaim{SourceCountyID: "BEXLEY", TargetCountyID: "DUNMORE"})
	assert.ErrorIs(t, d.CanQueueClaim(queued, "BEXLEY", "DUNMORE"), ErrQueueLocked)

	poor := gs.Clone()
	poor.Counties["BEXLEY"] = func() county.County {
		c := poor.Counties["BEXLEY"].Clone()
		c.Population = 5
		return c
	}()
	assert.ErrorIs(t, d.CanQueueClaim(poor, "BEXLEY", "DUNMORE"), ErrInsufficientPopulation)
}

func TestQueueConquer(t *testing.T) {
	d, gs := newPlayingState(t)

	gs = d.Dispatch(gs, QueueConquer{SourceCountyID: "BEXLEY", TargetCountyID: "CALDER"})

	q := gs.BuildQueueByCountyID["CALDER"]
	require.NotNil(t, q.Active)
	// Palisade 3 adds no turns; Bexley's roads are too poor for the discount.
	assert.Equal(t, 2, q.Active.TurnsRemaining)
	assert.Equal(t, 500-200, gs.PlayerStockpile().Get(resource.Gold))
	assert.Equal(t, 50-20, gs.PlayerStockpile().Get(resource.Iron))
	assert.Equal(t, 10-5, gs.PlayerStockpile().Get(resource.Horses))
	assert.Equal(t, 0, gs.Counties["BEXLEY"].Population)

	gs = endTurn(t, d, gs)
	gs = d.Dispatch(gs, EndTurn{})

	assert.True(t, gs.Owns("CALDER"))
	calder := gs.Counties["CALDER"]
	assert.Equal(t, "WESSEX", calder.OwnerID)
	assert.Equal(t, 1, calder.BuildingLevel(catalog.Farm), "farm 2 sacked to 1")
	assert.Equal(t, 2, calder.BuildingLevel(catalog.Palisade), "palisade 3 sacked to 2")
	assert.Equal(t, 1, calder.RoadLevel)
	assert.Equal(t, 20, calder.Population)
}

func TestQueueConquer_Superhighways(t *testing.T) {
	d, gs := newPlayingState(t)
	gs = gs.Clone()
	// Raise the palisade so the discount is observable.
	gs.Counties["CALDER"] = gs.Counties["CALDER"].WithBuildingLevel(catalog.Palisade, 5)

	plain := d.Dispatch(gs, QueueConquer{SourceCountyID: "BEXLEY", TargetCountyID: "CALDER"})
	assert.Equal(t, 3, plain.BuildQueueByCountyID["CALDER"].Active.TurnsRemaining)

	fast := d.Dispatch(gs, ToggleSuperhighways{})
	fast = d.Dispatch(fast, QueueConquer{SourceCountyID: "BEXLEY", TargetCountyID: "CALDER"})
	assert.Equal(t, 2, fast.BuildQueueByCountyID["CALDER"].Active.TurnsRemaining)
}

func TestQueueConquer_Disabled(t *testing.T) {
	d, gs := newPlayingState(t)
	gs = d.Dispatch(gs, ToggleNoConquest{})

	got := d.Dispatch(gs, QueueConquer{SourceCountyID: "BEXLEY", TargetCountyID: "CALDER"})

	assert.True(t, got.BuildQueueByCountyID["CALDER"].IsEmpty())
	assert.ErrorIs(t, d.CanQueueConquer(gs, "BEXLEY", "CALDER"), ErrConquestDisabled)
}

func TestCancelOrder_RefundsExactly(t *testing.T) {
	d, gs := newPlayingState(t)
	before := gs.PlayerStockpile().Clone()

	gs = d.Dispatch(gs, QueueUpgrade{CountyID: "ASHFORD", Track: catalog.Roads})
	require.NotEqual(t, before, gs.PlayerStockpile())
	orderID := gs.BuildQueueByCountyID["ASHFORD"].Active.ID

	gs = d.Dispatch(gs, CancelOrder{CountyID: "ASHFORD", OrderID: orderID})

	assert.Equal(t, before, gs.PlayerStockpile())
	assert.True(t, gs.BuildQueueByCountyID["ASHFORD"].IsEmpty())
	assert.Empty(t, gs.PendingOrders)
}

func TestCancelOrder_RestoresSettlers(t *testing.T) {
	d, gs := newPlayingState(t)
	before := gs.PlayerStockpile().Clone()

	gs = d.Dispatch(gs, QueueClaim{SourceCountyID: "BEXLEY", TargetCountyID: "DUNMORE"})
	orderID := gs.BuildQueueByCountyID["DUNMORE"].Active.ID

	gs = d.Dispatch(gs, CancelOrder{CountyID: "DUNMORE", OrderID: orderID})

	assert.Equal(t, before, gs.PlayerStockpile())
	assert.Equal(t, 25, gs.Counties["BEXLEY"].Population)
}

func TestCancelOrder_GlobalQueue(t *testing.T) {
	d, gs := newPlayingState(t)
	before := gs.PlayerStockpile().Clone()

	gs = d.Dispatch(gs, QueueWarehouseUpgrade{})
	orderID := gs.GlobalBuildQueue.Active.ID

	gs = d.Dispatch(gs, CancelOrder{OrderID: orderID})

	assert.Equal(t, before, gs.PlayerStockpile())
	assert.True(t, gs.GlobalBuildQueue.IsEmpty())
}

func TestCancelOrder_Unknown(t *testing.T) {
	d, gs := newPlayingState(t)
	assert.ErrorIs(t, d.CanCancelOrder(gs, "ASHFORD", "nope"), ErrUnknownOrder)
}

func TestEndTurn_PhaseCycle(t *testing.T) {
	d, gs := newPlayingState(t)

	gs = d.Dispatch(gs, EndTurn{})
	assert.Equal(t, PhaseSummary, gs.Phase)
	assert.Equal(t, 1, gs.TurnNumber)
	require.NotNil(t, gs.LastTurnReport)

	// Commands that need the playing phase are refused in summary.
	stuck := d.Dispatch(gs, QueueUpgrade{CountyID: "ASHFORD", Track: catalog.Roads})
	assert.True(t, stuck.BuildQueueByCountyID["ASHFORD"].IsEmpty())

	gs = d.Dispatch(gs, CloseTurnReport{})
	assert.Equal(t, PhasePlaying, gs.Phase)
}
