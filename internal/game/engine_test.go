package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/events"
	"github.com/duncanmcewan/marchlands/internal/mapdata"
	"github.com/duncanmcewan/marchlands/internal/testutil"
)

func newTestEngine(t *testing.T, bus *events.EventBus) *Engine {
	t.Helper()
	data, err := mapdata.Parse([]byte(testutil.TestMapYAML))
	require.NoError(t, err)
	return NewEngine(NewGameState(data), data, testutil.StartingStockpile(), bus, testutil.NopLogger())
}

func TestEngine_DispatchReportsApplied(t *testing.T) {
	e := newTestEngine(t, nil)

	assert.True(t, e.Dispatch(OpenSetup{}))
	assert.True(t, e.Dispatch(BeginGame{CharacterID: "ALDRIC"}))
	assert.False(t, e.Dispatch(BeginGame{CharacterID: "ALDRIC"}), "a game cannot start twice")
	assert.Equal(t, PhasePlaying, e.State().Phase)
	assert.NotEmpty(t, e.ID())
}

func TestEngine_SnapshotsStayValid(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Dispatch(OpenSetup{})
	e.Dispatch(BeginGame{CharacterID: "ALDRIC"})
	snapshot := e.State()

	e.Dispatch(QueueUpgrade{CountyID: "ASHFORD", Track: catalog.Roads})
	e.Dispatch(EndTurn{})

	assert.Equal(t, 0, snapshot.TurnNumber)
	assert.True(t, snapshot.BuildQueueByCountyID["ASHFORD"].IsEmpty())
	assert.Equal(t, 1, e.State().TurnNumber)
}

func TestEngine_PublishesLifecycleEvents(t *testing.T) {
	bus := events.NewEventBus()
	var types []string
	for _, et := range []string{
		events.TypeGameStarted, events.TypeTurnResolved,
		events.TypeCommandApplied, events.TypeCommandRejected,
		events.TypeCountyCaptured,
	} {
		et := et
		bus.SubscribeFunc(et, func(events.Event) { types = append(types, et) })
	}
	e := newTestEngine(t, bus)

	e.Dispatch(OpenSetup{})
	e.Dispatch(BeginGame{CharacterID: "ALDRIC"})
	e.Dispatch(SelectCounty{CountyID: "NOWHERE"})
	e.Dispatch(EndTurn{})

	assert.Equal(t, []string{
		events.TypeCommandApplied, // open setup
		events.TypeCommandApplied, // begin game
		events.TypeGameStarted,
		events.TypeCommandRejected, // bad selection
		events.TypeCommandApplied,  // end turn
		events.TypeTurnResolved,
	}, types)
}

func TestEngine_PublishesCountyCaptured(t *testing.T) {
	bus := events.NewEventBus()
	var captured []*events.CountyCapturedEvent
	bus.SubscribeFunc(events.TypeCountyCaptured, func(e events.Event) {
		captured = append(captured, e.(*events.CountyCapturedEvent))
	})
	e := newTestEngine(t, bus)
	e.Dispatch(OpenSetup{})
	e.Dispatch(BeginGame{CharacterID: "ALDRIC"})

	require.True(t, e.Dispatch(QueueClaim{SourceCountyID: "BEXLEY", TargetCountyID: "DUNMORE"}))
	for i := 0; i < 2; i++ {
		e.Dispatch(EndTurn{})
		e.Dispatch(CloseTurnReport{})
	}

	require.Len(t, captured, 1)
	assert.Equal(t, "DUNMORE", captured[0].CountyID)
	assert.Equal(t, "WESSEX", captured[0].OwnerID)
	assert.False(t, captured[0].Conquered)
}

func TestEngine_PendingOrderCount(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Dispatch(OpenSetup{})
	e.Dispatch(BeginGame{CharacterID: "ALDRIC"})
	assert.Equal(t, 0, e.PendingOrderCount())

	e.Dispatch(QueueUpgrade{CountyID: "ASHFORD", Track: catalog.Roads})
	e.Dispatch(QueueWarehouseUpgrade{})

	assert.Equal(t, 2, e.PendingOrderCount())
}
