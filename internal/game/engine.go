package game

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/duncanmcewan/marchlands/internal/game/county"
	"github.com/duncanmcewan/marchlands/internal/game/events"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

// Engine wraps the pure command reducer with a session id, structured logging
// and event publication. All state updates flow through Dispatch; the state
// value itself is only ever replaced, never mutated, so snapshots taken via
// State remain valid indefinitely.
type Engine struct {
	id         string
	state      GameState
	dispatcher *Dispatcher
	bus        *events.EventBus
	logger     zerolog.Logger
}

// NewEngine assembles an engine over an initial state. bus may be nil when no
// observers are wanted.
func NewEngine(initial GameState, adj AdjacencyProvider, starting resource.Stockpile, bus *events.EventBus, logger zerolog.Logger) *Engine {
	id := uuid.NewString()
	return &Engine{
		id:         id,
		state:      initial,
		dispatcher: NewDispatcher(adj, starting, logger),
		bus:        bus,
		logger:     logger.With().Str("component", "engine").Str("game_id", id).Logger(),
	}
}

// ID returns the session id.
func (e *Engine) ID() string { return e.id }

// State returns the current state value. Callers may hold it as a snapshot;
// it will never change underneath them.
func (e *Engine) State() GameState { return e.state }

// Dispatcher exposes the eligibility predicates for UI use.
func (e *Engine) Dispatcher() *Dispatcher { return e.dispatcher }

// Dispatch applies one command and reports whether it changed the state.
func (e *Engine) Dispatch(cmd Command) bool {
	prev := e.state
	next := e.dispatcher.Dispatch(prev, cmd)
	applied := !sameState(prev, next)
	e.state = next
	e.publish(prev, next, cmd, applied)
	return applied
}

// sameState is the cheap identity check for no-op detection: rejected
// commands return the input state value itself.
func sameState(a, b GameState) bool {
	return a.TurnNumber == b.TurnNumber &&
		a.Phase == b.Phase &&
		a.SelectedCountyID == b.SelectedCountyID &&
		a.FogOfWarEnabled == b.FogOfWarEnabled &&
		a.SuperhighwaysEnabled == b.SuperhighwaysEnabled &&
		a.NoConquest == b.NoConquest &&
		a.PlayerFactionID == b.PlayerFactionID &&
		len(a.PendingOrders) == len(b.PendingOrders) &&
		len(a.OwnedCountyIDs) == len(b.OwnedCountyIDs) &&
		stockpileEqual(a.PlayerStockpile(), b.PlayerStockpile()) &&
		queuesEqual(a, b)
}

func stockpileEqual(a, b resource.Stockpile) bool {
	for _, k := range resource.Kinds {
		if a.Get(k) != b.Get(k) {
			return false
		}
	}
	return true
}

func queuesEqual(a, b GameState) bool {
	if a.GlobalBuildQueue.Len() != b.GlobalBuildQueue.Len() {
		return false
	}
	if len(a.BuildQueueByCountyID) != len(b.BuildQueueByCountyID) {
		return false
	}
	for id, q := range a.BuildQueueByCountyID {
		if b.BuildQueueByCountyID[id].Len() != q.Len() {
			return false
		}
	}
	return true
}

func (e *Engine) publish(prev, next GameState, cmd Command, applied bool) {
	if e.bus == nil {
		return
	}
	if !applied {
		e.bus.Publish(events.NewCommandRejectedEvent(e.id, cmd.Name()))
		return
	}
	e.bus.Publish(events.NewCommandAppliedEvent(e.id, cmd.Name()))

	switch c := cmd.(type) {
	case BeginGame:
		e.bus.Publish(events.NewGameStartedEvent(e.id, c.CharacterID, next.PlayerFactionID, len(next.OwnedCountyIDs)))
	case EndTurn:
		if r := next.LastTurnReport; r != nil {
			e.bus.Publish(events.NewTurnResolvedEvent(e.id, r.TurnNumber, r.Deltas.Clone(), append([]string(nil), r.Lines...)))
		}
		for _, id := range next.OwnedCountyIDs {
			if prev.Owns(id) {
				continue
			}
			conquered := wasEnemy(prev, id)
			e.bus.Publish(events.NewCountyCapturedEvent(e.id, id, next.PlayerFactionID, conquered))
		}
	}
}

func wasEnemy(prev GameState, countyID string) bool {
	c, ok := prev.Counties[countyID]
	return ok && c.OwnerID != county.Neutral && c.OwnerID != prev.PlayerFactionID
}

// PendingOrderCount is a small debugging accessor over all queues.
func (e *Engine) PendingOrderCount() int {
	n := e.state.GlobalBuildQueue.Len()
	for _, q := range e.state.BuildQueueByCountyID {
		n += q.Len()
	}
	return n
}
