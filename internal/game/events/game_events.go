package events

import (
	"time"

	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

// Event type constants.
const (
	TypeGameStarted     = "game.started"
	TypeTurnResolved    = "turn.resolved"
	TypeCommandApplied  = "command.applied"
	TypeCommandRejected = "command.rejected"
	TypeCountyCaptured  = "county.captured"
)

// GameStartedEvent is published when a session leaves setup.
type GameStartedEvent struct {
	BaseEvent
	CharacterID string
	KingdomID   string
	CountyCount int
}

// NewGameStartedEvent creates a GameStartedEvent.
func NewGameStartedEvent(gameID, characterID, kingdomID string, countyCount int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   BaseEvent{EventType: TypeGameStarted, Time: time.Now(), Game: gameID},
		CharacterID: characterID,
		KingdomID:   kingdomID,
		CountyCount: countyCount,
	}
}

// TurnResolvedEvent is published after each atomic turn resolution.
type TurnResolvedEvent struct {
	BaseEvent
	TurnNumber int
	NetDeltas  resource.Delta
	Lines      []string
}

// NewTurnResolvedEvent creates a TurnResolvedEvent.
func NewTurnResolvedEvent(gameID string, turn int, deltas resource.Delta, lines []string) *TurnResolvedEvent {
	return &TurnResolvedEvent{
		BaseEvent:  BaseEvent{EventType: TypeTurnResolved, Time: time.Now(), Game: gameID},
		TurnNumber: turn,
		NetDeltas:  deltas,
		Lines:      lines,
	}
}

// CommandAppliedEvent is published when a dispatch changes state.
type CommandAppliedEvent struct {
	BaseEvent
	Command string
}

// NewCommandAppliedEvent creates a CommandAppliedEvent.
func NewCommandAppliedEvent(gameID, command string) *CommandAppliedEvent {
	return &CommandAppliedEvent{
		BaseEvent: BaseEvent{EventType: TypeCommandApplied, Time: time.Now(), Game: gameID},
		Command:   command,
	}
}

// CommandRejectedEvent is published when a dispatch is a no-op.
type CommandRejectedEvent struct {
	BaseEvent
	Command string
}

// NewCommandRejectedEvent creates a CommandRejectedEvent.
func NewCommandRejectedEvent(gameID, command string) *CommandRejectedEvent {
	return &CommandRejectedEvent{
		BaseEvent: BaseEvent{EventType: TypeCommandRejected, Time: time.Now(), Game: gameID},
		Command:   command,
	}
}

// CountyCapturedEvent is published when a claim or conquest completes.
type CountyCapturedEvent struct {
	BaseEvent
	CountyID  string
	OwnerID   string
	Conquered bool // false for a peaceful claim
}

// NewCountyCapturedEvent creates a CountyCapturedEvent.
func NewCountyCapturedEvent(gameID, countyID, ownerID string, conquered bool) *CountyCapturedEvent {
	return &CountyCapturedEvent{
		BaseEvent: BaseEvent{EventType: TypeCountyCaptured, Time: time.Now(), Game: gameID},
		CountyID:  countyID,
		OwnerID:   ownerID,
		Conquered: conquered,
	}
}
