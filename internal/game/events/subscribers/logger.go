package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/duncanmcewan/marchlands/internal/game/events"
)

// LoggerSubscriber logs engine events to structured logs.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // nil means log everything
}

// NewLoggerSubscriber creates a logger subscriber.
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier.
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter restricts logging to the given event types; empty resets.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}
	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		ls.eventTypeFilter[t] = true
	}
}

// InterestedIn reports whether the subscriber wants this event type.
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent logs the event with type-specific fields.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	e := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID())

	switch ev := event.(type) {
	case *events.GameStartedEvent:
		e = e.Str("kingdom", ev.KingdomID).Int("counties", ev.CountyCount)
	case *events.TurnResolvedEvent:
		e = e.Int("turn", ev.TurnNumber).Str("net", ev.NetDeltas.Format())
	case *events.CountyCapturedEvent:
		e = e.Str("county", ev.CountyID).Bool("conquered", ev.Conquered)
	case *events.CommandAppliedEvent:
		e = e.Str("command", ev.Command)
	case *events.CommandRejectedEvent:
		e = e.Str("command", ev.Command)
	}
	e.Msg("Engine event")
}
