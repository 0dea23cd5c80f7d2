package game

import "errors"

// Rejection reasons. Dispatch treats every one of them as a silent no-op; UIs
// call the same eligibility predicates to surface the reason before the
// attempt.
var (
	ErrWrongPhase             = errors.New("command not valid in current phase")
	ErrUnknownCounty          = errors.New("unknown county")
	ErrUnknownCharacter       = errors.New("unknown character")
	ErrUnknownKingdom         = errors.New("start county belongs to no kingdom")
	ErrCountyNotOwned         = errors.New("county not owned by player")
	ErrCountyNotNeutral       = errors.New("county is not neutral")
	ErrCountyNotEnemy         = errors.New("county is not enemy-owned")
	ErrNotAdjacent            = errors.New("target not adjacent to source county")
	ErrInsufficientResources  = errors.New("insufficient resources")
	ErrInsufficientPopulation = errors.New("insufficient population in source county")
	ErrTrackAtMaxLevel        = errors.New("track already at maximum level")
	ErrNoBuildingSlot         = errors.New("no free building slot")
	ErrQueueLocked            = errors.New("queue committed to a claim or conquest")
	ErrConquestDisabled       = errors.New("conquest is disabled")
	ErrUnknownOrder           = errors.New("unknown order")
	ErrNoTurnReport           = errors.New("no turn report to close")
)
