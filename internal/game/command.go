package game

import "github.com/duncanmcewan/marchlands/internal/game/catalog"

// Command is the closed set of player transitions. Every command is applied
// through Dispatcher.Dispatch, which returns the unchanged state when the
// command is rejected.
type Command interface {
	Name() string
}

// SelectCounty changes the selection; valid for any discovered county.
type SelectCounty struct {
	CountyID string
}

// OpenSetup moves from the menu to character selection.
type OpenSetup struct{}

// BeginGame starts a game as the chosen character, seeding the player's
// faction, its counties and its starting resources.
type BeginGame struct {
	CharacterID string
}

// ToggleFogOfWar flips the fog display flag.
type ToggleFogOfWar struct{}

// ToggleSuperhighways flips the cheat that treats every owned county's roads
// as fully built for conquest staging.
type ToggleSuperhighways struct{}

// ToggleNoConquest flips the rule that forbids conquest orders.
type ToggleNoConquest struct{}

// QueueUpgrade enqueues an upgrade of one track in a county's build queue.
type QueueUpgrade struct {
	CountyID string
	Track    catalog.Track
}

// QueueWarehouseUpgrade enqueues a warehouse level on the shared kingdom
// queue.
type QueueWarehouseUpgrade struct{}

// QueueClaim enqueues a claim of a neutral county, staged from an adjacent
// owned county.
type QueueClaim struct {
	SourceCountyID string
	TargetCountyID string
}

// QueueConquer enqueues a conquest of an enemy county, staged from an
// adjacent owned county.
type QueueConquer struct {
	SourceCountyID string
	TargetCountyID string
}

// CancelOrder removes a not-yet-completed order and refunds its cost.
// An empty CountyID addresses the global warehouse queue.
type CancelOrder struct {
	CountyID string
	OrderID  string
}

// EndTurn resolves the turn atomically.
type EndTurn struct{}

// CloseTurnReport dismisses the summary and returns to play.
type CloseTurnReport struct{}

func (SelectCounty) Name() string          { return "SELECT_COUNTY" }
func (OpenSetup) Name() string             { return "OPEN_SETUP" }
func (BeginGame) Name() string             { return "BEGIN_GAME" }
func (ToggleFogOfWar) Name() string        { return "TOGGLE_FOG_OF_WAR" }
func (ToggleSuperhighways) Name() string   { return "TOGGLE_SUPERHIGHWAYS" }
func (ToggleNoConquest) Name() string      { return "TOGGLE_NO_CONQUEST" }
func (QueueUpgrade) Name() string          { return "QUEUE_UPGRADE" }
func (QueueWarehouseUpgrade) Name() string { return "QUEUE_WAREHOUSE_UPGRADE" }
func (QueueClaim) Name() string            { return "QUEUE_CLAIM" }
func (QueueConquer) Name() string          { return "QUEUE_CONQUER" }
func (CancelOrder) Name() string           { return "CANCEL_ORDER" }
func (EndTurn) Name() string               { return "END_TURN" }
func (CloseTurnReport) Name() string       { return "CLOSE_TURN_REPORT" }
