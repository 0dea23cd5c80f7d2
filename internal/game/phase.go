package game

// GamePhase is the coarse lifecycle of a session.
type GamePhase string

const (
	// PhaseMenu is the initial phase before a game is set up.
	PhaseMenu GamePhase = "MENU"
	// PhaseSetup is character selection.
	PhaseSetup GamePhase = "SETUP"
	// PhasePlaying is the main loop: queue orders, end turns.
	PhasePlaying GamePhase = "PLAYING"
	// PhaseSummary shows the turn report after a resolution.
	PhaseSummary GamePhase = "SUMMARY"
)

// validTransitions maps each phase to the phases it may move to.
var validTransitions = map[GamePhase][]GamePhase{
	PhaseMenu:    {PhaseSetup},
	PhaseSetup:   {PhaseMenu, PhasePlaying},
	PhasePlaying: {PhaseSummary},
	PhaseSummary: {PhasePlaying},
}

// CanTransitionTo reports whether moving from p to target is allowed.
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, t := range validTransitions[p] {
		if t == target {
			return true
		}
	}
	return false
}

func (p GamePhase) String() string {
	return string(p)
}
