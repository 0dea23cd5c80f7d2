package game

import "github.com/duncanmcewan/marchlands/internal/game/resource"

// MaxReportLines bounds the turn report to the top entries: completions
// first, then storage waste, population clamps, and yield contributions.
const MaxReportLines = 8

// TurnReport is the user-facing summary of one resolution.
type TurnReport struct {
	TurnNumber int
	// Deltas is the net change to the faction stockpile, after clamping.
	Deltas resource.Delta
	Lines  []string
}

// Clone returns an independent copy.
func (r TurnReport) Clone() TurnReport {
	out := r
	out.Deltas = r.Deltas.Clone()
	out.Lines = append([]string(nil), r.Lines...)
	return out
}

// capLines truncates a line list to the report bound, keeping earlier (higher
// priority) entries.
func capLines(lines []string) []string {
	if len(lines) <= MaxReportLines {
		return lines
	}
	return lines[:MaxReportLines]
}
