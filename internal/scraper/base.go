// Fixture detail tabs and the failures that can occur while reaching and
// reading them.

package scraper

import "go-fixture-summary/internal/selectors"

// Tab is one of the four mutually exclusive detail views of a fixture.
type Tab int

const (
	TeamSheet Tab = iota
	Statistics
	ActionLog
	ScoreBreakdown
)

// Tabs lists every tab in button order.
var Tabs = []Tab{TeamSheet, Statistics, ActionLog, ScoreBreakdown}

func (t Tab) String() string {
	switch t {
	case TeamSheet:
		return "team sheet"
	case Statistics:
		return "statistics"
	case ActionLog:
		return "action log"
	case ScoreBreakdown:
		return "score breakdown"
	}
	return "unknown"
}

// ButtonIndex is the position of the tab's button in the tab bar.
func (t Tab) ButtonIndex() int {
	return int(t)
}

// Scope is the selector-table scope holding the tab's markers.
func (t Tab) Scope() selectors.Scope {
	switch t {
	case Statistics:
		return selectors.Statistics
	case ActionLog:
		return selectors.ActionLog
	case ScoreBreakdown:
		return selectors.ScoreBreakdown
	}
	return selectors.TeamSheet
}

// Slug is a file-system friendly name, used for snapshot and diagnostic files.
func (t Tab) Slug() string {
	return string(t.Scope())
}
