package pipeline

import "go-fixture-summary/internal/models"

// Assembler accumulates tab records into one MatchSummary. Each attach only
// inserts its own key; a tab that is never attached stays absent from the
// output rather than showing up as null.
type Assembler struct {
	summary   models.MatchSummary
	hasHeader bool
}

func NewAssembler() *Assembler {
	return &Assembler{}
}

func (a *Assembler) SetHeader(h models.Header) {
	a.summary.Date = h.Date
	a.summary.Time = h.Time
	a.summary.Venue = h.Venue
	a.summary.HomeTeam = h.HomeTeam
	a.summary.AwayTeam = h.AwayTeam
	a.summary.Score = h.Score
	a.summary.MatchStatus = h.MatchStatus
	a.summary.Competition = h.Competition
	a.summary.MatchID = h.MatchID
	a.hasHeader = true
}

// AttachSummary takes the header and action log read from the Action Log tab.
func (a *Assembler) AttachSummary(m *models.MatchSummary) {
	a.SetHeader(m.Header())
	if m.ActionLog != nil {
		a.AttachActionLog(*m.ActionLog)
	}
}

func (a *Assembler) AttachActionLog(events []models.ActionEvent) {
	if events == nil {
		events = []models.ActionEvent{}
	}
	a.summary.ActionLog = &events
}

func (a *Assembler) AttachScoreBreakdown(rows []models.PeriodScore) {
	if rows == nil {
		rows = []models.PeriodScore{}
	}
	a.summary.ScoreBreakdown = &rows
}

func (a *Assembler) AttachStatistics(stats *models.Statistics) {
	if stats == nil {
		return
	}
	s := *stats
	if s.HomeTeam.Stats == nil {
		s.HomeTeam.Stats = []models.PlayerStat{}
	}
	if s.AwayTeam.Stats == nil {
		s.AwayTeam.Stats = []models.PlayerStat{}
	}
	a.summary.Statistics = &s
}

func (a *Assembler) HasHeader() bool {
	return a.hasHeader
}

// Summary returns the document assembled so far.
func (a *Assembler) Summary() *models.MatchSummary {
	out := a.summary
	return &out
}
