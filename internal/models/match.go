package models

// Team is one side of the fixture as shown in the match header.
type Team struct {
	Name *string `json:"name"`
	Logo *string `json:"logo"` // absolute URL
}

// ActionEvent is one row of the action log timeline, in rendered order.
type ActionEvent struct {
	Minute    *string `json:"minute"`
	ExtraTime *string `json:"extraTime"`
	Type      *string `json:"type"`
	Player    *string `json:"player"`
	Icon      *string `json:"icon"`
}

// PeriodScore is one accepted row of the score breakdown table.
type PeriodScore struct {
	Period string `json:"period"`
	Home   string `json:"home"`
	Away   string `json:"away"`
}

type PlayerStat struct {
	Number        *string `json:"number"`
	Name          *string `json:"name"`
	Goals         *string `json:"goals"`
	Assists       *string `json:"assists"`
	YellowCards   *string `json:"yellowCards"`
	RedCards      *string `json:"redCards"`
	MinutesPlayed *string `json:"minutesPlayed"`
}

type TeamStats struct {
	Name  *string      `json:"name"`
	Stats []PlayerStat `json:"stats"`
}

type Statistics struct {
	HomeTeam TeamStats `json:"homeTeam"`
	AwayTeam TeamStats `json:"awayTeam"`
}

// MatchSummary is the assembled output document.
// The three tab keys are pointers so that a tab which was never attempted
// is omitted from the JSON, while an attempted but empty tab marshals as [].
type MatchSummary struct {
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Venue       *string `json:"venue"`
	HomeTeam    Team    `json:"homeTeam"`
	AwayTeam    Team    `json:"awayTeam"`
	Score       *string `json:"score"`
	MatchStatus *string `json:"matchStatus"`
	Competition *string `json:"competition"`
	MatchID     *string `json:"matchId"`

	ActionLog      *[]ActionEvent `json:"actionLog,omitempty"`
	ScoreBreakdown *[]PeriodScore `json:"scoreBreakdown,omitempty"`
	Statistics     *Statistics    `json:"statistics,omitempty"`
}

// Header is the metadata block rendered above every tab of a fixture.
type Header struct {
	Date        *string
	Time        *string
	Venue       *string
	HomeTeam    Team
	AwayTeam    Team
	Score       *string
	MatchStatus *string
	Competition *string
	MatchID     *string
}

// Header returns the header portion of the summary.
func (m *MatchSummary) Header() Header {
	return Header{
		Date:        m.Date,
		Time:        m.Time,
		Venue:       m.Venue,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		Score:       m.Score,
		MatchStatus: m.MatchStatus,
		Competition: m.Competition,
		MatchID:     m.MatchID,
	}
}

// Deref returns the pointed-to string or fallback when nil.
func Deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
