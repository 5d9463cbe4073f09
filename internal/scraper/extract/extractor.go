// Package extract turns the rendered DOM of a fixture tab into plain records.
//
// Every extractor first re-asserts its tab's root marker with a bounded wait,
// then reads one snapshot of the frame's HTML. Field lookups never fail: a
// missing node becomes nil, a missing container becomes an empty list.
package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-fixture-summary/internal/browser"
	"go-fixture-summary/internal/models"
	"go-fixture-summary/internal/scraper"
	"go-fixture-summary/internal/selectors"
)

// clockTime finds the first H:MM or HH:MM, even when a suffix such as PM or
// EDT is glued to it.
var clockTime = regexp.MustCompile(`(?:^|\D)(\d{1,2}:\d{2})`)

type Extractor struct {
	table   *selectors.Table
	timeout time.Duration
}

func New(table *selectors.Table, timeout time.Duration) *Extractor {
	return &Extractor{table: table, timeout: timeout}
}

// document waits for the root marker of scope and parses the frame HTML.
func (e *Extractor) document(ctx context.Context, frame browser.Frame, tab scraper.Tab, scope selectors.Scope) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sel := e.table.Get(scope, selectors.Root)
	start := time.Now()
	if err := frame.WaitForSelector(sel, e.timeout); err != nil {
		return nil, &scraper.ExtractionTimeoutError{Tab: tab, Selector: sel, Elapsed: time.Since(start), Err: err}
	}
	html, err := frame.Content()
	if err != nil {
		return nil, fmt.Errorf("reading %s content: %w", tab, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing %s content: %w", tab, err)
	}
	return doc, nil
}

// Summary reads the match header and the action log. Both live in the same
// frame, so they come from one snapshot. The frame must be on the Action Log tab.
func (e *Extractor) Summary(ctx context.Context, frame browser.Frame) (*models.MatchSummary, error) {
	doc, err := e.document(ctx, frame, scraper.ActionLog, selectors.ActionLog)
	if err != nil {
		return nil, err
	}
	summary := &models.MatchSummary{}
	applyHeader(summary, e.header(doc.Selection, frame.URL()))
	events := e.actionLog(doc.Selection, frame.URL())
	summary.ActionLog = &events
	return summary, nil
}

// Header reads only the match header from whichever tab is showing. current
// names that tab in a timeout error.
func (e *Extractor) Header(ctx context.Context, frame browser.Frame, current scraper.Tab) (models.Header, error) {
	doc, err := e.document(ctx, frame, current, selectors.Header)
	if err != nil {
		return models.Header{}, err
	}
	return e.header(doc.Selection, frame.URL()), nil
}

func (e *Extractor) header(doc *goquery.Selection, base string) models.Header {
	get := func(field string) string { return e.table.Get(selectors.Header, field) }

	// Time is only rendered next to a clock icon. Without the icon it stays nil.
	var kickoff Field
	if exists(doc, get(selectors.ClockIcon)) {
		kickoff = Text(doc, get(selectors.Time)).Map(func(s string) string {
			if m := clockTime.FindStringSubmatch(s); m != nil {
				return m[1]
			}
			return ""
		}).NonEmpty()
	}

	return models.Header{
		Date:  Text(doc, get(selectors.Date)).Ptr(),
		Time:  kickoff.Ptr(),
		Venue: Text(doc, get(selectors.Venue)).Ptr(),
		HomeTeam: models.Team{
			Name: Text(doc, get(selectors.HomeName)).Ptr(),
			Logo: ResolveURL(base, Attr(doc, get(selectors.HomeLogo), "src")).Ptr(),
		},
		AwayTeam: models.Team{
			Name: Text(doc, get(selectors.AwayName)).Ptr(),
			Logo: ResolveURL(base, Attr(doc, get(selectors.AwayLogo), "src")).Ptr(),
		},
		Score:       Text(doc, get(selectors.Score)).Ptr(),
		MatchStatus: Text(doc, get(selectors.MatchStatus)).TrimPrefix(get(selectors.MatchStatusPrefix)).Ptr(),
		Competition: Text(doc, get(selectors.Competition)).TrimPrefix(get(selectors.CompetitionPrefix)).Ptr(),
		MatchID:     Text(doc, get(selectors.MatchID)).TrimPrefix(get(selectors.MatchIDPrefix)).Ptr(),
	}
}

func applyHeader(m *models.MatchSummary, h models.Header) {
	m.Date = h.Date
	m.Time = h.Time
	m.Venue = h.Venue
	m.HomeTeam = h.HomeTeam
	m.AwayTeam = h.AwayTeam
	m.Score = h.Score
	m.MatchStatus = h.MatchStatus
	m.Competition = h.Competition
	m.MatchID = h.MatchID
}

func (e *Extractor) actionLog(doc *goquery.Selection, base string) []models.ActionEvent {
	get := func(field string) string { return e.table.Get(selectors.ActionLog, field) }

	events := make([]models.ActionEvent, 0)
	doc.Find(get(selectors.Item)).Each(func(_ int, item *goquery.Selection) {
		events = append(events, models.ActionEvent{
			Minute:    Text(item, get(selectors.Minute)).Ptr(),
			ExtraTime: Text(item, get(selectors.ExtraTime)).Ptr(),
			Type:      Text(item, get(selectors.Type)).Ptr(),
			Player:    e.player(item).Ptr(),
			Icon:      icon(item.Find(get(selectors.Icon)).First(), base).Ptr(),
		})
	})
	return events
}

// player finds the player name of a timeline row. Goals put the name in the
// block right after the type label's parent; cards nest the label deeper, so
// fall back to the second content block.
func (e *Extractor) player(item *goquery.Selection) Field {
	label := item.Find(e.table.Get(selectors.ActionLog, selectors.Type)).First()
	if label.Length() == 0 {
		return None
	}
	if next := label.Parent().Next(); next.Length() > 0 {
		return NodeText(next)
	}
	return Nth(item.Find(e.table.Get(selectors.ActionLog, selectors.ContentBlock)), 1)
}

// icon prefers the file name of the image URL and falls back to its alt text.
func icon(img *goquery.Selection, base string) Field {
	if img.Length() == 0 {
		return None
	}
	src, _ := img.Attr("src")
	name := LastPathSegment(ResolveURL(base, Some(clean(src))))
	if name.IsSome() {
		return name
	}
	alt, ok := img.Attr("alt")
	if !ok {
		return None
	}
	return Some(clean(alt))
}

// ScoreBreakdown reads the per-period score rows. Only rows with exactly
// three cells are kept; anything else is dropped silently.
func (e *Extractor) ScoreBreakdown(ctx context.Context, frame browser.Frame) ([]models.PeriodScore, error) {
	doc, err := e.document(ctx, frame, scraper.ScoreBreakdown, selectors.ScoreBreakdown)
	if err != nil {
		return nil, err
	}
	cellSel := e.table.Get(selectors.ScoreBreakdown, selectors.Cell)

	rows := make([]models.PeriodScore, 0)
	doc.Find(e.table.Get(selectors.ScoreBreakdown, selectors.Row)).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find(cellSel)
		if cells.Length() != 3 {
			return
		}
		rows = append(rows, models.PeriodScore{
			Period: clean(cells.Eq(0).Text()),
			Home:   clean(cells.Eq(1).Text()),
			Away:   clean(cells.Eq(2).Text()),
		})
	})
	return rows, nil
}

// Statistics reads the two per-team player tables, home first.
func (e *Extractor) Statistics(ctx context.Context, frame browser.Frame) (*models.Statistics, error) {
	doc, err := e.document(ctx, frame, scraper.Statistics, selectors.Statistics)
	if err != nil {
		return nil, err
	}
	get := func(field string) string { return e.table.Get(selectors.Statistics, field) }

	names := doc.Find(get(selectors.TeamName))
	tables := doc.Find(get(selectors.Root))

	team := func(i int) models.TeamStats {
		return models.TeamStats{
			Name:  Nth(names, i).NonEmpty().Ptr(),
			Stats: e.playerStats(tables.Eq(i)),
		}
	}
	return &models.Statistics{HomeTeam: team(0), AwayTeam: team(1)}, nil
}

func (e *Extractor) playerStats(wrapper *goquery.Selection) []models.PlayerStat {
	get := func(field string) string { return e.table.Get(selectors.Statistics, field) }

	stats := make([]models.PlayerStat, 0)
	table := wrapper.Find(get(selectors.TableEl)).First()
	if table.Length() == 0 {
		return stats
	}
	cellSel := get(selectors.Cell)
	table.Find(get(selectors.Row)).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find(cellSel)
		// header and separator rows carry no data cells
		if cells.Length() == 0 {
			return
		}
		cell := func(i int) *string { return Nth(cells, i).NonEmpty().Ptr() }
		stats = append(stats, models.PlayerStat{
			Number:        cell(0),
			Name:          cell(1),
			Goals:         cell(2),
			Assists:       cell(3),
			YellowCards:   cell(4),
			RedCards:      cell(5),
			MinutesPlayed: cell(6),
		})
	})
	return stats
}
