// Package scrapertest provides a synthetic schedule widget whose markup
// matches the default selector table, for tests that drive the scraper
// without a browser.
package scrapertest

import (
	"fmt"
	"strings"

	"go-fixture-summary/internal/browser"
	"go-fixture-summary/internal/scraper"
	"go-fixture-summary/internal/scraper/navigator"
	"go-fixture-summary/internal/selectors"
)

const FrameURL = "https://widget.example.test/embed/schedule"

// FixtureList renders a schedule with n fixtures.
func FixtureList(n int) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="fixtures-list">`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<div class="fixture-card"><span>Round %d</span><button class="ant-btn ant-btn-link">Open fixture %d</button></div>`, i+1, i+1)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

const Header = `<div class="sh-match-time-container">
  <div class="mr-4"> Sat, Jul 12, 2025 </div>
  <div class="d-flex align-items-center"><span role="img" class="anticon anticon-clock-circle"></span>Kick-off 19:30 EDT</div>
  <div>Memorial Stadium</div>
</div>
<div class="sh-team-row ant-row">
  <div class="ant-col ant-col-xs-9"><div class="text-right">Riverside FC</div><img src="/logos/riverside.png"></div>
  <div class="ant-col ant-col-xs-6"><div class="sc-hVkBjg">1 - 0</div></div>
  <div class="ant-col ant-col-xs-9"><img src="https://cdn.example.test/logos/harbor.png"><div>Harbor United</div></div>
</div>
<div class="sh-match-state-container"><div>Match Status: Full Time</div><div>Competition: NPSL Regular Season</div></div>
<div class="sh-match-id-container">Match ID: 48213</div>`

const TeamSheetPane = `<div class="team-sheet"><div class="lineup">Starting XI</div></div>`

// ActionLogPane holds one goal. The player sits in the block after the label.
const ActionLogPane = `<div class="public-action-log"><ul class="ant-timeline">
  <li class="ant-timeline-item">
    <div class="timeline-item-head"><div>45</div><div>+2</div></div>
    <div class="ant-timeline-item-content"><div><strong>Goal</strong></div><div> J. Smith </div><img src="/icons/goal.png" alt="Goal"></div>
  </li>
</ul></div>`

const ScoreBreakdownPane = `<div class="styles_container__2OwmX">
  <div class="styles_headerRow__Xy12"><div class="styles_playerData__oNSpO">Period</div><div class="styles_playerData__oNSpO">Home</div><div class="styles_playerData__oNSpO">Away</div></div>
  <div class="styles_playerRow__LqwaL"><div class="styles_playerData__oNSpO">1st Half</div><div class="styles_playerData__oNSpO">1</div><div class="styles_playerData__oNSpO">0</div></div>
</div>`

// StatsTable renders one team table with a header row and the given player rows.
func StatsTable(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<div class="team-statistics-table"><table><tbody><tr><th>#</th><th>Player</th><th>G</th><th>A</th><th>YC</th><th>RC</th><th>Min</th></tr>`)
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, c := range row {
			fmt.Fprintf(&b, "<td>%s</td>", c)
		}
		b.WriteString("</tr>")
	}
	b.WriteString(`</tbody></table></div>`)
	return b.String()
}

var SmithRow = []string{"9", "J. Smith", "1", "0", "0", "0", "90"}

var StatisticsPane = `<div class="sc-iMfspA">Riverside FC</div>` + StatsTable(SmithRow) +
	`<div class="sc-iMfspA">Harbor United</div>` + StatsTable(SmithRow)

// Detail renders the fixture detail view with tabs buttons and pane as the
// active tab content.
func Detail(tabs int, pane string) string {
	names := []string{"Team Sheet", "Statistics", "Action Log", "Score Breakdown"}
	var b strings.Builder
	b.WriteString(`<html><body><div class="sb-main-container">`)
	b.WriteString(Header)
	b.WriteString(`<div class="ant-tabs"><div class="ant-tabs-nav">`)
	for i := 0; i < tabs && i < len(names); i++ {
		fmt.Fprintf(&b, `<div class="ant-tabs-tab"><div role="tab" class="ant-tabs-tab-btn">%s</div></div>`, names[i])
	}
	b.WriteString(`</div><div class="ant-tabs-content"><div role="tabpanel" class="ant-tabs-tabpane ant-tabs-tabpane-active">`)
	b.WriteString(pane)
	b.WriteString(`</div></div></div></div></body></html>`)
	return b.String()
}

// Panes returns the default content of every tab.
func Panes() map[scraper.Tab]string {
	return map[scraper.Tab]string{
		scraper.TeamSheet:      TeamSheetPane,
		scraper.Statistics:     StatisticsPane,
		scraper.ActionLog:      ActionLogPane,
		scraper.ScoreBreakdown: ScoreBreakdownPane,
	}
}

// Views renders every pane into a full detail view with the given tab count.
func Views(tabs int, panes map[scraper.Tab]string) map[scraper.Tab]string {
	views := make(map[scraper.Tab]string, len(panes))
	for tab, pane := range panes {
		views[tab] = Detail(tabs, pane)
	}
	return views
}

// NewWidget returns a frame showing one fixture with all four tabs.
func NewWidget() (*browser.SnapshotFrame, error) {
	return NewWidgetWith(1, 4, Panes())
}

// NewWidgetWith returns a frame with the given fixture count, tab button
// count and tab panes.
func NewWidgetWith(fixtures, tabs int, panes map[scraper.Tab]string) (*browser.SnapshotFrame, error) {
	return navigator.ReplayFrame(FrameURL, selectors.Default(), FixtureList(fixtures), Views(tabs, panes))
}

// Frame returns a frame already showing html.
func Frame(html string) (*browser.SnapshotFrame, error) {
	return browser.NewSnapshotFrame(FrameURL, html)
}
