// Package navigator walks the schedule widget from the top-level page down to
// a fixture's detail frame and between its tabs.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-fixture-summary/internal/browser"
	"go-fixture-summary/internal/scraper"
	"go-fixture-summary/internal/selectors"
)

type State int

const (
	Unopened State = iota
	FixtureListVisible
	FixtureOpen
)

func (s State) String() string {
	switch s {
	case FixtureListVisible:
		return "fixture list visible"
	case FixtureOpen:
		return "fixture open"
	}
	return "unopened"
}

// Timeouts bounds every wait the navigator performs.
type Timeouts struct {
	Navigation  time.Duration
	Frame       time.Duration
	FixtureList time.Duration
	Detail      time.Duration
	Tab         time.Duration
	// Settle is the fixed pause after each click, capped at SettleCap.
	Settle    time.Duration
	SettleCap time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Navigation:  30 * time.Second,
		Frame:       10 * time.Second,
		FixtureList: 15 * time.Second,
		Detail:      15 * time.Second,
		Tab:         10 * time.Second,
		Settle:      2 * time.Second,
		SettleCap:   5 * time.Second,
	}
}

type Navigator struct {
	page     browser.Page
	table    *selectors.Table
	timeouts Timeouts

	state State
	tab   scraper.Tab
}

func New(page browser.Page, table *selectors.Table, timeouts Timeouts) *Navigator {
	return &Navigator{
		page:     page,
		table:    table,
		timeouts: timeouts,
	}
}

// State reports where the navigator is. Tab is only meaningful once the
// fixture is open.
func (n *Navigator) State() (State, scraper.Tab) {
	return n.state, n.tab
}

// Open loads the schedule page and returns it as the root context.
func (n *Navigator) Open(ctx context.Context, pageURL string) (browser.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Printf("🌐 Opening %s", pageURL)
	start := time.Now()
	if err := n.page.Goto(pageURL, n.timeouts.Navigation); err != nil {
		return nil, &scraper.NavigationError{URL: pageURL, Elapsed: time.Since(start), Err: err}
	}
	return n.page, nil
}

// LocateFixtureFrame waits for the widget iframe and binds to the first one.
func (n *Navigator) LocateFixtureFrame(ctx context.Context, root browser.Page) (browser.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sel := n.table.Get(selectors.Navigation, selectors.Frame)
	start := time.Now()
	if err := root.WaitForSelector(sel, n.timeouts.Frame); err != nil {
		return nil, &scraper.ElementNotFoundError{What: "fixture iframe", Selector: sel, Elapsed: time.Since(start), Err: err}
	}
	frame, err := root.FirstFrame(sel)
	if err != nil {
		return nil, &scraper.ElementNotFoundError{What: "fixture iframe", Selector: sel, Elapsed: time.Since(start), Err: err}
	}
	log.Printf("🖼️ Bound fixture frame %s", frame.URL())
	return frame, nil
}

// OpenFirstFixture opens the detail view of the first fixture in the list.
func (n *Navigator) OpenFirstFixture(ctx context.Context, frame browser.Frame) error {
	if err := n.WaitForFixtureList(ctx, frame); err != nil {
		return err
	}
	return n.ClickFirstFixture(ctx, frame)
}

// WaitForFixtureList blocks until the list and at least one open control
// have rendered. An empty schedule yields NoFixturesError.
func (n *Navigator) WaitForFixtureList(ctx context.Context, frame browser.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	listSel := n.table.Get(selectors.Navigation, selectors.FixtureList)
	start := time.Now()
	if err := frame.WaitForSelector(listSel, n.timeouts.FixtureList); err != nil {
		return &scraper.ElementNotFoundError{What: "fixture list", Selector: listSel, Elapsed: time.Since(start), Err: err}
	}
	n.state = FixtureListVisible

	openSel := n.table.Get(selectors.Navigation, selectors.OpenFixture)
	if err := frame.WaitForSelector(openSel, n.timeouts.FixtureList); err != nil {
		if errors.Is(err, browser.ErrTimeout) {
			return &scraper.NoFixturesError{Selector: openSel}
		}
		return fmt.Errorf("waiting for fixture controls: %w", err)
	}
	count, err := frame.Count(openSel)
	if err != nil {
		return fmt.Errorf("counting fixture controls: %w", err)
	}
	if count == 0 {
		return &scraper.NoFixturesError{Selector: openSel}
	}
	log.Printf("📦 Found %d fixtures, opening the first", count)
	return nil
}

// ClickFirstFixture opens the first fixture once WaitForFixtureList has
// succeeded and waits for its detail view.
func (n *Navigator) ClickFirstFixture(ctx context.Context, frame browser.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.state != FixtureListVisible {
		return fmt.Errorf("fixture list not visible (state %s)", n.state)
	}

	openSel := n.table.Get(selectors.Navigation, selectors.OpenFixture)
	if err := frame.ClickNth(openSel, 0); err != nil {
		return fmt.Errorf("clicking first fixture: %w", err)
	}

	detailSel := n.table.Get(selectors.Navigation, selectors.Detail)
	start := time.Now()
	if err := frame.WaitForSelector(detailSel, n.timeouts.Detail); err != nil {
		return &scraper.ElementNotFoundError{What: "fixture detail", Selector: detailSel, Elapsed: time.Since(start), Err: err}
	}
	n.state = FixtureOpen
	n.tab = scraper.TeamSheet

	return browser.Settle(ctx, n.timeouts.Settle, n.timeouts.SettleCap)
}

// AvailableTabs lists the tabs whose buttons are rendered, in button order.
func (n *Navigator) AvailableTabs(frame browser.Frame) ([]scraper.Tab, error) {
	count, err := frame.Count(n.table.Get(selectors.Navigation, selectors.TabButton))
	if err != nil {
		return nil, fmt.Errorf("counting tab buttons: %w", err)
	}
	if count > len(scraper.Tabs) {
		count = len(scraper.Tabs)
	}
	return scraper.Tabs[:count], nil
}

// SelectTab clicks the tab's own button, waits for its content marker and
// then for the settle delay. Any tab is reachable from any other.
func (n *Navigator) SelectTab(ctx context.Context, frame browser.Frame, tab scraper.Tab) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.state != FixtureOpen {
		return fmt.Errorf("cannot select %s tab: %s", tab, n.state)
	}

	btnSel := n.table.Get(selectors.Navigation, selectors.TabButton)
	count, err := frame.Count(btnSel)
	if err != nil {
		return fmt.Errorf("counting tab buttons: %w", err)
	}
	if tab.ButtonIndex() >= count {
		return fmt.Errorf("%s: %w", tab, scraper.ErrTabUnavailable)
	}

	log.Printf("🗂️ Switching to %s tab", tab)
	if err := frame.ClickNth(btnSel, tab.ButtonIndex()); err != nil {
		return fmt.Errorf("clicking %s tab: %w", tab, err)
	}
	if err := n.WaitForTabContent(ctx, frame, tab); err != nil {
		return err
	}
	n.tab = tab

	return browser.Settle(ctx, n.timeouts.Settle, n.timeouts.SettleCap)
}

// WaitForTabContent polls for the tab's root marker.
func (n *Navigator) WaitForTabContent(ctx context.Context, frame browser.Frame, tab scraper.Tab) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sel := n.table.Get(tab.Scope(), selectors.Root)
	start := time.Now()
	if err := frame.WaitForSelector(sel, n.timeouts.Tab); err != nil {
		return &scraper.TabLoadTimeoutError{Tab: tab, Selector: sel, Elapsed: time.Since(start), Err: err}
	}
	return nil
}
