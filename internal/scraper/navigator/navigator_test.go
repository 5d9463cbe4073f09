package navigator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fixture-summary/internal/browser"
	"go-fixture-summary/internal/scraper"
	"go-fixture-summary/internal/scraper/navigator"
	"go-fixture-summary/internal/scraper/scrapertest"
	"go-fixture-summary/internal/selectors"
)

func fastTimeouts() navigator.Timeouts {
	return navigator.Timeouts{
		Navigation:  50 * time.Millisecond,
		Frame:       50 * time.Millisecond,
		FixtureList: 50 * time.Millisecond,
		Detail:      50 * time.Millisecond,
		Tab:         50 * time.Millisecond,
	}
}

func openFixture(t *testing.T, frame *browser.SnapshotFrame) *navigator.Navigator {
	t.Helper()
	ctx := context.Background()
	nav := navigator.New(browser.NewSnapshotPage(frame), selectors.Default(), fastTimeouts())

	root, err := nav.Open(ctx, "https://example.test/schedule")
	require.NoError(t, err)
	got, err := nav.LocateFixtureFrame(ctx, root)
	require.NoError(t, err)
	require.NoError(t, nav.OpenFirstFixture(ctx, got))
	return nav
}

func TestNavigatorReachesEveryTab(t *testing.T) {
	frame, err := scrapertest.NewWidget()
	require.NoError(t, err)
	nav := openFixture(t, frame)

	state, tab := nav.State()
	assert.Equal(t, navigator.FixtureOpen, state)
	assert.Equal(t, scraper.TeamSheet, tab)

	tabs, err := nav.AvailableTabs(frame)
	require.NoError(t, err)
	assert.Equal(t, scraper.Tabs, tabs)

	// any tab is reachable from any tab, including going back
	order := []scraper.Tab{scraper.ActionLog, scraper.ScoreBreakdown, scraper.Statistics, scraper.TeamSheet, scraper.ActionLog}
	for _, want := range order {
		require.NoError(t, nav.SelectTab(context.Background(), frame, want), want.String())
		_, tab = nav.State()
		assert.Equal(t, want, tab)
	}

	assert.Equal(t, []string{
		"button.ant-btn-link#0",
		".ant-tabs-tab-btn#2",
		".ant-tabs-tab-btn#3",
		".ant-tabs-tab-btn#1",
		".ant-tabs-tab-btn#0",
		".ant-tabs-tab-btn#2",
	}, frame.Clicks())
}

func TestOpenFailsWhenPageDoesNotSettle(t *testing.T) {
	page := browser.NewSnapshotPage(nil)
	page.GotoErr = browser.ErrTimeout
	nav := navigator.New(page, selectors.Default(), fastTimeouts())

	_, err := nav.Open(context.Background(), "https://example.test/schedule")
	var navErr *scraper.NavigationError
	require.True(t, errors.As(err, &navErr))
	assert.Equal(t, "https://example.test/schedule", navErr.URL)
	assert.True(t, errors.Is(err, browser.ErrTimeout))
}

func TestLocateFixtureFrameWithoutIframe(t *testing.T) {
	page := browser.NewSnapshotPage(nil)
	nav := navigator.New(page, selectors.Default(), fastTimeouts())

	start := time.Now()
	_, err := nav.LocateFixtureFrame(context.Background(), page)
	var notFound *scraper.ElementNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "iframe", notFound.Selector)
	assert.Less(t, time.Since(start), time.Second)
}

func TestOpenFirstFixtureWithEmptySchedule(t *testing.T) {
	frame, err := scrapertest.NewWidgetWith(0, 4, scrapertest.Panes())
	require.NoError(t, err)
	nav := navigator.New(browser.NewSnapshotPage(frame), selectors.Default(), fastTimeouts())

	err = nav.OpenFirstFixture(context.Background(), frame)
	var noFixtures *scraper.NoFixturesError
	require.True(t, errors.As(err, &noFixtures))

	state, _ := nav.State()
	assert.Equal(t, navigator.FixtureListVisible, state)
}

func TestOpenFirstFixtureWithoutList(t *testing.T) {
	frame, err := scrapertest.Frame(`<html><body><p>maintenance</p></body></html>`)
	require.NoError(t, err)
	nav := navigator.New(browser.NewSnapshotPage(frame), selectors.Default(), fastTimeouts())

	err = nav.OpenFirstFixture(context.Background(), frame)
	var notFound *scraper.ElementNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "fixture list", notFound.What)
}

func TestWaitForFixtureListWaitsForLateRender(t *testing.T) {
	frame, err := scrapertest.Frame(`<html><body><div class="loading"></div></body></html>`)
	require.NoError(t, err)
	nav := navigator.New(browser.NewSnapshotPage(frame), selectors.Default(), fastTimeouts())

	// clicking before the list is up is refused
	assert.Error(t, nav.ClickFirstFixture(context.Background(), frame))

	go func() {
		time.Sleep(15 * time.Millisecond)
		_ = frame.SetContent(scrapertest.FixtureList(2))
	}()
	require.NoError(t, nav.WaitForFixtureList(context.Background(), frame))

	state, _ := nav.State()
	assert.Equal(t, navigator.FixtureListVisible, state)
	html, err := frame.Content()
	require.NoError(t, err)
	assert.Contains(t, html, "ant-btn-link")
	assert.Empty(t, frame.Clicks())
}

func TestSelectTabMissingButton(t *testing.T) {
	frame, err := scrapertest.NewWidgetWith(1, 3, scrapertest.Panes())
	require.NoError(t, err)
	nav := openFixture(t, frame)

	tabs, err := nav.AvailableTabs(frame)
	require.NoError(t, err)
	assert.Equal(t, []scraper.Tab{scraper.TeamSheet, scraper.Statistics, scraper.ActionLog}, tabs)

	err = nav.SelectTab(context.Background(), frame, scraper.ScoreBreakdown)
	assert.True(t, errors.Is(err, scraper.ErrTabUnavailable))
}

func TestSelectTabContentTimeout(t *testing.T) {
	panes := scrapertest.Panes()
	panes[scraper.ScoreBreakdown] = `<div class="loading">Loading…</div>`
	frame, err := scrapertest.NewWidgetWith(1, 4, panes)
	require.NoError(t, err)
	nav := openFixture(t, frame)

	err = nav.SelectTab(context.Background(), frame, scraper.ScoreBreakdown)
	var tabErr *scraper.TabLoadTimeoutError
	require.True(t, errors.As(err, &tabErr))
	assert.Equal(t, scraper.ScoreBreakdown, tabErr.Tab)
	assert.Equal(t, ".styles_container__2OwmX", tabErr.Selector)
	assert.GreaterOrEqual(t, tabErr.Elapsed, 50*time.Millisecond)
}

func TestWaitForTabContentMarkers(t *testing.T) {
	nav := navigator.New(browser.NewSnapshotPage(nil), selectors.Default(), fastTimeouts())
	for tab, pane := range scrapertest.Panes() {
		present, err := scrapertest.Frame(scrapertest.Detail(4, pane))
		require.NoError(t, err)
		assert.NoError(t, nav.WaitForTabContent(context.Background(), present, tab), tab.String())

		absent, err := scrapertest.Frame(`<html><body></body></html>`)
		require.NoError(t, err)
		err = nav.WaitForTabContent(context.Background(), absent, tab)
		var tabErr *scraper.TabLoadTimeoutError
		assert.True(t, errors.As(err, &tabErr), tab.String())
	}
}

func TestSelectTabBeforeFixtureOpen(t *testing.T) {
	frame, err := scrapertest.NewWidget()
	require.NoError(t, err)
	nav := navigator.New(browser.NewSnapshotPage(frame), selectors.Default(), fastTimeouts())

	assert.Error(t, nav.SelectTab(context.Background(), frame, scraper.Statistics))
}

func TestCancelledContext(t *testing.T) {
	frame, err := scrapertest.NewWidget()
	require.NoError(t, err)
	nav := navigator.New(browser.NewSnapshotPage(frame), selectors.Default(), fastTimeouts())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = nav.Open(ctx, "https://example.test/schedule")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadReplay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, navigator.FixtureListFile), []byte(scrapertest.FixtureList(1)), 0644))
	for tab, view := range scrapertest.Views(4, scrapertest.Panes()) {
		if tab == scraper.Statistics {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, navigator.SnapshotFile(tab)), []byte(view), 0644))
	}

	frame, err := navigator.LoadReplay(dir, scrapertest.FrameURL, selectors.Default())
	require.NoError(t, err)
	nav := openFixture(t, frame)

	require.NoError(t, nav.SelectTab(context.Background(), frame, scraper.ActionLog))
	// no statistics snapshot: the click keeps the previous view, so its marker never shows
	err = nav.SelectTab(context.Background(), frame, scraper.Statistics)
	var tabErr *scraper.TabLoadTimeoutError
	assert.True(t, errors.As(err, &tabErr))

	_, err = navigator.LoadReplay(t.TempDir(), scrapertest.FrameURL, selectors.Default())
	assert.Error(t, err)
}
