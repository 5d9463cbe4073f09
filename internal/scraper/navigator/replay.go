package navigator

import (
	"fmt"
	"os"
	"path/filepath"

	"go-fixture-summary/internal/browser"
	"go-fixture-summary/internal/scraper"
	"go-fixture-summary/internal/selectors"
)

// FixtureListFile is the snapshot file holding the fixture list view.
const FixtureListFile = "fixtures.html"

// SnapshotFile is the snapshot file name of a tab's view.
func SnapshotFile(tab scraper.Tab) string {
	return tab.Slug() + ".html"
}

// ReplayFrame builds a frame that behaves like the live widget from saved
// views: opening the first fixture shows the team sheet, and clicking a tab
// button shows that tab's view. Tabs without a view keep the current document.
func ReplayFrame(frameURL string, table *selectors.Table, list string, views map[scraper.Tab]string) (*browser.SnapshotFrame, error) {
	frame, err := browser.NewSnapshotFrame(frameURL, list)
	if err != nil {
		return nil, err
	}
	if sheet, ok := views[scraper.TeamSheet]; ok {
		frame.OnClick(table.Get(selectors.Navigation, selectors.OpenFixture), 0, sheet)
	}
	tabBtn := table.Get(selectors.Navigation, selectors.TabButton)
	for tab, html := range views {
		frame.OnClick(tabBtn, tab.ButtonIndex(), html)
	}
	return frame, nil
}

// LoadReplay reads the fixture list and every tab view present in dir.
func LoadReplay(dir, frameURL string, table *selectors.Table) (*browser.SnapshotFrame, error) {
	list, err := os.ReadFile(filepath.Join(dir, FixtureListFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture list snapshot: %w", err)
	}
	views := make(map[scraper.Tab]string)
	for _, tab := range scraper.Tabs {
		data, err := os.ReadFile(filepath.Join(dir, SnapshotFile(tab)))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s snapshot: %w", tab, err)
		}
		views[tab] = string(data)
	}
	return ReplayFrame(frameURL, table, string(list), views)
}
