package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fixture-summary/internal/config"
	"go-fixture-summary/internal/dedup"
	"go-fixture-summary/internal/models"
	"go-fixture-summary/internal/reporter"
	"go-fixture-summary/internal/scraper"
	"go-fixture-summary/internal/scraper/navigator"
	"go-fixture-summary/internal/scraper/scrapertest"
	"go-fixture-summary/internal/selectors"
	"go-fixture-summary/utils"
)

type fakeAI struct {
	text string
	err  error
}

func (f *fakeAI) SummarizeMatch(ctx context.Context, summary *models.MatchSummary) (string, error) {
	return f.text, f.err
}

type fakeNotifier struct {
	summaries int
	errs      []error
	statuses  []string
}

func (n *fakeNotifier) SendSummary(summary *models.MatchSummary, narrative string) error {
	n.summaries++
	return nil
}

func (n *fakeNotifier) SendError(err error) error {
	n.errs = append(n.errs, err)
	return nil
}

func (n *fakeNotifier) SendStatus(message string) error {
	n.statuses = append(n.statuses, message)
	return nil
}

type fakeStore struct {
	saved map[string]*models.MatchSummary
}

func (s *fakeStore) SaveSummary(ctx context.Context, runID, selectorVersion string, summary *models.MatchSummary, narrative string) error {
	s.saved[runID] = summary
	return nil
}

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		ScheduleURL:    "https://example.test/schedule-2025/",
		OutputDir:      filepath.Join(dir, "out"),
		DiagnosticsDir: filepath.Join(dir, "diagnostics"),
		CachePath:      filepath.Join(dir, "cache"),
		Timeouts: config.Timeouts{
			Navigation:  50 * time.Millisecond,
			Frame:       50 * time.Millisecond,
			FixtureList: 50 * time.Millisecond,
			Detail:      50 * time.Millisecond,
			Tab:         50 * time.Millisecond,
			Extraction:  50 * time.Millisecond,
			Settle:      time.Millisecond,
			SettleCap:   5 * time.Millisecond,
		},
	}
}

// writeSnapshots lays out a recorded widget in dir.
func writeSnapshots(t *testing.T, dir string, fixtures int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, navigator.FixtureListFile), []byte(scrapertest.FixtureList(fixtures)), 0644))
	for tab, view := range scrapertest.Views(4, scrapertest.Panes()) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, navigator.SnapshotFile(tab)), []byte(view), 0644))
	}
}

func TestRunFromSnapshots(t *testing.T) {
	cfg := testConfig(t)
	cfg.RecordSnapshots = true
	snapshots := filepath.Join(t.TempDir(), "snapshots")
	writeSnapshots(t, snapshots, 1)

	r := New(cfg, selectors.Default(), NewLauncher(cfg, selectors.Default(), snapshots))
	r.AI = &fakeAI{text: "Riverside FC edged Harbor United."}
	notifier := &fakeNotifier{}
	r.Notifier = notifier
	r.Cache = dedup.NewMatchCache(cfg.CachePath)
	store := &fakeStore{saved: map[string]*models.MatchSummary{}}
	r.Store = store

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	summary, err := reporter.ReadSummary(report.SummaryPath)
	require.NoError(t, err)
	require.NotNil(t, summary.ActionLog)
	assert.Len(t, *summary.ActionLog, 1)
	assert.Equal(t, "48213", models.Deref(summary.MatchID, ""))

	narrative, err := os.ReadFile(report.NarrativePath)
	require.NoError(t, err)
	assert.Equal(t, "Riverside FC edged Harbor United.", string(narrative))

	assert.Contains(t, store.saved, report.RunID)
	assert.Equal(t, 1, notifier.summaries)
	assert.Empty(t, report.PDFPath)

	// the recorded run can itself be replayed
	recorded := filepath.Join(report.Diagnostics, utils.SnapshotDir)
	assert.FileExists(t, filepath.Join(recorded, navigator.FixtureListFile))

	// a second run of the same match is not notified again
	r.launcher = NewReplayLauncher(recorded, cfg.ScheduleURL, selectors.Default())
	_, err = r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.summaries)
}

func TestRunKeepsGoingWhenLLMFails(t *testing.T) {
	cfg := testConfig(t)
	snapshots := t.TempDir()
	writeSnapshots(t, snapshots, 1)

	r := New(cfg, selectors.Default(), NewReplayLauncher(snapshots, cfg.ScheduleURL, selectors.Default()))
	r.AI = &fakeAI{err: errors.New("quota")}

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, report.SummaryPath)
	assert.Empty(t, report.NarrativePath)
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, reporter.NarrativeFile))
}

func TestRunWithEmptySchedule(t *testing.T) {
	cfg := testConfig(t)
	snapshots := t.TempDir()
	writeSnapshots(t, snapshots, 0)

	r := New(cfg, selectors.Default(), NewReplayLauncher(snapshots, cfg.ScheduleURL, selectors.Default()))
	notifier := &fakeNotifier{}
	r.Notifier = notifier

	_, err := r.Run(context.Background())
	var noFixtures *scraper.NoFixturesError
	require.True(t, errors.As(err, &noFixtures))
	assert.Len(t, notifier.statuses, 1)
	assert.Empty(t, notifier.errs)
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, reporter.SummaryFile))
}

func TestRunWithMissingSnapshots(t *testing.T) {
	cfg := testConfig(t)
	r := New(cfg, selectors.Default(), NewReplayLauncher(t.TempDir(), cfg.ScheduleURL, selectors.Default()))
	notifier := &fakeNotifier{}
	r.Notifier = notifier

	_, err := r.Run(context.Background())
	assert.Error(t, err)
	assert.Len(t, notifier.errs, 1)
}

func TestLoadSelectors(t *testing.T) {
	cfg := testConfig(t)
	table, err := LoadSelectors(cfg)
	require.NoError(t, err)
	assert.Equal(t, selectors.Default().Version, table.Version)

	cfg.SelectorsPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = LoadSelectors(cfg)
	assert.Error(t, err)
}
