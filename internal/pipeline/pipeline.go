// Package pipeline drives the navigator and the extractors tab by tab and
// folds their records into one MatchSummary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"go-fixture-summary/internal/browser"
	"go-fixture-summary/internal/models"
	"go-fixture-summary/internal/scraper"
	"go-fixture-summary/internal/scraper/extract"
	"go-fixture-summary/internal/scraper/navigator"
	"go-fixture-summary/internal/selectors"
)

// Diagnostics receives the frame state at interesting points of a run.
type Diagnostics interface {
	// Snapshot saves the frame HTML as file.
	Snapshot(frame browser.Frame, file string)
	// Capture records a structural failure for later inspection.
	Capture(page browser.Page, frame browser.Frame, name string, cause error)
}

type Status string

const (
	StatusAttached Status = "attached"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

type TabOutcome struct {
	Tab    scraper.Tab
	Status Status
	Err    error
}

type Result struct {
	RunID           string
	SelectorVersion string
	StartedAt       time.Time
	Duration        time.Duration
	Summary         *models.MatchSummary
	Tabs            []TabOutcome
}

// Outcome returns the outcome recorded for tab.
func (r *Result) Outcome(tab scraper.Tab) (TabOutcome, bool) {
	for _, o := range r.Tabs {
		if o.Tab == tab {
			return o, true
		}
	}
	return TabOutcome{}, false
}

type Options struct {
	// RunID names the run in logs and artifacts. A fresh uuid is used when empty.
	RunID             string
	Timeouts          navigator.Timeouts
	ExtractionTimeout time.Duration
	// RecordSnapshots saves every visited view through Diagnostics so the run
	// can be replayed offline.
	RecordSnapshots bool
}

// extraTabs is the visiting order of the tabs that carry data.
var extraTabs = []scraper.Tab{scraper.ActionLog, scraper.ScoreBreakdown, scraper.Statistics}

type Pipeline struct {
	page  browser.Page
	table *selectors.Table
	opts  Options
	diag  Diagnostics
}

// New builds a pipeline over page. diag may be nil.
func New(page browser.Page, table *selectors.Table, opts Options, diag Diagnostics) *Pipeline {
	return &Pipeline{page: page, table: table, opts: opts, diag: diag}
}

// Run opens the first fixture of the schedule at pageURL and scrapes it.
//
// Failing to reach the fixture aborts the run. A tab whose button is missing
// is skipped; a tab that fails to load or extract is recorded as failed and
// leaves no key in the summary.
func (p *Pipeline) Run(ctx context.Context, pageURL string) (*Result, error) {
	runID := p.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	result := &Result{
		RunID:           runID,
		SelectorVersion: p.table.Version,
		StartedAt:       time.Now(),
	}
	defer func() { result.Duration = time.Since(result.StartedAt) }()

	log.Printf("🚀 Run %s (selectors %s)", result.RunID, result.SelectorVersion)

	nav := navigator.New(p.page, p.table, p.opts.Timeouts)
	ex := extract.New(p.table, p.opts.ExtractionTimeout)

	root, err := nav.Open(ctx, pageURL)
	if err != nil {
		p.capture(nil, "navigation", err)
		return result, err
	}
	frame, err := nav.LocateFixtureFrame(ctx, root)
	if err != nil {
		p.capture(nil, "fixture-frame", err)
		return result, err
	}
	if err := nav.WaitForFixtureList(ctx, frame); err != nil {
		var noFixtures *scraper.NoFixturesError
		if errors.As(err, &noFixtures) {
			p.snapshot(frame, navigator.FixtureListFile)
		} else {
			p.capture(frame, "fixture-open", err)
		}
		return result, err
	}
	p.snapshot(frame, navigator.FixtureListFile)
	if err := nav.ClickFirstFixture(ctx, frame); err != nil {
		p.capture(frame, "fixture-open", err)
		return result, err
	}
	p.snapshot(frame, navigator.SnapshotFile(scraper.TeamSheet))

	available, err := nav.AvailableTabs(frame)
	if err != nil {
		return result, err
	}
	log.Printf("🗂️ Fixture shows %d tabs", len(available))

	asm := NewAssembler()
	for _, tab := range extraTabs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		outcome := p.visit(ctx, nav, ex, frame, tab, available, asm)
		result.Tabs = append(result.Tabs, outcome)
		switch outcome.Status {
		case StatusAttached:
			log.Printf("✅ %s attached", tab)
		case StatusSkipped:
			log.Printf("ℹ️ %s tab not rendered, skipping", tab)
		case StatusFailed:
			log.Printf("⚠️ %s tab failed: %v", tab, outcome.Err)
		}
	}

	// Without the Action Log tab the header still has to come from somewhere.
	if !asm.HasHeader() {
		_, current := nav.State()
		header, err := ex.Header(ctx, frame, current)
		if err != nil {
			log.Printf("⚠️ Could not read match header: %v", err)
		} else {
			asm.SetHeader(header)
		}
	}

	result.Summary = asm.Summary()
	return result, nil
}

func (p *Pipeline) visit(ctx context.Context, nav *navigator.Navigator, ex *extract.Extractor, frame browser.Frame, tab scraper.Tab, available []scraper.Tab, asm *Assembler) TabOutcome {
	if !contains(available, tab) {
		return TabOutcome{Tab: tab, Status: StatusSkipped}
	}
	if err := nav.SelectTab(ctx, frame, tab); err != nil {
		if errors.Is(err, scraper.ErrTabUnavailable) {
			return TabOutcome{Tab: tab, Status: StatusSkipped}
		}
		p.capture(frame, tab.Slug(), err)
		return TabOutcome{Tab: tab, Status: StatusFailed, Err: err}
	}
	p.snapshot(frame, navigator.SnapshotFile(tab))

	var err error
	switch tab {
	case scraper.ActionLog:
		var summary *models.MatchSummary
		if summary, err = ex.Summary(ctx, frame); err == nil {
			asm.AttachSummary(summary)
		}
	case scraper.ScoreBreakdown:
		var rows []models.PeriodScore
		if rows, err = ex.ScoreBreakdown(ctx, frame); err == nil {
			asm.AttachScoreBreakdown(rows)
		}
	case scraper.Statistics:
		var stats *models.Statistics
		if stats, err = ex.Statistics(ctx, frame); err == nil {
			asm.AttachStatistics(stats)
		}
	default:
		err = fmt.Errorf("no extractor for %s tab", tab)
	}
	if err != nil {
		p.capture(frame, tab.Slug(), err)
		return TabOutcome{Tab: tab, Status: StatusFailed, Err: err}
	}
	return TabOutcome{Tab: tab, Status: StatusAttached}
}

func (p *Pipeline) snapshot(frame browser.Frame, file string) {
	if p.diag != nil && p.opts.RecordSnapshots {
		p.diag.Snapshot(frame, file)
	}
}

func (p *Pipeline) capture(frame browser.Frame, name string, cause error) {
	if p.diag != nil {
		p.diag.Capture(p.page, frame, name, cause)
	}
}

func contains(tabs []scraper.Tab, tab scraper.Tab) bool {
	for _, t := range tabs {
		if t == tab {
			return true
		}
	}
	return false
}
