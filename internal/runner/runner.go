// Package runner wires one scrape run end to end: page, pipeline, artifacts
// and the optional narrative, notification, storage and PDF steps.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"go-fixture-summary/internal/ai"
	"go-fixture-summary/internal/config"
	"go-fixture-summary/internal/dedup"
	"go-fixture-summary/internal/models"
	"go-fixture-summary/internal/pdf"
	"go-fixture-summary/internal/pipeline"
	"go-fixture-summary/internal/reporter"
	"go-fixture-summary/internal/scraper"
	"go-fixture-summary/internal/selectors"
	"go-fixture-summary/utils"
)

const PDFFile = "game-summary.pdf"

// Notifier pushes run results to a chat.
type Notifier interface {
	SendSummary(summary *models.MatchSummary, narrative string) error
	SendError(err error) error
	SendStatus(message string) error
}

// Store persists summaries.
type Store interface {
	SaveSummary(ctx context.Context, runID, selectorVersion string, summary *models.MatchSummary, narrative string) error
}

type browserProvider interface {
	Browser() playwright.Browser
}

// Runner holds the collaborators of a run. Only the launcher is required.
type Runner struct {
	cfg      *config.Config
	table    *selectors.Table
	launcher Launcher
	files    *reporter.FileReporter

	AI       ai.Client
	Notifier Notifier
	Cache    *dedup.MatchCache
	Store    Store
}

type Report struct {
	*pipeline.Result
	SummaryPath   string
	NarrativePath string
	Narrative     string
	PDFPath       string
	Diagnostics   string
}

func New(cfg *config.Config, table *selectors.Table, launcher Launcher) *Runner {
	return &Runner{
		cfg:      cfg,
		table:    table,
		launcher: launcher,
		files:    reporter.NewFileReporter(cfg.OutputDir),
	}
}

// Run scrapes the first fixture of the configured schedule. A
// NoFixturesError is returned as is so callers can exit cleanly.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	diag := utils.NewScreenShotDebugger(r.cfg.DiagnosticsDir, runID)
	report := &Report{Diagnostics: diag.Dir()}

	page, err := r.launcher.Launch(ctx)
	if err != nil {
		r.notifyError(err)
		return report, fmt.Errorf("failed to open page: %w", err)
	}
	defer r.launcher.Close()

	opts := r.cfg.PipelineOptions()
	opts.RunID = runID
	result, err := pipeline.New(page, r.table, opts, diag).Run(ctx, r.cfg.ScheduleURL)
	report.Result = result
	if err != nil {
		var noFixtures *scraper.NoFixturesError
		if errors.As(err, &noFixtures) {
			log.Println("ℹ️ No fixtures found on the schedule.")
			r.notifyStatus("No fixtures found on the schedule.")
			return report, err
		}
		r.notifyError(err)
		return report, err
	}
	summary := result.Summary

	if report.SummaryPath, err = r.files.WriteSummary(summary); err != nil {
		return report, err
	}

	if r.AI != nil {
		text, err := r.AI.SummarizeMatch(ctx, summary)
		if err != nil {
			log.Printf("⚠️ Error calling LLM: %v", err)
		} else {
			report.Narrative = text
			if report.NarrativePath, err = r.files.WriteNarrative(text); err != nil {
				log.Printf("⚠️ %v", err)
			}
		}
	}

	if r.Store != nil {
		if err := r.Store.SaveSummary(ctx, result.RunID, result.SelectorVersion, summary, report.Narrative); err != nil {
			log.Printf("⚠️ Failed to store summary: %v", err)
		} else {
			log.Println("🗄️ Summary stored.")
		}
	}

	if r.cfg.ReportPDF {
		report.PDFPath = r.renderPDF(summary, report.Narrative)
	}

	r.notifySummary(summary, report.Narrative)

	log.Printf("🏁 Run %s finished in %s", result.RunID, result.Duration.Round(time.Millisecond))
	return report, nil
}

func (r *Runner) renderPDF(summary *models.MatchSummary, narrative string) string {
	provider, ok := r.launcher.(browserProvider)
	if !ok || provider.Browser() == nil {
		log.Println("ℹ️ PDF report needs a live browser, skipping.")
		return ""
	}
	gen, err := pdf.NewGenerator(provider.Browser())
	if err != nil {
		log.Printf("⚠️ %v", err)
		return ""
	}
	data, err := gen.Generate(summary, narrative)
	if err != nil {
		log.Printf("⚠️ Failed to render PDF: %v", err)
		return ""
	}
	path := filepath.Join(r.cfg.OutputDir, PDFFile)
	if err := pdf.SaveToFile(data, path); err != nil {
		log.Printf("⚠️ Failed to save PDF: %v", err)
		return ""
	}
	log.Printf("📄 PDF report saved to %s", path)
	return path
}

// notifySummary sends each match once; matches without an id are always sent.
func (r *Runner) notifySummary(summary *models.MatchSummary, narrative string) {
	if r.Notifier == nil {
		return
	}
	matchID := models.Deref(summary.MatchID, "")
	if matchID != "" && r.Cache != nil && r.Cache.IsSeen(matchID) {
		log.Printf("🔍 Match %s already reported, not notifying", matchID)
		return
	}
	if err := r.Notifier.SendSummary(summary, narrative); err != nil {
		log.Printf("⚠️ Failed to send summary to Telegram: %v", err)
		return
	}
	if matchID != "" && r.Cache != nil {
		r.Cache.Add(matchID)
	}
}

func (r *Runner) notifyError(err error) {
	if r.Notifier == nil {
		return
	}
	if sendErr := r.Notifier.SendError(err); sendErr != nil {
		log.Printf("⚠️ Failed to send error to Telegram: %v", sendErr)
	}
}

func (r *Runner) notifyStatus(message string) {
	if r.Notifier == nil {
		return
	}
	if err := r.Notifier.SendStatus(message); err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}
