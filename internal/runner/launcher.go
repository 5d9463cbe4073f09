package runner

import (
	"context"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"go-fixture-summary/internal/browser"
	"go-fixture-summary/internal/scraper/navigator"
	"go-fixture-summary/internal/selectors"
)

// Launcher provides the page a run drives.
type Launcher interface {
	Launch(ctx context.Context) (browser.Page, error)
	Close() error
}

// PlaywrightLauncher starts Chromium for every run.
type PlaywrightLauncher struct {
	opts    browser.Options
	manager *browser.PlaywrightManager
}

func NewPlaywrightLauncher(opts browser.Options) *PlaywrightLauncher {
	return &PlaywrightLauncher{opts: opts}
}

func (l *PlaywrightLauncher) Launch(ctx context.Context) (browser.Page, error) {
	manager, err := browser.NewPlaywright(ctx, l.opts)
	if err != nil {
		return nil, err
	}
	page, err := manager.NewPage(l.opts.UserAgent)
	if err != nil {
		manager.Close()
		return nil, err
	}
	l.manager = manager
	log.Println("✅ Browser initialized successfully!")
	return page, nil
}

// Browser returns the running browser, or nil before Launch.
func (l *PlaywrightLauncher) Browser() playwright.Browser {
	if l.manager == nil {
		return nil
	}
	return l.manager.Browser()
}

func (l *PlaywrightLauncher) Close() error {
	if l.manager == nil {
		return nil
	}
	err := l.manager.Close()
	l.manager = nil
	return err
}

// ReplayLauncher serves views recorded by an earlier run instead of a browser.
type ReplayLauncher struct {
	dir      string
	frameURL string
	table    *selectors.Table
}

func NewReplayLauncher(dir, frameURL string, table *selectors.Table) *ReplayLauncher {
	return &ReplayLauncher{dir: dir, frameURL: frameURL, table: table}
}

func (l *ReplayLauncher) Launch(ctx context.Context) (browser.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	frame, err := navigator.LoadReplay(l.dir, l.frameURL, l.table)
	if err != nil {
		return nil, fmt.Errorf("could not load snapshots from %s: %w", l.dir, err)
	}
	log.Printf("📼 Replaying snapshots from %s", l.dir)
	return browser.NewSnapshotPage(frame), nil
}

func (l *ReplayLauncher) Close() error { return nil }
