package main

import (
	"context"
	"fmt"
	"log"

	"go-fixture-summary/internal/browser"
	"go-fixture-summary/internal/config"
	"go-fixture-summary/internal/runner"
	"go-fixture-summary/internal/scraper/navigator"
	"go-fixture-summary/internal/selectors"
)

func main() {
	fmt.Println("🌐 Testing Browser Manager...")

	cfg := config.Load()
	table, err := runner.LoadSelectors(cfg)
	if err != nil {
		log.Fatalf("Failed to load selectors: %v", err)
	}

	ctx := context.Background()

	pm, err := browser.NewPlaywright(ctx, browser.Options{Headless: !cfg.Headed, SlowMo: cfg.SlowMo})
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	fmt.Println("✅ Playwright started")

	page, err := pm.NewPage(cfg.UserAgent)
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}

	nav := navigator.New(page, table, cfg.NavigatorTimeouts())
	fmt.Printf("🔍 Navigating to %s...\n", cfg.ScheduleURL)
	root, err := nav.Open(ctx, cfg.ScheduleURL)
	if err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	frame, err := nav.LocateFixtureFrame(ctx, root)
	if err != nil {
		log.Fatalf("Failed to find the fixture frame: %v", err)
	}
	fmt.Printf("✅ Fixture frame: %s\n", frame.URL())

	count, err := frame.Count(table.Get(selectors.Navigation, selectors.OpenFixture))
	if err != nil {
		log.Printf("Failed to count fixtures: %v", err)
	} else {
		fmt.Printf("✅ %d fixture controls rendered\n", count)
	}

	if err := page.Screenshot("schedule-test.png"); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else {
		fmt.Println("📸 Screenshot saved: schedule-test.png")
	}
	fmt.Println("✨ Test complete!")
}
