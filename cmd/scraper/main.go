package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"go-fixture-summary/internal/config"
	"go-fixture-summary/internal/runner"
	"go-fixture-summary/internal/scraper"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config")
	snapshotDir := flag.String("snapshot", "", "replay saved tab snapshots from this directory instead of launching a browser")
	flag.Parse()

	//load config
	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Printf("🔧 Config loaded. Schedule: %s", cfg.ScheduleURL)

	table, err := runner.LoadSelectors(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to load selectors: %v", err)
	}
	log.Printf("🧭 Selector table %s", table.Version)

	//setup context with timeout = 5 mins
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("🚀 Starting fixture summary scraper...")

	r, cleanup := runner.FromConfig(ctx, cfg, table, runner.NewLauncher(cfg, table, *snapshotDir))
	defer cleanup()

	report, err := r.Run(ctx)
	if err != nil {
		var noFixtures *scraper.NoFixturesError
		if errors.As(err, &noFixtures) {
			log.Println("🏁 Nothing to summarize.")
			return
		}
		log.Printf("❌ Run failed: %v", err)
		log.Printf("   Diagnostics in %s", report.Diagnostics)
		cleanup()
		cancel()
		log.Fatal("🛑 Aborted.")
	}

	for _, tab := range report.Tabs {
		if tab.Err != nil {
			log.Printf("   %s: %s (%v)", tab.Tab, tab.Status, tab.Err)
		} else {
			log.Printf("   %s: %s", tab.Tab, tab.Status)
		}
	}
	if report.Narrative != "" {
		log.Printf("Game summary from LLM: %s", report.Narrative)
	}
	log.Println("🏁 Execution finished.")
}
