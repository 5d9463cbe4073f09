package main

import (
	"fmt"

	"go-fixture-summary/internal/config"
	"go-fixture-summary/internal/runner"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Schedule URL: %s\n", cfg.ScheduleURL)
	fmt.Printf("   Timeouts: nav=%s frame=%s list=%s tab=%s extract=%s settle=%s (cap %s)\n",
		cfg.Timeouts.Navigation, cfg.Timeouts.Frame, cfg.Timeouts.FixtureList, cfg.Timeouts.Tab,
		cfg.Timeouts.Extraction, cfg.Timeouts.Settle, cfg.Timeouts.SettleCap)
	fmt.Printf("   Output Dir: %s\n", cfg.OutputDir)
	fmt.Printf("   LLM: enabled=%v model=%s\n", cfg.LLM.Enabled(), cfg.LLM.Model)
	fmt.Printf("   Telegram: enabled=%v\n", cfg.TelegramEnabled())
	fmt.Printf("   Database: configured=%v\n", cfg.DatabaseURL != "")

	table, err := runner.LoadSelectors(cfg)
	if err != nil {
		fmt.Printf("❌ Selector table invalid: %v\n", err)
		return
	}
	fmt.Printf("✅ Selector table %s\n", table.Version)
}
