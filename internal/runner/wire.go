package runner

import (
	"context"
	"log"

	"go-fixture-summary/internal/ai"
	"go-fixture-summary/internal/browser"
	"go-fixture-summary/internal/config"
	"go-fixture-summary/internal/database"
	"go-fixture-summary/internal/dedup"
	"go-fixture-summary/internal/selectors"
	"go-fixture-summary/internal/telegram"
)

// LoadSelectors returns the configured selector table, or the built-in one.
func LoadSelectors(cfg *config.Config) (*selectors.Table, error) {
	if cfg.SelectorsPath == "" {
		return selectors.Default(), nil
	}
	return selectors.Load(cfg.SelectorsPath)
}

// NewLauncher replays snapshotDir when set, otherwise drives Chromium.
func NewLauncher(cfg *config.Config, table *selectors.Table, snapshotDir string) Launcher {
	if snapshotDir != "" {
		return NewReplayLauncher(snapshotDir, cfg.ScheduleURL, table)
	}
	return NewPlaywrightLauncher(browser.Options{
		Headless:  !cfg.Headed,
		UserAgent: cfg.UserAgent,
		SlowMo:    cfg.SlowMo,
	})
}

// FromConfig builds a runner with every optional step the configuration
// enables. An adapter that fails to start is logged and left out. The
// returned func releases the database pool.
func FromConfig(ctx context.Context, cfg *config.Config, table *selectors.Table, launcher Launcher) (*Runner, func()) {
	r := New(cfg, table, launcher)
	cleanup := func() {}

	if cfg.LLM.Enabled() {
		r.AI = ai.NewOpenAIClient(cfg.LLM.APIKey, ai.Options{
			Endpoint:    cfg.LLM.Endpoint,
			Model:       cfg.LLM.Model,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temp(),
		})
		log.Printf("🧠 LLM summary enabled (%s)", cfg.LLM.Model)
	} else {
		log.Println("ℹ️ OPENAI_API_KEY not set, skipping LLM summary.")
	}

	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram Bot: %v", err)
		} else {
			r.Notifier = bot
			r.Cache = dedup.NewMatchCache(cfg.CachePath)
			log.Println("🤖 Telegram Bot initialized.")
		}
	}

	if cfg.DatabaseURL != "" {
		repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ Database disabled: %v", err)
		} else if err := repo.EnsureSchema(ctx); err != nil {
			log.Printf("⚠️ Database disabled: %v", err)
			repo.Close()
		} else {
			r.Store = repo
			cleanup = repo.Close
			log.Println("🗄️ Database connected.")
		}
	}

	return r, cleanup
}
