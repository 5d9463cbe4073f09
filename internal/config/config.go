// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-fixture-summary/internal/pipeline"
	"go-fixture-summary/internal/scraper/navigator"
)

const DefaultPath = "configs/config.yaml"

type Timeouts struct {
	Navigation  time.Duration `yaml:"navigation"`
	Frame       time.Duration `yaml:"frame"`
	FixtureList time.Duration `yaml:"fixture_list"`
	Detail      time.Duration `yaml:"detail"`
	Tab         time.Duration `yaml:"tab"`
	Extraction  time.Duration `yaml:"extraction"`
	Settle      time.Duration `yaml:"settle"`
	SettleCap   time.Duration `yaml:"settle_cap"`
}

type LLM struct {
	APIKey    string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	// nil when the key is absent, so an explicit 0 survives defaults
	Temperature *float64 `yaml:"temperature"`
}

// Temp returns the sampling temperature, 0.7 when none was configured.
func (l LLM) Temp() float64 {
	if l.Temperature == nil {
		return 0.7
	}
	return *l.Temperature
}

// Enabled reports whether a narrative summary can be requested.
func (l LLM) Enabled() bool { return l.APIKey != "" }

type Config struct {
	ScheduleURL string `yaml:"schedule_url" env:"SCHEDULE_URL"`
	//Browser
	Headed    bool          `yaml:"headed"`
	UserAgent string        `yaml:"user_agent"`
	SlowMo    time.Duration `yaml:"slow_mo"`
	Timeouts  Timeouts      `yaml:"timeouts"`
	//Selectors
	SelectorsPath string `yaml:"selectors_path" env:"SELECTORS_PATH"`
	//Artifacts
	OutputDir       string `yaml:"output_dir" env:"OUTPUT_DIR"`
	DiagnosticsDir  string `yaml:"diagnostics_dir"`
	RecordSnapshots bool   `yaml:"record_snapshots"`
	ReportPDF       bool   `yaml:"report_pdf"`
	CachePath       string `yaml:"cache_path"`
	//Adapters
	LLM            LLM    `yaml:"llm"`
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	ServerAddr     string `yaml:"server_addr" env:"PORT"`
}

// TelegramEnabled reports whether both bot credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func (c *Config) NavigatorTimeouts() navigator.Timeouts {
	return navigator.Timeouts{
		Navigation:  c.Timeouts.Navigation,
		Frame:       c.Timeouts.Frame,
		FixtureList: c.Timeouts.FixtureList,
		Detail:      c.Timeouts.Detail,
		Tab:         c.Timeouts.Tab,
		Settle:      c.Timeouts.Settle,
		SettleCap:   c.Timeouts.SettleCap,
	}
}

func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Timeouts:          c.NavigatorTimeouts(),
		ExtractionTimeout: c.Timeouts.Extraction,
		RecordSnapshots:   c.RecordSnapshots,
	}
}

// Load reads DefaultPath and exits on an invalid configuration.
func Load() *Config {
	cfg, err := LoadFrom(DefaultPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return cfg
}

// LoadFrom reads the YAML file at path, applies environment overrides and
// fills in defaults. A missing file only logs a warning.
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	overrides := map[string]*string{
		"SCHEDULE_URL":       &c.ScheduleURL,
		"OPENAI_API_KEY":     &c.LLM.APIKey,
		"TELEGRAM_BOT_TOKEN": &c.TelegramToken,
		"DATABASE_URL":       &c.DatabaseURL,
		"SELECTORS_PATH":     &c.SelectorsPath,
		"OUTPUT_DIR":         &c.OutputDir,
	}
	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		c.ServerAddr = ":" + port
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	setDuration(&c.Timeouts.Navigation, 30*time.Second)
	setDuration(&c.Timeouts.Frame, 10*time.Second)
	setDuration(&c.Timeouts.FixtureList, 15*time.Second)
	setDuration(&c.Timeouts.Detail, 15*time.Second)
	setDuration(&c.Timeouts.Tab, 10*time.Second)
	setDuration(&c.Timeouts.Extraction, 10*time.Second)
	setDuration(&c.Timeouts.Settle, 2*time.Second)
	setDuration(&c.Timeouts.SettleCap, 5*time.Second)

	setString(&c.OutputDir, ".")
	setString(&c.DiagnosticsDir, "diagnostics")
	setString(&c.CachePath, ".cache")
	setString(&c.ServerAddr, ":8080")

	setString(&c.LLM.Endpoint, "https://api.openai.com/v1/chat/completions")
	setString(&c.LLM.Model, "gpt-4o-mini")
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.Temperature == nil {
		t := 0.7
		c.LLM.Temperature = &t
	}
}

func (c *Config) Validate() error {
	//Validate required fields
	if c.ScheduleURL == "" {
		return fmt.Errorf("schedule_url (or SCHEDULE_URL) is required")
	}
	if c.Timeouts.Settle > c.Timeouts.SettleCap {
		return fmt.Errorf("settle delay %s exceeds its cap %s", c.Timeouts.Settle, c.Timeouts.SettleCap)
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

func setDuration(d *time.Duration, fallback time.Duration) {
	if *d <= 0 {
		*d = fallback
	}
}

func setString(s *string, fallback string) {
	if *s == "" {
		*s = fallback
	}
}
