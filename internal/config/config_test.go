package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"SCHEDULE_URL", "OPENAI_API_KEY", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DATABASE_URL", "SELECTORS_PATH", "OUTPUT_DIR", "PORT"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(writeConfig(t, "schedule_url: https://example.test/schedule\n"))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Timeouts.Navigation)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Frame)
	assert.Equal(t, 15*time.Second, cfg.Timeouts.FixtureList)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Tab)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Extraction)
	assert.Equal(t, 2*time.Second, cfg.Timeouts.Settle)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.SettleCap)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, 0.7, cfg.LLM.Temp())
	assert.False(t, cfg.LLM.Enabled())
	assert.False(t, cfg.TelegramEnabled())
	assert.Equal(t, ":8080", cfg.ServerAddr)
}

func TestLoadFromParsesDurations(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(writeConfig(t, `
schedule_url: https://example.test/schedule
timeouts:
  navigation: 45s
  tab: 1500ms
  settle: 500ms
record_snapshots: true
`))
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Timeouts.Navigation)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeouts.Tab)

	opts := cfg.PipelineOptions()
	assert.Equal(t, 1500*time.Millisecond, opts.Timeouts.Tab)
	assert.Equal(t, 500*time.Millisecond, opts.Timeouts.Settle)
	assert.Equal(t, 5*time.Second, opts.Timeouts.SettleCap)
	assert.Equal(t, 10*time.Second, opts.ExtractionTimeout)
	assert.True(t, opts.RecordSnapshots)
}

func TestExplicitZeroTemperatureKept(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(writeConfig(t, "schedule_url: https://example.test/schedule\nllm:\n  temperature: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.LLM.Temperature)
	assert.Equal(t, 0.0, cfg.LLM.Temp())

	cfg, err = LoadFrom(writeConfig(t, "schedule_url: https://example.test/schedule\nllm:\n  temperature: 0.2\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.LLM.Temp())

	assert.Equal(t, 0.7, LLM{}.Temp())
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCHEDULE_URL", "https://override.test/schedule")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("PORT", "9090")

	cfg, err := LoadFrom(writeConfig(t, "schedule_url: https://example.test/schedule\noutput_dir: out\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://override.test/schedule", cfg.ScheduleURL)
	assert.True(t, cfg.LLM.Enabled())
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, int64(-1001), cfg.TelegramChatID)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, ":9090", cfg.ServerAddr)
}

func TestLoadFromErrors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFrom(writeConfig(t, "schedule_url: [unclosed\n"))
	assert.Error(t, err)

	_, err = LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "schedule_url")

	_, err = LoadFrom(writeConfig(t, "schedule_url: https://example.test\ntimeouts:\n  settle: 10s\n"))
	assert.ErrorContains(t, err, "exceeds its cap")

	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	_, err = LoadFrom(writeConfig(t, "schedule_url: https://example.test\n"))
	assert.ErrorContains(t, err, "TELEGRAM_CHAT_ID")

	t.Setenv("TELEGRAM_CHAT_ID", "42")
	_, err = LoadFrom(writeConfig(t, "schedule_url: https://example.test\n"))
	assert.ErrorContains(t, err, "must be set together")
}

func TestShippedConfigLoads(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, "https://www.npsl.com/schedule-2025/", cfg.ScheduleURL)
}
