package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[bot]
log_level = "debug"
poll_interval = "1s"
ready_message = "ready"

[telegram]
bot_token = "123:abc"
operator_chat_id = "-100777"

[send]
max_retries = 4
backoff = "250ms"

[sensor]
interval = "5s"
temperature_path = "/sys/bus/w1/devices/28-000005e2fdc3/w1_slave"
level_max_raw = 1023

[metrics]
listen_address = ":9100"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Bot.LogLevel)
	assert.Equal(t, time.Second, cfg.Bot.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.Bot.RequestTimeout)
	assert.True(t, cfg.Bot.SkipStaleUpdates)
	assert.Equal(t, "ready", cfg.Bot.ReadyMessage)
	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Equal(t, "-100777", cfg.Telegram.OperatorChatID)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.APIBaseURL)
	assert.Equal(t, uint64(4), cfg.Send.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Send.Backoff)
	assert.Equal(t, 5*time.Second, cfg.Sensor.Interval)
	assert.Equal(t, 1023.0, cfg.Sensor.LevelMaxRaw)
	assert.Empty(t, cfg.Sensor.LevelPath)
	assert.Equal(t, ":9100", cfg.Metrics.ListenAddress)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("AQUABOT_TELEGRAM_BOT_TOKEN", "999:env")
	t.Setenv("AQUABOT_BOT_POLL_INTERVAL", "3s")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "999:env", cfg.Telegram.BotToken)
	assert.Equal(t, 3*time.Second, cfg.Bot.PollInterval)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing token",
			content: "[bot]\nlog_level = \"info\"\n",
		},
		{
			name:    "unknown log level",
			content: "[bot]\nlog_level = \"loud\"\n[telegram]\nbot_token = \"t\"\n",
		},
		{
			name:    "poll interval too short",
			content: "[bot]\npoll_interval = \"1ms\"\n[telegram]\nbot_token = \"t\"\n",
		},
		{
			name:    "operator id not numeric",
			content: "[telegram]\nbot_token = \"t\"\noperator_chat_id = \"@me\"\n",
		},
		{
			name:    "invalid base url",
			content: "[telegram]\nbot_token = \"t\"\napi_base_url = \"not a url\"\n",
		},
		{
			name:    "missing ca file",
			content: "[telegram]\nbot_token = \"t\"\nca_file = \"/does/not/exist.pem\"\n",
		},
		{
			name:    "zero level scale",
			content: "[telegram]\nbot_token = \"t\"\n[sensor]\nlevel_max_raw = 0\n",
		},
		{
			name:    "broken toml",
			content: "[telegram\nbot_token = ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestBotConfig_Level(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{in: "debug", want: zerolog.DebugLevel},
		{in: "warn", want: zerolog.WarnLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "", want: zerolog.InfoLevel},
		{in: "bogus", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BotConfig{LogLevel: tt.in}.Level())
		})
	}
}
