package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "AQUABOT"

type Config struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Send     SendConfig     `mapstructure:"send"`
	Sensor   SensorConfig   `mapstructure:"sensor"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type BotConfig struct {
	LogLevel         string        `mapstructure:"log_level"          validate:"oneof=debug info warn error"`
	PrettyLogs       bool          `mapstructure:"pretty_logs"`
	PollInterval     time.Duration `mapstructure:"poll_interval"      validate:"min=100ms,max=1h"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"    validate:"min=1s,max=5m"`
	SkipStaleUpdates bool          `mapstructure:"skip_stale_updates"`
	ReadyMessage     string        `mapstructure:"ready_message"`
}

type TelegramConfig struct {
	BotToken           string `mapstructure:"bot_token"            validate:"required"`
	OperatorChatID     string `mapstructure:"operator_chat_id"     validate:"omitempty,numeric"`
	APIBaseURL         string `mapstructure:"api_base_url"         validate:"required,url"`
	CAFile             string `mapstructure:"ca_file"              validate:"omitempty,file"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

type SendConfig struct {
	MaxRetries uint64        `mapstructure:"max_retries" validate:"max=10"`
	Backoff    time.Duration `mapstructure:"backoff"     validate:"min=0,max=1m"`
}

type SensorConfig struct {
	Interval        time.Duration `mapstructure:"interval"         validate:"min=100ms,max=1h"`
	TemperaturePath string        `mapstructure:"temperature_path"`
	LevelPath       string        `mapstructure:"level_path"`
	LevelMaxRaw     float64       `mapstructure:"level_max_raw"    validate:"gt=0"`
}

type MetricsConfig struct {
	ListenAddress string `mapstructure:"listen_address" validate:"omitempty,hostname_port"`
}

// Load reads config.toml from path, or from the working directory when path is empty.
// Every key can be overridden from the environment, e.g. AQUABOT_TELEGRAM_BOT_TOKEN.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		log.Info().Msg("no config file found, using defaults and environment")
	case err != nil:
		return nil, fmt.Errorf("could not read config file: %w", err)
	default:
		log.Info().Str("file", v.ConfigFileUsed()).Msg("read config file")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.pretty_logs", false)
	v.SetDefault("bot.poll_interval", 2*time.Second)
	v.SetDefault("bot.request_timeout", 10*time.Second)
	v.SetDefault("bot.skip_stale_updates", true)
	v.SetDefault("bot.ready_message", "Aquarium controller is online. Send /help for commands.")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.operator_chat_id", "")
	v.SetDefault("telegram.api_base_url", "https://api.telegram.org")
	v.SetDefault("telegram.ca_file", "")
	v.SetDefault("telegram.insecure_skip_verify", false)

	v.SetDefault("send.max_retries", 2)
	v.SetDefault("send.backoff", 500*time.Millisecond)

	v.SetDefault("sensor.interval", 3*time.Second)
	v.SetDefault("sensor.temperature_path", "")
	v.SetDefault("sensor.level_path", "")
	v.SetDefault("sensor.level_max_raw", 4095)

	v.SetDefault("metrics.listen_address", "")
}

// Level falls back to info for anything zerolog does not know.
func (b BotConfig) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(b.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return level
}
