package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config keeps runtime settings for the bot and the admin CLI.
type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN"`
	DatabaseURL   string `env:"DATABASE_URL" env-default:"task_board.db"`
	LogLevel      string `env:"LOG_LEVEL" env-default:"INFO"`
	SeedDefaults  bool   `env:"SEED_DEFAULTS" env-default:"true"`

	Digest     DigestConfig
	Board      BoardConfig
	Recurrence RecurrenceConfig
}

// DigestConfig schedules the weekly recurrence digest. OwnerChatID 0 disables it.
type DigestConfig struct {
	OwnerChatID int64  `env:"OWNER_CHAT_ID" env-default:"0"`
	Weekday     string `env:"DIGEST_WEEKDAY" env-default:"monday"`
	Time        string `env:"DIGEST_TIME" env-default:"08:00"`
}

type BoardConfig struct {
	MoveDebounce   time.Duration `env:"MOVE_DEBOUNCE" env-default:"500ms"`
	StatusDebounce time.Duration `env:"STATUS_DEBOUNCE" env-default:"300ms"`
}

type RecurrenceConfig struct {
	LookbackWeeks int `env:"RECURRENCE_LOOKBACK_WEEKS" env-default:"4"`
}

// Load reads the bot configuration; the Telegram token is required.
func Load() (Config, error) {
	cfg, err := LoadCLI()
	if err != nil {
		return cfg, err
	}
	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	return cfg, nil
}

// LoadCLI reads the same settings without requiring a token.
func LoadCLI() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	cfg.TelegramToken = strings.TrimSpace(cfg.TelegramToken)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "task_board.db"
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))

	if _, err := cfg.Digest.ParseWeekday(); err != nil {
		return Config{}, err
	}
	if _, _, err := cfg.Digest.Clock(); err != nil {
		return Config{}, err
	}
	if cfg.Board.MoveDebounce < 0 || cfg.Board.StatusDebounce < 0 {
		return Config{}, fmt.Errorf("debounce delays must not be negative")
	}
	if cfg.Recurrence.LookbackWeeks < 0 {
		return Config{}, fmt.Errorf("RECURRENCE_LOOKBACK_WEEKS must not be negative")
	}
	return cfg, nil
}

func (d DigestConfig) Enabled() bool {
	return d.OwnerChatID != 0
}

func (d DigestConfig) ParseWeekday() (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(d.Weekday))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if name == full || name == full[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("DIGEST_WEEKDAY: unknown weekday %q", d.Weekday)
}

// Clock returns the digest time of day as hour and minute.
func (d DigestConfig) Clock() (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(d.Time))
	if err != nil {
		return 0, 0, fmt.Errorf("DIGEST_TIME: invalid HH:MM %q", d.Time)
	}
	return t.Hour(), t.Minute(), nil
}
