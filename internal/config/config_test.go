package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	t.Setenv("TELEGRAM_TOKEN", " token ")

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.TelegramToken, "token")
	is.Equal(cfg.DatabaseURL, "task_board.db")
	is.Equal(cfg.LogLevel, "INFO")
	is.True(cfg.SeedDefaults)
	is.Equal(cfg.Board.MoveDebounce, 500*time.Millisecond)
	is.Equal(cfg.Board.StatusDebounce, 300*time.Millisecond)
	is.Equal(cfg.Recurrence.LookbackWeeks, 4)
	is.True(!cfg.Digest.Enabled())

	wd, err := cfg.Digest.ParseWeekday()
	is.NoErr(err)
	is.Equal(wd, time.Monday)
	h, m, err := cfg.Digest.Clock()
	is.NoErr(err)
	is.Equal(h, 8)
	is.Equal(m, 0)
}

func TestLoadRequiresToken(t *testing.T) {
	is := is.New(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	is.True(err != nil)

	_, err = LoadCLI()
	is.NoErr(err)
}

func TestLoadOverrides(t *testing.T) {
	is := is.New(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OWNER_CHAT_ID", "42")
	t.Setenv("DIGEST_WEEKDAY", "Sun")
	t.Setenv("DIGEST_TIME", "21:30")
	t.Setenv("MOVE_DEBOUNCE", "1s")

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.LogLevel, "DEBUG")
	is.True(cfg.Digest.Enabled())
	is.Equal(cfg.Board.MoveDebounce, time.Second)

	wd, err := cfg.Digest.ParseWeekday()
	is.NoErr(err)
	is.Equal(wd, time.Sunday)
	h, m, err := cfg.Digest.Clock()
	is.NoErr(err)
	is.Equal(h, 21)
	is.Equal(m, 30)
}

func TestLoadRejectsBadDigest(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"weekday", "DIGEST_WEEKDAY", "someday"},
		{"time", "DIGEST_TIME", "25:00"},
		{"lookback", "RECURRENCE_LOOKBACK_WEEKS", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			t.Setenv(tt.key, tt.value)
			_, err := LoadCLI()
			is.True(err != nil)
		})
	}
}
