package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-board/internal/app"
	"task-board/internal/bot"
	"task-board/internal/config"
	"task-board/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		app.NewLogger("INFO").Error("config", "error", err)
		os.Exit(1)
	}
	log := app.NewLogger(cfg.LogLevel)

	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Error("open store", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	telegramBot, err := bot.New(cfg.TelegramToken, bot.Services{
		Tasks:      a.Tasks,
		Recurrence: a.Recurrence,
		Statuses:   a.Statuses,
		Digest:     a.Digest,
		Board:      a.BoardOptions(),
	}, log)
	if err != nil {
		log.Error("bot", "error", err)
		os.Exit(1)
	}

	if cfg.Digest.Enabled() {
		weekday, _ := cfg.Digest.ParseWeekday()
		scheduler := service.NewSchedulerService(time.Local)
		id, err := scheduler.ScheduleWeekly(weekday, cfg.Digest.Time, func() {
			jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := telegramBot.SendWeeklyDigest(jobCtx, cfg.Digest.OwnerChatID); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("weekly digest", "error", err)
			}
		})
		if err != nil {
			log.Error("schedule digest", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Info("weekly digest scheduled", "chat", cfg.Digest.OwnerChatID, "next", scheduler.Next(id))
	}

	log.Info("task board bot started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
