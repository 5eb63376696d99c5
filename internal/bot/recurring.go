package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-board/internal/dates"
	"task-board/internal/model"
	"task-board/internal/recurrence"
)

func (b *Bot) handleRecurring(ctx context.Context, chatID int64, args string) error {
	var mode model.Recurring
	switch strings.ToLower(strings.TrimSpace(args)) {
	case "weekly", "week":
		mode = model.RecurringWeekly
	case "daily", "day":
		mode = model.RecurringDaily
	default:
		markup := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(btnWeekly, cbProposePrefix+string(model.RecurringWeekly)),
				tgbotapi.NewInlineKeyboardButtonData(btnDaily, cbProposePrefix+string(model.RecurringDaily)),
			),
		)
		return b.sendWithReplyMarkup(chatID, "♻️ Which recurring tasks should I copy into the shown week?", markup)
	}

	board, err := b.loadedBoard(ctx, chatID)
	if err != nil {
		return b.replyError(chatID, "load the week", err)
	}
	return b.propose(ctx, chatID, board.Week(), mode)
}

func (b *Bot) propose(ctx context.Context, chatID int64, week dates.Week, mode model.Recurring) error {
	// proposals read the store, so pending board edits go first
	b.debounce.Flush()
	tasks, err := b.svc.Recurrence.Propose(ctx, week, mode)
	if err != nil {
		return b.replyError(chatID, "propose recurring tasks", err)
	}
	return b.sendProposal(chatID, week, mode, tasks)
}

func (b *Bot) sendProposal(chatID int64, week dates.Week, mode model.Recurring, tasks []model.Task) error {
	text := formatProposal(mode, week, tasks)
	if len(tasks) == 0 {
		return b.sendText(chatID, text)
	}
	b.setProposal(proposalKey{chatID: chatID, mode: mode, week: week.Start}, tasks)
	return b.sendWithReplyMarkup(chatID, text, proposalKeyboard(mode, week))
}

func (b *Bot) confirmProposal(ctx context.Context, chatID int64, mode model.Recurring, week dates.Week) error {
	tasks, ok := b.takeProposal(proposalKey{chatID: chatID, mode: mode, week: week.Start})
	if !ok {
		return b.sendText(chatID, "That proposal has expired. Ask again with /recurring.")
	}
	created, err := b.svc.Recurrence.Materialize(ctx, tasks)
	if errors.Is(err, recurrence.ErrNoTasks) {
		return b.sendText(chatID, "Nothing to add.")
	}
	if err != nil {
		return b.replyError(chatID, "add recurring tasks", err)
	}
	b.log.Info("recurring tasks materialized", "chat", chatID, "mode", mode, "week", week.Start, "count", len(created))

	board := b.board(chatID)
	if board.Week().Start == week.Start {
		if err := board.Refresh(ctx); err != nil {
			return b.replyError(chatID, "reload the week", err)
		}
	}
	return b.sendText(chatID, fmt.Sprintf("✅ Added %d %s task(s) to %s.", len(created), mode, escape(week.Label())))
}

// SendWeeklyDigest sends the summary of the current week to chatID and
// offers the pending recurring proposals for confirmation.
func (b *Bot) SendWeeklyDigest(ctx context.Context, chatID int64) error {
	b.debounce.Flush()
	week := dates.WeekOf(time.Now())
	digest, err := b.svc.Digest.WeeklyDigest(ctx, week)
	if err != nil {
		return fmt.Errorf("build digest: %w", err)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range []struct {
		mode  model.Recurring
		tasks []model.Task
	}{
		{model.RecurringWeekly, digest.Weekly},
		{model.RecurringDaily, digest.Daily},
	} {
		if len(p.tasks) == 0 {
			continue
		}
		b.setProposal(proposalKey{chatID: chatID, mode: p.mode, week: week.Start}, p.tasks)
		rows = append(rows, proposalKeyboard(p.mode, week).InlineKeyboard...)
	}

	if len(rows) == 0 {
		if err := b.sendText(chatID, digest.Text); err != nil {
			return fmt.Errorf("send digest: %w", err)
		}
		return nil
	}
	if err := b.sendWithReplyMarkup(chatID, digest.Text, tgbotapi.NewInlineKeyboardMarkup(rows...)); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}

func proposalKeyboard(mode model.Recurring, week dates.Week) tgbotapi.InlineKeyboardMarkup {
	payload := string(mode) + ":" + week.Start
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnConfirm+" ("+string(mode)+")", cbConfirmPrefix+payload),
			tgbotapi.NewInlineKeyboardButtonData(btnCancel, cbCancelPrefix+payload),
		),
	)
}

// parseProposalPayload reads "mode:YYYY-MM-DD".
func parseProposalPayload(payload string) (model.Recurring, dates.Week, error) {
	mode, start, ok := strings.Cut(payload, ":")
	if !ok {
		return "", dates.Week{}, fmt.Errorf("malformed proposal payload %q", payload)
	}
	week, err := dates.WeekOfString(start)
	if err != nil {
		return "", dates.Week{}, err
	}
	return model.Recurring(mode), week, nil
}
