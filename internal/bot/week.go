package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-board/internal/dates"
	"task-board/internal/layout"
	"task-board/internal/render"
	"task-board/internal/service"
)

// gridColumnWidth keeps seven columns readable on a phone.
const gridColumnWidth = 6

func (b *Bot) handleWeek(ctx context.Context, chatID int64, args string) error {
	date, err := parseDateInput(args, time.Now())
	if err != nil {
		return b.replyError(chatID, "show week", err)
	}
	week, err := dates.WeekOfString(date)
	if err != nil {
		return b.replyError(chatID, "show week", err)
	}
	board := b.board(chatID)
	if err := board.Load(ctx, week); err != nil {
		return b.replyError(chatID, "load the week", err)
	}
	return b.sendWeek(chatID, board)
}

func (b *Bot) shiftWeek(ctx context.Context, chatID int64, n int) error {
	board, err := b.loadedBoard(ctx, chatID)
	if err != nil {
		return b.replyError(chatID, "load the week", err)
	}
	if err := board.Load(ctx, board.Week().Shift(n)); err != nil {
		return b.replyError(chatID, "load the week", err)
	}
	return b.sendWeek(chatID, board)
}

func (b *Bot) sendWeek(chatID int64, board *service.Board) error {
	week := board.Week()
	tasks := board.Tasks()
	l := board.Layout(layout.DefaultOptions())

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗓 <b>%s</b>\n", escape(week.Label())))
	if len(tasks) == 0 {
		sb.WriteString("\nNo tasks this week. Add one with /newtask.")
	} else {
		grid := render.Grid(l, tasks, render.Options{ColumnWidth: gridColumnWidth})
		sb.WriteString(fmt.Sprintf("<pre>%s</pre>\n", escape(grid)))
		if agenda := render.Agenda(week, tasks); agenda != "" {
			sb.WriteString(fmt.Sprintf("\n%s", escape(agenda)))
		}
		if hidden := len(tasks) - len(l.Placements); hidden > 0 {
			sb.WriteString(fmt.Sprintf("\n\n<i>%d task(s) continue from an earlier week.</i>", hidden))
		}
	}

	return b.sendWithReplyMarkup(chatID, strings.TrimSpace(sb.String()), weekKeyboard(week))
}

func (b *Bot) handleWeekCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	b.ack(cb, "")
	start := strings.TrimPrefix(cb.Data, cbWeekPrefix)
	week, err := dates.WeekOfString(start)
	if err != nil {
		return nil
	}
	chatID := cb.Message.Chat.ID
	board := b.board(chatID)
	if err := board.Load(ctx, week); err != nil {
		return b.replyError(chatID, "load the week", err)
	}
	return b.sendWeek(chatID, board)
}

func weekKeyboard(week dates.Week) tgbotapi.InlineKeyboardMarkup {
	today := dates.WeekOf(time.Now())
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Prev", cbWeekPrefix+week.Prev().Start),
			tgbotapi.NewInlineKeyboardButtonData("Today", cbWeekPrefix+today.Start),
			tgbotapi.NewInlineKeyboardButtonData("Next ▶️", cbWeekPrefix+week.Next().Start),
		),
	)
}
