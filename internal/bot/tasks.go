package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-board/internal/checklist"
	"task-board/internal/dates"
	"task-board/internal/model"
	"task-board/internal/service"
)

func (b *Bot) startNewTaskConversation(msg *tgbotapi.Message) error {
	b.log.Info("start new task conversation", "user", msg.From.ID)
	b.setConversation(msg.From.ID, &conversationState{stage: stageTitle})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 New task.\n<b>Step 1:</b> what is it called?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageTitle:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "The title cannot be empty.", cancelKeyboard())
		}
		state.input.Title = text
		state.stage = stageStartDate
		return b.sendWithReplyMarkup(msg.Chat.ID, "<b>Step 2:</b> start date? <code>2025-11-30</code>, <code>today</code> or <code>+2</code>.", startDateKeyboard())
	case stageStartDate:
		date, err := parseDateInput(text, time.Now())
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "I could not read that date. Try <code>2025-11-30</code> or <code>tomorrow</code>.", startDateKeyboard())
		}
		state.input.StartDate = date
		state.stage = stageDuration
		return b.sendWithReplyMarkup(msg.Chat.ID, "<b>Step 3:</b> how many days does it take?", durationKeyboard())
	case stageDuration:
		days, err := parseDuration(text)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, escape(err.Error())+".", durationKeyboard())
		}
		end, err := dates.AddDays(state.input.StartDate, days-1)
		if err != nil {
			b.clearConversation(msg.From.ID)
			return b.replyError(msg.Chat.ID, "create the task", err)
		}
		state.duration = days
		state.input.EndDate = end
		state.stage = stageRecurring
		return b.sendWithReplyMarkup(msg.Chat.ID, "<b>Step 4:</b> does it repeat?", recurringKeyboard())
	case stageRecurring:
		mode, ok := parseRecurring(text)
		if !ok {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Pick one of the buttons.", recurringKeyboard())
		}
		state.input.Recurring = mode
		err := b.finishTaskCreation(ctx, msg.Chat.ID, state.input)
		b.clearConversation(msg.From.ID)
		return err
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "The dialog was reset. Start again with /newtask.")
	}
}

func (b *Bot) finishTaskCreation(ctx context.Context, chatID int64, input service.TaskInput) error {
	task, err := b.svc.Tasks.CreateTask(ctx, input)
	if err != nil {
		return b.replyError(chatID, "save the task", err)
	}
	b.log.Info("task created", "task", task.ID, "recurring", task.Recurring)
	b.board(chatID).Put(*task)
	return b.sendTask(ctx, chatID, *task, "✅ <b>Saved</b>\n")
}

func (b *Bot) handleTask(ctx context.Context, chatID int64, args string) error {
	ref, _ := splitRef(args)
	task, err := b.resolveTask(ctx, chatID, ref)
	if err != nil {
		return b.replyError(chatID, "open the task", err)
	}
	return b.sendTask(ctx, chatID, task, "")
}

func (b *Bot) sendTask(ctx context.Context, chatID int64, task model.Task, prefix string) error {
	palette, err := b.svc.Statuses.Palette(ctx)
	if err != nil {
		return b.replyError(chatID, "load statuses", err)
	}
	return b.sendWithReplyMarkup(chatID, prefix+formatTaskCard(task, palette), taskKeyboard(task))
}

func (b *Bot) handleMove(ctx context.Context, chatID int64, args string) error {
	ref, rest := splitRef(args)
	if rest == "" {
		return b.sendText(chatID, "Usage: <code>/move &lt;id&gt; &lt;date&gt;</code>")
	}
	date, err := parseDateInput(rest, time.Now())
	if err != nil {
		return b.replyError(chatID, "move the task", err)
	}
	task, err := b.resolveTask(ctx, chatID, ref)
	if err != nil {
		return b.replyError(chatID, "move the task", err)
	}

	var moved model.Task
	if board, ok := b.onBoard(chatID, task.ID); ok {
		moved, err = board.Move(task.ID, date)
	} else {
		var stored *model.Task
		if stored, err = b.svc.Tasks.MoveTask(ctx, task.ID, date); err == nil {
			moved = *stored
		}
	}
	if err != nil {
		return b.replyError(chatID, "move the task", err)
	}
	return b.sendText(chatID, fmt.Sprintf("↔️ %s now runs %s → %s.",
		escape(shortTitle(moved.Title, 40)), moved.StartDate, moved.EndDate))
}

func (b *Bot) handleResize(ctx context.Context, chatID int64, args string) error {
	ref, rest := splitRef(args)
	days, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(rest), "d"))
	if err != nil {
		return b.sendText(chatID, "Usage: <code>/resize &lt;id&gt; &lt;days&gt;</code>, where 1 is a single day.")
	}
	task, err := b.resolveTask(ctx, chatID, ref)
	if err != nil {
		return b.replyError(chatID, "resize the task", err)
	}

	// the user counts days inclusively, resize takes the offset of the end date
	offset := days - 1
	var resized model.Task
	if board, ok := b.onBoard(chatID, task.ID); ok {
		resized, err = board.Resize(task.ID, offset)
	} else {
		var stored *model.Task
		if stored, err = b.svc.Tasks.ResizeTask(ctx, task.ID, offset); err == nil {
			resized = *stored
		}
	}
	if err != nil {
		return b.replyError(chatID, "resize the task", err)
	}
	return b.sendText(chatID, fmt.Sprintf("↕️ %s now ends %s.", escape(shortTitle(resized.Title, 40)), resized.EndDate))
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64, args string) error {
	ref, name := splitRef(args)
	task, err := b.resolveTask(ctx, chatID, ref)
	if err != nil {
		return b.replyError(chatID, "change the status", err)
	}
	palette, err := b.svc.Statuses.Palette(ctx)
	if err != nil {
		return b.replyError(chatID, "load statuses", err)
	}

	if name == "" {
		return b.sendWithReplyMarkup(chatID,
			fmt.Sprintf("🎨 Pick a status for <b>%s</b> (now: %s).", escape(shortTitle(task.Title, 40)), escape(task.Status)),
			statusKeyboard(task, palette))
	}
	for _, g := range palette.Groups() {
		for _, st := range g.Statuses {
			if strings.EqualFold(st.Name, name) {
				return b.applyStatus(ctx, chatID, task, st.Name)
			}
		}
	}
	return b.sendText(chatID, fmt.Sprintf("No status called %q. See /statuses.", escape(name)))
}

func (b *Bot) applyStatus(ctx context.Context, chatID int64, task model.Task, status string) error {
	var err error
	if board, ok := b.onBoard(chatID, task.ID); ok {
		_, err = board.SetStatus(task.ID, status)
	} else {
		_, err = b.svc.Tasks.SetStatus(ctx, task.ID, status)
	}
	if err != nil {
		return b.replyError(chatID, "change the status", err)
	}
	return b.sendText(chatID, fmt.Sprintf("🎨 %s → %s", escape(shortTitle(task.Title, 40)), escape(status)))
}

func (b *Bot) handleDuplicate(ctx context.Context, chatID int64, args string) error {
	ref, _ := splitRef(args)
	task, err := b.resolveTask(ctx, chatID, ref)
	if err != nil {
		return b.replyError(chatID, "duplicate the task", err)
	}
	// pending edits of the source are written first so the copy sees them
	b.debounce.Flush()
	clone, err := b.svc.Tasks.DuplicateTask(ctx, task.ID)
	if err != nil {
		return b.replyError(chatID, "duplicate the task", err)
	}
	b.board(chatID).Put(*clone)
	return b.sendTask(ctx, chatID, *clone, "📄 <b>Copied</b>\n")
}

func (b *Bot) handleDelete(ctx context.Context, chatID int64, args string) error {
	ref, _ := splitRef(args)
	task, err := b.resolveTask(ctx, chatID, ref)
	if err != nil {
		return b.replyError(chatID, "delete the task", err)
	}
	return b.askDelete(chatID, task)
}

func (b *Bot) askDelete(chatID int64, task model.Task) error {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", cbDeletePrefix+task.ID),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Keep", cbKeepPrefix+task.ID),
		),
	)
	return b.sendWithReplyMarkup(chatID, fmt.Sprintf("Delete <b>%s</b>?", escape(shortTitle(task.Title, 40))), markup)
}

func (b *Bot) deleteTask(ctx context.Context, chatID int64, id string) error {
	task, err := b.svc.Tasks.GetTask(ctx, id)
	if err != nil {
		return b.replyError(chatID, "delete the task", err)
	}
	b.board(chatID).Remove(id)
	if err := b.svc.Tasks.DeleteTask(ctx, id); err != nil {
		return b.replyError(chatID, "delete the task", err)
	}
	b.log.Info("task deleted", "task", id)
	return b.sendText(chatID, fmt.Sprintf("🗑 %s deleted.", escape(shortTitle(task.Title, 40))))
}

func (b *Bot) handleCheck(ctx context.Context, chatID int64, args string) error {
	ref, rest := splitRef(args)
	key, platform, _ := strings.Cut(rest, " ")
	platform = strings.TrimSpace(platform)
	if key == "" || platform == "" {
		return b.sendText(chatID, "Usage: <code>/check &lt;id&gt; reel|image &lt;platform&gt;</code>")
	}
	task, err := b.resolveTask(ctx, chatID, ref)
	if err != nil {
		return b.replyError(chatID, "update the checklist", err)
	}
	if def, ok := checklist.Lookup(strings.ToLower(key)); ok {
		key = def.Key
		for _, p := range def.Platforms {
			if strings.EqualFold(p, platform) {
				platform = p
			}
		}
	}
	return b.toggleChecklist(ctx, chatID, task.ID, key, platform)
}

func (b *Bot) toggleChecklist(ctx context.Context, chatID int64, id, key, platform string) error {
	b.debounce.Flush()
	task, err := b.svc.Tasks.ToggleChecklist(ctx, id, key, platform)
	switch {
	case errors.Is(err, service.ErrNotChecklist):
		return b.sendText(chatID, "That task has no checklist.")
	case errors.Is(err, checklist.ErrUnknownChecklist), errors.Is(err, checklist.ErrUnknownPlatform):
		return b.sendText(chatID, escape(err.Error()))
	case err != nil:
		return b.replyError(chatID, "update the checklist", err)
	}
	b.board(chatID).Put(*task)
	return b.sendTask(ctx, chatID, *task, "")
}

func (b *Bot) handleStatuses(ctx context.Context, chatID int64) error {
	palette, err := b.svc.Statuses.Palette(ctx)
	if err != nil {
		return b.replyError(chatID, "load statuses", err)
	}
	return b.sendText(chatID, formatStatuses(palette))
}

// onBoard returns the chat's board when it holds the task.
func (b *Bot) onBoard(chatID int64, id string) (*service.Board, bool) {
	board := b.board(chatID)
	_, ok := board.Task(id)
	return board, ok
}

func taskKeyboard(task model.Task) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if task.Type == model.TypeChecklist {
		state := checklist.Parse(task.DescriptionText())
		for _, def := range checklist.Definitions {
			var row []tgbotapi.InlineKeyboardButton
			for i, p := range def.Platforms {
				label := p
				if state.Checked(def.Key, p) {
					label = "✅ " + p
				}
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, checkData(task.ShortID(), def.Key, i)))
				if len(row) == 3 {
					rows = append(rows, row)
					row = nil
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🎨 Status", cbStatusPrefix+task.ShortID()),
		tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", cbAskDeletePrefix+task.ShortID()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func statusKeyboard(task model.Task, palette service.Palette) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, g := range palette.Groups() {
		var row []tgbotapi.InlineKeyboardButton
		for _, st := range g.Statuses {
			label := categoryIcon(g.Category) + " " + shortTitle(st.Name, 22)
			if st.Name == task.Status {
				label = "• " + label
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, statusData(task.ShortID(), st.ID)))
			if len(row) == 2 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(model.DefaultStatus, statusData(task.ShortID(), 0)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
