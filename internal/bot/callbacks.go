package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-board/internal/checklist"
	"task-board/internal/model"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.Message == nil || cb.Message.Chat == nil {
		b.ack(cb, "")
		return nil
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data
	b.log.Debug("callback", "chat", chatID, "data", data)

	switch {
	case strings.HasPrefix(data, cbWeekPrefix):
		return b.handleWeekCallback(ctx, cb)

	case strings.HasPrefix(data, cbProposePrefix):
		b.ack(cb, "")
		return b.handleRecurring(ctx, chatID, strings.TrimPrefix(data, cbProposePrefix))

	case strings.HasPrefix(data, cbConfirmPrefix):
		mode, week, err := parseProposalPayload(strings.TrimPrefix(data, cbConfirmPrefix))
		if err != nil {
			b.ack(cb, "Unknown proposal")
			return nil
		}
		b.ack(cb, "Adding…")
		return b.confirmProposal(ctx, chatID, mode, week)

	case strings.HasPrefix(data, cbCancelPrefix):
		mode, week, err := parseProposalPayload(strings.TrimPrefix(data, cbCancelPrefix))
		if err == nil {
			b.takeProposal(proposalKey{chatID: chatID, mode: mode, week: week.Start})
		}
		b.ack(cb, "Skipped")
		return b.sendText(chatID, "↩️ Nothing was added.")

	case strings.HasPrefix(data, cbAskDeletePrefix):
		b.ack(cb, "")
		task, err := b.resolveTask(ctx, chatID, strings.TrimPrefix(data, cbAskDeletePrefix))
		if err != nil {
			return b.replyError(chatID, "delete the task", err)
		}
		return b.askDelete(chatID, task)

	case strings.HasPrefix(data, cbDeletePrefix):
		b.ack(cb, "Deleting…")
		return b.deleteTask(ctx, chatID, strings.TrimPrefix(data, cbDeletePrefix))

	case strings.HasPrefix(data, cbKeepPrefix):
		b.ack(cb, "Kept")
		return nil

	case strings.HasPrefix(data, cbStatusPrefix):
		return b.handleStatusCallback(ctx, cb, strings.TrimPrefix(data, cbStatusPrefix))

	case strings.HasPrefix(data, cbCheckPrefix):
		return b.handleCheckCallback(ctx, cb, strings.TrimPrefix(data, cbCheckPrefix))
	}

	b.ack(cb, "")
	return nil
}

// handleStatusCallback reads "<short>" to open the picker or "<short>:<statusID>"
// to apply a status.
func (b *Bot) handleStatusCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, payload string) error {
	chatID := cb.Message.Chat.ID
	ref, rawID, picked := strings.Cut(payload, ":")
	if !picked {
		b.ack(cb, "")
		return b.handleStatus(ctx, chatID, ref)
	}

	task, err := b.resolveTask(ctx, chatID, ref)
	if err != nil {
		b.ack(cb, "")
		return b.replyError(chatID, "change the status", err)
	}

	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		b.ack(cb, "Unknown status")
		return nil
	}
	name := model.DefaultStatus
	if id != 0 {
		statuses, err := b.svc.Statuses.ListStatuses(ctx)
		if err != nil {
			b.ack(cb, "")
			return b.replyError(chatID, "load statuses", err)
		}
		name = ""
		for _, st := range statuses {
			if uint64(st.ID) == id {
				name = st.Name
			}
		}
		if name == "" {
			b.ack(cb, "That status no longer exists")
			return nil
		}
	}
	b.ack(cb, name)
	return b.applyStatus(ctx, chatID, task, name)
}

// handleCheckCallback reads "<short>:<key>:<platform index>".
func (b *Bot) handleCheckCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, payload string) error {
	chatID := cb.Message.Chat.ID
	parts := strings.Split(payload, ":")
	if len(parts) != 3 {
		b.ack(cb, "")
		return nil
	}
	def, ok := checklist.Lookup(parts[1])
	idx, err := strconv.Atoi(parts[2])
	if !ok || err != nil || idx < 0 || idx >= len(def.Platforms) {
		b.ack(cb, "Unknown checklist item")
		return nil
	}

	task, err := b.resolveTask(ctx, chatID, parts[0])
	if err != nil {
		b.ack(cb, "")
		return b.replyError(chatID, "update the checklist", err)
	}
	b.ack(cb, def.Platforms[idx])
	return b.toggleChecklist(ctx, chatID, task.ID, def.Key, def.Platforms[idx])
}

func checkData(short, key string, idx int) string {
	return cbCheckPrefix + short + ":" + key + ":" + strconv.Itoa(idx)
}

func statusData(short string, statusID uint) string {
	return cbStatusPrefix + short + ":" + strconv.FormatUint(uint64(statusID), 10)
}
