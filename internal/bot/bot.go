package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-board/internal/dates"
	"task-board/internal/model"
	"task-board/internal/repository"
	"task-board/internal/service"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageTitle
	stageStartDate
	stageDuration
	stageRecurring
)

const (
	cbConfirmPrefix   = "confirm:"
	cbCancelPrefix    = "cancel:"
	cbProposePrefix   = "propose:"
	cbAskDeletePrefix = "ask:"
	cbDeletePrefix    = "delete:"
	cbKeepPrefix      = "keep:"
	cbStatusPrefix    = "status:"
	cbCheckPrefix     = "check:"
	cbWeekPrefix      = "week:"
)

const (
	btnConfirm       = "✅ Add them"
	btnCancel        = "↩️ Not now"
	btnCancelDialog  = "⏪ Cancel input"
	btnToday         = "Today"
	btnNoRepeat      = "Once"
	btnDaily         = "Every day"
	btnWeekly        = "Every week"
	btnMonthly       = "Every month"
	menuLabelWeek    = "🗓 This week"
	menuLabelNewTask = "➕ New task"
	menuLabelRecur   = "♻️ Recurring"
	menuLabelHelp    = "ℹ️ Help"
)

type conversationState struct {
	stage    conversationStage
	input    service.TaskInput
	duration int
}

type proposalKey struct {
	chatID int64
	mode   model.Recurring
	week   string
}

// Services groups what the bot drives.
type Services struct {
	Tasks      *service.TaskService
	Recurrence *service.RecurrenceService
	Statuses   *service.StatusService
	Digest     *service.DigestService
	Board      service.BoardOptions
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api      *tgbotapi.BotAPI
	log      *slog.Logger
	svc      Services
	debounce *service.Debouncer

	// ctx carries values into board writes; set by Start without its
	// cancellation so the final flush still writes.
	ctx context.Context

	conversations map[int64]*conversationState
	proposals     map[proposalKey][]model.Task
	boards        map[int64]*service.Board
	mu            sync.Mutex
}

func New(token string, svc Services, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Info("bot authorized", "account", api.Self.UserName)

	return &Bot{
		api:           api,
		log:           log,
		svc:           svc,
		debounce:      service.NewDebouncer(),
		ctx:           context.Background(),
		conversations: make(map[int64]*conversationState),
		proposals:     make(map[proposalKey][]model.Task),
		boards:        make(map[int64]*service.Board),
	}, nil
}

// Start begins polling updates until ctx is cancelled. Pending board edits
// are written before it returns.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = context.WithoutCancel(ctx)
	b.mu.Unlock()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				b.log.Error("handle callback", "error", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.log.Error("handle message", "error", err)
			}
		}
	}

	b.debounce.Flush()
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Input cancelled.")
	}

	if msg.IsCommand() {
		b.log.Info("command", "user", msg.From.ID, "command", msg.Command(), "args", msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if b.hasConversation(msg.From.ID) {
		b.log.Debug("conversation step", "user", msg.From.ID, "stage", b.getConversation(msg.From.ID).stage)
		return b.handleConversation(ctx, msg)
	}

	if handled, err := b.handleMenuAlias(ctx, msg); handled {
		return err
	}

	return b.sendText(msg.Chat.ID, "I did not get that. Send /newtask to add a task or /help for the command list.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "start":
		return b.handleStart(msg)
	case "help":
		return b.handleHelp(msg)
	case "week":
		return b.handleWeek(ctx, msg.Chat.ID, args)
	case "prev":
		return b.shiftWeek(ctx, msg.Chat.ID, -1)
	case "next":
		return b.shiftWeek(ctx, msg.Chat.ID, 1)
	case "today":
		return b.handleWeek(ctx, msg.Chat.ID, "")
	case "newtask":
		return b.startNewTaskConversation(msg)
	case "task":
		return b.handleTask(ctx, msg.Chat.ID, args)
	case "move":
		return b.handleMove(ctx, msg.Chat.ID, args)
	case "resize":
		return b.handleResize(ctx, msg.Chat.ID, args)
	case "status":
		return b.handleStatus(ctx, msg.Chat.ID, args)
	case "duplicate":
		return b.handleDuplicate(ctx, msg.Chat.ID, args)
	case "delete":
		return b.handleDelete(ctx, msg.Chat.ID, args)
	case "check":
		return b.handleCheck(ctx, msg.Chat.ID, args)
	case "recurring":
		return b.handleRecurring(ctx, msg.Chat.ID, args)
	case "statuses":
		return b.handleStatuses(ctx, msg.Chat.ID)
	case "cancel":
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Input cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf(
		"👋 Hi, %s!\n<b>I keep your week board: tasks on a Monday-first grid, recurring tasks copied forward on request.</b>\n\n"+
			"Start with /week or /newtask. /help lists every command.",
		escape(name),
	)
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Commands</b>\n" +
		"• /week [YYYY-MM-DD] — show a week, /prev and /next to page, /today to come back\n" +
		"• /newtask — add a task step by step\n" +
		"• /task &lt;id&gt; — task details and checklist\n" +
		"• /move &lt;id&gt; &lt;date&gt; — move a task, keeping its length\n" +
		"• /resize &lt;id&gt; &lt;days&gt; — make a task last N days\n" +
		"• /status &lt;id&gt; [name] — change the status\n" +
		"• /duplicate &lt;id&gt; — copy a task as \"Title 2\", \"Title 3\"...\n" +
		"• /delete &lt;id&gt; — delete a task\n" +
		"• /check &lt;id&gt; &lt;reel|image&gt; &lt;platform&gt; — tick a checklist platform\n" +
		"• /recurring weekly|daily — copy recurring tasks into the shown week\n" +
		"• /statuses — the status palette\n" +
		"• /cancel — cancel the current input\n\n" +
		"Task ids are the 8-character codes shown next to each task."
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelWeek):
		return true, b.handleWeek(ctx, msg.Chat.ID, "")
	case strings.ToLower(menuLabelNewTask):
		return true, b.startNewTaskConversation(msg)
	case strings.ToLower(menuLabelRecur):
		return true, b.handleRecurring(ctx, msg.Chat.ID, "")
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}

// board returns the chat's board, creating an empty one on first use.
func (b *Bot) board(chatID int64) *service.Board {
	b.mu.Lock()
	defer b.mu.Unlock()
	if board, ok := b.boards[chatID]; ok {
		return board
	}
	board := service.NewBoard(b.ctx, b.svc.Tasks, b.debounce, b.svc.Board, b.log.With("chat", chatID))
	board.OnWriteError = func(err error) {
		if sendErr := b.sendText(chatID, fmt.Sprintf("⚠️ A change could not be saved, the board was reloaded: %s", escape(err.Error()))); sendErr != nil {
			b.log.Error("notify write error", "chat", chatID, "error", sendErr)
		}
	}
	b.boards[chatID] = board
	return board
}

// loadedBoard returns the chat's board, loading the current week on first use.
func (b *Bot) loadedBoard(ctx context.Context, chatID int64) (*service.Board, error) {
	b.mu.Lock()
	_, ok := b.boards[chatID]
	b.mu.Unlock()
	board := b.board(chatID)
	if !ok {
		if err := board.Load(ctx, board.Week()); err != nil {
			return nil, err
		}
	}
	return board, nil
}

// resolveTask finds a task by the id the user typed, preferring the chat's
// board snapshot so pending edits are visible.
func (b *Bot) resolveTask(ctx context.Context, chatID int64, ref string) (model.Task, error) {
	if ref == "" {
		return model.Task{}, errMissingID
	}
	task, err := b.svc.Tasks.GetTask(ctx, ref)
	if err != nil {
		return model.Task{}, err
	}
	if snap, ok := b.board(chatID).Task(task.ID); ok {
		return snap, nil
	}
	return *task, nil
}

var errMissingID = errors.New("task id is required")

// replyError turns expected failures into a chat message and returns the
// rest to the caller.
func (b *Bot) replyError(chatID int64, action string, err error) error {
	switch {
	case errors.Is(err, errMissingID):
		return b.sendText(chatID, "Tell me the task id, for example <code>/task 1a2b3c4d</code>.")
	case errors.Is(err, repository.ErrNotFound):
		return b.sendText(chatID, "Task not found. Check the id in /week.")
	case errors.Is(err, dates.ErrInvalidDate):
		return b.sendText(chatID, "I could not read that date. Use <code>2025-11-30</code>, <code>today</code>, <code>tomorrow</code> or <code>+3</code>.")
	}
	b.log.Error(action, "chat", chatID, "error", err)
	return b.sendText(chatID, fmt.Sprintf("Could not %s: %s", action, escape(err.Error())))
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) ack(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.log.Error("callback ack", "error", err)
	}
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.conversations[userID]
	return ok && state.stage != stageNone
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

func (b *Bot) setProposal(key proposalKey, tasks []model.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.proposals[key] = tasks
}

// takeProposal removes and returns a stored proposal.
func (b *Bot) takeProposal(key proposalKey) ([]model.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tasks, ok := b.proposals[key]
	delete(b.proposals, key)
	return tasks, ok
}

func isCancelDialogInput(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), btnCancelDialog)
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelWeek),
			tgbotapi.NewKeyboardButton(menuLabelNewTask),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelRecur),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func startDateKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnToday),
			tgbotapi.NewKeyboardButton("Tomorrow"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func durationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("1"),
			tgbotapi.NewKeyboardButton("2"),
			tgbotapi.NewKeyboardButton("3"),
			tgbotapi.NewKeyboardButton("5"),
			tgbotapi.NewKeyboardButton("7"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func recurringKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnNoRepeat),
			tgbotapi.NewKeyboardButton(btnDaily),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWeekly),
			tgbotapi.NewKeyboardButton(btnMonthly),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
