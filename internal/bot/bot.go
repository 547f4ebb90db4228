// Package bot wires the Telegram long-polling transport to the extraction
// pipeline and the finance ledger.
package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kopilka/internal/ai"
	"kopilka/internal/logger"
	"kopilka/internal/services"
)

// updateTimeout bounds the handling of a single inbound message, including
// the remote model calls. The core adapters impose no timeout of their own.
const updateTimeout = 90 * time.Second

// pollTimeout is the Telegram long-poll duration in seconds.
const pollTimeout = 30

var mainMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnStats)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnNewCategory)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnHelp)),
)

// Bot handles Telegram updates.
type Bot struct {
	api         *tgbotapi.BotAPI
	users       services.UserServicer
	categories  services.CategoryServicer
	finance     services.FinanceServicer
	extractor   ai.Extractor
	transcriber ai.Transcriber
	dialogs     *dialogStore
}

// New creates a Bot on an authorized Telegram API client.
func New(
	api *tgbotapi.BotAPI,
	users services.UserServicer,
	categories services.CategoryServicer,
	finance services.FinanceServicer,
	extractor ai.Extractor,
	transcriber ai.Transcriber,
) *Bot {
	return &Bot{
		api:         api,
		users:       users,
		categories:  categories,
		finance:     finance,
		extractor:   extractor,
		transcriber: transcriber,
		dialogs:     newDialogStore(),
	}
}

// Run polls Telegram for updates until the context is cancelled. Each update
// is handled in its own goroutine; messages from different users proceed
// independently. Messages from the same user are not serialized either, so
// concurrent writes from one user may interleave at the persistence layer.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)

	logger.Get().Infow("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	m := update.Message
	if m == nil || m.From == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	switch {
	case m.IsCommand():
		b.handleCommand(ctx, m)
	case m.Voice != nil:
		b.handleVoice(ctx, m)
	case m.Text != "":
		b.handleText(ctx, m)
	}
}

func (b *Bot) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	switch m.Command() {
	case "start", "help":
		if _, err := b.users.EnsureUser(m.From.ID); err != nil {
			logger.Get().Errorw("failed to ensure user", "telegram_id", m.From.ID, "error", err)
		}
		b.reply(m.Chat.ID, welcomeText, true)
	case "stats", "week":
		b.sendStats(ctx, m)
	case "newcategory":
		b.dialogs.begin(m.From.ID)
		b.reply(m.Chat.ID, replyAskCategoryName, false)
	case "cancel":
		if b.dialogs.clear(m.From.ID) {
			b.reply(m.Chat.ID, replyDialogCancelled, true)
		} else {
			b.reply(m.Chat.ID, replyNothingToCancel, true)
		}
	default:
		b.reply(m.Chat.ID, replyUnknownCommand, true)
	}
}

func (b *Bot) handleText(ctx context.Context, m *tgbotapi.Message) {
	if _, ok := b.dialogs.get(m.From.ID); ok {
		b.continueDialog(m)
		return
	}

	switch m.Text {
	case btnStats:
		b.sendStats(ctx, m)
	case btnNewCategory:
		b.dialogs.begin(m.From.ID)
		b.reply(m.Chat.ID, replyAskCategoryName, false)
	case btnHelp:
		b.reply(m.Chat.ID, welcomeText, true)
	default:
		b.processUserText(ctx, m, m.Text)
	}
}

// processUserText runs the full pipeline for one utterance: extraction,
// normalization with rule override, persistence, confirmation.
func (b *Bot) processUserText(ctx context.Context, m *tgbotapi.Message, userText string) {
	user, err := b.users.EnsureUser(m.From.ID)
	if err != nil {
		b.replyError(m, err)
		return
	}

	knownCategories, err := b.categories.ListCategoryNames(user.ID)
	if err != nil {
		b.replyError(m, err)
		return
	}

	extraction, err := b.extractor.Extract(ctx, userText, knownCategories)
	if err != nil {
		b.replyError(m, err)
		return
	}

	tx, err := b.finance.AddTransaction(services.TransactionInput{
		UserID:    user.ID,
		Amount:    extraction.Amount,
		Category:  extraction.Category,
		RawText:   userText,
		SpendDate: &extraction.Date,
	})
	if err != nil {
		b.replyError(m, err)
		return
	}

	b.reply(m.Chat.ID, formatRecorded(tx), true)
}

func (b *Bot) sendStats(_ context.Context, m *tgbotapi.Message) {
	user, err := b.users.EnsureUser(m.From.ID)
	if err != nil {
		b.replyError(m, err)
		return
	}

	stats, err := b.finance.GetWeekStats(user.ID, time.Now())
	if err != nil {
		b.replyError(m, err)
		return
	}

	if len(stats) == 0 {
		b.reply(m.Chat.ID, replyNoStats, true)
		return
	}
	b.reply(m.Chat.ID, formatWeekStats(stats), true)
}

// continueDialog advances the two-step category creation dialog. The
// terminal transition always clears the session, whether creation succeeded
// or was rejected as a duplicate.
func (b *Bot) continueDialog(m *tgbotapi.Message) {
	session, ok := b.dialogs.get(m.From.ID)
	if !ok {
		return
	}

	text := m.Text

	switch session.step {
	case awaitingName:
		if trimmed := trimText(text); trimmed == "" {
			b.reply(m.Chat.ID, replyNameStillEmpty, false)
			return
		}
		b.dialogs.setName(m.From.ID, trimText(text))
		b.reply(m.Chat.ID, formatAskMatchText(trimText(text)), false)

	case awaitingMatchText:
		if trimmed := trimText(text); trimmed == "" {
			b.reply(m.Chat.ID, replyTriggerStillEmpty, false)
			return
		}
		b.dialogs.clear(m.From.ID)

		user, err := b.users.EnsureUser(m.From.ID)
		if err != nil {
			b.replyError(m, err)
			return
		}
		category, err := b.categories.CreateCategory(user.ID, session.name, trimText(text))
		if err != nil {
			b.replyError(m, err)
			return
		}
		b.reply(m.Chat.ID, formatCategoryCreated(category.Name, category.MatchText), true)
	}
}

// reply sends a text message, optionally attaching the main menu keyboard.
func (b *Bot) reply(chatID int64, text string, withMenu bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	if withMenu {
		msg.ReplyMarkup = mainMenu
	}
	if _, err := b.api.Send(msg); err != nil {
		logger.Get().Warnw("failed to send reply", "chat_id", chatID, "error", err)
	}
}

// replyError logs according to the propagation policy and sends the mapped
// user-facing text. Validation errors get no error log; provider and
// persistence errors are logged with full context.
func (b *Bot) replyError(m *tgbotapi.Message, err error) {
	if isValidationError(err) {
		logger.Get().Debugw("validation error", "telegram_id", m.From.ID, "error", err)
	} else {
		logger.Get().Errorw("message handling failed", "telegram_id", m.From.ID, "error", err)
	}
	b.reply(m.Chat.ID, replyForError(err), true)
}
