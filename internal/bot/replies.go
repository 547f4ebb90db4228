package bot

import (
	"errors"
	"fmt"
	"strings"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/models"
	"kopilka/internal/services"
)

// Menu button labels.
const (
	btnStats       = "📊 Статистика за 7 дней"
	btnNewCategory = "📁 Новая категория"
	btnHelp        = "ℹ️ Помощь"
)

// User-facing reply texts.
const (
	welcomeText = "Привет! Пришли мне текст или голосовую заметку о трате, " +
		"я сохраню её и помогу вести учёт. Кнопка «Статистика за 7 дней» " +
		"покажет последние расходы, а «Новая категория» научит меня " +
		"распознавать твои категории по ключевым словам."

	replyNoStats           = "За последние 7 дней трат пока нет."
	replyCannotParse       = "Не получилось понять трату. Попробуйте переформулировать."
	replyCannotSave        = "Не получилось сохранить трату, попробуйте позже."
	replyVoiceFailed       = "Не получилось обработать голосовое сообщение, попробуйте ещё раз."
	replyEmptyInput        = "Сообщение пустое. Опишите трату текстом, например: «кофе 250»."
	replyInvalidAmount     = "Не удалось распознать сумму. Укажите её числом больше нуля."
	replyEmptyCategory     = "Не удалось определить категорию. Попробуйте переформулировать."
	replyDuplicateRule     = "Такая категория или ключевая фраза уже есть. Придумайте другую."
	replyUnknownCommand    = "Не знаю такую команду. Наберите /help."
	replyAskCategoryName   = "Как назвать новую категорию? (/cancel — отменить)"
	replyAskMatchText      = "Какое слово или фразу искать в сообщениях для категории «%s»?"
	replyDialogCancelled   = "Ок, отменил."
	replyNothingToCancel   = "Сейчас нечего отменять."
	replyCategoryCreated   = "📁 Категория «%s» создана. Траты со словом «%s» будут попадать в неё автоматически."
	replyNameStillEmpty    = "Название не может быть пустым. Как назвать категорию?"
	replyTriggerStillEmpty = "Фраза не может быть пустой. Какое слово искать в сообщениях?"
)

// trimText normalizes dialog input.
func trimText(s string) string {
	return strings.TrimSpace(s)
}

// formatAskMatchText renders the second dialog prompt.
func formatAskMatchText(name string) string {
	return fmt.Sprintf(replyAskMatchText, name)
}

// formatCategoryCreated renders the dialog's success confirmation.
func formatCategoryCreated(name, matchText string) string {
	return fmt.Sprintf(replyCategoryCreated, name, matchText)
}

// formatRecorded renders the confirmation for a saved transaction.
func formatRecorded(tx *models.Transaction) string {
	return fmt.Sprintf("✅ Записано: %s — %s RUB (%s)",
		tx.Category, tx.Amount.StringFixed(2), tx.Date.Format("2006-01-02"))
}

// formatWeekStats renders the weekly aggregate, one category per line,
// already ordered by total descending.
func formatWeekStats(stats []services.CategoryTotal) string {
	var b strings.Builder
	b.WriteString("Статистика за 7 дней:")
	for _, item := range stats {
		b.WriteString(fmt.Sprintf("\n• %s: %s RUB", item.Category, item.Total.StringFixed(2)))
	}
	return b.String()
}

// validationCodes are the caller-recoverable error codes: the user gets a
// targeted prompt and nothing is logged as an error.
var validationCodes = map[string]bool{
	apperrors.ErrInvalidAmount.Code:     true,
	apperrors.ErrEmptyCategory.Code:     true,
	apperrors.ErrEmptyInput.Code:        true,
	apperrors.ErrInvalidUser.Code:       true,
	apperrors.ErrDuplicateCategory.Code: true,
	apperrors.ErrInvalidInput.Code:      true,
}

// isValidationError reports whether the error is caller-recoverable.
func isValidationError(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && validationCodes[appErr.Code]
}

// replyForError maps an error to the user-facing reply text. Provider and
// persistence details never reach the user; the caller logs them.
func replyForError(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return replyCannotSave
	}

	switch appErr.Code {
	case apperrors.ErrEmptyInput.Code:
		return replyEmptyInput
	case apperrors.ErrInvalidAmount.Code:
		return replyInvalidAmount
	case apperrors.ErrEmptyCategory.Code:
		return replyEmptyCategory
	case apperrors.ErrDuplicateCategory.Code:
		return replyDuplicateRule
	case apperrors.ErrProviderUnavailable.Code,
		apperrors.ErrEmptyProviderResponse.Code,
		apperrors.ErrMalformedExtraction.Code:
		return replyCannotParse
	case apperrors.ErrTranscriptionFailed.Code:
		return replyVoiceFailed
	default:
		return replyCannotSave
	}
}
