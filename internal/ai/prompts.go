package ai

import (
	"strings"
	"time"
)

// systemPrompt builds the extraction instruction for the chat model. It is
// parameterized by today's date (so relative phrases like "вчера" resolve
// correctly) and by the user's known category names, which steer the model
// toward reusing existing labels instead of inventing near-duplicates. The
// steering is soft: an unseen category is still accepted downstream.
func systemPrompt(today time.Time, knownCategories []string) string {
	var b strings.Builder

	b.WriteString("Ты — ассистент учёта личных расходов. ")
	b.WriteString("Пользователь присылает свободный текст о трате на русском языке.\n\n")
	b.WriteString("Сегодняшняя дата: ")
	b.WriteString(today.Format("2006-01-02"))
	b.WriteString("\n\n")
	b.WriteString("Верни СТРОГО один JSON-объект без пояснений и без Markdown, с полями:\n")
	b.WriteString("- \"amount\": число, сумма траты без валюты, больше нуля\n")
	b.WriteString("- \"category\": строка, краткая категория в одно-два слова\n")
	b.WriteString("- \"date\": строка, дата траты в формате YYYY-MM-DD; ")
	b.WriteString("если дата не названа, используй сегодняшнюю\n")

	if len(knownCategories) > 0 {
		b.WriteString("\nУ пользователя уже есть категории:\n")
		for _, name := range knownCategories {
			b.WriteString("- " + name + "\n")
		}
		b.WriteString("Если трата подходит под одну из них, используй её название дословно.\n")
	}

	return b.String()
}
