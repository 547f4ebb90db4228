package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/testutil"
)

var parseNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestExtractEmptyInput(t *testing.T) {
	// No server is reachable behind this client; an empty input must fail
	// before any remote call is attempted.
	e := NewOpenAIExtractor("test-key", "http://127.0.0.1:1", "gpt-4o-mini")

	_, err := e.Extract(context.Background(), "   ", nil)
	testutil.AssertAppError(t, err, apperrors.ErrEmptyInput.Code)
}

func TestParseExtraction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := parseExtraction(`{"amount": 250.5, "category": "Кофе", "date": "2024-03-10"}`, parseNow)
		testutil.AssertNoError(t, err)

		if got.Amount.StringFixed(2) != "250.50" {
			t.Errorf("expected 250.50, got %s", got.Amount.StringFixed(2))
		}
		if got.Category != "Кофе" {
			t.Errorf("expected Кофе, got %q", got.Category)
		}
		want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		if !got.Date.Equal(want) {
			t.Errorf("expected %v, got %v", want, got.Date)
		}
	})

	t.Run("trims_category", func(t *testing.T) {
		got, err := parseExtraction(`{"amount": 100, "category": "  Такси ", "date": "2024-03-10"}`, parseNow)
		testutil.AssertNoError(t, err)
		if got.Category != "Такси" {
			t.Errorf("expected trimmed category, got %q", got.Category)
		}
	})

	t.Run("markdown_fences_tolerated", func(t *testing.T) {
		body := "```json\n{\"amount\": 99, \"category\": \"Еда\", \"date\": \"2024-03-12\"}\n```"
		got, err := parseExtraction(body, parseNow)
		testutil.AssertNoError(t, err)
		if got.Category != "Еда" {
			t.Errorf("expected Еда, got %q", got.Category)
		}
	})

	t.Run("not_json", func(t *testing.T) {
		_, err := parseExtraction(`{not json`, parseNow)
		testutil.AssertAppError(t, err, apperrors.ErrMalformedExtraction.Code)
	})

	t.Run("missing_amount", func(t *testing.T) {
		_, err := parseExtraction(`{"category": "Еда", "date": "2024-03-12"}`, parseNow)
		testutil.AssertAppError(t, err, apperrors.ErrMalformedExtraction.Code)
	})

	t.Run("missing_category", func(t *testing.T) {
		_, err := parseExtraction(`{"amount": 100, "date": "2024-03-12"}`, parseNow)
		testutil.AssertAppError(t, err, apperrors.ErrMalformedExtraction.Code)
	})

	t.Run("blank_category", func(t *testing.T) {
		_, err := parseExtraction(`{"amount": 100, "category": "   ", "date": "2024-03-12"}`, parseNow)
		testutil.AssertAppError(t, err, apperrors.ErrMalformedExtraction.Code)
	})

	t.Run("zero_amount", func(t *testing.T) {
		_, err := parseExtraction(`{"amount": 0, "category": "Еда", "date": "2024-03-12"}`, parseNow)
		testutil.AssertAppError(t, err, apperrors.ErrMalformedExtraction.Code)
	})

	t.Run("negative_amount", func(t *testing.T) {
		_, err := parseExtraction(`{"amount": -10, "category": "Еда", "date": "2024-03-12"}`, parseNow)
		testutil.AssertAppError(t, err, apperrors.ErrMalformedExtraction.Code)
	})

	t.Run("unparseable_date_falls_back_to_today", func(t *testing.T) {
		got, err := parseExtraction(`{"amount": 100, "category": "Еда", "date": "позавчера"}`, parseNow)
		testutil.AssertNoError(t, err)

		want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		if !got.Date.Equal(want) {
			t.Errorf("expected fallback to %v, got %v", want, got.Date)
		}
	})

	t.Run("missing_date_falls_back_to_today", func(t *testing.T) {
		got, err := parseExtraction(`{"amount": 100, "category": "Еда"}`, parseNow)
		testutil.AssertNoError(t, err)

		want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		if !got.Date.Equal(want) {
			t.Errorf("expected fallback to %v, got %v", want, got.Date)
		}
	})
}

func TestSystemPrompt(t *testing.T) {
	t.Run("embeds_date_and_categories", func(t *testing.T) {
		prompt := systemPrompt(parseNow, []string{"Кофе", "Такси"})

		if !strings.Contains(prompt, "2024-03-15") {
			t.Error("expected today's date in prompt")
		}
		if !strings.Contains(prompt, "Кофе") || !strings.Contains(prompt, "Такси") {
			t.Error("expected known categories in prompt")
		}
	})

	t.Run("no_category_section_without_rules", func(t *testing.T) {
		prompt := systemPrompt(parseNow, nil)
		if strings.Contains(prompt, "уже есть категории") {
			t.Error("expected no category section for empty rule set")
		}
	})
}
