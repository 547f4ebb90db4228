// Package ai contains the adapters for the remote language-model and
// speech-to-text providers. Both speak the OpenAI API (or a compatible one
// selected via OPENAI_BASE_URL).
package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/shopspring/decimal"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/logger"
)

const (
	// Low temperature and a tight output cap favor determinism and keep
	// generation cost bounded.
	extractionTemperature = 0.2
	extractionMaxTokens   = 300
)

// Extraction is a validated transaction candidate produced from free text.
type Extraction struct {
	Amount   decimal.Decimal
	Category string
	Date     time.Time
}

// Extractor turns a free-text spending note into a structured candidate.
type Extractor interface {
	Extract(ctx context.Context, userText string, knownCategories []string) (Extraction, error)
}

// extractionPayload is the JSON shape the model is instructed to return.
type extractionPayload struct {
	Amount   json.Number `json:"amount" validate:"required"`
	Category string      `json:"category" validate:"required"`
	Date     string      `json:"date"`
}

var validate = validator.New()

// OpenAIExtractor implements Extractor on an OpenAI-compatible chat
// completion endpoint.
type OpenAIExtractor struct {
	client openai.Client
	model  string
	now    func() time.Time
}

// NewOpenAIExtractor creates an extractor for the given credentials. An empty
// baseURL targets the OpenAI API itself.
func NewOpenAIExtractor(apiKey, baseURL, model string) *OpenAIExtractor {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIExtractor{
		client: openai.NewClient(opts...),
		model:  model,
		now:    time.Now,
	}
}

// Extract sends the user text to the chat model with a JSON-constrained
// response format and parses the reply into a transaction candidate. It makes
// exactly one attempt; retry policy, if any, belongs to the caller.
func (e *OpenAIExtractor) Extract(ctx context.Context, userText string, knownCategories []string) (Extraction, error) {
	trimmed := strings.TrimSpace(userText)
	if trimmed == "" {
		return Extraction{}, apperrors.ErrEmptyInput
	}

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt(e.now(), knownCategories)),
			openai.UserMessage(trimmed),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(extractionTemperature),
		MaxTokens:   openai.Int(extractionMaxTokens),
	})
	if err != nil {
		return Extraction{}, apperrors.Wrap(apperrors.ErrProviderUnavailable, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return Extraction{}, apperrors.ErrEmptyProviderResponse
	}

	return parseExtraction(resp.Choices[0].Message.Content, e.now())
}

// parseExtraction decodes and validates the model's reply. The raw body is
// kept out of every returned error; it is logged here for diagnosis and never
// surfaced to the end user.
func parseExtraction(body string, now time.Time) (Extraction, error) {
	clean := stripFences(body)

	var payload extractionPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		logger.Get().Errorw("extraction response is not valid JSON", "body", body, "error", err)
		return Extraction{}, apperrors.Wrap(apperrors.ErrMalformedExtraction, err)
	}

	if err := validate.Struct(&payload); err != nil {
		logger.Get().Errorw("extraction response failed schema validation", "body", body, "error", err)
		return Extraction{}, apperrors.Wrap(apperrors.ErrMalformedExtraction, err)
	}

	amount, err := decimal.NewFromString(payload.Amount.String())
	if err != nil {
		logger.Get().Errorw("extraction amount is not numeric", "body", body, "error", err)
		return Extraction{}, apperrors.Wrap(apperrors.ErrMalformedExtraction, err)
	}
	if amount.Sign() <= 0 {
		logger.Get().Errorw("extraction amount is not positive", "body", body)
		return Extraction{}, apperrors.WithMessage(apperrors.ErrMalformedExtraction, "amount must be positive")
	}

	category := strings.TrimSpace(payload.Category)
	if category == "" {
		logger.Get().Errorw("extraction category is blank", "body", body)
		return Extraction{}, apperrors.WithMessage(apperrors.ErrMalformedExtraction, "category is blank")
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(payload.Date))
	if err != nil {
		// Absent or unparseable dates fall back to today rather than
		// failing the whole extraction.
		logger.Get().Warnw("extraction date unparseable, using today", "date", payload.Date)
		date = now
	}

	return Extraction{
		Amount:   amount,
		Category: category,
		Date:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}, nil
}

// stripFences removes Markdown code fences and surrounding junk in case the
// model ignored the raw-JSON instruction.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Keep only the outermost JSON object if extra text slipped through.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
