package ai

import (
	"context"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	apperrors "kopilka/internal/errors"
)

// transcriptionLanguage is a fixed hint for Whisper; the bot's audience is
// Russian-speaking.
const transcriptionLanguage = "ru"

// Transcriber converts a recorded voice clip into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperTranscriber implements Transcriber on the OpenAI Whisper API.
// Whisper is always reached through the OpenAI endpoint, even when the chat
// provider is redirected via OPENAI_BASE_URL.
type WhisperTranscriber struct {
	client openai.Client
}

// NewWhisperTranscriber creates a transcriber for the given API key.
func NewWhisperTranscriber(apiKey string) *WhisperTranscriber {
	return &WhisperTranscriber{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Transcribe sends the audio file at audioPath to Whisper and returns the
// trimmed transcript. The caller owns the file's lifecycle; it must exist for
// the duration of the call.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrTranscriptionFailed, err)
	}
	defer file.Close()

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:    openai.AudioModelWhisper1,
		File:     file,
		Language: openai.String(transcriptionLanguage),
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrTranscriptionFailed, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", apperrors.WithMessage(apperrors.ErrTranscriptionFailed, "empty transcript")
	}
	return text, nil
}
