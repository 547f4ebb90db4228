package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/logger"
)

// handleVoice downloads the voice attachment to a temp file, transcribes it,
// and feeds the transcript through the regular text pipeline. The temp file
// is removed regardless of outcome; Whisper reads from disk, so the payload
// has to be materialized first.
func (b *Bot) handleVoice(ctx context.Context, m *tgbotapi.Message) {
	tmpPath := filepath.Join(os.TempDir(), "kopilka-voice-"+uuid.New().String()+".oga")
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			logger.Get().Warnw("failed to remove temp voice file", "path", tmpPath, "error", err)
		}
	}()

	if err := b.downloadVoice(ctx, m.Voice.FileID, tmpPath); err != nil {
		b.replyError(m, apperrors.Wrap(apperrors.ErrTranscriptionFailed, err))
		return
	}

	transcript, err := b.transcriber.Transcribe(ctx, tmpPath)
	if err != nil {
		b.replyError(m, err)
		return
	}

	b.processUserText(ctx, m, transcript)
}

// downloadVoice fetches a Telegram file to the given local path.
func (b *Bot) downloadVoice(ctx context.Context, fileID, destPath string) error {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return fmt.Errorf("get file info: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download voice file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download voice file: unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	return nil
}
