// Package speech sends recorded audio to an HTTP speech-to-text engine.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/middleware"
	"github.com/google/uuid"
)

// HTTPTranscriber posts audio as multipart form field "file" (plus "language")
// and expects a JSON body {"text": "..."}.
type HTTPTranscriber struct {
	url      string
	language string
	client   *http.Client
}

// NewHTTPTranscriber creates a transcriber for the engine at url.
func NewHTTPTranscriber(url, language string, client *http.Client) *HTTPTranscriber {
	if client == nil {
		client = &http.Client{Timeout: 45 * time.Second}
	}
	return &HTTPTranscriber{url: url, language: language, client: client}
}

type transcriptResponse struct {
	Text string `json:"text"`
}

// Transcribe returns the transcript of audio. Context expiry is returned as
// is so callers can tell a listen timeout from an engine failure.
func (t *HTTPTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	reqID := uuid.NewString()
	start := time.Now()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if t.language != "" {
		_ = mw.WriteField("language", t.language)
	}
	if filename == "" {
		filename = "audio.wav"
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: build form: %v", apperrors.ErrExtraction, err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("%w: build form: %v", apperrors.ErrExtraction, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: build form: %v", apperrors.ErrExtraction, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, &body)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", apperrors.ErrExtraction, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", reqID)

	logger.Info("stt.http.request", "req_id", reqID, "url", t.url, "content_length", body.Len())
	resp, err := t.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", context.DeadlineExceeded
		}
		logger.Error("stt.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("%w: %v", apperrors.ErrExtraction, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		logger.Error("stt.http.read_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("%w: read transcript: %v", apperrors.ErrExtraction, err)
	}
	logger.Info("stt.http.response", "req_id", reqID, "status", resp.StatusCode, "bytes", len(raw), "elapsed_ms", time.Since(start).Milliseconds())

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: speech engine returned %d", apperrors.ErrExtraction, resp.StatusCode)
	}
	var out transcriptResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode transcript: %v", apperrors.ErrExtraction, err)
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", apperrors.ErrNoInputDetected)
	}
	return text, nil
}
