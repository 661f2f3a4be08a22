package services

import (
	"context"
	"time"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
)

// Classifier turns free-form text into a typed transaction.
// Implementations must be total: every input yields a transaction.
type Classifier interface {
	Classify(text string, date time.Time) domain.Transaction
}

// TextExtractor is the OCR boundary: an image in, raw text out.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte, filename string) (string, error)
}

// Transcriber is the speech-to-text boundary: audio in, raw text out.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
