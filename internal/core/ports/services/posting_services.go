package services

import (
	"context"

	"github.com/SscSPs/smart_accounting/internal/dto"
)

// InterpreterSvc turns raw input into a reviewable transaction block.
type InterpreterSvc interface {
	InterpretText(ctx context.Context, text string) (*dto.InterpretResponse, error)
	InterpretDocument(ctx context.Context, image []byte, filename string) (*dto.InterpretResponse, error)
	InterpretSpeech(ctx context.Context, audio []byte, filename string) (*dto.InterpretResponse, error)
}

// PosterSvc appends reviewed transactions to the ledgers and saves them.
type PosterSvc interface {
	PostBlock(ctx context.Context, block string) (*dto.PostingResponse, error)
	PostManual(ctx context.Context, req dto.ManualEntryRequest) (*dto.PostingResponse, error)
}

// PostingSvcFacade combines interpretation and posting.
type PostingSvcFacade interface {
	InterpreterSvc
	PosterSvc
}
