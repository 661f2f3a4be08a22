package dto

import "github.com/SscSPs/smart_accounting/internal/core/domain"

// Input sources accepted by the interpreter.
const (
	SourceText     = "text"
	SourceDocument = "document"
	SourceSpeech   = "speech"
)

// InterpretTextRequest carries free-form transaction text.
type InterpretTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// InterpretResponse is the interpreted transaction plus its reviewable block.
// Exactly one of Transaction or Invoice is set.
type InterpretResponse struct {
	Source          string              `json:"source"`
	RawText         string              `json:"rawText"`
	Transaction     *domain.Transaction `json:"transaction,omitempty"`
	Invoice         *domain.Invoice     `json:"invoice,omitempty"`
	Block           string              `json:"block"`
	AmountDefaulted bool                `json:"amountDefaulted"` // No numeral was found; the default amount was used
}
