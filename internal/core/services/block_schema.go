package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// blockSchema constrains parsed blocks before they are posted: a block is
// either a transaction (type and amount) or an invoice (number and total),
// and every amount and date it carries must be well formed.
var blockSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		FieldAmount:      map[string]any{"type": "string", "pattern": `^\d+(\.\d+)?$`},
		FieldVATAmount:   map[string]any{"type": "string", "pattern": `^\d+(\.\d+)?$`},
		FieldTotalAmount: map[string]any{"type": "string", "pattern": `^\d+(\.\d+)?$`},
		FieldDate:        map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		FieldDueDate:     map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
	},
	"anyOf": []any{
		map[string]any{"required": []any{FieldTransactionType, FieldAmount}},
		map[string]any{"required": []any{FieldInvoiceNumber, FieldTotalAmount}},
	},
}

var (
	compiledBlockSchema *jsonschema.Schema
	compileBlockOnce    sync.Once
	compileBlockErr     error
)

func compileBlockSchema() (*jsonschema.Schema, error) {
	compileBlockOnce.Do(func() {
		b, err := json.Marshal(blockSchema)
		if err != nil {
			compileBlockErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("block.json", bytes.NewReader(b)); err != nil {
			compileBlockErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledBlockSchema, compileBlockErr = compiler.Compile("block.json")
	})
	return compiledBlockSchema, compileBlockErr
}

// ValidateBlockFields checks parsed block fields against the block schema.
func ValidateBlockFields(fields map[string]string) error {
	schema, err := compileBlockSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	doc := make(map[string]any, len(fields))
	for k, v := range fields {
		doc[k] = v
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: block does not match schema: %v", apperrors.ErrValidation, err)
	}
	return nil
}
