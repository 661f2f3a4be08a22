package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/dto"
	"github.com/SscSPs/smart_accounting/internal/platform/rules"
	"github.com/shopspring/decimal"
)

// PostingService runs the interpretation and posting pipeline: raw input is
// interpreted into a reviewable block, and reviewed blocks or manual entries
// are appended to the ledgers and saved.
type PostingService struct {
	BaseService
	ledger      portssvc.LedgerSvcFacade
	classifier  portssvc.Classifier
	invoices    *InvoiceInterpreter
	formatter   *TransactionFormatter
	amounts     *AmountExtractor
	rules       rules.Rules
	extractor   portssvc.TextExtractor
	transcriber portssvc.Transcriber
	listenFor   time.Duration
	now         func() time.Time
}

var _ portssvc.PostingSvcFacade = (*PostingService)(nil)

// PostingOption configures a PostingService.
type PostingOption func(*PostingService)

// WithTextExtractor sets the OCR engine used by InterpretDocument.
func WithTextExtractor(e portssvc.TextExtractor) PostingOption {
	return func(s *PostingService) { s.extractor = e }
}

// WithTranscriber sets the speech engine used by InterpretSpeech.
func WithTranscriber(t portssvc.Transcriber) PostingOption {
	return func(s *PostingService) { s.transcriber = t }
}

// WithListenTimeout bounds a single transcription.
func WithListenTimeout(d time.Duration) PostingOption {
	return func(s *PostingService) {
		if d > 0 {
			s.listenFor = d
		}
	}
}

// WithClassifier replaces the keyword classifier.
func WithClassifier(c portssvc.Classifier) PostingOption {
	return func(s *PostingService) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) PostingOption {
	return func(s *PostingService) { s.now = now }
}

// NewPostingService creates a posting service over ledger.
func NewPostingService(ledger portssvc.LedgerSvcFacade, r rules.Rules, opts ...PostingOption) *PostingService {
	s := &PostingService{
		ledger:     ledger,
		classifier: NewRuleClassifier(r),
		invoices:   NewInvoiceInterpreter(r),
		formatter:  NewTransactionFormatter(r.Locale),
		amounts:    NewAmountExtractor(),
		rules:      r,
		listenFor:  10 * time.Second,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InterpretText classifies free-form text.
func (s *PostingService) InterpretText(ctx context.Context, text string) (*dto.InterpretResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", apperrors.ErrValidation)
	}
	return s.interpretTransaction(ctx, dto.SourceText, text), nil
}

func (s *PostingService) interpretTransaction(ctx context.Context, source, text string) *dto.InterpretResponse {
	tx := s.classifier.Classify(text, s.now())
	_, found := s.amounts.ExtractAmount(text)
	s.LogInfo(ctx, "Transaction interpreted",
		slog.String("source", source),
		slog.String("kind", string(tx.Kind)),
		slog.String("amount", tx.Amount.String()),
		slog.Bool("amount_defaulted", !found))
	return &dto.InterpretResponse{
		Source:          source,
		RawText:         text,
		Transaction:     &tx,
		Block:           s.formatter.FormatTransaction(tx),
		AmountDefaulted: !found,
	}
}

// InterpretDocument runs OCR over an image and interprets the text as an invoice.
// Nothing is appended to any ledger.
func (s *PostingService) InterpretDocument(ctx context.Context, image []byte, filename string) (*dto.InterpretResponse, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: no OCR engine configured", apperrors.ErrExtraction)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: document is empty", apperrors.ErrValidation)
	}

	text, err := s.extractor.ExtractText(ctx, image, filename)
	if err != nil {
		s.LogError(ctx, err, "OCR failed", slog.String("filename", filename))
		if errors.Is(err, apperrors.ErrExtraction) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExtraction, err)
	}

	inv := s.invoices.Interpret(text, s.now())
	_, found := s.amounts.ExtractAmount(text)
	s.LogInfo(ctx, "Invoice interpreted", slog.String("invoice", inv.InvoiceNumber), slog.String("total", inv.TotalAmount.String()))
	return &dto.InterpretResponse{
		Source:          dto.SourceDocument,
		RawText:         text,
		Invoice:         &inv,
		Block:           s.formatter.FormatInvoice(inv),
		AmountDefaulted: !found,
	}, nil
}

// InterpretSpeech transcribes audio within the listen timeout and classifies
// the transcript. A timeout or a blank transcript is ErrNoInputDetected.
func (s *PostingService) InterpretSpeech(ctx context.Context, audio []byte, filename string) (*dto.InterpretResponse, error) {
	if s.transcriber == nil {
		return nil, fmt.Errorf("%w: no speech engine configured", apperrors.ErrExtraction)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: audio is empty", apperrors.ErrNoInputDetected)
	}

	listenCtx, cancel := context.WithTimeout(ctx, s.listenFor)
	defer cancel()

	text, err := s.transcriber.Transcribe(listenCtx, audio, filename)
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(listenCtx.Err(), context.DeadlineExceeded)):
		s.LogWarn(ctx, "Listen timeout", slog.Duration("timeout", s.listenFor))
		return nil, fmt.Errorf("%w: listen timeout after %s", apperrors.ErrNoInputDetected, s.listenFor)
	case err != nil && errors.Is(err, apperrors.ErrNoInputDetected):
		return nil, err
	case err != nil:
		s.LogError(ctx, err, "Speech recognition failed", slog.String("filename", filename))
		if errors.Is(err, apperrors.ErrExtraction) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExtraction, err)
	case strings.TrimSpace(text) == "":
		return nil, fmt.Errorf("%w: empty transcript", apperrors.ErrNoInputDetected)
	}

	return s.interpretTransaction(ctx, dto.SourceSpeech, text), nil
}

// PostBlock parses a reviewed block, appends the matching ledger row and its
// journal lines, then saves. If saving fails the rows stay appended and the
// response reports Saved=false alongside an ErrPersistence error.
func (s *PostingService) PostBlock(ctx context.Context, block string) (*dto.PostingResponse, error) {
	fields, err := s.formatter.Parse(block)
	if err != nil {
		return nil, err
	}
	if err := ValidateBlockFields(fields); err != nil {
		return nil, err
	}

	var (
		ledger domain.LedgerName
		record domain.Record
		lines  []domain.JournalLine
	)
	if fields[FieldInvoiceNumber] != "" {
		ledger, record, lines, err = s.invoicePosting(fields)
	} else {
		ledger, record, lines, err = s.transactionPosting(fields)
	}
	if err != nil {
		return nil, err
	}
	return s.post(ctx, ledger, record, lines)
}

// PostManual appends a manual form entry with status Completed, then saves.
func (s *PostingService) PostManual(ctx context.Context, req dto.ManualEntryRequest) (*dto.PostingResponse, error) {
	kind := domain.ResolveKind(req.Kind)
	if kind == domain.KindGeneral {
		return nil, fmt.Errorf("%w: kind must be sale, purchase or expense, got %q", apperrors.ErrValidation, req.Kind)
	}
	party := strings.TrimSpace(req.Party)
	if party == "" {
		return nil, fmt.Errorf("%w: party is required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	date := s.now()
	if req.Date != "" {
		d, err := time.Parse(domain.DateLayout, req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		date = d
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = party
	}

	loc := s.rules.Locale
	chart := loc.Chart
	amount := req.Amount.Round(2)
	record := domain.Record{
		domain.ColDate:        domain.FormatDate(date),
		domain.ColAmount:      amount.StringFixed(2),
		domain.ColDescription: description,
		domain.ColStatus:      loc.StatusCompleted,
	}

	var (
		ledger domain.LedgerName
		lines  []domain.JournalLine
	)
	switch kind {
	case domain.KindSale:
		ledger = domain.LedgerSales
		record[domain.ColCustomer] = party
		lines = []domain.JournalLine{
			domain.DebitLine(chart.AccountsReceivable, amount),
			domain.CreditLine(chart.SalesRevenue, amount),
		}
	case domain.KindPurchase:
		ledger = domain.LedgerPurchases
		record[domain.ColSupplier] = party
		lines = []domain.JournalLine{
			domain.DebitLine(chart.Purchases, amount),
			domain.CreditLine(chart.AccountsPayable, amount),
		}
	default:
		ledger = domain.LedgerExpenses
		expenseType := strings.TrimSpace(req.ExpenseType)
		debit := expenseType
		if expenseType == "" {
			expenseType = loc.GenericExpenseType
			debit = chart.GeneralExpenses
		}
		record[domain.ColType] = expenseType
		lines = []domain.JournalLine{
			domain.DebitLine(debit, amount),
			domain.CreditLine(chart.Bank, amount),
		}
	}
	return s.post(ctx, ledger, record, withDescription(lines, description))
}

func (s *PostingService) post(ctx context.Context, ledger domain.LedgerName, record domain.Record, lines []domain.JournalLine) (*dto.PostingResponse, error) {
	entry, err := s.ledger.Post(ledger, record, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to append ledger row", slog.String("ledger", string(ledger)))
		return nil, err
	}
	s.LogInfo(ctx, "Ledger row appended", slog.String("ledger", string(ledger)), slog.String("entry", entry))

	resp := &dto.PostingResponse{Ledger: ledger, EntryID: entry, Record: record.Clone()}
	if err := s.ledger.Save(ctx); err != nil {
		return resp, err
	}
	resp.Saved = true
	return resp, nil
}

func (s *PostingService) transactionPosting(fields map[string]string) (domain.LedgerName, domain.Record, []domain.JournalLine, error) {
	loc := s.rules.Locale
	chart := loc.Chart
	kind := domain.ResolveKind(fields[FieldTransactionType])

	amount, err := parseBlockAmount(fields, FieldAmount)
	if err != nil {
		return "", nil, nil, err
	}
	vat, err := parseBlockAmount(fields, FieldVATAmount)
	if err != nil {
		return "", nil, nil, err
	}
	date := fields[FieldDate]
	if date == "" {
		date = domain.FormatDate(s.now())
	}
	description := fields[FieldDescription]
	debit := orDefault(fields[FieldDebitAccount], chart.GeneralExpenses)
	credit := orDefault(fields[FieldCreditAccount], chart.Bank)

	record := domain.Record{
		domain.ColDate:        date,
		domain.ColAmount:      amount.StringFixed(2),
		domain.ColDescription: description,
		domain.ColStatus:      loc.StatusPending,
	}

	var (
		ledger domain.LedgerName
		lines  []domain.JournalLine
	)
	switch kind {
	case domain.KindSale:
		ledger = domain.LedgerSales
		record[domain.ColCustomer] = loc.CustomerPlaceholder
		debit = orDefault(fields[FieldDebitAccount], chart.AccountsReceivable)
		credit = orDefault(fields[FieldCreditAccount], chart.SalesRevenue)
		lines = []domain.JournalLine{
			domain.DebitLine(debit, amount.Add(vat)),
			domain.CreditLine(credit, amount),
		}
		if vat.IsPositive() {
			lines = append(lines, domain.CreditLine(chart.VATOutput, vat))
		}
	case domain.KindPurchase:
		ledger = domain.LedgerPurchases
		record[domain.ColSupplier] = loc.SupplierPlaceholder
		debit = orDefault(fields[FieldDebitAccount], chart.Purchases)
		credit = orDefault(fields[FieldCreditAccount], chart.AccountsPayable)
		lines = []domain.JournalLine{domain.DebitLine(debit, amount)}
		if vat.IsPositive() {
			lines = append(lines, domain.DebitLine(chart.VATInput, vat))
		}
		lines = append(lines, domain.CreditLine(credit, amount.Add(vat)))
	default:
		ledger = domain.LedgerExpenses
		record[domain.ColType] = debit
		lines = []domain.JournalLine{
			domain.DebitLine(debit, amount),
			domain.CreditLine(credit, amount),
		}
	}
	return ledger, record, withDescription(lines, description), nil
}

func (s *PostingService) invoicePosting(fields map[string]string) (domain.LedgerName, domain.Record, []domain.JournalLine, error) {
	loc := s.rules.Locale
	chart := loc.Chart

	total, err := parseBlockAmount(fields, FieldTotalAmount)
	if err != nil {
		return "", nil, nil, err
	}
	vat, err := parseBlockAmount(fields, FieldVATAmount)
	if err != nil {
		return "", nil, nil, err
	}
	date := fields[FieldDate]
	if date == "" {
		date = domain.FormatDate(s.now())
	}
	number := fields[FieldInvoiceNumber]

	record := domain.Record{
		domain.ColDate:        date,
		domain.ColSupplier:    orDefault(fields[FieldSupplier], loc.SupplierPlaceholder),
		domain.ColAmount:      total.StringFixed(2),
		domain.ColDescription: number,
		domain.ColStatus:      loc.StatusPending,
	}
	lines := []domain.JournalLine{domain.DebitLine(chart.Purchases, total)}
	if vat.IsPositive() {
		lines = append(lines, domain.DebitLine(chart.VATInput, vat))
	}
	lines = append(lines, domain.CreditLine(chart.AccountsPayable, total.Add(vat)))
	return domain.LedgerPurchases, record, withDescription(lines, number), nil
}

func parseBlockAmount(fields map[string]string, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(fields[key])
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", apperrors.ErrValidation, key, raw)
	}
	return v.Round(2), nil
}

func withDescription(lines []domain.JournalLine, description string) []domain.JournalLine {
	for i := range lines {
		lines[i].Description = description
	}
	return lines
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
