package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/dto"
	"github.com/SscSPs/smart_accounting/internal/handlers"
	"github.com/SscSPs/smart_accounting/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Snapshot() domain.Snapshot {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(domain.Snapshot)
}
func (m *MockLedgerService) Rows(ledger domain.LedgerName) ([]domain.Record, error) {
	args := m.Called(ledger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}
func (m *MockLedgerService) Summary(ledger domain.LedgerName) (domain.LedgerSummary, error) {
	args := m.Called(ledger)
	return args.Get(0).(domain.LedgerSummary), args.Error(1)
}
func (m *MockLedgerService) Append(ledger domain.LedgerName, record domain.Record) error {
	return m.Called(ledger, record).Error(0)
}
func (m *MockLedgerService) Post(ledger domain.LedgerName, record domain.Record, lines []domain.JournalLine) (string, error) {
	args := m.Called(ledger, record, lines)
	return args.String(0), args.Error(1)
}
func (m *MockLedgerService) Load(ctx context.Context) {
	m.Called(ctx)
}
func (m *MockLedgerService) Save(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) InterpretText(ctx context.Context, text string) (*dto.InterpretResponse, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InterpretResponse), args.Error(1)
}
func (m *MockPostingService) InterpretDocument(ctx context.Context, image []byte, filename string) (*dto.InterpretResponse, error) {
	args := m.Called(ctx, image, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InterpretResponse), args.Error(1)
}
func (m *MockPostingService) InterpretSpeech(ctx context.Context, audio []byte, filename string) (*dto.InterpretResponse, error) {
	args := m.Called(ctx, audio, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InterpretResponse), args.Error(1)
}
func (m *MockPostingService) PostBlock(ctx context.Context, block string) (*dto.PostingResponse, error) {
	args := m.Called(ctx, block)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostingResponse), args.Error(1)
}
func (m *MockPostingService) PostManual(ctx context.Context, req dto.ManualEntryRequest) (*dto.PostingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostingResponse), args.Error(1)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Run(ctx context.Context, snapshot domain.Snapshot) domain.AuditReport {
	return m.Called(ctx, snapshot).Get(0).(domain.AuditReport)
}

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) WorkbookXLSX(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockExportService) LedgerCSV(ctx context.Context, ledger domain.LedgerName) ([]byte, error) {
	args := m.Called(ctx, ledger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockExportService) AuditReportText(report domain.AuditReport) string {
	return m.Called(report).String(0)
}

// --- Mock ExternalFeedService ---
type MockExternalService struct {
	mock.Mock
}

func (m *MockExternalService) RefreshRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}
func (m *MockExternalService) Rates() []domain.ExchangeRate {
	return m.Called().Get(0).([]domain.ExchangeRate)
}
func (m *MockExternalService) TestConnections(ctx context.Context) ([]domain.ConnectionStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConnectionStatus), args.Error(1)
}

// --- Mock TaskRunner ---
type MockTaskRunner struct {
	mock.Mock
}

func (m *MockTaskRunner) Submit(kind domain.TaskKind, fn portssvc.TaskFunc) domain.Task {
	return m.Called(kind, fn).Get(0).(domain.Task)
}
func (m *MockTaskRunner) Get(id string) (domain.Task, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Task), args.Error(1)
}
func (m *MockTaskRunner) Shutdown(ctx context.Context) {
	m.Called(ctx)
}

var (
	_ portssvc.AuditSvc        = (*MockAuditService)(nil)
	_ portssvc.ExportSvc       = (*MockExportService)(nil)
	_ portssvc.ExternalFeedSvc = (*MockExternalService)(nil)
	_ portssvc.TaskRunnerSvc   = (*MockTaskRunner)(nil)
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	ledger   *MockLedgerService
	posting  *MockPostingService
	audit    *MockAuditService
	export   *MockExportService
	external *MockExternalService
	tasks    *MockTaskRunner
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) testConfig() *config.Config {
	return &config.Config{
		IsProduction: true,
		JWTSecret:    suite.jwtSecret,
		CORSOrigins:  []string{"*"},
	}
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.ledger = new(MockLedgerService)
	suite.posting = new(MockPostingService)
	suite.audit = new(MockAuditService)
	suite.export = new(MockExportService)
	suite.external = new(MockExternalService)
	suite.tasks = new(MockTaskRunner)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.testConfig(), suite.container())
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.ledger.AssertExpectations(suite.T())
	suite.posting.AssertExpectations(suite.T())
	suite.audit.AssertExpectations(suite.T())
	suite.export.AssertExpectations(suite.T())
	suite.external.AssertExpectations(suite.T())
	suite.tasks.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) container() *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:   suite.ledger,
		Posting:  suite.posting,
		Audit:    suite.audit,
		Export:   suite.export,
		External: suite.external,
		Tasks:    suite.tasks,
	}
}

// generateTestToken creates a signed HS256 token for subject.
func (suite *HandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "smart-accounting-test",
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) do(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("tester"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return suite.do(req)
}

func (suite *HandlerTestSuite) doUpload(path, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		suite.Require().NoError(err)
		_, err = part.Write(content)
		suite.Require().NoError(err)
	} else {
		suite.Require().NoError(mw.WriteField("note", "no file"))
	}
	suite.Require().NoError(mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return suite.do(req)
}

func decodeBody[T any](suite *HandlerTestSuite, w *httptest.ResponseRecorder) T {
	var out T
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestAuthRequired() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/external/rates", nil))
	suite.Equal(http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/external/rates", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/postings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
	suite.Contains(w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	suite.Contains(strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), "authorization")
}

func (suite *HandlerTestSuite) TestCORSHeadersOnRequest() {
	suite.external.On("Rates").Return([]domain.ExchangeRate{}).Once()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/external/rates", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := suite.do(req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *HandlerTestSuite) TestInterpretText_Success() {
	amount := decimal.NewFromInt(1500)
	resp := &dto.InterpretResponse{
		Source:      dto.SourceText,
		RawText:     "sold goods 1500",
		Transaction: &domain.Transaction{Kind: domain.KindSale, Amount: amount},
		Block:       "=== Sale Transaction ===",
	}
	suite.posting.On("InterpretText", mock.Anything, "sold goods 1500").Return(resp, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/interpret/text", dto.InterpretTextRequest{Text: "sold goods 1500"})

	suite.Equal(http.StatusOK, w.Code)
	got := decodeBody[dto.InterpretResponse](suite, w)
	suite.Equal(resp.Block, got.Block)
	suite.Require().NotNil(got.Transaction)
	suite.Equal(domain.KindSale, got.Transaction.Kind)
	suite.True(amount.Equal(got.Transaction.Amount))
}

func (suite *HandlerTestSuite) TestInterpretText_BindingFailure() {
	w := suite.doJSON(http.MethodPost, "/api/v1/interpret/text", map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.posting.AssertNotCalled(suite.T(), "InterpretText", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestInterpretDocument() {
	image := []byte("fake-png")
	resp := &dto.InterpretResponse{Source: dto.SourceDocument, Invoice: &domain.Invoice{InvoiceNumber: "INV-20240210-001"}}
	suite.posting.On("InterpretDocument", mock.Anything, image, "scan.png").Return(resp, nil).Once()

	w := suite.doUpload("/api/v1/interpret/document", "scan.png", image)

	suite.Equal(http.StatusOK, w.Code)
	got := decodeBody[dto.InterpretResponse](suite, w)
	suite.Require().NotNil(got.Invoice)
	suite.Equal("INV-20240210-001", got.Invoice.InvoiceNumber)
}

func (suite *HandlerTestSuite) TestInterpretDocument_Errors() {
	w := suite.doUpload("/api/v1/interpret/document", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.posting.On("InterpretDocument", mock.Anything, mock.Anything, "scan.png").
		Return(nil, fmt.Errorf("%w: tesseract exited 1", apperrors.ErrExtraction)).Once()
	w = suite.doUpload("/api/v1/interpret/document", "scan.png", []byte("x"))
	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *HandlerTestSuite) TestInterpretSpeech_NoInput() {
	suite.posting.On("InterpretSpeech", mock.Anything, []byte("silence"), "clip.wav").
		Return(nil, apperrors.ErrNoInputDetected).Once()

	w := suite.doUpload("/api/v1/interpret/speech", "clip.wav", []byte("silence"))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestPostBlock() {
	block := "=== Sale Transaction ===\nAmount: 1500"
	resp := &dto.PostingResponse{Ledger: domain.LedgerSales, EntryID: "JV-2024-0001", Saved: true}
	suite.posting.On("PostBlock", mock.Anything, block).Return(resp, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/postings", dto.PostBlockRequest{Block: block})

	suite.Equal(http.StatusCreated, w.Code)
	got := decodeBody[dto.PostingResponse](suite, w)
	suite.Equal("JV-2024-0001", got.EntryID)
	suite.True(got.Saved)
}

func (suite *HandlerTestSuite) TestPostBlock_NoBanner() {
	suite.posting.On("PostBlock", mock.Anything, "hello").Return(nil, apperrors.ErrNoTransactionBlock).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/postings", dto.PostBlockRequest{Block: "hello"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPostBlock_SaveFailure() {
	resp := &dto.PostingResponse{Ledger: domain.LedgerSales, EntryID: "JV-2024-0001", Saved: false}
	suite.posting.On("PostBlock", mock.Anything, "block").
		Return(resp, fmt.Errorf("%w: disk full", apperrors.ErrPersistence)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/postings", dto.PostBlockRequest{Block: "block"})

	suite.Equal(http.StatusInternalServerError, w.Code)
	got := decodeBody[map[string]json.RawMessage](suite, w)
	suite.Contains(got, "posting")
	suite.Contains(got, "error")
}

func (suite *HandlerTestSuite) TestPostManual() {
	req := dto.ManualEntryRequest{Kind: "sale", Date: "2024-03-01", Party: "Customer A", Amount: decimal.NewFromInt(2500)}
	resp := &dto.PostingResponse{Ledger: domain.LedgerSales, EntryID: "JV-2024-0001", Saved: true}
	suite.posting.On("PostManual", mock.Anything, mock.MatchedBy(func(r dto.ManualEntryRequest) bool {
		return r.Kind == "sale" && r.Party == "Customer A" && r.Amount.Equal(decimal.NewFromInt(2500))
	})).Return(resp, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/postings/manual", req)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestPostManual_Validation() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown kind", map[string]any{"kind": "transfer", "party": "X", "amount": 10}},
		{"missing party", map[string]any{"kind": "sale", "amount": 10}},
		{"bad date", map[string]any{"kind": "sale", "party": "X", "amount": 10, "date": "01/03/2024"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.doJSON(http.MethodPost, "/api/v1/postings/manual", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.posting.AssertNotCalled(suite.T(), "PostManual", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListLedgers() {
	for _, l := range domain.Ledgers() {
		suite.ledger.On("Summary", l).Return(domain.LedgerSummary{Ledger: l, Count: 1, Total: decimal.NewFromInt(10)}, nil).Once()
	}

	w := suite.doJSON(http.MethodGet, "/api/v1/ledgers", nil)

	suite.Equal(http.StatusOK, w.Code)
	got := decodeBody[dto.ListLedgersResponse](suite, w)
	suite.Len(got.Ledgers, len(domain.Ledgers()))
	suite.Equal(domain.LedgerSales, got.Ledgers[0].Ledger)
}

func (suite *HandlerTestSuite) TestGetLedger() {
	rows := []domain.Record{{domain.ColDate: "2024-03-01", domain.ColCustomer: "A", domain.ColAmount: "100"}}
	suite.ledger.On("Rows", domain.LedgerSales).Return(rows, nil).Once()
	suite.ledger.On("Summary", domain.LedgerSales).Return(domain.LedgerSummary{Ledger: domain.LedgerSales, Count: 1, Total: decimal.NewFromInt(100)}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/ledgers/sales", nil)

	suite.Equal(http.StatusOK, w.Code)
	got := decodeBody[dto.LedgerResponse](suite, w)
	suite.Equal(domain.LedgerSales, got.Ledger)
	suite.Equal(domain.LedgerSales.Columns(), got.Columns)
	suite.Equal(rows, got.Rows)
}

func (suite *HandlerTestSuite) TestGetLedger_CSVAndUnknown() {
	suite.export.On("LedgerCSV", mock.Anything, domain.LedgerExpenses).Return([]byte("Date,Type\n"), nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/ledgers/Expenses?format=csv", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	suite.Contains(w.Header().Get("Content-Disposition"), "Expenses.csv")
	suite.Equal("Date,Type\n", w.Body.String())

	w = suite.doJSON(http.MethodGet, "/api/v1/ledgers/Payroll", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestAppendRow() {
	record := domain.Record{domain.ColName: "Customer A", domain.ColEmail: "a@example.com"}
	suite.ledger.On("Append", domain.LedgerCustomers, record).Return(nil).Once()
	suite.ledger.On("Save", mock.Anything).Return(nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/ledgers/Customers/rows", dto.AppendRowRequest{Record: record})

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestAppendRow_UnknownColumn() {
	record := domain.Record{"Nickname": "A"}
	suite.ledger.On("Append", domain.LedgerCustomers, record).
		Return(fmt.Errorf("%w: unknown column Nickname", apperrors.ErrValidation)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/ledgers/Customers/rows", dto.AppendRowRequest{Record: record})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledger.AssertNotCalled(suite.T(), "Save", mock.Anything)
}

func (suite *HandlerTestSuite) TestSaveLedgers() {
	suite.ledger.On("Save", mock.Anything).Return(nil).Once()
	w := suite.doJSON(http.MethodPost, "/api/v1/ledgers/save", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	suite.ledger.On("Save", mock.Anything).Return(fmt.Errorf("%w: permission denied", apperrors.ErrPersistence)).Once()
	w = suite.doJSON(http.MethodPost, "/api/v1/ledgers/save", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlerTestSuite) TestLoadLedgers() {
	suite.ledger.On("Load", mock.Anything).Return().Once()
	for _, l := range domain.Ledgers() {
		suite.ledger.On("Summary", l).Return(domain.LedgerSummary{Ledger: l}, nil).Once()
	}

	w := suite.doJSON(http.MethodPost, "/api/v1/ledgers/load", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestExportWorkbook() {
	suite.export.On("WorkbookXLSX", mock.Anything).Return([]byte("PK"), nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/export/workbook", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), ".xlsx")
	suite.Equal("PK", w.Body.String())
}

func (suite *HandlerTestSuite) TestStartAudit() {
	snapshot := domain.Snapshot{domain.LedgerSales: domain.NewTable(domain.LedgerSales)}
	report := domain.AuditReport{ID: "r1", Status: domain.AuditClean}
	suite.ledger.On("Snapshot").Return(snapshot).Once()
	suite.audit.On("Run", mock.Anything, snapshot).Return(report).Once()

	var result any
	suite.tasks.On("Submit", domain.TaskAudit, mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(portssvc.TaskFunc)
			result, _ = fn(context.Background())
		}).
		Return(domain.Task{ID: "task-1", Kind: domain.TaskAudit, State: domain.TaskPending}).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/audits", nil)

	suite.Equal(http.StatusAccepted, w.Code)
	got := decodeBody[dto.TaskAcceptedResponse](suite, w)
	suite.Equal("task-1", got.TaskID)
	suite.Equal(domain.TaskPending, got.State)
	suite.Equal(report, result)
}

func (suite *HandlerTestSuite) TestGetTask() {
	suite.tasks.On("Get", "task-1").Return(domain.Task{ID: "task-1", Kind: domain.TaskRefreshRates, State: domain.TaskDone}, nil).Once()
	suite.tasks.On("Get", "missing").Return(domain.Task{}, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/tasks/task-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	got := decodeBody[domain.Task](suite, w)
	suite.Equal(domain.TaskDone, got.State)

	w = suite.doJSON(http.MethodGet, "/api/v1/tasks/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestAuditReport() {
	report := domain.AuditReport{ID: "r1", Status: domain.AuditClean}
	finished := time.Now()
	suite.tasks.On("Get", "done").Return(domain.Task{ID: "done", Kind: domain.TaskAudit, State: domain.TaskDone, FinishedAt: &finished, Result: report}, nil).Once()
	suite.tasks.On("Get", "running").Return(domain.Task{ID: "running", Kind: domain.TaskAudit, State: domain.TaskRunning}, nil).Once()
	suite.tasks.On("Get", "refresh").Return(domain.Task{ID: "refresh", Kind: domain.TaskRefreshRates, State: domain.TaskDone}, nil).Once()
	suite.tasks.On("Get", "failed").Return(domain.Task{ID: "failed", Kind: domain.TaskAudit, State: domain.TaskFailed, Error: "boom"}, nil).Once()
	suite.export.On("AuditReportText", report).Return("Audit Report\n").Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/audits/done/report", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Audit Report\n", w.Body.String())

	w = suite.doJSON(http.MethodGet, "/api/v1/audits/running/report", nil)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.doJSON(http.MethodGet, "/api/v1/audits/refresh/report", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.doJSON(http.MethodGet, "/api/v1/audits/failed/report", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlerTestSuite) TestExternal() {
	rates := []domain.ExchangeRate{{Base: "SAR", Quote: "USD", Rate: decimal.RequireFromString("0.2667")}}
	suite.external.On("Rates").Return(rates).Once()
	suite.tasks.On("Submit", domain.TaskRefreshRates, mock.Anything).
		Return(domain.Task{ID: "t-refresh", Kind: domain.TaskRefreshRates, State: domain.TaskPending}).Once()
	suite.tasks.On("Submit", domain.TaskTestConnections, mock.Anything).
		Return(domain.Task{ID: "t-test", Kind: domain.TaskTestConnections, State: domain.TaskPending}).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/external/rates", nil)
	suite.Equal(http.StatusOK, w.Code)
	got := decodeBody[dto.RatesResponse](suite, w)
	suite.Require().Len(got.Rates, 1)
	suite.Equal("USD", got.Rates[0].Quote)

	w = suite.doJSON(http.MethodPost, "/api/v1/external/refresh", nil)
	suite.Equal(http.StatusAccepted, w.Code)
	suite.Equal("t-refresh", decodeBody[dto.TaskAcceptedResponse](suite, w).TaskID)

	w = suite.doJSON(http.MethodPost, "/api/v1/external/test", nil)
	suite.Equal(http.StatusAccepted, w.Code)
	suite.Equal("t-test", decodeBody[dto.TaskAcceptedResponse](suite, w).TaskID)
}

func (suite *HandlerTestSuite) TestRateLimit() {
	cfg := suite.testConfig()
	cfg.RateLimit = "1-M"
	router := gin.New()
	handlers.RegisterRoutes(router, cfg, suite.container())
	suite.external.On("Rates").Return([]domain.ExchangeRate{}).Once()

	token := suite.generateTestToken("tester")
	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/external/rates", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	suite.Equal([]int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
