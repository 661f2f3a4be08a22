package services_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/SscSPs/smart_accounting/internal/adapters/storage"
	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/SscSPs/smart_accounting/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock TableStore ---
type MockTableStore struct {
	mock.Mock
}

func (m *MockTableStore) LoadTable(ctx context.Context, ledger domain.LedgerName) (domain.Table, error) {
	args := m.Called(ctx, ledger)
	return args.Get(0).(domain.Table), args.Error(1)
}

func (m *MockTableStore) SaveTables(ctx context.Context, tables []domain.Table) error {
	args := m.Called(ctx, tables)
	return args.Error(0)
}

func (m *MockTableStore) Kind() string {
	return "mock"
}

// memTableStore keeps saved tables in memory.
type memTableStore struct {
	mu     sync.Mutex
	tables map[domain.LedgerName]domain.Table
	saves  int
}

func newMemTableStore() *memTableStore {
	return &memTableStore{tables: make(map[domain.LedgerName]domain.Table)}
}

func (m *memTableStore) LoadTable(_ context.Context, ledger domain.LedgerName) (domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[ledger]
	if !ok {
		return domain.Table{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, ledger)
	}
	return t.Clone(), nil
}

func (m *memTableStore) SaveTables(_ context.Context, tables []domain.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tables {
		m.tables[t.Name] = t.Clone()
	}
	m.saves++
	return nil
}

func (m *memTableStore) Kind() string { return "memory" }

func saleRecord(amount, desc string) domain.Record {
	return domain.Record{
		domain.ColDate:        "2024-03-01",
		domain.ColCustomer:    "عميل",
		domain.ColAmount:      amount,
		domain.ColDescription: desc,
		domain.ColStatus:      "معلقة",
	}
}

// --- Test Suite ---
type LedgerStoreTestSuite struct {
	suite.Suite
	mem   *memTableStore
	store *services.LedgerStore
}

func (suite *LedgerStoreTestSuite) SetupTest() {
	suite.mem = newMemTableStore()
	suite.store = services.NewLedgerStore(suite.mem)
}

func (suite *LedgerStoreTestSuite) TestSaveLoad_RoundTripPreservesOrder() {
	ctx := context.Background()
	suite.Require().NoError(suite.store.Append(domain.LedgerSales, saleRecord("100.00", "first")))
	suite.Require().NoError(suite.store.Append(domain.LedgerSales, saleRecord("200.00", "second")))
	suite.Require().NoError(suite.store.Append(domain.LedgerSales, saleRecord("300.00", "third")))
	suite.Require().NoError(suite.store.Save(ctx))

	reloaded := services.NewLedgerStore(suite.mem)
	reloaded.Load(ctx)

	rows, err := reloaded.Rows(domain.LedgerSales)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal("first", rows[0][domain.ColDescription])
	suite.Equal("second", rows[1][domain.ColDescription])
	suite.Equal("third", rows[2][domain.ColDescription])
	suite.Equal("200.00", rows[1][domain.ColAmount])
}

func (suite *LedgerStoreTestSuite) TestAppend_NoDuplicateCheck() {
	rec := saleRecord("50", "same")
	suite.Require().NoError(suite.store.Append(domain.LedgerSales, rec))
	suite.Require().NoError(suite.store.Append(domain.LedgerSales, rec))

	rows, err := suite.store.Rows(domain.LedgerSales)
	suite.Require().NoError(err)
	suite.Len(rows, 2)
}

func (suite *LedgerStoreTestSuite) TestAppend_FillsMissingColumns() {
	suite.Require().NoError(suite.store.Append(domain.LedgerExpenses, domain.Record{domain.ColAmount: "10"}))

	rows, err := suite.store.Rows(domain.LedgerExpenses)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Len(rows[0], len(domain.LedgerExpenses.Columns()))
	suite.Equal("", rows[0][domain.ColType])
}

func (suite *LedgerStoreTestSuite) TestAppend_RejectsUnknownColumn() {
	err := suite.store.Append(domain.LedgerSales, domain.Record{"Colour": "red"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	rows, _ := suite.store.Rows(domain.LedgerSales)
	suite.Empty(rows)
}

func (suite *LedgerStoreTestSuite) TestAppend_RejectsUnknownLedger() {
	err := suite.store.Append(domain.LedgerName("Payroll"), domain.Record{})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerStoreTestSuite) TestAppend_RejectsBlankRow() {
	for name, rec := range map[string]domain.Record{
		"empty":      {},
		"whitespace": {domain.ColCustomer: "  ", domain.ColAmount: "\t"},
	} {
		err := suite.store.Append(domain.LedgerSales, rec)
		suite.ErrorIs(err, apperrors.ErrValidation, name)
	}
	rows, _ := suite.store.Rows(domain.LedgerSales)
	suite.Empty(rows)
}

func (suite *LedgerStoreTestSuite) TestSaveLoad_SparseRowsSurviveWorkbook() {
	ctx := context.Background()
	xlsx := storage.NewXLSXStore(filepath.Join(suite.T().TempDir(), "ledgers.xlsx"))
	store := services.NewLedgerStore(xlsx)
	suite.Require().NoError(store.Append(domain.LedgerExpenses, domain.Record{domain.ColAmount: "5"}))
	suite.Require().NoError(store.Append(domain.LedgerExpenses, domain.Record{domain.ColDescription: "only a note"}))
	suite.Require().NoError(store.Save(ctx))

	reloaded := services.NewLedgerStore(xlsx)
	reloaded.Load(ctx)

	before, _ := store.Rows(domain.LedgerExpenses)
	after, _ := reloaded.Rows(domain.LedgerExpenses)
	suite.Require().Len(after, 2)
	suite.Equal(before, after)
}

func (suite *LedgerStoreTestSuite) TestRows_UnknownLedger() {
	_, err := suite.store.Rows(domain.LedgerName("Payroll"))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerStoreTestSuite) TestPost_AssignsSequentialEntryIDs() {
	lines := []domain.JournalLine{
		domain.DebitLine("حساب المدينين", decimal.NewFromInt(100)),
		domain.CreditLine("إيرادات المبيعات", decimal.NewFromInt(100)),
	}
	rec := saleRecord("100.00", "x")
	rec[domain.ColDate] = "2023-05-10"

	first, err := suite.store.Post(domain.LedgerSales, rec, lines)
	suite.Require().NoError(err)
	second, err := suite.store.Post(domain.LedgerSales, rec, lines)
	suite.Require().NoError(err)

	suite.Equal("JV-2023-0001", first)
	suite.Equal("JV-2023-0002", second)

	journal, err := suite.store.Rows(domain.LedgerJournal)
	suite.Require().NoError(err)
	suite.Require().Len(journal, 4)
	suite.Equal("JV-2023-0001", journal[0][domain.ColEntry])
	suite.Equal("2023-05-10", journal[0][domain.ColDate])
	suite.Equal("100.00", journal[0][domain.ColDebit])
	suite.Equal("0.00", journal[0][domain.ColCredit])
	suite.Equal("JV-2023-0002", journal[3][domain.ColEntry])
}

func (suite *LedgerStoreTestSuite) TestPost_RejectedRecordAppendsNothing() {
	_, err := suite.store.Post(domain.LedgerSales, domain.Record{"Bogus": "1"}, []domain.JournalLine{domain.DebitLine("x", decimal.NewFromInt(1))})
	suite.ErrorIs(err, apperrors.ErrValidation)

	journal, _ := suite.store.Rows(domain.LedgerJournal)
	suite.Empty(journal)
}

func (suite *LedgerStoreTestSuite) TestSummary() {
	suite.Require().NoError(suite.store.Append(domain.LedgerSales, saleRecord("100.50", "a")))
	suite.Require().NoError(suite.store.Append(domain.LedgerSales, saleRecord("200", "b")))
	suite.Require().NoError(suite.store.Append(domain.LedgerSales, saleRecord("n/a", "c")))

	sum, err := suite.store.Summary(domain.LedgerSales)
	suite.Require().NoError(err)
	suite.Equal(3, sum.Count)
	suite.True(decimal.RequireFromString("300.50").Equal(sum.Total))
}

func (suite *LedgerStoreTestSuite) TestSnapshot_IsDeepCopy() {
	suite.Require().NoError(suite.store.Append(domain.LedgerSales, saleRecord("1", "a")))

	snap := suite.store.Snapshot()
	snap[domain.LedgerSales].Rows[0][domain.ColAmount] = "999"

	rows, _ := suite.store.Rows(domain.LedgerSales)
	suite.Equal("1", rows[0][domain.ColAmount])
	suite.Len(snap, len(domain.Ledgers()))
}

func TestLedgerStoreTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerStoreTestSuite))
}

func TestLedgerStore_LoadFailureKeepsInMemoryTables(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockTableStore)
	store := services.NewLedgerStore(mockStore)
	assert.NoError(t, store.Append(domain.LedgerSales, saleRecord("10", "kept")))

	mockStore.On("LoadTable", ctx, domain.LedgerSales).Return(domain.Table{}, assert.AnError).Once()
	mockStore.On("LoadTable", ctx, domain.LedgerPurchases).Return(domain.Table{
		Name:    domain.LedgerPurchases,
		Columns: []string{"Foo", "Bar"},
		Rows:    []domain.Record{{"Foo": "1"}},
	}, nil).Once()
	mockStore.On("LoadTable", ctx, mock.Anything).Return(domain.Table{}, assert.AnError)

	store.Load(ctx)

	rows, err := store.Rows(domain.LedgerSales)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "kept", rows[0][domain.ColDescription])

	purchases, _ := store.Rows(domain.LedgerPurchases)
	assert.Empty(t, purchases)
	mockStore.AssertNumberOfCalls(t, "LoadTable", len(domain.Ledgers()))
}

// gatedTableStore pauses LoadTable for one ledger until released.
type gatedTableStore struct {
	*memTableStore
	gate     domain.LedgerName
	entered  chan struct{}
	released chan struct{}
}

func (g *gatedTableStore) LoadTable(ctx context.Context, ledger domain.LedgerName) (domain.Table, error) {
	if ledger == g.gate {
		close(g.entered)
		<-g.released
	}
	return g.memTableStore.LoadTable(ctx, ledger)
}

func TestLedgerStore_LoadIsAtomicWithPost(t *testing.T) {
	ctx := context.Background()
	mem := newMemTableStore()
	empty := make([]domain.Table, 0, len(domain.Ledgers()))
	for _, l := range domain.Ledgers() {
		empty = append(empty, domain.NewTable(l))
	}
	require.NoError(t, mem.SaveTables(ctx, empty))

	gated := &gatedTableStore{
		memTableStore: mem,
		gate:          domain.LedgerJournal,
		entered:       make(chan struct{}),
		released:      make(chan struct{}),
	}
	store := services.NewLedgerStore(gated)

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.Load(ctx)
	}()
	<-gated.entered

	lines := []domain.JournalLine{
		domain.DebitLine("Accounts Receivable", decimal.NewFromInt(10)),
		domain.CreditLine("Sales Revenue", decimal.NewFromInt(10)),
	}
	_, err := store.Post(domain.LedgerSales, saleRecord("10.00", "mid-load"), lines)
	require.NoError(t, err)

	close(gated.released)
	<-done

	sales, _ := store.Rows(domain.LedgerSales)
	journal, _ := store.Rows(domain.LedgerJournal)
	assert.Empty(t, sales)
	assert.Empty(t, journal, "a reload must not keep half of a posting")
}

func TestLedgerStore_SaveFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockTableStore)
	store := services.NewLedgerStore(mockStore)
	assert.NoError(t, store.Append(domain.LedgerSales, saleRecord("10", "x")))

	mockStore.On("SaveTables", ctx, mock.MatchedBy(func(tables []domain.Table) bool {
		return len(tables) == len(domain.Ledgers()) && tables[0].Name == domain.LedgerSales && len(tables[0].Rows) == 1
	})).Return(assert.AnError).Once()

	err := store.Save(ctx)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)

	rows, _ := store.Rows(domain.LedgerSales)
	assert.Len(t, rows, 1)
	mockStore.AssertExpectations(t)
}
