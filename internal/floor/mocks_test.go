package floor

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockBackend is a mock implementation of Backend for testing. Each method
// delegates to an overridable func field and counts its calls.
type MockBackend struct {
	mu sync.Mutex

	FetchOverviewFunc         func(ctx context.Context) ([]OverviewRow, error)
	FetchMenuFunc             func(ctx context.Context) ([]MenuCategory, error)
	FetchWaitersFunc          func(ctx context.Context) ([]Waiter, error)
	SubmitOrderFunc           func(ctx context.Context, tableID uuid.UUID, req OrderRequest) (OrderReceipt, error)
	FetchComandaDetailFunc    func(ctx context.Context, id uuid.UUID) (*ComandaDetail, error)
	CloseComandaFunc          func(ctx context.Context, id uuid.UUID) (*ComandaClose, error)
	FetchDayComandasFunc      func(ctx context.Context) ([]DayComandaRow, error)
	FetchPendingPrintJobsFunc func(ctx context.Context) ([]PrintJob, error)
	MarkJobPrintedFunc        func(ctx context.Context, id uuid.UUID) (*PrintJobUpdate, error)

	overviewCalls  int
	menuCalls      int
	waitersCalls   int
	submitCalls    int
	detailCalls    int
	closeCalls     int
	dayCalls       int
	printJobsCalls int
	markCalls      int
}

func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (m *MockBackend) count(field *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*field++
}

func (m *MockBackend) OverviewCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overviewCalls
}

func (m *MockBackend) SubmitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitCalls
}

func (m *MockBackend) PrintJobsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.printJobsCalls
}

func (m *MockBackend) NetworkCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overviewCalls + m.menuCalls + m.waitersCalls + m.submitCalls +
		m.detailCalls + m.closeCalls + m.dayCalls + m.printJobsCalls + m.markCalls
}

func (m *MockBackend) FetchOverview(ctx context.Context) ([]OverviewRow, error) {
	m.count(&m.overviewCalls)
	if m.FetchOverviewFunc != nil {
		return m.FetchOverviewFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) FetchMenu(ctx context.Context) ([]MenuCategory, error) {
	m.count(&m.menuCalls)
	if m.FetchMenuFunc != nil {
		return m.FetchMenuFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) FetchWaiters(ctx context.Context) ([]Waiter, error) {
	m.count(&m.waitersCalls)
	if m.FetchWaitersFunc != nil {
		return m.FetchWaitersFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) SubmitOrder(ctx context.Context, tableID uuid.UUID, req OrderRequest) (OrderReceipt, error) {
	m.count(&m.submitCalls)
	if m.SubmitOrderFunc != nil {
		return m.SubmitOrderFunc(ctx, tableID, req)
	}
	return OrderReceipt{ComandaID: uuid.New(), OrderID: uuid.New()}, nil
}

func (m *MockBackend) FetchComandaDetail(ctx context.Context, id uuid.UUID) (*ComandaDetail, error) {
	m.count(&m.detailCalls)
	if m.FetchComandaDetailFunc != nil {
		return m.FetchComandaDetailFunc(ctx, id)
	}
	return &ComandaDetail{}, nil
}

func (m *MockBackend) CloseComanda(ctx context.Context, id uuid.UUID) (*ComandaClose, error) {
	m.count(&m.closeCalls)
	if m.CloseComandaFunc != nil {
		return m.CloseComandaFunc(ctx, id)
	}
	return &ComandaClose{ID: id, Status: ComandaClosed}, nil
}

func (m *MockBackend) FetchDayComandas(ctx context.Context) ([]DayComandaRow, error) {
	m.count(&m.dayCalls)
	if m.FetchDayComandasFunc != nil {
		return m.FetchDayComandasFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) FetchPendingPrintJobs(ctx context.Context) ([]PrintJob, error) {
	m.count(&m.printJobsCalls)
	if m.FetchPendingPrintJobsFunc != nil {
		return m.FetchPendingPrintJobsFunc(ctx)
	}
	return nil, nil
}

func (m *MockBackend) MarkJobPrinted(ctx context.Context, id uuid.UUID) (*PrintJobUpdate, error) {
	m.count(&m.markCalls)
	if m.MarkJobPrintedFunc != nil {
		return m.MarkJobPrintedFunc(ctx, id)
	}
	return &PrintJobUpdate{ID: id, Status: PrintPrinted}, nil
}

// MockIdentityStore is an in-memory IdentityStore for testing.
type MockIdentityStore struct {
	mu      sync.Mutex
	ident   Identity
	present bool

	LoadFunc  func() (Identity, bool, error)
	SaveFunc  func(ident Identity) error
	ClearFunc func() error

	saveCalls  int
	clearCalls int
}

func NewMockIdentityStore() *MockIdentityStore {
	return &MockIdentityStore{}
}

func (m *MockIdentityStore) Load() (Identity, bool, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ident, m.present, nil
}

func (m *MockIdentityStore) Save(ident Identity) error {
	m.mu.Lock()
	m.saveCalls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ident)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ident = ident
	m.present = true
	return nil
}

func (m *MockIdentityStore) Clear() error {
	m.mu.Lock()
	m.clearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ident = Identity{}
	m.present = false
	return nil
}

// menuWith builds a loaded MenuState without touching the backend.
func menuWith(categories ...MenuCategory) *MenuState {
	m := NewMenuState(NewMockBackend(), nil)
	m.categories = categories
	m.loaded = true
	return m
}
