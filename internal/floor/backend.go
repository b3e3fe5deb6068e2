package floor

import (
	"context"

	"github.com/google/uuid"
)

// Backend is the operational API surface the core consumes. The transport
// implementation lives in internal/api; tests substitute a mock.
type Backend interface {
	FetchOverview(ctx context.Context) ([]OverviewRow, error)
	FetchMenu(ctx context.Context) ([]MenuCategory, error)
	FetchWaiters(ctx context.Context) ([]Waiter, error)
	SubmitOrder(ctx context.Context, tableID uuid.UUID, req OrderRequest) (OrderReceipt, error)
	FetchComandaDetail(ctx context.Context, id uuid.UUID) (*ComandaDetail, error)
	CloseComanda(ctx context.Context, id uuid.UUID) (*ComandaClose, error)
	FetchDayComandas(ctx context.Context) ([]DayComandaRow, error)
	FetchPendingPrintJobs(ctx context.Context) ([]PrintJob, error)
	MarkJobPrinted(ctx context.Context, id uuid.UUID) (*PrintJobUpdate, error)
}
