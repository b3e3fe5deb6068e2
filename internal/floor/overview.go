package floor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// OverviewBoard holds the live floor view: every table with either a free
// marker or an open-comanda digest. Each Refresh replaces the whole
// collection; there is no incremental diffing and no sequence guard, so the
// last response to resolve wins even if it was issued earlier. That is an
// accepted source of staleness under network reordering.
type OverviewBoard struct {
	mu      sync.RWMutex
	rows    []OverviewRow
	lastErr error
	loaded  bool
	closed  bool

	backend Backend
	logger  apt.Logger
}

func NewOverviewBoard(backend Backend, logger apt.Logger) *OverviewBoard {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &OverviewBoard{
		backend: backend,
		logger:  logger,
	}
}

// Refresh fetches the current overview and replaces the collection. On
// failure the last-known rows stay visible and the error is recorded as a
// retryable state; the next tick or a manual refresh clears it.
func (b *OverviewBoard) Refresh(ctx context.Context) error {
	rows, err := b.backend.FetchOverview(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		// View torn down while the request was in flight; drop the result.
		return nil
	}
	if err != nil {
		b.lastErr = err
		b.logger.Error("overview fetch failed", "error", err)
		return fmt.Errorf("fetch overview: %w", err)
	}
	b.rows = rows
	b.lastErr = nil
	b.loaded = true
	b.logger.Debug("overview refreshed", "tables", len(rows))
	return nil
}

// Poll returns the fixed-interval loop for this board. Errors are already
// recorded on the board, so ticks discard the return value.
func (b *OverviewBoard) Poll(interval time.Duration) *Poller {
	return NewPoller(interval, func(ctx context.Context) {
		_ = b.Refresh(ctx)
	})
}

// Rows returns a copy of the last successfully fetched collection.
func (b *OverviewBoard) Rows() []OverviewRow {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]OverviewRow, len(b.rows))
	copy(out, b.rows)
	return out
}

// Row finds the entry for one table.
func (b *OverviewBoard) Row(tableID uuid.UUID) (OverviewRow, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, r := range b.rows {
		if r.Table.ID == tableID {
			return r, true
		}
	}
	return OverviewRow{}, false
}

// OpenCount reports how many tables currently have an open comanda.
func (b *OverviewBoard) OpenCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, r := range b.rows {
		if r.ComandaOpen != nil {
			n++
		}
	}
	return n
}

// LastError returns the error recorded by the most recent failed refresh,
// or nil after a success.
func (b *OverviewBoard) LastError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastErr
}

// Loaded reports whether at least one refresh has succeeded.
func (b *OverviewBoard) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Close marks the board torn down. Responses resolving afterwards are
// discarded instead of mutating dead state.
func (b *OverviewBoard) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
