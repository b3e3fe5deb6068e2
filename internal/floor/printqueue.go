package floor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// PrintQueue tracks PENDING kitchen print jobs. It polls on its own interval
// instance, independent of the overview loop, and applies the same
// full-replace, stale-on-failure policy. Job payloads are order-time
// snapshots and are shown as received.
type PrintQueue struct {
	mu      sync.RWMutex
	jobs    []PrintJob
	lastErr error
	loaded  bool
	closed  bool

	backend  Backend
	notifier *Notifier
	logger   apt.Logger
}

func NewPrintQueue(backend Backend, notifier *Notifier, logger apt.Logger) *PrintQueue {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &PrintQueue{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
	}
}

// Refresh replaces the pending set with the server's current one.
func (q *PrintQueue) Refresh(ctx context.Context) error {
	jobs, err := q.backend.FetchPendingPrintJobs(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	if err != nil {
		q.lastErr = err
		q.logger.Error("print queue fetch failed", "error", err)
		return fmt.Errorf("fetch print jobs: %w", err)
	}
	q.jobs = jobs
	q.lastErr = nil
	q.loaded = true
	return nil
}

// Poll returns the fixed-interval loop for this queue.
func (q *PrintQueue) Poll(interval time.Duration) *Poller {
	return NewPoller(interval, func(ctx context.Context) {
		_ = q.Refresh(ctx)
	})
}

// MarkPrinted acknowledges one job (PENDING -> PRINTED, one-way) and
// immediately re-fetches the pending set. Jobs are acknowledged one by one;
// there is no batch operation.
func (q *PrintQueue) MarkPrinted(ctx context.Context, id uuid.UUID) error {
	update, err := q.backend.MarkJobPrinted(ctx, id)
	if err != nil {
		q.logger.Error("cannot mark job printed", "job_id", id.String(), "error", err)
		if q.notifier != nil {
			q.notifier.Error("Printing", errMessage(err, "Could not mark job as printed."))
		}
		return fmt.Errorf("mark printed: %w", err)
	}

	q.logger.Info("print job acknowledged", "job_id", update.ID.String(), "status", update.Status)
	if q.notifier != nil {
		q.notifier.Success("Printing", "Marked as printed.")
	}
	_ = q.Refresh(ctx)
	return nil
}

// Pending returns a copy of the last fetched pending jobs.
func (q *PrintQueue) Pending() []PrintJob {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]PrintJob, len(q.jobs))
	copy(out, q.jobs)
	return out
}

func (q *PrintQueue) LastError() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.lastErr
}

func (q *PrintQueue) Loaded() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.loaded
}

// Close marks the queue torn down; late poll responses are discarded.
func (q *PrintQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
