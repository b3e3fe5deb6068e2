package floor

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Comandas exposes the detail and close flows for open comandas. Closing is
// irreversible: it blocks further submission against the table until a
// future order opens a new comanda.
type Comandas struct {
	backend  Backend
	overview *OverviewBoard
	notifier *Notifier
	logger   apt.Logger
}

func NewComandas(backend Backend, overview *OverviewBoard, notifier *Notifier, logger apt.Logger) *Comandas {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Comandas{
		backend:  backend,
		overview: overview,
		notifier: notifier,
		logger:   logger,
	}
}

// LoadDetail fetches the comanda header plus its ordered orders and items.
// Display only; nothing is cached.
func (c *Comandas) LoadDetail(ctx context.Context, id uuid.UUID) (*ComandaDetail, error) {
	detail, err := c.backend.FetchComandaDetail(ctx, id)
	if err != nil {
		c.logger.Error("cannot load comanda detail", "comanda_id", id.String(), "error", err)
		if c.notifier != nil {
			c.notifier.Error("Comanda", errMessage(err, "Could not load comanda detail."))
		}
		return nil, fmt.Errorf("comanda detail: %w", err)
	}
	return detail, nil
}

// Close transitions the comanda OPEN -> CLOSED and returns the finalized
// total. On success the overview is re-fetched unconditionally so the table
// reverts to free.
func (c *Comandas) Close(ctx context.Context, id uuid.UUID) (*ComandaClose, error) {
	closed, err := c.backend.CloseComanda(ctx, id)
	if err != nil {
		c.logger.Error("cannot close comanda", "comanda_id", id.String(), "error", err)
		if c.notifier != nil {
			c.notifier.Error("Close comanda", errMessage(err, "Could not close the comanda."))
		}
		return nil, fmt.Errorf("close comanda: %w", err)
	}

	c.logger.Info("comanda closed", "comanda_id", closed.ID.String(), "total", closed.TotalAmount)
	if c.notifier != nil {
		c.notifier.Success("Comanda", "Comanda closed. Total: "+FormatBRL(closed.TotalAmount))
	}
	if c.overview != nil {
		_ = c.overview.Refresh(ctx)
	}
	return closed, nil
}

// Day fetches today's comandas, open and closed, for the day log.
func (c *Comandas) Day(ctx context.Context) ([]DayComandaRow, error) {
	rows, err := c.backend.FetchDayComandas(ctx)
	if err != nil {
		c.logger.Error("cannot load day comandas", "error", err)
		return nil, fmt.Errorf("day comandas: %w", err)
	}
	return rows, nil
}
