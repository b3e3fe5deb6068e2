package floor

import (
	"context"
	"fmt"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Pipeline validates an assembled cart and submits it against a table. The
// server creates a comanda if none is open, appends the order and enqueues a
// print job; the client then clears the cart and re-runs the overview fetch.
// That two-step is eventually consistent, not transactional: a submission
// that times out after the server persisted it shows up on the next poll.
//
// There is no idempotency key, so a retry after a timeout may create a
// duplicate order. Known gap inherited from the contract, not a guarantee.
type Pipeline struct {
	cart     *Cart
	identity *IdentityHolder
	overview *OverviewBoard
	backend  Backend
	notifier *Notifier
	logger   apt.Logger
}

func NewPipeline(cart *Cart, identity *IdentityHolder, overview *OverviewBoard, backend Backend, notifier *Notifier, logger apt.Logger) *Pipeline {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Pipeline{
		cart:     cart,
		identity: identity,
		overview: overview,
		backend:  backend,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit runs the precondition gate and, if it passes, sends the order.
// Preconditions are checked before any network call, in order: operational
// identity set (ErrIdentityRequired, the caller must force the selection
// flow), table selected, at least one cart line. On confirmed success the
// cart is cleared and the overview re-fetched exactly once.
func (p *Pipeline) Submit(ctx context.Context, tableID uuid.UUID) (OrderReceipt, error) {
	ident, ok := p.identity.Current()
	if !ok {
		// No toast here: the frontend opens the selection flow instead.
		return OrderReceipt{}, ErrIdentityRequired
	}

	if tableID == uuid.Nil {
		if p.notifier != nil {
			p.notifier.Error("Order", "Select a table.")
		}
		return OrderReceipt{}, ErrNoTableSelected
	}

	items := p.cart.Snapshot()
	if len(items) == 0 {
		if p.notifier != nil {
			p.notifier.Error("Order", "Select at least 1 item.")
		}
		return OrderReceipt{}, ErrEmptyCart
	}

	req := OrderRequest{
		OperationalWaiterID: ident.ID,
		Note:                strings.TrimSpace(p.cart.Note()),
		Items:               make([]OrderItemRequest, 0, len(items)),
	}
	for _, it := range items {
		req.Items = append(req.Items, OrderItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	receipt, err := p.backend.SubmitOrder(ctx, tableID, req)
	if err != nil {
		p.logger.Error("order submission failed", "table_id", tableID.String(), "error", err)
		if p.notifier != nil {
			p.notifier.Error("Order", errMessage(err, "Could not send the order."))
		}
		return OrderReceipt{}, fmt.Errorf("submit order: %w", err)
	}

	p.logger.Info("order submitted",
		"table_id", tableID.String(),
		"comanda_id", receipt.ComandaID.String(),
		"order_id", receipt.OrderID.String(),
		"items", len(req.Items))

	if p.notifier != nil {
		p.notifier.Success("Order", "Order sent to the kitchen.")
	}

	p.cart.Clear()
	if p.overview != nil {
		_ = p.overview.Refresh(ctx)
	}
	return receipt, nil
}
