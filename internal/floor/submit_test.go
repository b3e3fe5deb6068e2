package floor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func submitFixture(t *testing.T) (*Pipeline, *Cart, *IdentityHolder, *MockBackend, *Notifier) {
	t.Helper()
	backend := NewMockBackend()
	cart := NewCart(testMenu())
	identity := NewIdentityHolder(NewMockIdentityStore(), nil)
	notifier := NewNotifier()
	overview := NewOverviewBoard(backend, nil)
	pipeline := NewPipeline(cart, identity, overview, backend, notifier, nil)
	return pipeline, cart, identity, backend, notifier
}

func TestSubmitWithoutIdentityMakesNoNetworkCall(t *testing.T) {
	pipeline, cart, _, backend, notifier := submitFixture(t)
	cart.Increment(productOne)

	_, err := pipeline.Submit(context.Background(), uuid.New())
	if !errors.Is(err, ErrIdentityRequired) {
		t.Fatalf("Submit() error = %v, want ErrIdentityRequired", err)
	}
	if got := backend.NetworkCalls(); got != 0 {
		t.Errorf("backend reached %d times without identity, want 0", got)
	}
	// The frontend opens the selection flow instead of toasting.
	if got := notifier.Pending(); got != 0 {
		t.Errorf("notifications queued = %d for missing identity, want 0", got)
	}
	if cart.Empty() {
		t.Error("cart was cleared by a rejected submission")
	}
}

func TestSubmitWithoutTableMakesNoNetworkCall(t *testing.T) {
	pipeline, cart, identity, backend, notifier := submitFixture(t)
	if err := identity.Set(uuid.New(), "Ana"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	cart.Increment(productOne)

	_, err := pipeline.Submit(context.Background(), uuid.Nil)
	if !errors.Is(err, ErrNoTableSelected) {
		t.Fatalf("Submit() error = %v, want ErrNoTableSelected", err)
	}
	if got := backend.NetworkCalls(); got != 0 {
		t.Errorf("backend reached %d times without a table, want 0", got)
	}
	if got := notifier.Pending(); got != 1 {
		t.Errorf("notifications queued = %d, want 1 error toast", got)
	}
}

func TestSubmitEmptyCartMakesNoNetworkCall(t *testing.T) {
	pipeline, cart, identity, backend, _ := submitFixture(t)
	if err := identity.Set(uuid.New(), "Ana"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// Net-zero quantities count as empty.
	cart.Increment(productOne)
	cart.Decrement(productOne)

	_, err := pipeline.Submit(context.Background(), uuid.New())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("Submit() error = %v, want ErrEmptyCart", err)
	}
	if got := backend.NetworkCalls(); got != 0 {
		t.Errorf("backend reached %d times with an empty cart, want 0", got)
	}
}

func TestSubmitSuccessClearsCartAndRefreshesOverviewOnce(t *testing.T) {
	pipeline, cart, identity, backend, notifier := submitFixture(t)
	waiterID := uuid.New()
	if err := identity.Set(waiterID, "Ana"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	cart.Increment(productOne)
	cart.Increment(productOne)
	cart.Increment(productTwo)
	cart.SetNote("  no onions  ")

	tableID := uuid.New()
	var sent OrderRequest
	backend.SubmitOrderFunc = func(ctx context.Context, gotTable uuid.UUID, req OrderRequest) (OrderReceipt, error) {
		if gotTable != tableID {
			t.Errorf("SubmitOrder table = %v, want %v", gotTable, tableID)
		}
		sent = req
		return OrderReceipt{ComandaID: uuid.New(), OrderID: uuid.New()}, nil
	}

	receipt, err := pipeline.Submit(context.Background(), tableID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if receipt.OrderID == uuid.Nil {
		t.Error("Submit() returned a zero order id")
	}

	if sent.OperationalWaiterID != waiterID {
		t.Errorf("request waiter = %v, want %v", sent.OperationalWaiterID, waiterID)
	}
	if sent.Note != "no onions" {
		t.Errorf("request note = %q, want trimmed %q", sent.Note, "no onions")
	}
	if len(sent.Items) != 2 {
		t.Fatalf("request items = %d, want 2", len(sent.Items))
	}
	if sent.Items[0].ProductID != productOne || sent.Items[0].Quantity != 2 {
		t.Errorf("request item[0] = %+v, want 2x %v", sent.Items[0], productOne)
	}

	if !cart.Empty() {
		t.Error("cart not cleared after confirmed submission")
	}
	if got := backend.OverviewCalls(); got != 1 {
		t.Errorf("overview re-fetched %d times after submission, want exactly 1", got)
	}

	drained := notifier.Drain()
	if len(drained) != 1 || drained[0].Level != NotifySuccess {
		t.Errorf("notifications = %+v, want one success toast", drained)
	}
}

func TestSubmitFailureKeepsCartAndSkipsOverviewRefresh(t *testing.T) {
	pipeline, cart, identity, backend, notifier := submitFixture(t)
	if err := identity.Set(uuid.New(), "Ana"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	cart.Increment(productOne)
	cart.SetNote("keep me")

	backend.SubmitOrderFunc = func(ctx context.Context, tableID uuid.UUID, req OrderRequest) (OrderReceipt, error) {
		return OrderReceipt{}, errors.New("comanda is closed")
	}

	_, err := pipeline.Submit(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("Submit() error = nil, want backend failure")
	}

	if cart.Empty() {
		t.Error("cart cleared although submission failed")
	}
	if cart.Note() != "keep me" {
		t.Errorf("note = %q after failed submission, want kept", cart.Note())
	}
	if got := backend.OverviewCalls(); got != 0 {
		t.Errorf("overview re-fetched %d times after failure, want 0", got)
	}

	drained := notifier.Drain()
	if len(drained) != 1 || drained[0].Level != NotifyError {
		t.Errorf("notifications = %+v, want one error toast", drained)
	}
}

func TestSubmitErrorMessagePrefersUserMessage(t *testing.T) {
	pipeline, cart, identity, backend, notifier := submitFixture(t)
	if err := identity.Set(uuid.New(), "Ana"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	cart.Increment(productOne)

	backend.SubmitOrderFunc = func(ctx context.Context, tableID uuid.UUID, req OrderRequest) (OrderReceipt, error) {
		return OrderReceipt{}, userFacingErr{msg: "Comanda already closed."}
	}

	if _, err := pipeline.Submit(context.Background(), uuid.New()); err == nil {
		t.Fatal("Submit() error = nil, want failure")
	}

	drained := notifier.Drain()
	if len(drained) != 1 || drained[0].Message != "Comanda already closed." {
		t.Errorf("notifications = %+v, want server-provided message", drained)
	}
}

type userFacingErr struct{ msg string }

func (e userFacingErr) Error() string       { return e.msg }
func (e userFacingErr) UserMessage() string { return e.msg }
