package floor

import (
	"time"

	"github.com/google/uuid"
)

// Comanda status values as they cross the wire.
const (
	ComandaOpen   = "OPEN"
	ComandaClosed = "CLOSED"
)

// Print job status values.
const (
	PrintPending = "PENDING"
	PrintPrinted = "PRINTED"
)

// TableRef identifies a table as returned by the operational API. Tables are
// owned by admin configuration; the operational core never mutates them.
type TableRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// ComandaSummary is the per-table comanda digest carried by the overview.
// Itemized detail is fetched on demand to keep the polling payload small.
type ComandaSummary struct {
	ID           uuid.UUID `json:"id"`
	OpenedAt     time.Time `json:"openedAt"`
	Status       string    `json:"status"`
	PartialTotal string    `json:"partialTotal"`
}

// OverviewRow is one table on the floor view. ComandaOpen is nil while the
// table is free.
type OverviewRow struct {
	Table       TableRef        `json:"table"`
	ComandaOpen *ComandaSummary `json:"comandaOpen"`
}

// MenuProduct is an active product inside a menu category. Price crosses the
// boundary as a decimal string, never a binary float.
type MenuProduct struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"imageUrl"`
}

type MenuCategory struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	SortOrder int           `json:"sortOrder"`
	Products  []MenuProduct `json:"products"`
}

// Waiter is an operational staff identity, distinct from the login account.
type Waiter struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ComandaHeader is the comanda envelope of a detail response.
type ComandaHeader struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	OpenedAt    time.Time  `json:"openedAt"`
	ClosedAt    *time.Time `json:"closedAt"`
	TotalAmount string     `json:"totalAmount"`
	Table       *TableRef  `json:"table"`
}

// ComandaOrderItem carries the unit-price snapshot taken at order time.
type ComandaOrderItem struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"productId"`
	ProductName       string    `json:"productName"`
	Quantity          int       `json:"quantity"`
	UnitPriceSnapshot string    `json:"unitPriceSnapshot"`
	Subtotal          string    `json:"subtotal"`
}

// ComandaOrder is one kitchen submission appended to a comanda.
type ComandaOrder struct {
	ID                uuid.UUID          `json:"id"`
	Note              string             `json:"note"`
	CreatedAt         time.Time          `json:"createdAt"`
	OperationalWaiter *Waiter            `json:"operationalWaiter"`
	Items             []ComandaOrderItem `json:"items"`
}

// ComandaDetail is the full order/item breakdown for an open comanda.
type ComandaDetail struct {
	Comanda ComandaHeader  `json:"comanda"`
	Orders  []ComandaOrder `json:"orders"`
}

// ComandaClose is the finalized comanda returned by the close transition.
type ComandaClose struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	OpenedAt    time.Time `json:"openedAt"`
	ClosedAt    time.Time `json:"closedAt"`
	TotalAmount string    `json:"totalAmount"`
}

// DayComandaRow is one entry of the day log (open and closed comandas).
type DayComandaRow struct {
	ID       uuid.UUID  `json:"id"`
	Status   string     `json:"status"`
	OpenedAt time.Time  `json:"openedAt"`
	ClosedAt *time.Time `json:"closedAt"`
	Table    TableRef   `json:"table"`
	Total    string     `json:"total"`
}

// PrintItem is one line of a kitchen ticket payload.
type PrintItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

// PrintPayload is the point-in-time snapshot taken at order creation. Later
// catalog edits never change what a pending ticket shows.
type PrintPayload struct {
	Table             *TableRef   `json:"table"`
	OperationalWaiter *Waiter     `json:"operationalWaiter"`
	Note              string      `json:"note"`
	Items             []PrintItem `json:"items"`
}

type PrintJob struct {
	ID        uuid.UUID    `json:"id"`
	OrderID   uuid.UUID    `json:"orderId"`
	Status    string       `json:"status"`
	Payload   PrintPayload `json:"payload"`
	CreatedAt time.Time    `json:"createdAt"`
}

// PrintJobUpdate acknowledges a PENDING -> PRINTED transition.
type PrintJobUpdate struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// OrderItemRequest is one submitted cart line.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// OrderRequest is the submission body sent against a table. The server
// creates a comanda if none is open, appends the order and enqueues a print
// job.
type OrderRequest struct {
	OperationalWaiterID uuid.UUID          `json:"operationalWaiterId"`
	Note                string             `json:"note,omitempty"`
	Items               []OrderItemRequest `json:"items"`
}

// OrderReceipt confirms a submission.
type OrderReceipt struct {
	ComandaID uuid.UUID `json:"comandaId"`
	OrderID   uuid.UUID `json:"orderId"`
}
