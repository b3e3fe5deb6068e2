package floor

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a cart snapshot, already joined against the menu.
type CartItem struct {
	ProductID uuid.UUID
	Quantity  int
	Name      string
	UnitPrice string
}

// Cart accumulates line items for a not-yet-submitted order. It is
// client-only state: never persisted, discarded after a successful
// submission or an explicit clear. Single writer in practice (one device),
// but guarded like the other containers.
type Cart struct {
	mu     sync.Mutex
	qty    map[uuid.UUID]int
	note   string
	search string

	menu *MenuState
}

func NewCart(menu *MenuState) *Cart {
	return &Cart{
		qty:  make(map[uuid.UUID]int),
		menu: menu,
	}
}

// Increment adds one unit of the product.
func (c *Cart) Increment(productID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.qty[productID]++
}

// Decrement removes one unit, flooring at zero. The key stays in the map;
// zero-quantity entries are filtered at read time, not at write time.
func (c *Cart) Decrement(productID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.qty[productID] > 0 {
		c.qty[productID]--
	} else {
		c.qty[productID] = 0
	}
}

// Quantity reports the current quantity for a product (zero if never added).
func (c *Cart) Quantity(productID uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.qty[productID]
}

func (c *Cart) SetNote(note string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.note = note
}

func (c *Cart) Note() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.note
}

func (c *Cart) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = search
}

func (c *Cart) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// Clear resets quantities, note and search filter as one atomic form reset.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.qty = make(map[uuid.UUID]int)
	c.note = ""
	c.search = ""
}

// Snapshot joins the quantity map against the loaded menu and returns the
// lines with quantity > 0, in menu order. Products no longer present in the
// catalog keep their quantity with a placeholder name and zero price, sorted
// last for determinism.
func (c *Cart) Snapshot() []CartItem {
	c.mu.Lock()
	remaining := make(map[uuid.UUID]int, len(c.qty))
	for id, q := range c.qty {
		if q > 0 {
			remaining[id] = q
		}
	}
	c.mu.Unlock()

	items := make([]CartItem, 0, len(remaining))
	if c.menu != nil {
		for _, cat := range c.menu.Categories() {
			for _, p := range cat.Products {
				q, ok := remaining[p.ID]
				if !ok {
					continue
				}
				items = append(items, CartItem{
					ProductID: p.ID,
					Quantity:  q,
					Name:      p.Name,
					UnitPrice: p.Price,
				})
				delete(remaining, p.ID)
			}
		}
	}

	leftovers := make([]CartItem, 0, len(remaining))
	for id, q := range remaining {
		leftovers = append(leftovers, CartItem{
			ProductID: id,
			Quantity:  q,
			Name:      "Unknown product",
			UnitPrice: "0",
		})
	}
	sort.Slice(leftovers, func(i, j int) bool {
		return leftovers[i].ProductID.String() < leftovers[j].ProductID.String()
	})

	return append(items, leftovers...)
}

// Total sums unitPrice x quantity over the snapshot as decimal-safe
// accumulation and returns a two-decimal string. Unparseable prices count
// as zero rather than poisoning the total.
func (c *Cart) Total() string {
	total := decimal.Zero
	for _, it := range c.Snapshot() {
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.StringFixed(2)
}

// Empty reports whether the snapshot has no lines.
func (c *Cart) Empty() bool {
	return len(c.Snapshot()) == 0
}
