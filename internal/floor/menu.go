package floor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// MenuState holds the currently loaded menu. The cart joins its quantity map
// against this state at snapshot time, so a menu reload is immediately
// reflected in cart pricing of not-yet-submitted items.
type MenuState struct {
	mu         sync.RWMutex
	categories []MenuCategory
	loaded     bool

	backend Backend
	logger  apt.Logger
}

func NewMenuState(backend Backend, logger apt.Logger) *MenuState {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &MenuState{
		backend: backend,
		logger:  logger,
	}
}

// Load replaces the whole menu with the server's current active catalog.
func (m *MenuState) Load(ctx context.Context) error {
	categories, err := m.backend.FetchMenu(ctx)
	if err != nil {
		m.logger.Error("cannot load menu", "error", err)
		return fmt.Errorf("load menu: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = categories
	m.loaded = true
	m.logger.Debug("menu loaded", "categories", len(categories))
	return nil
}

func (m *MenuState) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

func (m *MenuState) Categories() []MenuCategory {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]MenuCategory, len(m.categories))
	copy(out, m.categories)
	return out
}

// Product resolves a product by id across all categories.
func (m *MenuState) Product(id uuid.UUID) (MenuProduct, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		for _, p := range c.Products {
			if p.ID == id {
				return p, true
			}
		}
	}
	return MenuProduct{}, false
}

// VisibleProducts returns the products of one category, narrowed by a
// case-insensitive name search. An empty search returns the whole category.
func (m *MenuState) VisibleProducts(categoryID uuid.UUID, search string) []MenuProduct {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var products []MenuProduct
	for _, c := range m.categories {
		if c.ID == categoryID {
			products = c.Products
			break
		}
	}

	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		out := make([]MenuProduct, len(products))
		copy(out, products)
		return out
	}

	out := make([]MenuProduct, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}
