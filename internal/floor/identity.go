package floor

import (
	"strings"
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Identity is the operational waiter acting on this device. It attributes
// orders and is independent of the authenticated account.
type Identity struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// IdentityStore persists the identity across restarts. Implementations must
// treat a partial record as absent.
type IdentityStore interface {
	Load() (Identity, bool, error)
	Save(ident Identity) error
	Clear() error
}

// IdentityHolder is the live identity container. It gates order submission
// and survives restarts via its store, but not an explicit logout.
type IdentityHolder struct {
	mu      sync.RWMutex
	current Identity
	present bool

	store  IdentityStore
	logger apt.Logger
}

func NewIdentityHolder(store IdentityStore, logger apt.Logger) *IdentityHolder {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &IdentityHolder{
		store:  store,
		logger: logger,
	}
}

// Hydrate reads the persisted identity into live state at startup. A missing
// or partial record leaves the holder empty.
func (h *IdentityHolder) Hydrate() error {
	if h.store == nil {
		return nil
	}
	ident, ok, err := h.store.Load()
	if err != nil {
		h.logger.Error("cannot hydrate operational identity", "error", err)
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !ok || ident.ID == uuid.Nil || strings.TrimSpace(ident.Name) == "" {
		h.present = false
		h.current = Identity{}
		return nil
	}
	h.current = ident
	h.present = true
	h.logger.Debug("operational identity hydrated", "waiter_id", ident.ID.String())
	return nil
}

// Set persists id and name atomically and updates live state. Both fields
// are required; the holder is never half set.
func (h *IdentityHolder) Set(id uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if id == uuid.Nil || name == "" {
		return ErrIncompleteIdentity
	}

	ident := Identity{ID: id, Name: name}
	if h.store != nil {
		if err := h.store.Save(ident); err != nil {
			h.logger.Error("cannot persist operational identity", "error", err)
			return err
		}
	}

	h.mu.Lock()
	h.current = ident
	h.present = true
	h.mu.Unlock()
	h.logger.Info("operational identity set", "waiter_id", id.String(), "waiter_name", name)
	return nil
}

// Clear removes both fields from the store and from live state. Logout
// cascades here.
func (h *IdentityHolder) Clear() error {
	if h.store != nil {
		if err := h.store.Clear(); err != nil {
			h.logger.Error("cannot clear operational identity", "error", err)
			return err
		}
	}

	h.mu.Lock()
	h.current = Identity{}
	h.present = false
	h.mu.Unlock()
	h.logger.Info("operational identity cleared")
	return nil
}

// Current returns the acting identity, if one is set.
func (h *IdentityHolder) Current() (Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, h.present
}
