// Package localstore persists the small pieces of device-local state the
// floor client keeps between runs. It is the only persistence on the device;
// everything else is owned by the server and re-fetched.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/floor/internal/floor"
)

// IdentityFile stores the operational waiter selection as one JSON document.
// Writes go through a temp file and rename so the record is never observed
// half written; a partial or corrupt record reads as absent.
type IdentityFile struct {
	mu     sync.Mutex
	path   string
	logger apt.Logger
}

type identityRecord struct {
	WaiterID   string `json:"operational_waiter_id"`
	WaiterName string `json:"operational_waiter_name"`
}

func NewIdentityFile(path string, logger apt.Logger) *IdentityFile {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &IdentityFile{
		path:   path,
		logger: logger,
	}
}

// DefaultIdentityPath places the record under the user config directory.
func DefaultIdentityPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "floor", "identity.json"), nil
}

func (f *IdentityFile) Load() (floor.Identity, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return floor.Identity{}, false, nil
	}
	if err != nil {
		return floor.Identity{}, false, fmt.Errorf("read identity: %w", err)
	}

	var rec identityRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		f.logger.Info("discarding unreadable identity record", "error", err)
		return floor.Identity{}, false, nil
	}

	id, err := uuid.Parse(rec.WaiterID)
	if err != nil || strings.TrimSpace(rec.WaiterName) == "" {
		// Half-set records violate the both-or-none invariant; treat as absent.
		f.logger.Info("discarding partial identity record")
		return floor.Identity{}, false, nil
	}

	return floor.Identity{ID: id, Name: rec.WaiterName}, true, nil
}

func (f *IdentityFile) Save(ident floor.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	raw, err := json.Marshal(identityRecord{
		WaiterID:   ident.ID.String(),
		WaiterName: ident.Name,
	})
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write identity: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("store identity: %w", err)
	}
	return nil
}

func (f *IdentityFile) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear identity: %w", err)
	}
	return nil
}
