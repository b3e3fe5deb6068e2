package floor

import (
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

type NotifyLevel string

const (
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
	NotifyInfo    NotifyLevel = "info"
)

// Notification is one toast-style message for the frontend.
type Notification struct {
	ID      uuid.UUID
	Level   NotifyLevel
	Title   string
	Message string
	TTL     time.Duration
}

// Notifier is the process-wide notification container. Validation and
// transport failures surface here; the underlying collections stay
// stale-but-valid instead of being cleared.
type Notifier struct {
	mu    sync.Mutex
	items []Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) push(level NotifyLevel, title, message string, ttl time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notification{
		ID:      apt.GenerateNewID(),
		Level:   level,
		Title:   title,
		Message: message,
		TTL:     ttl,
	})
}

func (n *Notifier) Success(title, message string) {
	n.push(NotifySuccess, title, message, 2800*time.Millisecond)
}

func (n *Notifier) Error(title, message string) {
	n.push(NotifyError, title, message, 3400*time.Millisecond)
}

func (n *Notifier) Info(title, message string) {
	n.push(NotifyInfo, title, message, 2800*time.Millisecond)
}

// Drain returns and removes all queued notifications.
func (n *Notifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}

// Pending reports how many notifications are queued.
func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}
