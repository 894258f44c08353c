package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 3 * time.Second

type Kind string

const (
	Success Kind = "success"
	Failure Kind = "error"
)

type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Board holds transient per-user notifications. Toasts disappear once their
// TTL passes or when dismissed.
type Board struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	toasts map[int64][]Toast
}

func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{
		ttl:    ttl,
		now:    time.Now,
		toasts: make(map[int64][]Toast),
	}
}

func (b *Board) Publish(userID int64, kind Kind, message string) Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	t := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	}
	b.toasts[userID] = append(b.prune(userID, now), t)
	return t
}

// Active returns the user's unexpired toasts, oldest first.
func (b *Board) Active(userID int64) []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	live := b.prune(userID, b.now())
	return append([]Toast(nil), live...)
}

func (b *Board) Dismiss(userID int64, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.toasts[userID]
	for i, t := range list {
		if t.ID == id {
			b.toasts[userID] = append(list[:i:i], list[i+1:]...)
			if len(b.toasts[userID]) == 0 {
				delete(b.toasts, userID)
			}
			return true
		}
	}
	return false
}

// prune drops expired toasts. Callers hold mu.
func (b *Board) prune(userID int64, now time.Time) []Toast {
	list := b.toasts[userID]
	live := list[:0]
	for _, t := range list {
		if now.Before(t.ExpiresAt) {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		delete(b.toasts, userID)
		return nil
	}
	b.toasts[userID] = live
	return live
}
