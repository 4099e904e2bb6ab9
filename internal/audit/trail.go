package audit

import (
	"context"
	"sync"
	"time"

	"admincore.org/internal/ids"
	"admincore.org/internal/session"
)

// Keep the last entries per entity; older ones fall off.
const trailCap = 50

// Entry is one recorded action against a managed entity.
type Entry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Trail is an in-memory per-entity audit history backing the audit view.
// Every recorded entry is also emitted as a structured audit log event.
type Trail struct {
	mu       sync.RWMutex
	byEntity map[string][]Entry
	now      func() time.Time
}

// NewTrail creates an empty trail.
func NewTrail() *Trail {
	return &Trail{
		byEntity: make(map[string][]Entry),
		now:      time.Now,
	}
}

// Record appends an entry for the entity, newest first.
func (t *Trail) Record(ctx context.Context, entityID, action, detail string) {
	if entityID == "" || action == "" {
		return
	}
	entry := Entry{
		ID:         ids.New(),
		Action:     action,
		Detail:     detail,
		OccurredAt: t.now().UTC(),
	}
	if actor, ok := session.UserIDFromContext(ctx); ok {
		entry.Actor = actor
	}

	t.mu.Lock()
	entries := append([]Entry{entry}, t.byEntity[entityID]...)
	if len(entries) > trailCap {
		entries = entries[:trailCap]
	}
	t.byEntity[entityID] = entries
	t.mu.Unlock()

	_ = LogEvent(ctx, action, map[string]any{
		"entity_id": entityID,
		"detail":    detail,
	})
}

// ForEntity returns the recorded entries for an entity, newest first.
func (t *Trail) ForEntity(entityID string) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entries := t.byEntity[entityID]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
