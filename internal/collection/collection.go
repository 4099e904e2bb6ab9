// Package collection implements the reusable contract for an in-memory,
// filterable, paginated view over a list of managed entities, with mutation
// intents applied synchronously to the authoritative list.
package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the closed enumeration of entity states.
type Status string

const (
	StatusActive   Status = "active"
	StatusBlocked  Status = "blocked"
	StatusInactive Status = "inactive"
)

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.TrimSpace(strings.ToLower(raw))) {
	case StatusActive:
		return StatusActive, nil
	case StatusBlocked:
		return StatusBlocked, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", &ValidationError{Reason: fmt.Sprintf("unsupported status %q", raw)}
	}
}

// allowedTransitions restricts status changes to the defined set.
var allowedTransitions = map[Status][]Status{
	StatusActive:   {StatusBlocked, StatusInactive},
	StatusBlocked:  {StatusActive},
	StatusInactive: {StatusActive},
}

func transitionAllowed(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var (
	// ErrNotFound indicates a mutation intent referenced an unknown identity.
	ErrNotFound = errors.New("collection: not found")

	// ErrUnavailable indicates the entity list could not be loaded. The
	// previous list, if any, is kept; retry is caller-initiated.
	ErrUnavailable = errors.New("collection: unavailable")
)

// ValidationError carries a human-readable reason for a rejected draft or
// transition. No partial entity is ever created for a failing draft.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// Entity is an identifiable record with a status and equality-filterable
// attributes. Implementations are pointer types so status transitions apply
// in place.
type Entity interface {
	EntityID() string
	Status() Status
	SetStatus(Status)

	// Field returns the value matched by an equality filter for the given
	// key, or "" when the key does not apply to this entity kind.
	Field(key string) string
}

// Draft produces a new entity once validated. Materialize must set status
// active and zero usage counters.
type Draft[T Entity] interface {
	Validate() error
	Materialize(id string, now time.Time) T
}

// Source supplies the full authoritative entity list on Load.
type Source[T Entity] func(ctx context.Context) ([]T, error)
