package collection

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"admincore.org/internal/ids"
)

const defaultPageSize = 5

// View is the derived, deterministic slice of the filtered list plus the
// pagination facts the presentation layer needs.
type View[T Entity] struct {
	Items         []T
	Page          int
	PageSize      int
	TotalPages    int
	FilteredCount int
	TotalCount    int
}

// Controller holds the authoritative in-memory list for one entity kind and
// keeps filters and pagination consistent across mutation intents.
type Controller[T Entity] struct {
	source   Source[T]
	pageSize int
	now      func() time.Time

	mu      sync.RWMutex
	items   []T
	filters map[string]string
	page    int
}

// Option configures a Controller.
type Option[T Entity] func(*Controller[T])

// WithPageSize overrides the fixed page size.
func WithPageSize[T Entity](n int) Option[T] {
	return func(c *Controller[T]) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock[T Entity](fn func() time.Time) Option[T] {
	return func(c *Controller[T]) {
		if fn != nil {
			c.now = fn
		}
	}
}

// New constructs a controller over the given source.
func New[T Entity](source Source[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		source:   source,
		pageSize: defaultPageSize,
		now:      time.Now,
		filters:  make(map[string]string),
		page:     1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the authoritative list from the source and resets the page
// to 1. On failure the previous list is kept and the error wraps
// ErrUnavailable so callers can render an empty or stale state instead of
// crashing.
func (c *Controller[T]) Load(ctx context.Context) error {
	items, err := c.source(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.page = 1
	return nil
}

// SetFilter updates one equality predicate and resets the page to 1. An
// empty or "all" value removes the predicate.
func (c *Controller[T]) SetFilter(key, value string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	value = strings.TrimSpace(value)

	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" || value == "all" {
		delete(c.filters, key)
	} else {
		c.filters[key] = value
	}
	c.page = 1
}

// SetPage clamps n into [1, totalPages] and applies it. Out-of-range
// requests are clamped, not rejected.
func (c *Controller[T]) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = clamp(n, 1, totalPages(len(c.filteredLocked()), c.pageSize))
}

// View returns the current page of the filtered list. Filtering preserves
// the relative ordering of the authoritative list.
func (c *Controller[T]) View() View[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	filtered := c.filteredLocked()
	pages := totalPages(len(filtered), c.pageSize)
	page := clamp(c.page, 1, pages)

	start := (page - 1) * c.pageSize
	end := start + c.pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	items := make([]T, end-start)
	copy(items, filtered[start:end])
	return View[T]{
		Items:         items,
		Page:          page,
		PageSize:      c.pageSize,
		TotalPages:    pages,
		FilteredCount: len(filtered),
		TotalCount:    len(c.items),
	}
}

// Create validates the draft, assigns a fresh non-colliding identity and
// prepends the new entity so it is visible on page 1.
func (c *Controller[T]) Create(draft Draft[T]) (T, error) {
	var zero T
	if err := draft.Validate(); err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := ids.New()
	for c.indexLocked(id) >= 0 {
		id = ids.New()
	}
	entity := draft.Materialize(id, c.now().UTC())
	c.items = append([]T{entity}, c.items...)
	c.page = 1
	return entity, nil
}

// TransitionStatus replaces the status of the identified entity in place,
// leaving every other field untouched. A transition to blocked requires a
// non-empty reason even when invoked directly; unblocking does not.
func (c *Controller[T]) TransitionStatus(id string, target Status, reason string) (T, error) {
	var zero T
	target, err := ParseStatus(string(target))
	if err != nil {
		return zero, err
	}
	if target == StatusBlocked && strings.TrimSpace(reason) == "" {
		return zero, &ValidationError{Reason: "a reason is required to block"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(id)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	entity := c.items[i]
	if entity.Status() == target {
		return entity, nil
	}
	if !transitionAllowed(entity.Status(), target) {
		return zero, &ValidationError{
			Reason: fmt.Sprintf("cannot transition from %s to %s", entity.Status(), target),
		}
	}
	entity.SetStatus(target)
	return entity, nil
}

// Get looks up an entity by identity.
func (c *Controller[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var zero T
	i := c.indexLocked(id)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.items[i], nil
}

// Update applies a caller-supplied mutation to the identified entity. The
// apply func may reject the change with a ValidationError.
func (c *Controller[T]) Update(id string, apply func(T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	i := c.indexLocked(id)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := apply(c.items[i]); err != nil {
		return zero, err
	}
	return c.items[i], nil
}

// Delete removes the identified entity from the authoritative list and
// clamps the current page into the shrunken range.
func (c *Controller[T]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.page = clamp(c.page, 1, totalPages(len(c.filteredLocked()), c.pageSize))
	return nil
}

// All returns a copy of the authoritative list, unfiltered and unpaginated.
func (c *Controller[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller[T]) filteredLocked() []T {
	if len(c.filters) == 0 {
		return c.items
	}
	var out []T
	for _, item := range c.items {
		match := true
		for key, want := range c.filters {
			if item.Field(key) != want {
				match = false
				break
			}
		}
		if match {
			out = append(out, item)
		}
	}
	return out
}

func (c *Controller[T]) indexLocked(id string) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func totalPages(count, pageSize int) int {
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
