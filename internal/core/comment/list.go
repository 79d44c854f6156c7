package comment

import (
	"fmt"
	"slices"
	"sync"
)

// List is the ordered collection of comments shown for a feedback item. It
// only ever reflects mutations the gateway confirmed: creates append, updates
// replace in place, deletes remove. It is never re-sorted.
type List struct {
	mu    sync.RWMutex
	items []Comment
}

// NewList returns a list holding initial in the given order.
func NewList(initial []Comment) *List {
	return &List{items: slices.Clone(initial)}
}

// Comments returns a copy of the comments in display order.
func (l *List) Comments() []Comment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

// Len returns the number of comments.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Get returns the comment with id.
func (l *List) Get(id string) (Comment, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	return Comment{}, false
}

// Add appends c.
func (l *List) Add(c Comment) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.index(c.ID) >= 0 {
		return fmt.Errorf("add comment %s: duplicate id", c.ID)
	}
	l.items = append(l.items, c)
	return nil
}

// Upsert appends c, or replaces the comment with the same id in place. added
// reports whether c was appended.
func (l *List) Upsert(c Comment) (added bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.index(c.ID); i >= 0 {
		l.items[i] = c
		return false
	}
	l.items = append(l.items, c)
	return true
}

// Replace substitutes the comment with id, keeping its position.
func (l *List) Replace(id string, c Comment) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("replace comment %s: %w", id, ErrNotFound)
	}
	l.items[i] = c
	return nil
}

// Remove deletes the comment with id.
func (l *List) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("remove comment %s: %w", id, ErrNotFound)
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

func (l *List) index(id string) int {
	return slices.IndexFunc(l.items, func(c Comment) bool { return c.ID == id })
}
