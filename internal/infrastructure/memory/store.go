package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

// NewStore returns a process-local store. It keeps no data across restarts and is
// meant for local development and tests.
func NewStore() *repository.Store {
	return &repository.Store{
		Users:         NewUserRepository(),
		Courses:       NewCourseRepository(),
		Projects:      NewProjectRepository(),
		Opportunities: NewOpportunityRepository(),
		Tx:            Transactor{},
	}
}

// Transactor runs fn directly: the writes inside are not atomic.
type Transactor struct{}

func (Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// collection is an id-keyed set of documents that remembers insertion order.
type collection[T any] struct {
	mu    sync.RWMutex
	docs  map[string]T
	seq   map[string]int
	next  int
	clone func(T) T
}

func newCollection[T any](clone func(T) T) *collection[T] {
	return &collection[T]{docs: map[string]T{}, seq: map[string]int{}, clone: clone}
}

func (c *collection[T]) get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return c.clone(doc), nil
}

func (c *collection[T]) put(id string, doc T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seq[id]; !ok {
		c.seq[id] = c.next
		c.next++
	}
	c.docs[id] = c.clone(doc)
}

func (c *collection[T]) delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(c.docs, id)
	delete(c.seq, id)
	return nil
}

// filter returns clones of matching documents ordered by createdAt descending,
// newest insertion first on ties.
func (c *collection[T]) filter(match func(T) bool, createdAt func(T) time.Time, id func(T) string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.docs))
	for _, doc := range c.docs {
		if match(doc) {
			out = append(out, c.clone(doc))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := createdAt(out[i]), createdAt(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return c.seq[id(out[i])] > c.seq[id(out[j])]
	})
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
