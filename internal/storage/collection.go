package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/tally/internal/logger"
)

// errDecode marks a stored document that is not a JSON array of T.
var errDecode = errors.New("undecodable document")

// Locks hands out one mutex per key so that read-modify-write cycles on the
// same collection never interleave.
type Locks struct {
	mu    sync.Mutex
	byKey map[string]*sync.Mutex
}

func NewLocks() *Locks {
	return &Locks{byKey: make(map[string]*sync.Mutex)}
}

// For returns the mutex guarding key.
func (l *Locks) For(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.byKey[key]
	if !ok {
		m = &sync.Mutex{}
		l.byKey[key] = m
	}
	return m
}

// Collection is a typed view over a key holding a JSON array.
type Collection[T any] struct {
	provider Provider
	key      string
	mu       *sync.Mutex
	log      *log.Logger
}

func NewCollection[T any](p Provider, locks *Locks, key string) *Collection[T] {
	return &Collection[T]{
		provider: p,
		key:      key,
		mu:       locks.For(key),
		log:      logger.With("collection", key),
	}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns the decoded collection. ErrNotFound is returned unwrapped
// when the key has never been written.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := c.provider.Get(c.key)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errDecode, c.key, err)
	}
	return items, nil
}

// All returns the collection, falling back to an empty slice when the key is
// missing or its document cannot be decoded.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadOrEmpty()
}

func (c *Collection[T]) loadOrEmpty() []T {
	items, err := c.load()
	switch {
	case err == nil:
		return items
	case errors.Is(err, ErrNotFound):
		return []T{}
	default:
		c.log.Warn("Falling back to empty collection", "error", err)
		return []T{}
	}
}

// Save replaces the whole collection.
func (c *Collection[T]) Save(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(items)
}

func (c *Collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.provider.Put(c.key, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, c.key, err)
	}
	return nil
}

// Update runs fn over the current items and saves its result while holding
// the collection lock. If fn returns an error nothing is written. A missing or
// undecodable document starts from empty; any other read failure aborts with
// ErrWrite so the stored items are never replaced by a partial view.
func (c *Collection[T]) Update(fn func([]T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.load()
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		current = []T{}
	case errors.Is(err, errDecode):
		c.log.Warn("Replacing undecodable collection", "error", err)
		current = []T{}
	default:
		return nil, fmt.Errorf("%w: %s: read before update: %w", ErrWrite, c.key, err)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := c.save(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Document is a typed view over a key holding a single JSON object.
type Document[T any] struct {
	provider Provider
	key      string
	mu       *sync.Mutex
}

func NewDocument[T any](p Provider, locks *Locks, key string) *Document[T] {
	return &Document[T]{provider: p, key: key, mu: locks.For(key)}
}

// Get returns the stored value and whether one was present and decodable.
func (d *Document[T]) Get() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var v T
	data, err := d.provider.Get(d.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to read document", "key", d.key, "error", err)
		}
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Warn("Failed to decode document", "key", d.key, "error", err)
		var zero T
		return zero, false
	}
	return v, true
}

func (d *Document[T]) Put(v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.key, err)
	}
	if err := d.provider.Put(d.key, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, d.key, err)
	}
	return nil
}
