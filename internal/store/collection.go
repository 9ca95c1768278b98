package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Collection persists one entity type as a JSON array under a single key.
// Every mutation is a full read-modify-write of the array, serialized by a
// mutex so concurrent handlers keep the single-writer semantics of the
// original single-threaded design. A malformed or absent stored value
// degrades silently to an empty collection.
type Collection[T any] struct {
	kv  *KV
	key string
	id  func(T) string

	// dropKeyWhenEmpty removes the stored key instead of writing an
	// empty array when the last record is deleted.
	dropKeyWhenEmpty bool

	mu sync.Mutex
}

func NewCollection[T any](kv *KV, key string, id func(T) string) *Collection[T] {
	return &Collection[T]{kv: kv, key: key, id: id}
}

// load reads the collection without locking; callers hold c.mu.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		// Malformed stored text is treated as "collection absent".
		return nil, nil
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if len(records) == 0 && c.dropKeyWhenEmpty {
		return c.kv.Delete(ctx, c.key)
	}
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", c.key, err)
	}
	return c.kv.Set(ctx, c.key, string(raw))
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	records, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, r := range records {
		if c.id(r) == id {
			return r, nil
		}
	}
	return zero, ErrNotFound
}

func (c *Collection[T]) Add(ctx context.Context, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	return c.save(ctx, append(records, record))
}

// Update applies fn to the record with the given id and persists the
// collection. The updated record is returned.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	records, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for i := range records {
		if c.id(records[i]) == id {
			fn(&records[i])
			if err := c.save(ctx, records); err != nil {
				return zero, err
			}
			return records[i], nil
		}
	}
	return zero, ErrNotFound
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if c.id(r) != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return ErrNotFound
	}
	return c.save(ctx, kept)
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// Clear removes the stored key entirely.
func (c *Collection[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Delete(ctx, c.key)
}
