package domain

import (
	"sort"
	"sync"
)

// ConversionState holds the work product accumulated by a session's tasks.
// Safe for concurrent use.
type ConversionState struct {
	mu    sync.RWMutex
	items map[string]any
}

// NewConversionState creates an empty work-product aggregate.
func NewConversionState() *ConversionState {
	return &ConversionState{items: make(map[string]any)}
}

// Put stores (or replaces) an item.
func (c *ConversionState) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

// Get returns an item if present.
func (c *ConversionState) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok
}

// Keys returns the stored keys in sorted order.
func (c *ConversionState) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored items.
func (c *ConversionState) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
