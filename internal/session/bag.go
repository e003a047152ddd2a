// Package session holds the per-conversation mutable key/value bag. The core
// reads and writes a small fixed key set and treats everything else in the
// bag as none of its concern.
package session

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Keys the assistant core uses. Other components may store arbitrary keys.
const (
	KeyPendingReminder = "pending_reminder"
	KeyAwaitingTime    = "awaiting_time"
	KeyPendingHour     = "pending_hour"
	KeyPendingMinute   = "pending_minute"
)

// Bag is one conversation's mutable state.
type Bag struct {
	mu     sync.Mutex
	values map[string]any
}

func newBag() *Bag {
	return &Bag{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (b *Bag) Get(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return v, ok
}

// GetString returns the string stored under key, or "" when absent or not a
// string.
func (b *Bag) GetString(key string) string {
	v, ok := b.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetBool returns the bool stored under key, false when absent.
func (b *Bag) GetBool(key string) bool {
	v, ok := b.Get(key)
	if !ok {
		return false
	}
	flag, _ := v.(bool)
	return flag
}

// Set stores a value under key.
func (b *Bag) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
}

// Delete removes a key.
func (b *Bag) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
}

// DefaultCapacity bounds how many conversations keep live bags; the least
// recently used bag is evicted first.
const DefaultCapacity = 1024

// Manager hands out bags keyed by owner, bounded by an LRU.
type Manager struct {
	bags *lru.Cache[string, *Bag]
}

// NewManager creates a Manager with the given capacity (DefaultCapacity when
// size <= 0).
func NewManager(size int) (*Manager, error) {
	if size <= 0 {
		size = DefaultCapacity
	}
	bags, err := lru.New[string, *Bag](size)
	if err != nil {
		return nil, err
	}
	return &Manager{bags: bags}, nil
}

// Bag returns the owner's bag, creating it on first use.
func (m *Manager) Bag(ownerID string) *Bag {
	if b, ok := m.bags.Get(ownerID); ok {
		return b
	}
	b := newBag()
	m.bags.Add(ownerID, b)
	return b
}

// Drop discards the owner's bag.
func (m *Manager) Drop(ownerID string) {
	m.bags.Remove(ownerID)
}
