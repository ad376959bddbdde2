package snapshot

import (
	"sync"

	"github.com/dahorta/freshmarket/internal/domain/model"
)

// Cache keeps the last-known cart lines per identity in process memory. It
// backs cart recovery when the database is unreachable and survives only as
// long as the process does.
type Cache struct {
	mu        sync.RWMutex
	snapshots map[int64][]model.CartLine
}

// NewCache constructs an empty Cache.
func NewCache() *Cache {
	return &Cache{snapshots: make(map[int64][]model.CartLine)}
}

// Load returns a copy of the stored snapshot for the identity.
func (c *Cache) Load(userID int64) ([]model.CartLine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lines, ok := c.snapshots[userID]
	if !ok {
		return nil, false
	}
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out, true
}

// Store replaces the snapshot for the identity.
func (c *Cache) Store(userID int64, lines []model.CartLine) {
	stored := make([]model.CartLine, len(lines))
	copy(stored, lines)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[userID] = stored
}

// Drop removes the snapshot for the identity.
func (c *Cache) Drop(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, userID)
}
