package state

import (
	"strings"
	"sync"

	"sttock-tracker/internal/entity"
)

// Collection is the explicit application-state object for one user's
// tracked stocks: an ordered in-memory list, newest first, mirroring what
// the collection store holds. Optimistic mutations work on a value
// snapshot taken before the speculative change and restored verbatim when
// persistence fails.
//
// The mutex protects slice integrity under concurrent requests; it does
// not serialize whole add/remove flows, so the duplicate-check race across
// the async boundary remains possible.
type Collection struct {
	mu     sync.RWMutex
	loaded bool
	stocks []entity.Stock
}

// NewCollection creates an empty, not-yet-loaded collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Loaded reports whether the collection was initialized from its store.
func (c *Collection) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Reset replaces the collection contents and marks it loaded. It is also
// used after a failed initial load, with an empty slice: the collection
// then renders empty rather than staying in a loading state.
func (c *Collection) Reset(stocks []entity.Stock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
	c.stocks = append([]entity.Stock(nil), stocks...)
}

// Stocks returns a copy of the current contents, newest first.
func (c *Collection) Stocks() []entity.Stock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.Stock(nil), c.stocks...)
}

// Snapshot captures the current contents for a later Restore.
func (c *Collection) Snapshot() []entity.Stock {
	return c.Stocks()
}

// Restore puts the collection back to a previously captured snapshot.
func (c *Collection) Restore(snapshot []entity.Stock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stocks = append([]entity.Stock(nil), snapshot...)
}

// Prepend inserts a stock at the head of the list.
func (c *Collection) Prepend(stock entity.Stock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stocks = append([]entity.Stock{stock}, c.stocks...)
}

// Contains reports whether a symbol is already tracked, compared
// case-insensitively.
func (c *Collection) Contains(symbol string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, stock := range c.stocks {
		if strings.EqualFold(stock.Symbol, symbol) {
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given identifier, reporting whether
// anything was removed.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, stock := range c.stocks {
		if stock.ID == id {
			c.stocks = append(c.stocks[:i], c.stocks[i+1:]...)
			return true
		}
	}
	return false
}
