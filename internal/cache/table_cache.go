package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/rtboard/backend/internal/types"
)

// Key identifies one cached fetch. The acting user is part of the key so
// a shared cache never serves one user's tickets to another.
type Key struct {
	Year   int
	Query  string
	Fields string
	User   string
}

// NewKey normalizes the query and fields text so that equivalent calls
// with stray whitespace land on the same entry.
func NewKey(year int, query, fields, user string) Key {
	return Key{
		Year:   year,
		Query:  strings.TrimSpace(query),
		Fields: strings.TrimSpace(fields),
		User:   user,
	}
}

type entry struct {
	table     types.Table
	createdAt time.Time
}

// TableCache memoizes fetched ticket tables for the duration of one
// interactive session. Entries expire after a TTL; expired entries behave
// like misses and are overwritten by the next fetch.
type TableCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[Key]entry
}

// NewTableCache creates a cache with the given TTL. now is injectable so
// expiry is testable without waiting on a real clock; pass nil to use
// time.Now.
func NewTableCache(ttl time.Duration, now func() time.Time) *TableCache {
	if now == nil {
		now = time.Now
	}
	return &TableCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[Key]entry),
	}
}

// Get returns a deep copy of a live entry's table, or ok=false on a miss
// or an expired entry.
func (c *TableCache) Get(key Key) (types.Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.createdAt) >= c.ttl {
		return nil, false
	}
	return e.table.Copy(), true
}

// Put stores a deep copy of the table with a fresh timestamp. Empty
// tables are not stored: a transiently empty upstream response must not
// stick for the whole TTL.
func (c *TableCache) Put(key Key, table types.Table) {
	if len(table) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{table: table.Copy(), createdAt: c.now()}
}

// Clear drops every entry. Called when credentials or identity change.
func (c *TableCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]entry)
}

// Size returns the current number of entries, live or expired.
func (c *TableCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
