package income

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Key identifies the inputs a cached figure was computed from.
// Callers stamp a new SnapshotVersion whenever the transaction snapshot is replaced and a new
// SummaryVersion whenever the daily summary changes.
type Key struct {
	SnapshotVersion string
	HasDailySummary bool
	SummaryVersion  string
}

// Memo caches figures until their key changes.
// It is safe for concurrent use; a figure requested concurrently for the same key may be
// computed more than once, which is harmless because computations are pure.
type Memo struct {
	aggregator *Aggregator

	mu     sync.Mutex
	key    Key
	values map[Figure]decimal.Decimal
	misses int
}

// NewMemo creates a Memo computing figures with aggregator
func NewMemo(aggregator *Aggregator) *Memo {
	return &Memo{
		aggregator: aggregator,
		values:     make(map[Figure]decimal.Decimal),
	}
}

// Get returns figure f for the inputs identified by key, computing it only on a cache miss.
func (m *Memo) Get(f Figure, key Key, in Inputs) decimal.Decimal {
	m.mu.Lock()
	if key != m.key {
		m.key = key
		m.values = make(map[Figure]decimal.Decimal)
	}
	if v, ok := m.values[f]; ok {
		m.mu.Unlock()
		return v
	}
	m.misses++
	m.mu.Unlock()

	v := m.aggregator.Figure(f, in)

	m.mu.Lock()
	if key == m.key {
		m.values[f] = v
	}
	m.mu.Unlock()
	return v
}

// Invalidate drops every cached figure. Computations still in flight are not cached.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key = Key{}
	m.values = make(map[Figure]decimal.Decimal)
}

// Misses returns how many figures have been computed rather than served from cache
func (m *Memo) Misses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.misses
}
