package availability

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nekogravitycat/salon-booking-backend/internal/notifier"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
)

type StaffGetter interface {
	GetByID(ctx context.Context, id string) (*staff.Member, error)
}

// Subscriber is the receiving half of notifier.Bus.
type Subscriber interface {
	Subscribe(eventType notifier.EventType, h notifier.Handler) func()
}

// StaffCache keeps recently checked staff members in memory. Entries are
// evicted when the notifier reports the member changed or was removed.
// Cached members are shared and must not be mutated.
type StaffCache struct {
	cache  *lru.Cache[string, *staff.Member]
	source StaffGetter

	// gens counts invalidations per id. A fetch that raced with an
	// invalidation must not repopulate the cache with what it read.
	mu   sync.Mutex
	gens map[string]uint64
}

func NewStaffCache(source StaffGetter, size int) (*StaffCache, error) {
	cache, err := lru.New[string, *staff.Member](size)
	if err != nil {
		return nil, fmt.Errorf("create staff cache: %w", err)
	}
	return &StaffCache{cache: cache, source: source, gens: make(map[string]uint64)}, nil
}

func (c *StaffCache) GetByID(ctx context.Context, id string) (*staff.Member, error) {
	if m, ok := c.cache.Get(id); ok {
		return m, nil
	}
	c.mu.Lock()
	gen := c.gens[id]
	c.mu.Unlock()

	m, err := c.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gens[id] == gen {
		c.cache.Add(id, m)
	}
	c.mu.Unlock()
	return m, nil
}

func (c *StaffCache) Invalidate(id string) {
	c.mu.Lock()
	c.gens[id]++
	c.cache.Remove(id)
	c.mu.Unlock()
}

func (c *StaffCache) Len() int {
	return c.cache.Len()
}

// Attach evicts entries on staff.updated and staff.deleted events.
func (c *StaffCache) Attach(bus Subscriber) (detach func()) {
	evict := func(_ context.Context, e notifier.Event) {
		c.Invalidate(e.StaffID)
	}
	offUpdated := bus.Subscribe(notifier.StaffUpdated, evict)
	offDeleted := bus.Subscribe(notifier.StaffDeleted, evict)
	return func() {
		offUpdated()
		offDeleted()
	}
}
