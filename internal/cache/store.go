// Package cache keeps the last fetched copy of each list per session. Entries
// go stale after a fixed time or when a change to their resource is published
// on the events bus; a stale entry is re-fetched on the next read.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/codr1/futplan/internal/events"
)

const (
	DefaultStaleTime = time.Minute
	// Entries untouched for this long are dropped by Sweep.
	retention = 5 * time.Minute
)

var cachedResources = []events.Resource{events.Teams, events.Venues, events.Matches}

type key struct {
	scope    string
	resource events.Resource
}

func (k key) String() string {
	return fmt.Sprintf("%s/%s", k.scope, k.resource)
}

type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

type Store struct {
	mu          sync.Mutex
	entries     map[key]*entry
	generations map[key]uint64
	group       singleflight.Group
	clock       clockwork.Clock
	staleTime   time.Duration
	unsubscribe []func()
}

// New creates a store and subscribes it to bus for every cached resource.
func New(bus *events.Bus, clock clockwork.Clock, staleTime time.Duration) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	s := &Store{
		entries:     make(map[key]*entry),
		generations: make(map[key]uint64),
		clock:       clock,
		staleTime:   staleTime,
	}
	if bus != nil {
		for _, r := range cachedResources {
			s.unsubscribe = append(s.unsubscribe, bus.Subscribe(r, s.onChanged))
		}
	}
	return s
}

// Close detaches the store from the bus.
func (s *Store) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
}

func (s *Store) onChanged(evt events.Changed) {
	s.Invalidate(evt.Scope, evt.Resource)
}

// Invalidate marks the collection stale. Invalidating an absent or already
// stale entry is a no-op apart from bumping its generation, so a fetch that
// started before the change cannot store its result as fresh.
func (s *Store) Invalidate(scope string, r events.Resource) {
	k := key{scope: scope, resource: r}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[k]++
	if e, ok := s.entries[k]; ok {
		e.stale = true
	}
}

// Drop forgets every entry of scope, e.g. after logout. Its generations go too:
// session ids are never reused, so a load still running for a dropped scope
// can only write an entry nobody reads, which Sweep removes later.
func (s *Store) Drop(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if k.scope == scope {
			delete(s.entries, k)
		}
	}
	for k := range s.generations {
		if k.scope == scope {
			delete(s.generations, k)
		}
	}
}

// Sweep drops entries not refreshed within the retention window and returns
// how many were removed. Generations are kept: a load may still be running
// for a swept key and must not land as fresh after a later invalidation.
func (s *Store) Sweep() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if now.Sub(e.fetchedAt) > retention {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *Store) lookup(k key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[k]
	if !ok || e.stale {
		return nil, false
	}
	if s.clock.Since(e.fetchedAt) >= s.staleTime {
		return nil, false
	}
	return e.value, true
}

func (s *Store) generation(k key) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[k]
}

func (s *Store) store(k key, value any, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[k] = &entry{
		value:     value,
		fetchedAt: s.clock.Now(),
		stale:     s.generations[k] != generation,
	}
}

// Fetch returns the cached collection for (scope, r) when fresh, otherwise
// calls load. Concurrent misses for the same key share one load, which runs
// detached from any single caller: a caller whose ctx ends gets ctx.Err()
// while the others still receive the result. A failed load is retried once.
func Fetch[T any](ctx context.Context, s *Store, scope string, r events.Resource, load func(context.Context) ([]T, error)) ([]T, error) {
	k := key{scope: scope, resource: r}
	if value, ok := s.lookup(k); ok {
		if items, ok := value.([]T); ok {
			return items, nil
		}
	}

	// Loads that began before an invalidation are not joined by later readers.
	generation := s.generation(k)
	flightKey := fmt.Sprintf("%s#%d", k, generation)
	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(flightKey, func() (any, error) {
		items, err := load(loadCtx)
		if err != nil {
			log.Ctx(loadCtx).Warn().Err(err).Str("resource", string(r)).Msg("List load failed, retrying once")
			items, err = load(loadCtx)
		}
		if err != nil {
			return nil, err
		}
		s.store(k, items, generation)
		return items, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		log.Ctx(ctx).Debug().Str("resource", string(r)).Msg("List load shared with concurrent request")
	}

	items, ok := res.Val.([]T)
	if !ok {
		return nil, fmt.Errorf("cache entry %s holds %T", k, res.Val)
	}
	return items, nil
}
