// Package events carries "resource changed" notifications between the
// handlers that mutate upstream data and the cache that holds list copies.
package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Resource string

const (
	Teams   Resource = "teams"
	Venues  Resource = "locais"
	Matches Resource = "matches"
)

// RefreshEvent is the HX-Trigger event name that makes the browser reload the
// list for r.
func (r Resource) RefreshEvent() string {
	switch r {
	case Teams:
		return "refreshTeamsList"
	case Venues:
		return "refreshVenuesList"
	case Matches:
		return "refreshMatchesList"
	default:
		return ""
	}
}

// Changed says the collection r, as seen by Scope, is stale. Scope is the
// session id the collection was fetched with.
type Changed struct {
	Scope    string
	Resource Resource
}

type Handler func(Changed)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus delivers events synchronously, in subscription order, on the
// publisher's goroutine. A subscriber observes the event before Publish
// returns.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Resource][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Resource][]subscription)}
}

// Subscribe registers h for events about r and returns a function removing it.
func (b *Bus) Subscribe(r Resource, h Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[r] = append(b.subs[r], subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			subs := b.subs[r]
			for i, s := range subs {
				if s.id == id {
					b.subs[r] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

func (b *Bus) Publish(evt Changed) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[evt.Resource]...)
	b.mu.RUnlock()

	log.Debug().
		Str("resource", string(evt.Resource)).
		Int("subscribers", len(subs)).
		Msg("Publishing resource change")

	for _, s := range subs {
		s.handler(evt)
	}
}
