package pages

import (
	"context"
	"sync"
)

// Store is the read side of page persistence used by resolution.
type Store interface {
	// Candidates returns the pages whose path is one of paths,
	// deepest path first.
	Candidates(ctx context.Context, paths []string) ([]Page, error)

	// All returns every page ordered by path.
	All(ctx context.Context) ([]Page, error)

	// Subscribe registers fn to be called synchronously after every write.
	// The returned function removes the subscription.
	Subscribe(fn func(Event)) (cancel func())
}

// Repository is a Store that can also be written to.
//
// Writes keep the tree consistent: renaming a page moves its descendants,
// deleting a page removes them, and paths are unique.
type Repository interface {
	Store

	Get(ctx context.Context, id string) (Page, error)
	GetByPath(ctx context.Context, path string) (Page, error)
	// Children returns the direct children of parentID ordered by Order;
	// an empty parentID lists top-level pages.
	Children(ctx context.Context, parentID string) ([]Page, error)

	Create(ctx context.Context, p *Page) error
	Update(ctx context.Context, p *Page) error
	Delete(ctx context.Context, id string) error
}

// EventKind identifies the write behind an Event.
type EventKind int

const (
	EventCreated EventKind = iota + 1
	EventUpdated
	EventDeleted
	// EventInvalidated carries no page; it is published when the store
	// learns of changes it did not make itself.
	EventInvalidated
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	case EventInvalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// Event describes a page write.
type Event struct {
	Page Page
	// OldPath is the previous path of an updated page.
	OldPath string
	Kind    EventKind
}

// Hub fans events out to subscribers. The zero value is ready to use.
type Hub struct {
	subs map[uint64]func(Event)
	next uint64
	mu   sync.RWMutex
}

// Subscribe implements Store.Subscribe.
func (h *Hub) Subscribe(fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs == nil {
		h.subs = make(map[uint64]func(Event))
	}
	id := h.next
	h.next++
	h.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish calls every subscriber with e.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
