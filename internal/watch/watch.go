// Package watch implements live queries over the store: a change hub
// broadcasts table-level notifications after each committed mutation, and
// subscribers re-run their query on every notification that touches a table
// they depend on. This is polling-on-notify, not an incremental view; a
// fresh result is emitted per relevant change and streams end only when the
// subscriber's context is cancelled.
package watch

import (
	"context"
	"sync"

	"minhasfinancas/internal/logger"
)

// Table names used as notification keys.
const (
	TableAccounts     = "accounts"
	TableAccountTypes = "account_types"
	TableCategories   = "categories"
	TableEvents       = "events"
	TableUsers        = "users"
)

// Hub fans table-change notifications out to subscribers. Services call
// Notify after their transaction commits, never from inside it, so a
// subscriber re-running its query always observes the committed state.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

type subscriber struct {
	tables map[string]struct{}
	// pending has capacity 1: notifications arriving while a re-query is
	// in flight coalesce into a single wakeup.
	pending chan struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Notify wakes every subscriber interested in any of the given tables.
func (h *Hub) Notify(tables ...string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if !sub.wants(tables) {
			continue
		}
		select {
		case sub.pending <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

func (s *subscriber) wants(tables []string) bool {
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}

// Subscribe runs query once immediately and again after every notification
// touching one of the given tables, sending each result on the returned
// channel. Sends block until the caller receives, so a slow consumer slows
// its own stream down rather than dropping results. The channel is closed
// when ctx is cancelled. Query errors are logged and skipped.
func Subscribe[T any](ctx context.Context, h *Hub, tables []string, query func() (T, error)) <-chan T {
	sub := &subscriber{
		tables:  make(map[string]struct{}, len(tables)),
		pending: make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}
	h.add(sub)

	out := make(chan T)
	go func() {
		defer close(out)
		defer h.remove(sub)

		for {
			result, err := query()
			if err != nil {
				logger.Get().Errorw("live query failed", "error", err, "tables", tables)
			} else {
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-sub.pending:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
