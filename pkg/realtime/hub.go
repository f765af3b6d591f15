package realtime

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

type subscription struct {
	id   uint64
	path string

	mu     sync.Mutex
	ch     chan Snapshot
	closed bool
}

// deliver keeps at most one pending snapshot, replacing a stale one.
func (s *subscription) deliver(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- snap
}

func (s *subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

type hub struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]*subscription
}

func newHub() *hub {
	return &hub{subs: make(map[uint64]*subscription)}
}

func (h *hub) add(path string) *subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	sub := &subscription{id: h.next, path: path, ch: make(chan Snapshot, 1)}
	h.subs[sub.id] = sub
	return sub
}

func (h *hub) remove(id uint64) {
	h.mu.Lock()
	sub, ok := h.subs[id]
	delete(h.subs, id)
	h.mu.Unlock()
	if ok {
		sub.close()
	}
}

// matching returns subscriptions overlapping any of paths. A nil paths
// slice matches everything.
func (h *hub) matching(paths []string) []*subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		if paths == nil {
			out = append(out, sub)
			continue
		}
		for _, p := range paths {
			if overlaps(sub.path, p) {
				out = append(out, sub)
				break
			}
		}
	}
	return out
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (s *store) Subscribe(ctx context.Context, path string) (<-chan Snapshot, error) {
	path, err := CleanPath(path)
	if err != nil {
		return nil, err
	}

	// Registering before the first read means a write committed in between
	// is either in the initial snapshot or notified afterwards.
	sub := s.hub.add(path)
	if err := s.publish(ctx, []*subscription{sub}); err != nil {
		s.hub.remove(sub.id)
		return nil, err
	}
	go func() {
		<-ctx.Done()
		s.hub.remove(sub.id)
	}()
	return sub.ch, nil
}

func (s *store) Broadcast(ctx context.Context) error {
	return s.publish(ctx, s.hub.matching(nil))
}

// notify runs after a committed write. Delivery failures are logged, the
// write itself already succeeded.
func (s *store) notify(ctx context.Context, paths ...string) {
	if err := s.publish(ctx, s.hub.matching(paths)); err != nil {
		log.Warnw("realtime notify failed", "paths", paths, "error", err)
	}
}

// publish reads and delivers under publishMu so snapshots reach a
// subscriber in the order they were read.
func (s *store) publish(ctx context.Context, subs []*subscription) error {
	if len(subs) == 0 {
		return nil
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	snapshots := make(map[string]Snapshot, len(subs))
	var firstErr error
	for _, sub := range subs {
		snap, ok := snapshots[sub.path]
		if !ok {
			var err error
			snap, err = s.Get(ctx, sub.path)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			snapshots[sub.path] = snap
		}
		sub.deliver(snap)
	}
	return firstErr
}
