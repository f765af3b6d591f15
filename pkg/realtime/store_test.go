package realtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreReadWrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "events/e1", map[string]any{
		"name": "Picnic",
		"items": map[string]any{
			"k1": map[string]any{"person": "A"},
		},
	}))

	snap, err := s.Get(ctx, "events/e1")
	require.NoError(t, err)
	assert.True(t, snap.Exists())
	assert.Equal(t, "e1", snap.Key())
	assert.Equal(t, "Picnic", snap.Child("name").Value)
	assert.Equal(t, []string{"items", "name"}, snap.Keys())

	require.NoError(t, s.Update(ctx, "events/e1", map[string]any{
		"name":            "Beach Picnic",
		"items/k2/person": "B",
	}))
	snap, err = s.Get(ctx, "events/e1/items")
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, snap.Keys())

	name, err := s.Get(ctx, "events/e1/name")
	require.NoError(t, err)
	assert.Equal(t, "Beach Picnic", name.Value)

	require.NoError(t, s.Remove(ctx, "events/e1/items/k1"))
	snap, err = s.Get(ctx, "events/e1/items")
	require.NoError(t, err)
	assert.Equal(t, []string{"k2"}, snap.Keys())

	require.NoError(t, s.Remove(ctx, "events/e1"))
	snap, err = s.Get(ctx, "events/e1")
	require.NoError(t, err)
	assert.False(t, snap.Exists())
}

func TestSetReplacesLeafAncestor(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "users/u1/hostedEvents", true))
	require.NoError(t, s.Set(ctx, "users/u1/hostedEvents/e1", true))

	snap, err := s.Get(ctx, "users/u1/hostedEvents")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"e1": true}, snap.Value)
}

func TestGenerateKeyUnique(t *testing.T) {
	s := NewMemoryStore()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		k := s.GenerateKey()
		assert.False(t, seen[k])
		seen[k] = true
	}
}

func receive(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "channel closed")
		return snap
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return Snapshot{}
	}
}

func TestSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "events/e1/name", "Picnic"))

	ch, err := s.Subscribe(ctx, "events/e1")
	require.NoError(t, err)
	initial := receive(t, ch)
	assert.Equal(t, map[string]any{"name": "Picnic"}, initial.Value)

	require.NoError(t, s.Set(ctx, "events/other/name", "x"))
	select {
	case snap := <-ch:
		t.Fatalf("unexpected snapshot %v", snap)
	default:
	}

	require.NoError(t, s.Set(ctx, "events/e1/items/k1/person", "A"))
	next := receive(t, ch)
	assert.True(t, next.Child("items").Exists())

	require.NoError(t, s.Broadcast(ctx))
	again := receive(t, ch)
	assert.Equal(t, next.Value, again.Value)
}

func TestSubscribeKeepsLatestOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewMemoryStore()

	ch, err := s.Subscribe(ctx, "counter")
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Set(ctx, "counter", i))
	}
	assert.Equal(t, float64(5), receive(t, ch).Value)
}

func TestSubscribeClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewMemoryStore()

	ch, err := s.Subscribe(ctx, "events/e1")
	require.NoError(t, err)
	receive(t, ch)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

// gatedBackend parks the first load after it has read, until release is
// closed.
type gatedBackend struct {
	backend
	once     sync.Once
	loaded   chan struct{}
	release  chan struct{}
	applied  chan struct{}
	gateNext bool
}

func (g *gatedBackend) load(ctx context.Context, path string) (map[string]any, error) {
	leaves, err := g.backend.load(ctx, path)
	if g.gateNext {
		g.once.Do(func() {
			close(g.loaded)
			<-g.release
		})
	}
	return leaves, err
}

func (g *gatedBackend) apply(ctx context.Context, writes []write) error {
	err := g.backend.apply(ctx, writes)
	if g.gateNext {
		select {
		case g.applied <- struct{}{}:
		default:
		}
	}
	return err
}

func TestSubscribeSeesWriteDuringInitialRead(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gated := &gatedBackend{
		backend: &memoryBackend{leaves: make(map[string]any)},
		loaded:  make(chan struct{}),
		release: make(chan struct{}),
		applied: make(chan struct{}, 1),
	}
	s := newStore(gated)
	require.NoError(t, s.Set(ctx, "events/e1/name", "old"))
	gated.gateNext = true

	type result struct {
		ch  <-chan Snapshot
		err error
	}
	subscribed := make(chan result, 1)
	go func() {
		ch, err := s.Subscribe(ctx, "events/e1")
		subscribed <- result{ch, err}
	}()
	<-gated.loaded

	go func() {
		_ = s.Set(ctx, "events/e1/name", "new")
	}()
	select {
	case <-gated.applied:
	case <-time.After(time.Second):
		t.Fatal("write was not applied")
	}
	close(gated.release)

	res := <-subscribed
	require.NoError(t, res.err)

	var last Snapshot
	assert.Eventually(t, func() bool {
		select {
		case snap := <-res.ch:
			last = snap
		default:
		}
		m, _ := last.Value.(map[string]any)
		return m["name"] == "new"
	}, time.Second, 10*time.Millisecond)
}

func TestPublishDeliversInReadOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewMemoryStore()

	ch, err := s.Subscribe(ctx, "counter")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Update(ctx, "", map[string]any{"counter": n})
		}(i)
	}
	wg.Wait()

	current, err := s.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, current.Value, receive(t, ch).Value)
}
