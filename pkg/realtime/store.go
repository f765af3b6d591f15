// Package realtime implements the path-addressed document store the rest of
// the service persists to. Values are JSON-like trees; every write notifies
// subscribers whose path overlaps the written one.
package realtime

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrInvalidPath      = errors.New("invalid store path")
	ErrUnsupportedValue = errors.New("unsupported store value")
)

type Store interface {
	Get(ctx context.Context, path string) (Snapshot, error)
	Set(ctx context.Context, path string, value any) error
	Update(ctx context.Context, path string, fields map[string]any) error
	Remove(ctx context.Context, path string) error
	GenerateKey() string
	// Subscribe delivers the current value at path and then a fresh snapshot
	// after every overlapping write until ctx is done. A slow reader only
	// ever sees the latest snapshot.
	Subscribe(ctx context.Context, path string) (<-chan Snapshot, error)
	// Broadcast re-delivers current snapshots to every subscriber.
	Broadcast(ctx context.Context) error
}

// Snapshot is an immutable view of the value at Path. A nil Value means
// nothing is stored there.
type Snapshot struct {
	Path  string
	Value any
}

func (s Snapshot) Exists() bool {
	return s.Value != nil
}

func (s Snapshot) Key() string {
	return lastSegment(s.Path)
}

func (s Snapshot) Child(key string) Snapshot {
	child := Snapshot{Path: Join(s.Path, key)}
	switch v := s.Value.(type) {
	case map[string]any:
		child.Value = v[key]
	case []any:
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < len(v) {
			child.Value = v[i]
		}
	}
	return child
}

// Children returns the direct children ordered by key.
func (s Snapshot) Children() []Snapshot {
	m, ok := s.Value.(map[string]any)
	if !ok {
		if list, ok := s.Value.([]any); ok {
			out := make([]Snapshot, 0, len(list))
			for i := range list {
				out = append(out, s.Child(strconv.Itoa(i)))
			}
			return out
		}
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Snapshot, 0, len(keys))
	for _, k := range keys {
		out = append(out, Snapshot{Path: Join(s.Path, k), Value: m[k]})
	}
	return out
}

// Keys returns the sorted child keys.
func (s Snapshot) Keys() []string {
	children := s.Children()
	keys := make([]string, 0, len(children))
	for _, c := range children {
		keys = append(keys, c.Key())
	}
	return keys
}

// write is one replacement of the subtree at path by leaves. An empty leaf
// set removes the subtree.
type write struct {
	path   string
	leaves map[string]any
}

type backend interface {
	load(ctx context.Context, path string) (map[string]any, error)
	apply(ctx context.Context, writes []write) error
}

type store struct {
	backend backend
	hub     *hub

	publishMu sync.Mutex
}

func newStore(b backend) *store {
	return &store{backend: b, hub: newHub()}
}

func (s *store) Get(ctx context.Context, path string) (Snapshot, error) {
	path, err := CleanPath(path)
	if err != nil {
		return Snapshot{}, err
	}
	leaves, err := s.backend.load(ctx, path)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Path: path, Value: assemble(path, leaves)}, nil
}

func (s *store) Set(ctx context.Context, path string, value any) error {
	path, err := CleanPath(path)
	if err != nil {
		return err
	}
	w, err := newWrite(path, value)
	if err != nil {
		return err
	}
	if err := s.backend.apply(ctx, []write{w}); err != nil {
		return err
	}
	s.notify(ctx, path)
	return nil
}

// Update sets each field below path in one atomic write. Field keys may be
// relative paths such as "items/abc/person".
func (s *store) Update(ctx context.Context, path string, fields map[string]any) error {
	path, err := CleanPath(path)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	writes := make([]write, 0, len(fields))
	paths := make([]string, 0, len(fields))
	for field, value := range fields {
		rel, err := CleanPath(field)
		if err != nil {
			return err
		}
		if rel == "" {
			return ErrInvalidPath
		}
		w, err := newWrite(Join(path, rel), value)
		if err != nil {
			return err
		}
		writes = append(writes, w)
		paths = append(paths, w.path)
	}
	sort.Slice(writes, func(i, j int) bool { return writes[i].path < writes[j].path })

	if err := s.backend.apply(ctx, writes); err != nil {
		return err
	}
	s.notify(ctx, paths...)
	return nil
}

func (s *store) Remove(ctx context.Context, path string) error {
	return s.Set(ctx, path, nil)
}

// GenerateKey returns a time ordered unique key.
func (s *store) GenerateKey() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func newWrite(path string, value any) (write, error) {
	leaves := map[string]any{}
	if err := flatten(path, value, leaves); err != nil {
		return write{}, err
	}
	return write{path: path, leaves: leaves}, nil
}

// applyTo replays writes against a leaf map. Both backends share it so that
// an ancestor leaf is always cleared before children are written below it.
func applyTo(leaves map[string]any, w write) {
	for p := range leaves {
		if within(p, w.path) {
			delete(leaves, p)
		}
	}
	for _, a := range ancestors(w.path) {
		delete(leaves, a)
	}
	for p, v := range w.leaves {
		leaves[p] = v
	}
}
