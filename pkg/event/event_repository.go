package event

import (
	"context"
	"fmt"

	"Potluck-Backend/domain"
	"Potluck-Backend/pkg/potluck"
	"Potluck-Backend/pkg/realtime"
)

type (
	EventRepository interface {
		GetEvent(ctx context.Context, eventID string) (*potluck.Event, error)
		EventExists(ctx context.Context, eventID string) (bool, error)
		CreateEvent(ctx context.Context, event potluck.Event) error
		UpdateEvent(ctx context.Context, eventID string, fields map[string]any) error
		DeleteEvent(ctx context.Context, event potluck.Event) error
		ListEventIDs(ctx context.Context) ([]string, error)
		SubscribeEvent(ctx context.Context, eventID string) (<-chan *potluck.Event, error)
	}

	eventRepository struct {
		store realtime.Store
	}
)

func NewEventRepository(store realtime.Store) EventRepository {
	return &eventRepository{store: store}
}

func EventPath(eventID string) string {
	return realtime.Join("events", eventID)
}

func (r *eventRepository) GetEvent(ctx context.Context, eventID string) (*potluck.Event, error) {
	snap, err := r.store.Get(ctx, EventPath(eventID))
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	if !snap.Exists() {
		return nil, domain.ErrEventNotFound
	}
	event := potluck.EventFromRecord(eventID, snap.Value)
	return &event, nil
}

func (r *eventRepository) EventExists(ctx context.Context, eventID string) (bool, error) {
	snap, err := r.store.Get(ctx, EventPath(eventID))
	if err != nil {
		return false, fmt.Errorf("check event %s: %w", eventID, err)
	}
	return snap.Exists(), nil
}

// CreateEvent writes the event and the creator's hostedEvents marker in a
// single multi-path update.
func (r *eventRepository) CreateEvent(ctx context.Context, event potluck.Event) error {
	fields := map[string]any{
		EventPath(event.ID): event.Record(),
	}
	if event.CreatedBy != "" {
		fields[realtime.Join("users", event.CreatedBy, "hostedEvents", event.ID)] = true
	}
	if err := r.store.Update(ctx, "", fields); err != nil {
		return fmt.Errorf("create event %s: %w", event.ID, err)
	}
	return nil
}

func (r *eventRepository) UpdateEvent(ctx context.Context, eventID string, fields map[string]any) error {
	if err := r.store.Update(ctx, EventPath(eventID), fields); err != nil {
		return fmt.Errorf("update event %s: %w", eventID, err)
	}
	return nil
}

// DeleteEvent removes the event with all of its items and every
// back-reference to it in one atomic update. Joined markers are found by
// scanning users: a guest may join by id without an RSVP.
func (r *eventRepository) DeleteEvent(ctx context.Context, event potluck.Event) error {
	fields := map[string]any{
		EventPath(event.ID): nil,
	}
	if event.CreatedBy != "" {
		fields[realtime.Join("users", event.CreatedBy, "hostedEvents", event.ID)] = nil
	}
	users, err := r.store.Get(ctx, "users")
	if err != nil {
		return fmt.Errorf("delete event %s: %w", event.ID, err)
	}
	for _, u := range users.Children() {
		if u.Child("joinedEvents").Child(event.ID).Exists() {
			fields[realtime.Join(u.Path, "joinedEvents", event.ID)] = nil
		}
	}
	if err := r.store.Update(ctx, "", fields); err != nil {
		return fmt.Errorf("delete event %s: %w", event.ID, err)
	}
	return nil
}

func (r *eventRepository) ListEventIDs(ctx context.Context) ([]string, error) {
	snap, err := r.store.Get(ctx, "events")
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return snap.Keys(), nil
}

// SubscribeEvent emits the decoded event after every change, or nil once
// the event no longer exists. The channel closes when ctx is done.
func (r *eventRepository) SubscribeEvent(ctx context.Context, eventID string) (<-chan *potluck.Event, error) {
	snapshots, err := r.store.Subscribe(ctx, EventPath(eventID))
	if err != nil {
		return nil, fmt.Errorf("subscribe event %s: %w", eventID, err)
	}

	out := make(chan *potluck.Event)
	go func() {
		defer close(out)
		for snap := range snapshots {
			var event *potluck.Event
			if snap.Exists() {
				decoded := potluck.EventFromRecord(eventID, snap.Value)
				event = &decoded
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
