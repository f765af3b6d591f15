package user

import (
	"context"
	"fmt"

	"Potluck-Backend/domain"
	"Potluck-Backend/pkg/realtime"
)

const (
	hostedEvents = "hostedEvents"
	joinedEvents = "joinedEvents"
)

type (
	UserRepository interface {
		GetProfile(ctx context.Context, uid string) (*domain.Identity, error)
		UpsertProfile(ctx context.Context, identity domain.Identity) error
		GetHostedEventIDs(ctx context.Context, uid string) ([]string, error)
		GetJoinedEventIDs(ctx context.Context, uid string) ([]string, error)
		AddJoinedEvent(ctx context.Context, uid string, eventID string) error
		RemoveJoinedEvent(ctx context.Context, uid string, eventID string) error
	}

	userRepository struct {
		store realtime.Store
	}
)

func NewUserRepository(store realtime.Store) UserRepository {
	return &userRepository{store: store}
}

func userPath(uid string) string {
	return realtime.Join("users", uid)
}

func refPath(uid, set, eventID string) string {
	return realtime.Join("users", uid, set, eventID)
}

func (r *userRepository) GetProfile(ctx context.Context, uid string) (*domain.Identity, error) {
	snap, err := r.store.Get(ctx, userPath(uid))
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", uid, err)
	}
	if !snap.Exists() {
		return nil, domain.ErrProfileNotFound
	}

	name, _ := snap.Child("name").Value.(string)
	email, _ := snap.Child("email").Value.(string)
	photo, _ := snap.Child("photoURL").Value.(string)
	return &domain.Identity{
		UID:         uid,
		DisplayName: name,
		Email:       email,
		PhotoURL:    photo,
	}, nil
}

// UpsertProfile only touches the profile fields, leaving back-references
// in place.
func (r *userRepository) UpsertProfile(ctx context.Context, identity domain.Identity) error {
	fields := map[string]any{
		"name":  identity.DisplayName,
		"email": identity.Email,
	}
	if identity.PhotoURL != "" {
		fields["photoURL"] = identity.PhotoURL
	}
	if err := r.store.Update(ctx, userPath(identity.UID), fields); err != nil {
		return fmt.Errorf("update profile %s: %w", identity.UID, err)
	}
	return nil
}

func (r *userRepository) eventIDs(ctx context.Context, uid, set string) ([]string, error) {
	snap, err := r.store.Get(ctx, realtime.Join("users", uid, set))
	if err != nil {
		return nil, fmt.Errorf("get %s of %s: %w", set, uid, err)
	}
	ids := make([]string, 0)
	for _, child := range snap.Children() {
		if marked, ok := child.Value.(bool); ok && !marked {
			continue
		}
		ids = append(ids, child.Key())
	}
	return ids, nil
}

func (r *userRepository) GetHostedEventIDs(ctx context.Context, uid string) ([]string, error) {
	return r.eventIDs(ctx, uid, hostedEvents)
}

func (r *userRepository) GetJoinedEventIDs(ctx context.Context, uid string) ([]string, error) {
	return r.eventIDs(ctx, uid, joinedEvents)
}

func (r *userRepository) AddJoinedEvent(ctx context.Context, uid string, eventID string) error {
	return r.store.Set(ctx, refPath(uid, joinedEvents, eventID), true)
}

func (r *userRepository) RemoveJoinedEvent(ctx context.Context, uid string, eventID string) error {
	return r.store.Remove(ctx, refPath(uid, joinedEvents, eventID))
}
