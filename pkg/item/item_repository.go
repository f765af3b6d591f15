package item

import (
	"context"
	"fmt"

	"Potluck-Backend/domain"
	"Potluck-Backend/pkg/event"
	"Potluck-Backend/pkg/potluck"
	"Potluck-Backend/pkg/realtime"
)

type (
	ItemRepository interface {
		NewItemID() string
		GetItem(ctx context.Context, eventID string, itemID string) (*potluck.Item, error)
		CreateItem(ctx context.Context, eventID string, item potluck.Item, markJoined bool) error
		SaveItem(ctx context.Context, eventID string, item potluck.Item) error
		DeleteItem(ctx context.Context, eventID string, itemID string) error
		LeaveEvent(ctx context.Context, eventID string, userID string, itemIDs []string) error
	}

	itemRepository struct {
		store realtime.Store
	}
)

func NewItemRepository(store realtime.Store) ItemRepository {
	return &itemRepository{store: store}
}

func itemPath(eventID, itemID string) string {
	return realtime.Join(event.EventPath(eventID), "items", itemID)
}

func (r *itemRepository) NewItemID() string {
	return r.store.GenerateKey()
}

func (r *itemRepository) GetItem(ctx context.Context, eventID string, itemID string) (*potluck.Item, error) {
	snap, err := r.store.Get(ctx, itemPath(eventID, itemID))
	if err != nil {
		return nil, fmt.Errorf("get item %s/%s: %w", eventID, itemID, err)
	}
	if !snap.Exists() {
		return nil, domain.ErrItemNotFound
	}
	item := potluck.ItemFromRecord(itemID, snap.Value)
	return &item, nil
}

// CreateItem writes a new item and, when markJoined is set, the owner's
// joinedEvents marker in one atomic update.
func (r *itemRepository) CreateItem(ctx context.Context, eventID string, item potluck.Item, markJoined bool) error {
	fields := map[string]any{
		itemPath(eventID, item.ID): item.Record(),
	}
	if markJoined && item.UserID != "" {
		fields[realtime.Join("users", item.UserID, "joinedEvents", eventID)] = true
	}
	if err := r.store.Update(ctx, "", fields); err != nil {
		return fmt.Errorf("create item %s/%s: %w", eventID, item.ID, err)
	}
	return nil
}

// SaveItem replaces the whole item, so legacy inline fields disappear on
// the first write.
func (r *itemRepository) SaveItem(ctx context.Context, eventID string, item potluck.Item) error {
	if err := r.store.Set(ctx, itemPath(eventID, item.ID), item.Record()); err != nil {
		return fmt.Errorf("save item %s/%s: %w", eventID, item.ID, err)
	}
	return nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, eventID string, itemID string) error {
	if err := r.store.Remove(ctx, itemPath(eventID, itemID)); err != nil {
		return fmt.Errorf("delete item %s/%s: %w", eventID, itemID, err)
	}
	return nil
}

// LeaveEvent drops the listed items and the joinedEvents marker together.
func (r *itemRepository) LeaveEvent(ctx context.Context, eventID string, userID string, itemIDs []string) error {
	fields := map[string]any{
		realtime.Join("users", userID, "joinedEvents", eventID): nil,
	}
	for _, id := range itemIDs {
		fields[itemPath(eventID, id)] = nil
	}
	if err := r.store.Update(ctx, "", fields); err != nil {
		return fmt.Errorf("leave event %s: %w", eventID, err)
	}
	return nil
}
