package item

import (
	"context"
	"errors"

	"Potluck-Backend/domain"
	"Potluck-Backend/internal/utils/mailing"
	"Potluck-Backend/pkg/event"
	"Potluck-Backend/pkg/potluck"
	"Potluck-Backend/pkg/user"

	"github.com/gofiber/fiber/v2/log"
)

type (
	ItemService interface {
		CreateItem(ctx context.Context, eventID string, req domain.CreateItemRequest, session potluck.Session) (domain.CreateItemResponse, error)
		UpdateItem(ctx context.Context, eventID string, itemID string, req domain.UpdateItemRequest, session potluck.Session) error
		DeleteItem(ctx context.Context, eventID string, itemID string, session potluck.Session) error
		JoinEvent(ctx context.Context, req domain.JoinEventRequest, session potluck.Session) error
		LeaveEvent(ctx context.Context, eventID string, session potluck.Session) error
		MigrateLegacyItems(ctx context.Context) (int, error)
	}

	itemService struct {
		itemRepository  ItemRepository
		eventRepository event.EventRepository
		userRepository  user.UserRepository
		notifier        mailing.Notifier
	}
)

func NewItemService(
	itemRepository ItemRepository,
	eventRepository event.EventRepository,
	userRepository user.UserRepository,
	notifier mailing.Notifier,
) ItemService {
	return &itemService{
		itemRepository:  itemRepository,
		eventRepository: eventRepository,
		userRepository:  userRepository,
		notifier:        notifier,
	}
}

func toDishes(reqs []domain.DishRequest) []potluck.Dish {
	dishes := make([]potluck.Dish, 0, len(reqs))
	for _, d := range reqs {
		dishes = append(dishes, potluck.Dish{
			Name:     d.Name,
			Category: d.Category,
			Recipe:   d.Recipe,
		})
	}
	return dishes
}

func (s *itemService) CreateItem(ctx context.Context, eventID string, req domain.CreateItemRequest, session potluck.Session) (domain.CreateItemResponse, error) {
	ev, err := s.eventRepository.GetEvent(ctx, eventID)
	if err != nil {
		return domain.CreateItemResponse{}, err
	}
	if session.IsPast(*ev) {
		return domain.CreateItemResponse{}, domain.ErrEventPast
	}
	if !session.CanAddItem(*ev) {
		return domain.CreateItemResponse{}, domain.ErrAlreadyRSVPd
	}

	stamp := session.Now.UnixMilli()
	item := potluck.Item{
		ID:         s.itemRepository.NewItemID(),
		Person:     req.Person,
		GuestCount: potluck.EffectiveGuestCount(req.GuestCount),
		UserID:     session.UserID,
		Dishes:     toDishes(req.Dishes),
		Notes:      req.Notes,
		CreatedAt:  stamp,
		UpdatedAt:  stamp,
	}
	guest := !session.IsHost(*ev)
	if err := s.itemRepository.CreateItem(ctx, eventID, item, guest); err != nil {
		return domain.CreateItemResponse{}, err
	}
	if guest {
		s.notifyHost(ctx, *ev, item)
	}

	log.Infow("rsvp created", "event_id", eventID, "item_id", item.ID, "user_id", session.UserID)
	return domain.CreateItemResponse{ID: item.ID}, nil
}

func (s *itemService) notifyHost(ctx context.Context, ev potluck.Event, item potluck.Item) {
	if s.notifier == nil || ev.CreatedBy == "" {
		return
	}
	host, err := s.userRepository.GetProfile(ctx, ev.CreatedBy)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			log.Warnw("failed to load host profile", "event_id", ev.ID, "error", err)
		}
		return
	}
	go func() {
		if err := s.notifier.NotifyNewRSVP(*host, ev, item); err != nil {
			log.Warnw("failed to notify host", "event_id", ev.ID, "error", err)
		}
	}()
}

// loadEditable returns the event and item when the session may change the
// item.
func (s *itemService) loadEditable(ctx context.Context, eventID, itemID string, session potluck.Session) (*potluck.Event, *potluck.Item, error) {
	ev, err := s.eventRepository.GetEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	it, ok := ev.Items[itemID]
	if !ok {
		return nil, nil, domain.ErrItemNotFound
	}
	if !session.CanEditItem(it, *ev) {
		if session.IsPast(*ev) {
			return nil, nil, domain.ErrEventPast
		}
		return nil, nil, domain.ErrItemNotEditable
	}
	return ev, &it, nil
}

// UpdateItem rewrites the item in the current shape. Ownership and
// creation time are kept even when the host edits a guest's RSVP.
func (s *itemService) UpdateItem(ctx context.Context, eventID string, itemID string, req domain.UpdateItemRequest, session potluck.Session) error {
	_, existing, err := s.loadEditable(ctx, eventID, itemID, session)
	if err != nil {
		return err
	}

	updated := potluck.Item{
		ID:         itemID,
		Person:     req.Person,
		GuestCount: potluck.EffectiveGuestCount(req.GuestCount),
		UserID:     existing.UserID,
		Dishes:     toDishes(req.Dishes),
		Notes:      req.Notes,
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  session.Now.UnixMilli(),
	}
	return s.itemRepository.SaveItem(ctx, eventID, updated)
}

// DeleteItem leaves the owner's joinedEvents marker alone: membership ends
// only through LeaveEvent or event deletion.
func (s *itemService) DeleteItem(ctx context.Context, eventID string, itemID string, session potluck.Session) error {
	if _, _, err := s.loadEditable(ctx, eventID, itemID, session); err != nil {
		return err
	}
	return s.itemRepository.DeleteItem(ctx, eventID, itemID)
}

func (s *itemService) JoinEvent(ctx context.Context, req domain.JoinEventRequest, session potluck.Session) error {
	if session.UserID == "" {
		return domain.ErrUserNotAllowed
	}
	exists, err := s.eventRepository.EventExists(ctx, req.EventID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrEventNotFound
	}
	return s.userRepository.AddJoinedEvent(ctx, session.UserID, req.EventID)
}

func (s *itemService) LeaveEvent(ctx context.Context, eventID string, session potluck.Session) error {
	ev, err := s.eventRepository.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return s.userRepository.RemoveJoinedEvent(ctx, session.UserID, eventID)
		}
		return err
	}
	if session.IsHost(*ev) {
		return domain.ErrHostCannotLeave
	}

	var mine []string
	for id, it := range ev.Items {
		if it.UserID == session.UserID {
			mine = append(mine, id)
		}
	}
	if err := s.itemRepository.LeaveEvent(ctx, eventID, session.UserID, mine); err != nil {
		return err
	}
	log.Infow("left event", "event_id", eventID, "user_id", session.UserID, "items_removed", len(mine))
	return nil
}

// MigrateLegacyItems rewrites every item still stored in the inline
// single-dish shape.
func (s *itemService) MigrateLegacyItems(ctx context.Context) (int, error) {
	ids, err := s.eventRepository.ListEventIDs(ctx)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, id := range ids {
		ev, err := s.eventRepository.GetEvent(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrEventNotFound) {
				continue
			}
			return migrated, err
		}
		for _, it := range ev.Items {
			if !potluck.IsLegacy(it) {
				continue
			}
			if err := s.itemRepository.SaveItem(ctx, id, potluck.Canonicalize(it)); err != nil {
				return migrated, err
			}
			migrated++
		}
	}
	log.Infow("legacy item migration finished", "events", len(ids), "items", migrated)
	return migrated, nil
}
