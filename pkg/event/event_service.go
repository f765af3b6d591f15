package event

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"Potluck-Backend/domain"
	"Potluck-Backend/internal/utils"
	"Potluck-Backend/internal/utils/storage"
	"Potluck-Backend/pkg/potluck"
	"Potluck-Backend/pkg/user"

	"github.com/gofiber/fiber/v2/log"
)

const (
	eventIDLength   = 8
	eventIDAttempts = 10
	eventIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type (
	EventService interface {
		CreateEvent(ctx context.Context, req domain.CreateEventRequest, session potluck.Session) (domain.CreateEventResponse, error)
		UpdateEvent(ctx context.Context, eventID string, req domain.UpdateEventRequest, session potluck.Session) error
		DeleteEvent(ctx context.Context, eventID string, session potluck.Session) error
		GetEventDetail(ctx context.Context, eventID string, category string, session potluck.Session) (domain.EventDetailResponse, error)
		GetMyEvents(ctx context.Context, session potluck.Session) (domain.EventListResponse, error)
		GetShareLink(ctx context.Context, eventID string, session potluck.Session) (domain.ShareEventResponse, error)
		UploadEventImage(ctx context.Context, eventID string, req domain.UploadEventImageRequest, session potluck.Session) (domain.UploadEventImageResponse, error)
		WatchEvent(ctx context.Context, eventID string, userID string) (<-chan domain.EventStreamMessage, error)
	}

	eventService struct {
		eventRepository EventRepository
		userRepository  user.UserRepository
		s3              storage.AwsS3
		clock           func() time.Time
	}
)

func NewEventService(
	eventRepository EventRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
	clock func() time.Time,
) EventService {
	if clock == nil {
		clock = utils.Now
	}
	return &eventService{
		eventRepository: eventRepository,
		userRepository:  userRepository,
		s3:              s3,
		clock:           clock,
	}
}

func randomEventID() (string, error) {
	id := make([]byte, eventIDLength)
	limit := big.NewInt(int64(len(eventIDAlphabet)))
	for i := range id {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		id[i] = eventIDAlphabet[n.Int64()]
	}
	return string(id), nil
}

func (s *eventService) newEventID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < eventIDAttempts; attempt++ {
		id, err := randomEventID()
		if err != nil {
			return "", err
		}
		exists, err := s.eventRepository.EventExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", domain.ErrEventIDExhausted
}

func normalizeSchedule(date, clock string, loc *time.Location) (string, string, error) {
	normalizedDate, ok := potluck.NormalizeEventDate(date, loc)
	if !ok {
		return "", "", domain.ErrInvalidEventDate
	}
	normalizedTime, err := potluck.NormalizeEventTime(clock)
	if err != nil {
		return "", "", domain.ErrInvalidEventTime
	}
	return normalizedDate, normalizedTime, nil
}

func (s *eventService) CreateEvent(ctx context.Context, req domain.CreateEventRequest, session potluck.Session) (domain.CreateEventResponse, error) {
	if session.UserID == "" {
		return domain.CreateEventResponse{}, domain.ErrUserNotAllowed
	}
	date, clock, err := normalizeSchedule(req.Date, req.Time, session.Now.Location())
	if err != nil {
		return domain.CreateEventResponse{}, err
	}

	id, err := s.newEventID(ctx)
	if err != nil {
		return domain.CreateEventResponse{}, err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	stamp := session.Now.UnixMilli()
	event := potluck.Event{
		ID:          id,
		Name:        req.Name,
		Host:        req.Host,
		Date:        date,
		Time:        clock,
		Location:    req.Location,
		Description: req.Description,
		CreatedBy:   session.UserID,
		IsPublic:    isPublic,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
	if err := s.eventRepository.CreateEvent(ctx, event); err != nil {
		return domain.CreateEventResponse{}, err
	}

	log.Infow("event created", "event_id", id, "user_id", session.UserID)
	return domain.CreateEventResponse{ID: id}, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, req domain.UpdateEventRequest, session potluck.Session) error {
	event, err := s.eventRepository.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !session.CanEditEvent(*event) {
		if session.IsPast(*event) {
			return domain.ErrEventPast
		}
		return domain.ErrEventNotEditable
	}

	date, clock, err := normalizeSchedule(req.Date, req.Time, session.Now.Location())
	if err != nil {
		return err
	}

	fields := map[string]any{
		"name":      req.Name,
		"host":      req.Host,
		"date":      date,
		"time":      clock,
		"location":  req.Location,
		"updatedAt": session.Now.UnixMilli(),
	}
	if req.Description != "" {
		fields["description"] = req.Description
	} else {
		fields["description"] = nil
	}
	if req.IsPublic != nil {
		fields["isPublic"] = *req.IsPublic
	}
	return s.eventRepository.UpdateEvent(ctx, eventID, fields)
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string, session potluck.Session) error {
	event, err := s.eventRepository.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !session.CanDeleteEvent(*event) {
		return domain.ErrUserNotAllowed
	}

	if err := s.eventRepository.DeleteEvent(ctx, *event); err != nil {
		return err
	}

	if event.ImageURL != "" && s.s3 != nil {
		if objectKey := s.s3.GetObjectKeyFromLink(event.ImageURL); objectKey != "" {
			if err := s.s3.DeleteFile(objectKey); err != nil {
				log.Warnw("failed to delete event image", "event_id", eventID, "error", err)
			}
		}
	}

	log.Infow("event deleted", "event_id", eventID, "user_id", session.UserID, "items", len(event.Items))
	return nil
}

func (s *eventService) GetEventDetail(ctx context.Context, eventID string, category string, session potluck.Session) (domain.EventDetailResponse, error) {
	event, err := s.eventRepository.GetEvent(ctx, eventID)
	if err != nil {
		return domain.EventDetailResponse{}, err
	}
	return BuildEventDetail(*event, category, session), nil
}

// GetMyEvents lists hosted and joined events. References to events that no
// longer exist are skipped.
func (s *eventService) GetMyEvents(ctx context.Context, session potluck.Session) (domain.EventListResponse, error) {
	hosted, err := s.userRepository.GetHostedEventIDs(ctx, session.UserID)
	if err != nil {
		return domain.EventListResponse{}, err
	}
	joined, err := s.userRepository.GetJoinedEventIDs(ctx, session.UserID)
	if err != nil {
		return domain.EventListResponse{}, err
	}

	seen := make(map[string]bool, len(hosted)+len(joined))
	events := make([]potluck.Event, 0, len(hosted)+len(joined))
	for _, id := range append(hosted, joined...) {
		if seen[id] {
			continue
		}
		seen[id] = true

		event, err := s.eventRepository.GetEvent(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrEventNotFound) {
				log.Debugw("skipping missing event reference", "event_id", id, "user_id", session.UserID)
				continue
			}
			return domain.EventListResponse{}, err
		}
		events = append(events, *event)
	}

	upcoming, past := session.Partition(events)
	loc := session.Now.Location()
	potluck.SortByDate(upcoming, loc)
	potluck.SortByDate(past, loc)

	res := domain.EventListResponse{
		Upcoming: make([]domain.EventSummaryResponse, 0, len(upcoming)),
		Past:     make([]domain.EventSummaryResponse, 0, len(past)),
	}
	for _, e := range upcoming {
		res.Upcoming = append(res.Upcoming, BuildEventSummary(e, session))
	}
	for _, e := range past {
		res.Past = append(res.Past, BuildEventSummary(e, session))
	}
	return res, nil
}

func (s *eventService) GetShareLink(ctx context.Context, eventID string, session potluck.Session) (domain.ShareEventResponse, error) {
	event, err := s.eventRepository.GetEvent(ctx, eventID)
	if err != nil {
		return domain.ShareEventResponse{}, err
	}
	if !session.CanShareEvent(*event) {
		return domain.ShareEventResponse{}, domain.ErrEventNotShareable
	}
	return domain.ShareEventResponse{
		EventID: event.ID,
		URL:     fmt.Sprintf("%s?id=%s", utils.GetConfig("APP_URL"), event.ID),
	}, nil
}

func (s *eventService) UploadEventImage(ctx context.Context, eventID string, req domain.UploadEventImageRequest, session potluck.Session) (domain.UploadEventImageResponse, error) {
	if s.s3 == nil {
		return domain.UploadEventImageResponse{}, domain.ErrImageStorageNotSet
	}
	event, err := s.eventRepository.GetEvent(ctx, eventID)
	if err != nil {
		return domain.UploadEventImageResponse{}, err
	}
	if !session.CanEditEvent(*event) {
		return domain.UploadEventImageResponse{}, domain.ErrEventNotEditable
	}

	var objectKey string
	var uploadErr error
	if existingKey := s.s3.GetObjectKeyFromLink(event.ImageURL); existingKey != "" {
		objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fmt.Sprintf("event-%s", event.ID), req.Image, "events", storage.AllowImage...)
	}
	if uploadErr != nil {
		return domain.UploadEventImageResponse{}, uploadErr
	}

	imageURL := s.s3.GetPublicLinkKey(objectKey)
	if err := s.eventRepository.UpdateEvent(ctx, eventID, map[string]any{
		"imageUrl":  imageURL,
		"updatedAt": session.Now.UnixMilli(),
	}); err != nil {
		return domain.UploadEventImageResponse{}, err
	}
	return domain.UploadEventImageResponse{ImageURL: imageURL}, nil
}

// WatchEvent recomputes the detail view for userID after every change to
// the event, and again whenever the store re-broadcasts.
func (s *eventService) WatchEvent(ctx context.Context, eventID string, userID string) (<-chan domain.EventStreamMessage, error) {
	exists, err := s.eventRepository.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	events, err := s.eventRepository.SubscribeEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.EventStreamMessage)
	go func() {
		defer close(out)
		for event := range events {
			msg := domain.EventStreamMessage{Type: domain.StreamMessageDeleted}
			if event != nil {
				detail := BuildEventDetail(*event, "", potluck.NewSession(userID, s.clock()))
				msg = domain.EventStreamMessage{Type: domain.StreamMessageSnapshot, Event: &detail}
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
