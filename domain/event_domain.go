package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessCreateEvent = "event created successfully"
	MessageSuccessUpdateEvent = "event updated successfully"
	MessageSuccessDeleteEvent = "event deleted successfully"
	MessageSuccessGetEvent    = "event retrieved successfully"
	MessageSuccessGetEvents   = "events retrieved successfully"
	MessageSuccessShareEvent  = "share link retrieved successfully"
	MessageSuccessUploadImage = "event image uploaded successfully"
	MessageSuccessJoinEvent   = "joined event successfully"
	MessageSuccessLeaveEvent  = "left event successfully"

	MessageFailedCreateEvent = "failed to create event"
	MessageFailedUpdateEvent = "failed to update event"
	MessageFailedDeleteEvent = "failed to delete event"
	MessageFailedGetEvent    = "failed to retrieve event"
	MessageFailedGetEvents   = "failed to retrieve events"
	MessageFailedShareEvent  = "failed to share event"
	MessageFailedUploadImage = "failed to upload event image"
	MessageFailedJoinEvent   = "failed to join event"
	MessageFailedLeaveEvent  = "failed to leave event"

	ErrEventNotFound      = errors.New("event not found")
	ErrEventPast          = errors.New("event has already taken place")
	ErrEventNotEditable   = errors.New("only the host can edit this event before it takes place")
	ErrEventNotShareable  = errors.New("only the host can share a private event")
	ErrInvalidEventDate   = errors.New("invalid event date")
	ErrInvalidEventTime   = errors.New("invalid event time")
	ErrEventIDExhausted   = errors.New("could not allocate a unique event id")
	ErrHostCannotLeave    = errors.New("the host cannot leave their own event")
	ErrImageStorageNotSet = errors.New("image storage is not configured")
)

const (
	StreamMessageSnapshot = "snapshot"
	StreamMessageDeleted  = "deleted"
)

type (
	CreateEventRequest struct {
		Name        string `json:"name" validate:"required"`
		Host        string `json:"host" validate:"required"`
		Date        string `json:"date" validate:"required"`
		Time        string `json:"time" validate:"required"`
		Location    string `json:"location" validate:"required"`
		Description string `json:"description"`
		IsPublic    *bool  `json:"is_public"`
	}

	UpdateEventRequest struct {
		Name        string `json:"name" validate:"required"`
		Host        string `json:"host" validate:"required"`
		Date        string `json:"date" validate:"required"`
		Time        string `json:"time" validate:"required"`
		Location    string `json:"location" validate:"required"`
		Description string `json:"description"`
		IsPublic    *bool  `json:"is_public"`
	}

	CreateEventResponse struct {
		ID string `json:"id"`
	}

	JoinEventRequest struct {
		EventID string `json:"event_id" validate:"required"`
	}

	UploadEventImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	UploadEventImageResponse struct {
		ImageURL string `json:"image_url"`
	}

	EventSummaryResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Host        string `json:"host"`
		Date        string `json:"date"`
		DisplayDate string `json:"display_date"`
		Time        string `json:"time"`
		Location    string `json:"location"`
		ImageURL    string `json:"image_url,omitempty"`
		IsPast      bool   `json:"is_past"`
		IsHost      bool   `json:"is_host"`
		ItemCount   int    `json:"item_count"`
		GuestCount  int    `json:"guest_count"`
	}

	EventListResponse struct {
		Upcoming []EventSummaryResponse `json:"upcoming"`
		Past     []EventSummaryResponse `json:"past"`
	}

	EventPermissionsResponse struct {
		CanEdit   bool `json:"can_edit"`
		CanDelete bool `json:"can_delete"`
		CanShare  bool `json:"can_share"`
		CanRSVP   bool `json:"can_rsvp"`
		HasRSVPd  bool `json:"has_rsvpd"`
	}

	CategoryCountResponse struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}

	EventDetailResponse struct {
		EventSummaryResponse
		Description string                   `json:"description,omitempty"`
		IsPublic    bool                     `json:"is_public"`
		CreatedBy   string                   `json:"created_by,omitempty"`
		Category    string                   `json:"category"`
		Permissions EventPermissionsResponse `json:"permissions"`
		Categories  []CategoryCountResponse  `json:"categories"`
		Items       []ItemResponse           `json:"items"`
	}

	EventStreamMessage struct {
		Type  string               `json:"type"`
		Event *EventDetailResponse `json:"event,omitempty"`
	}

	ShareEventResponse struct {
		EventID string `json:"event_id"`
		URL     string `json:"url"`
	}
)
