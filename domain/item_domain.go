package domain

import "errors"

var (
	MessageSuccessCreateItem = "rsvp added successfully"
	MessageSuccessUpdateItem = "rsvp updated successfully"
	MessageSuccessDeleteItem = "rsvp deleted successfully"

	MessageFailedCreateItem = "failed to add rsvp"
	MessageFailedUpdateItem = "failed to update rsvp"
	MessageFailedDeleteItem = "failed to delete rsvp"

	ErrItemNotFound    = errors.New("rsvp not found")
	ErrAlreadyRSVPd    = errors.New("you have already signed up for this event")
	ErrItemNotEditable = errors.New("only the owner or the host can change this rsvp")
)

type (
	DishRequest struct {
		Name     string `json:"name" validate:"required"`
		Category string `json:"category" validate:"required,dish_category"`
		Recipe   string `json:"recipe"`
	}

	CreateItemRequest struct {
		Person     string        `json:"person" validate:"required"`
		GuestCount int           `json:"guest_count" validate:"omitempty,min=1"`
		Dishes     []DishRequest `json:"dishes" validate:"required,min=1,dive"`
		Notes      string        `json:"notes"`
	}

	UpdateItemRequest struct {
		Person     string        `json:"person" validate:"required"`
		GuestCount int           `json:"guest_count" validate:"omitempty,min=1"`
		Dishes     []DishRequest `json:"dishes" validate:"required,min=1,dive"`
		Notes      string        `json:"notes"`
	}

	CreateItemResponse struct {
		ID string `json:"id"`
	}

	DishResponse struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Recipe   string `json:"recipe,omitempty"`
	}

	ItemResponse struct {
		ID          string         `json:"id"`
		Person      string         `json:"person"`
		GuestCount  int            `json:"guest_count"`
		UserID      string         `json:"user_id,omitempty"`
		Dishes      []DishResponse `json:"dishes"`
		DishSummary string         `json:"dish_summary"`
		Notes       string         `json:"notes,omitempty"`
		IsMine      bool           `json:"is_mine"`
		CanEdit     bool           `json:"can_edit"`
	}
)
