package event

import (
	"Potluck-Backend/domain"
	"Potluck-Backend/pkg/potluck"
)

func BuildEventSummary(event potluck.Event, session potluck.Session) domain.EventSummaryResponse {
	totals := potluck.AggregateEventTotals(event)
	return domain.EventSummaryResponse{
		ID:          event.ID,
		Name:        event.Name,
		Host:        event.Host,
		Date:        event.Date,
		DisplayDate: potluck.DisplayDate(event.Date, session.Now.Location()),
		Time:        event.Time,
		Location:    event.Location,
		ImageURL:    event.ImageURL,
		IsPast:      session.IsPast(event),
		IsHost:      session.IsHost(event),
		ItemCount:   totals.ItemCount,
		GuestCount:  totals.GuestCount,
	}
}

// BuildEventDetail computes the full detail view of one snapshot. category
// narrows the item list; the tabs always count every item.
func BuildEventDetail(event potluck.Event, category string, session potluck.Session) domain.EventDetailResponse {
	if category == "" {
		category = "All"
	}
	items := event.SortedItems()

	tabs := potluck.CategoryTabs(items)
	categories := make([]domain.CategoryCountResponse, 0, len(tabs))
	for _, tab := range tabs {
		categories = append(categories, domain.CategoryCountResponse{
			Category: tab.Category,
			Count:    tab.Count,
		})
	}

	filtered := potluck.FilterItemsByCategory(items, category)
	itemResponses := make([]domain.ItemResponse, 0, len(filtered))
	for _, item := range filtered {
		itemResponses = append(itemResponses, BuildItemResponse(item, event, session))
	}

	return domain.EventDetailResponse{
		EventSummaryResponse: BuildEventSummary(event, session),
		Description:          event.Description,
		IsPublic:             event.IsPublic,
		CreatedBy:            event.CreatedBy,
		Category:             category,
		Permissions: domain.EventPermissionsResponse{
			CanEdit:   session.CanEditEvent(event),
			CanDelete: session.CanDeleteEvent(event),
			CanShare:  session.CanShareEvent(event),
			CanRSVP:   session.CanAddItem(event),
			HasRSVPd:  session.HasRSVPd(event),
		},
		Categories: categories,
		Items:      itemResponses,
	}
}

func BuildItemResponse(item potluck.Item, event potluck.Event, session potluck.Session) domain.ItemResponse {
	dishes := potluck.CanonicalDishes(item)
	dishResponses := make([]domain.DishResponse, 0, len(dishes))
	for _, d := range dishes {
		dishResponses = append(dishResponses, domain.DishResponse{
			Name:     d.Name,
			Category: d.Category,
			Recipe:   d.Recipe,
		})
	}

	return domain.ItemResponse{
		ID:          item.ID,
		Person:      item.Person,
		GuestCount:  potluck.EffectiveGuestCount(item.GuestCount),
		UserID:      item.UserID,
		Dishes:      dishResponses,
		DishSummary: potluck.FormatDishList(potluck.DishNames(item)),
		Notes:       item.Notes,
		IsMine:      session.UserID != "" && item.UserID == session.UserID,
		CanEdit:     session.CanEditItem(item, event),
	}
}
