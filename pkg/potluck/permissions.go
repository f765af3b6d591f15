package potluck

import "time"

// IsHost reports whether userID created the event.
func IsHost(event Event, userID string) bool {
	return userID != "" && event.CreatedBy == userID
}

// hostCheck passes for the creator and for legacy events with no creator.
func hostCheck(event Event, userID string) bool {
	return event.CreatedBy == "" || event.CreatedBy == userID
}

func CanEditEvent(event Event, userID string, now time.Time) bool {
	return hostCheck(event, userID) && !IsEventPast(event.Date, now)
}

// CanDeleteEvent applies the host check without the past-date restriction.
func CanDeleteEvent(event Event, userID string) bool {
	return hostCheck(event, userID)
}

// CanEditItem allows the event host and the item owner while the event is
// not past. Items without an owner are host-only.
func CanEditItem(item Item, event Event, userID string, now time.Time) bool {
	if userID == "" || IsEventPast(event.Date, now) {
		return false
	}
	if event.CreatedBy == userID {
		return true
	}
	return item.UserID != "" && item.UserID == userID
}

func CanShareEvent(event Event, userID string) bool {
	return event.IsPublic || IsHost(event, userID)
}

func HasUserRSVPd(event Event, userID string) bool {
	if userID == "" {
		return false
	}
	for _, item := range event.Items {
		if item.UserID == userID {
			return true
		}
	}
	return false
}

// CanAddItem enforces one RSVP per guest. The host may add several.
func CanAddItem(event Event, userID string, now time.Time) bool {
	if userID == "" || IsEventPast(event.Date, now) {
		return false
	}
	return IsHost(event, userID) || !HasUserRSVPd(event, userID)
}
