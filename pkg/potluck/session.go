package potluck

import "time"

// Session carries the acting user and the reference instant through every
// view and permission call.
type Session struct {
	UserID string
	Now    time.Time
}

func NewSession(userID string, now time.Time) Session {
	return Session{UserID: userID, Now: now}
}

func (s Session) IsHost(event Event) bool {
	return IsHost(event, s.UserID)
}

func (s Session) IsPast(event Event) bool {
	return IsEventPast(event.Date, s.Now)
}

func (s Session) CanEditEvent(event Event) bool {
	return CanEditEvent(event, s.UserID, s.Now)
}

func (s Session) CanDeleteEvent(event Event) bool {
	return CanDeleteEvent(event, s.UserID)
}

func (s Session) CanEditItem(item Item, event Event) bool {
	return CanEditItem(item, event, s.UserID, s.Now)
}

func (s Session) CanShareEvent(event Event) bool {
	return CanShareEvent(event, s.UserID)
}

func (s Session) HasRSVPd(event Event) bool {
	return HasUserRSVPd(event, s.UserID)
}

func (s Session) CanAddItem(event Event) bool {
	return CanAddItem(event, s.UserID, s.Now)
}

func (s Session) Partition(events []Event) (upcoming, past []Event) {
	return PartitionByTime(events, s.Now)
}
