package potluck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanEditEvent(t *testing.T) {
	upcoming := Event{Date: "06/20/2025", CreatedBy: "host"}
	past := Event{Date: "06/01/2025", CreatedBy: "host"}
	legacy := Event{Date: "06/20/2025"}

	assert.True(t, CanEditEvent(upcoming, "host", testNow))
	assert.False(t, CanEditEvent(upcoming, "guest", testNow))
	assert.False(t, CanEditEvent(past, "host", testNow))
	assert.True(t, CanEditEvent(legacy, "anyone", testNow))
	assert.False(t, CanEditEvent(Event{Date: "06/01/2025"}, "anyone", testNow))
}

func TestCanDeleteEvent(t *testing.T) {
	past := Event{Date: "06/01/2025", CreatedBy: "host"}
	assert.True(t, CanDeleteEvent(past, "host"))
	assert.False(t, CanDeleteEvent(past, "guest"))
	assert.True(t, CanDeleteEvent(Event{}, "guest"))
}

func TestCanEditItem(t *testing.T) {
	event := Event{Date: "06/20/2025", CreatedBy: "host"}
	owned := Item{UserID: "guest"}
	orphan := Item{}

	assert.True(t, CanEditItem(owned, event, "host", testNow), "host override")
	assert.True(t, CanEditItem(owned, event, "guest", testNow))
	assert.False(t, CanEditItem(owned, event, "other", testNow))
	assert.True(t, CanEditItem(orphan, event, "host", testNow))
	assert.False(t, CanEditItem(orphan, event, "guest", testNow))
	assert.False(t, CanEditItem(orphan, event, "", testNow))

	past := Event{Date: "06/01/2025", CreatedBy: "host"}
	assert.False(t, CanEditItem(owned, past, "host", testNow))
	assert.False(t, CanEditItem(owned, past, "guest", testNow))
}

func TestCanShareEvent(t *testing.T) {
	public := Event{CreatedBy: "host", IsPublic: true}
	private := Event{CreatedBy: "host", IsPublic: false}

	assert.True(t, CanShareEvent(public, "guest"))
	assert.True(t, CanShareEvent(private, "host"))
	assert.False(t, CanShareEvent(private, "guest"))
	assert.False(t, CanShareEvent(Event{}, ""))
}

func TestRSVPRules(t *testing.T) {
	event := Event{Date: "06/20/2025", CreatedBy: "host", Items: map[string]Item{
		"a": {UserID: "guest"},
		"b": {UserID: "host"},
	}}

	assert.True(t, HasUserRSVPd(event, "guest"))
	assert.False(t, HasUserRSVPd(event, "other"))
	assert.False(t, HasUserRSVPd(event, ""))

	assert.False(t, CanAddItem(event, "guest", testNow))
	assert.True(t, CanAddItem(event, "host", testNow))
	assert.True(t, CanAddItem(event, "other", testNow))

	event.Date = "06/01/2025"
	assert.False(t, CanAddItem(event, "other", testNow))
}

func TestSessionDelegates(t *testing.T) {
	s := NewSession("host", testNow)
	event := Event{Date: "06/15/2025", CreatedBy: "host"}

	assert.True(t, s.IsHost(event))
	assert.False(t, s.IsPast(event))
	assert.True(t, s.CanEditEvent(event))
	assert.True(t, s.CanDeleteEvent(event))
	assert.True(t, s.CanShareEvent(event))
	assert.False(t, s.HasRSVPd(event))
}
