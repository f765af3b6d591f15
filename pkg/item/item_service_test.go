package item

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"Potluck-Backend/domain"
	"Potluck-Backend/pkg/event"
	"Potluck-Backend/pkg/potluck"
	"Potluck-Backend/pkg/realtime"
	"Potluck-Backend/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

type notification struct {
	host  domain.Identity
	event potluck.Event
	item  potluck.Item
}

type fakeNotifier struct {
	sent chan notification
}

func (f *fakeNotifier) NotifyNewRSVP(host domain.Identity, ev potluck.Event, it potluck.Item) error {
	f.sent <- notification{host: host, event: ev, item: it}
	return nil
}

type fixture struct {
	store    realtime.Store
	items    ItemRepository
	events   event.EventRepository
	users    user.UserRepository
	notifier *fakeNotifier
	service  ItemService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := realtime.NewMemoryStore()
	f := fixture{
		store:    store,
		items:    NewItemRepository(store),
		events:   event.NewEventRepository(store),
		users:    user.NewUserRepository(store),
		notifier: &fakeNotifier{sent: make(chan notification, 4)},
	}
	f.service = NewItemService(f.items, f.events, f.users, f.notifier)

	require.NoError(t, f.events.CreateEvent(ctx, potluck.Event{
		ID: "party001", Name: "Party", Date: "06/20/2025", CreatedBy: "host", IsPublic: true,
	}))
	require.NoError(t, f.events.CreateEvent(ctx, potluck.Event{
		ID: "past0001", Name: "Old Party", Date: "06/01/2025", CreatedBy: "host", IsPublic: true,
	}))
	require.NoError(t, f.users.UpsertProfile(ctx, domain.Identity{UID: "host", DisplayName: "Host", Email: "host@example.com"}))
	return f
}

func isJoined(t *testing.T, f fixture, uid, eventID string) bool {
	t.Helper()
	ids, err := f.users.GetJoinedEventIDs(context.Background(), uid)
	require.NoError(t, err)
	for _, id := range ids {
		if id == eventID {
			return true
		}
	}
	return false
}

func session(uid string) potluck.Session {
	return potluck.NewSession(uid, now)
}

func rsvp(person string, dishes ...domain.DishRequest) domain.CreateItemRequest {
	return domain.CreateItemRequest{Person: person, Dishes: dishes}
}

var chili = domain.DishRequest{Name: "Chili", Category: "Main Dish"}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.service.CreateItem(ctx, "party001", rsvp("Guest", chili), session("guest"))
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)

	it, err := f.items.GetItem(ctx, "party001", res.ID)
	require.NoError(t, err)
	assert.Equal(t, "guest", it.UserID)
	assert.Equal(t, 1, it.GuestCount)
	assert.Equal(t, now.UnixMilli(), it.CreatedAt)
	assert.Equal(t, []potluck.Dish{{Name: "Chili", Category: "Main Dish"}}, it.Dishes)

	assert.True(t, isJoined(t, f, "guest", "party001"))

	select {
	case n := <-f.notifier.sent:
		assert.Equal(t, "host@example.com", n.host.Email)
		assert.Equal(t, "Guest", n.item.Person)
	case <-time.After(time.Second):
		t.Fatal("host was not notified")
	}
}

// usersDownStore fails every write that touches users/.
type usersDownStore struct {
	realtime.Store
}

var errUsersDown = errors.New("users subtree unavailable")

func (s usersDownStore) Set(ctx context.Context, path string, value any) error {
	if strings.HasPrefix(path, "users/") {
		return errUsersDown
	}
	return s.Store.Set(ctx, path, value)
}

func (s usersDownStore) Update(ctx context.Context, path string, fields map[string]any) error {
	for field := range fields {
		if strings.HasPrefix(realtime.Join(path, field), "users/") {
			return errUsersDown
		}
	}
	return s.Store.Update(ctx, path, fields)
}

func TestCreateItemWritesMarkerWithItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	down := usersDownStore{Store: f.store}
	service := NewItemService(NewItemRepository(down), event.NewEventRepository(down), user.NewUserRepository(down), nil)

	_, err := service.CreateItem(ctx, "party001", rsvp("Guest", chili), session("guest"))
	assert.ErrorIs(t, err, errUsersDown)

	ev, err := f.events.GetEvent(ctx, "party001")
	require.NoError(t, err)
	assert.Empty(t, ev.Items, "no item without its joinedEvents marker")
	assert.False(t, isJoined(t, f, "guest", "party001"))

	// the host writes no marker, so the item goes through
	_, err = service.CreateItem(ctx, "party001", rsvp("Host", chili), session("host"))
	require.NoError(t, err)
}

func TestCreateItemOneRSVPPerGuest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.service.CreateItem(ctx, "party001", rsvp("Guest", chili), session("guest"))
	require.NoError(t, err)
	_, err = f.service.CreateItem(ctx, "party001", rsvp("Guest again", chili), session("guest"))
	assert.ErrorIs(t, err, domain.ErrAlreadyRSVPd)

	_, err = f.service.CreateItem(ctx, "party001", rsvp("Host", chili), session("host"))
	require.NoError(t, err)
	_, err = f.service.CreateItem(ctx, "party001", rsvp("Host plus one", chili), session("host"))
	require.NoError(t, err, "host may add several rsvps")

	joined, err := f.users.GetJoinedEventIDs(ctx, "host")
	require.NoError(t, err)
	assert.Empty(t, joined)
}

func TestCreateItemRejectsPastAndMissing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.service.CreateItem(ctx, "past0001", rsvp("Guest", chili), session("guest"))
	assert.ErrorIs(t, err, domain.ErrEventPast)

	_, err = f.service.CreateItem(ctx, "nothere1", rsvp("Guest", chili), session("guest"))
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res, err := f.service.CreateItem(ctx, "party001", rsvp("Guest", chili), session("guest"))
	require.NoError(t, err)

	update := domain.UpdateItemRequest{
		Person:     "Guest",
		GuestCount: 3,
		Notes:      "vegan",
		Dishes:     []domain.DishRequest{{Name: "Tofu", Category: "Main Dish", Recipe: "press it"}},
	}
	assert.ErrorIs(t, f.service.UpdateItem(ctx, "party001", res.ID, update, session("other")), domain.ErrItemNotEditable)
	require.NoError(t, f.service.UpdateItem(ctx, "party001", res.ID, update, session("host")))

	it, err := f.items.GetItem(ctx, "party001", res.ID)
	require.NoError(t, err)
	assert.Equal(t, "guest", it.UserID, "host edits keep ownership")
	assert.Equal(t, 3, it.GuestCount)
	assert.Equal(t, "vegan", it.Notes)
	assert.Equal(t, "press it", it.Dishes[0].Recipe)
	assert.Equal(t, now.UnixMilli(), it.CreatedAt)

	assert.ErrorIs(t, f.service.UpdateItem(ctx, "party001", "missing", update, session("host")), domain.ErrItemNotFound)
}

func TestUpdateLegacyItemRewritesShape(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Set(ctx, "events/party001/items/old", map[string]any{
		"person": "Old Timer", "name": "Pie", "category": "Dessert", "recipes": "lard",
	}))

	update := domain.UpdateItemRequest{Person: "Old Timer", Dishes: []domain.DishRequest{{Name: "Pie", Category: "Dessert"}}}
	assert.ErrorIs(t, f.service.UpdateItem(ctx, "party001", "old", update, session("guest")), domain.ErrItemNotEditable)
	require.NoError(t, f.service.UpdateItem(ctx, "party001", "old", update, session("host")))

	snap, err := f.store.Get(ctx, "events/party001/items/old")
	require.NoError(t, err)
	assert.False(t, snap.Child("name").Exists())
	assert.False(t, snap.Child("recipes").Exists())
	assert.True(t, snap.Child("dishes").Exists())
}

func TestDeleteItemKeepsMembership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res, err := f.service.CreateItem(ctx, "party001", rsvp("Guest", chili), session("guest"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.DeleteItem(ctx, "party001", res.ID, session("other")), domain.ErrItemNotEditable)
	require.NoError(t, f.service.DeleteItem(ctx, "party001", res.ID, session("guest")))

	_, err = f.items.GetItem(ctx, "party001", res.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	assert.True(t, isJoined(t, f, "guest", "party001"))
}

func TestEditingPastEventItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Set(ctx, "events/past0001/items/k", map[string]any{"person": "G", "userId": "guest"}))

	assert.ErrorIs(t, f.service.DeleteItem(ctx, "past0001", "k", session("guest")), domain.ErrEventPast)
	assert.ErrorIs(t, f.service.DeleteItem(ctx, "past0001", "k", session("host")), domain.ErrEventPast)
}

func TestJoinAndLeaveEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.service.JoinEvent(ctx, domain.JoinEventRequest{EventID: "nothere1"}, session("guest")), domain.ErrEventNotFound)
	require.NoError(t, f.service.JoinEvent(ctx, domain.JoinEventRequest{EventID: "party001"}, session("guest")))
	require.NoError(t, f.service.JoinEvent(ctx, domain.JoinEventRequest{EventID: "party001"}, session("guest")))

	_, err := f.service.CreateItem(ctx, "party001", rsvp("Guest", chili), session("guest"))
	require.NoError(t, err)
	other, err := f.service.CreateItem(ctx, "party001", rsvp("Other", chili), session("other"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.LeaveEvent(ctx, "party001", session("host")), domain.ErrHostCannotLeave)
	require.NoError(t, f.service.LeaveEvent(ctx, "party001", session("guest")))

	ev, err := f.events.GetEvent(ctx, "party001")
	require.NoError(t, err)
	assert.False(t, potluck.HasUserRSVPd(*ev, "guest"))
	assert.Contains(t, ev.Items, other.ID)

	assert.False(t, isJoined(t, f, "guest", "party001"))
}

func TestMigrateLegacyItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Set(ctx, "events/party001/items/old", map[string]any{
		"person": "A", "name": "Pie", "category": "Dessert",
	}))
	require.NoError(t, f.store.Set(ctx, "events/past0001/items/new", map[string]any{
		"person": "B", "dishes": []any{map[string]any{"name": "Chili", "category": "Main Dish"}},
	}))

	n, err := f.service.MigrateLegacyItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	it, err := f.items.GetItem(ctx, "party001", "old")
	require.NoError(t, err)
	assert.False(t, potluck.IsLegacy(*it))
	assert.Equal(t, []potluck.Dish{{Name: "Pie", Category: "Dessert"}}, potluck.CanonicalDishes(*it))

	n, err = f.service.MigrateLegacyItems(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
