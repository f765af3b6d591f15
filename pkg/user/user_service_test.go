package user

import (
	"context"
	"testing"

	"Potluck-Backend/domain"
	"Potluck-Backend/pkg/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncProfile(t *testing.T) {
	ctx := context.Background()
	store := realtime.NewMemoryStore()
	repo := NewUserRepository(store)
	svc := NewUserService(repo)

	require.NoError(t, store.Set(ctx, "users/u1/hostedEvents/AbCd1234", true))
	require.NoError(t, repo.AddJoinedEvent(ctx, "u1", "XyZ98765"))
	require.NoError(t, repo.AddJoinedEvent(ctx, "u1", "Qq111111"))

	res, err := svc.SyncProfile(ctx, domain.Identity{UID: "u1", DisplayName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.HostedEvents)
	assert.Equal(t, 2, res.JoinedEvents)

	profile, err := repo.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.DisplayName)

	hosted, err := repo.GetHostedEventIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"AbCd1234"}, hosted, "profile sync keeps back-references")
}

func TestSyncProfileRequiresUID(t *testing.T) {
	svc := NewUserService(NewUserRepository(realtime.NewMemoryStore()))
	_, err := svc.SyncProfile(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
}

func TestJoinedMembership(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(realtime.NewMemoryStore())

	ids, err := repo.GetJoinedEventIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, repo.AddJoinedEvent(ctx, "u1", "e1"))
	require.NoError(t, repo.AddJoinedEvent(ctx, "u1", "e1"))
	ids, err = repo.GetJoinedEventIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, ids)

	require.NoError(t, repo.RemoveJoinedEvent(ctx, "u1", "e1"))
	ids, err = repo.GetJoinedEventIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = repo.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
