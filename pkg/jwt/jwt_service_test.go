package jwt

import (
	"testing"
	"time"

	"Potluck-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "POTLUCK")
	identity := domain.Identity{UID: "u1", DisplayName: "Ada", Email: "ada@example.com", PhotoURL: "https://img/ada"}

	token := svc.GenerateTokenUser(identity, time.Hour)
	got, err := svc.GetIdentityByToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestRejectsBadTokens(t *testing.T) {
	svc := NewJWTService("secret", "POTLUCK")
	identity := domain.Identity{UID: "u1"}

	_, err := svc.GetIdentityByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	expired := svc.GenerateTokenUser(identity, -time.Minute)
	_, err = svc.GetIdentityByToken(expired)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	foreign := NewJWTService("other-secret", "POTLUCK").GenerateTokenUser(identity, time.Hour)
	_, err = svc.GetIdentityByToken(foreign)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	unsigned := NewJWTService("", "POTLUCK").GenerateTokenUser(identity, time.Hour)
	_, err = NewJWTService("", "POTLUCK").GetIdentityByToken(unsigned)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	otherIssuer := NewJWTService("secret", "ELSEWHERE").GenerateTokenUser(identity, time.Hour)
	_, err = svc.GetIdentityByToken(otherIssuer)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
