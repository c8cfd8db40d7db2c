package jwt

import (
	"Recipe-Hub-Backend/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *jwtService {
	return &jwtService{secretKey: "test-secret", issuer: "RECIPEHUB"}
}

func TestUserTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token := svc.GenerateTokenUser("9bfa0b1d-9df1-4b02-a711-9c6dcb5318b3", "user")
	require.NotEmpty(t, token)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "9bfa0b1d-9df1-4b02-a711-9c6dcb5318b3", id)
	assert.Equal(t, "user", role)
}

func TestUserTokenWrongSecret(t *testing.T) {
	token := newTestService().GenerateTokenUser("user-id", "user")

	other := &jwtService{secretKey: "different-secret", issuer: "RECIPEHUB"}
	_, _, err := other.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestUserTokenGarbage(t *testing.T) {
	_, _, err := newTestService().GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyEmailTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateTokenVerifyEmail(map[string]any{"email": "tester@example.com"}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateTokenVerifyEmail(token)
	require.NoError(t, err)
	assert.Equal(t, "tester@example.com", claims["email"])
}

func TestVerifyEmailTokenExpired(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateTokenVerifyEmail(map[string]any{"email": "tester@example.com"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateTokenVerifyEmail(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
