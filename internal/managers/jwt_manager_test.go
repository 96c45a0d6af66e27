package managers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-core/internal/schemas"
)

func newTestJWTManager() JWTMgr {
	return NewJWTManager(
		[]byte("access-secret"),
		[]byte("refresh-secret"),
		[]byte("activation-secret"),
		2*time.Hour,
		72*time.Hour,
		5*time.Minute,
	)
}

func TestGenerateAndVerifyTokenPair(t *testing.T) {
	jwtMgr := newTestJWTManager()

	accessToken, refreshToken, err := jwtMgr.GenerateTokenPair("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	userId, err := jwtMgr.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userId)

	userId, err = jwtMgr.VerifyRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userId)
}

func TestTokenKindsDoNotCross(t *testing.T) {
	jwtMgr := newTestJWTManager()

	accessToken, refreshToken, err := jwtMgr.GenerateTokenPair("user-123")
	require.NoError(t, err)

	// An access token must not verify as a refresh token and vice versa.
	_, err = jwtMgr.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = jwtMgr.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	jwtMgr := newTestJWTManager()

	_, err := jwtMgr.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = jwtMgr.VerifyRefreshToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	jwtMgr := NewJWTManager(
		[]byte("access-secret"),
		[]byte("refresh-secret"),
		[]byte("activation-secret"),
		-time.Minute,
		-time.Minute,
		-time.Minute,
	)

	accessToken, _, err := jwtMgr.GenerateTokenPair("user-123")
	require.NoError(t, err)

	_, err = jwtMgr.VerifyAccessToken(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestActivationTicketRoundTrip(t *testing.T) {
	jwtMgr := newTestJWTManager()

	pending := &schemas.PendingUser{
		Username: "testUser",
		Email:    "test@example.com",
		Password: "test.Password1!",
		Phone:    "0123456789",
	}

	ticket, code, err := jwtMgr.GenerateActivationTicket(pending)
	require.NoError(t, err)
	assert.NotEmpty(t, ticket)
	assert.Len(t, code, 4)

	recovered, err := jwtMgr.VerifyActivationTicket(ticket, code)
	require.NoError(t, err)
	assert.Equal(t, pending, recovered)
}

func TestActivationTicketCodeMismatch(t *testing.T) {
	jwtMgr := newTestJWTManager()

	ticket, code, err := jwtMgr.GenerateActivationTicket(&schemas.PendingUser{Username: "testUser"})
	require.NoError(t, err)

	wrongCode := "0000"
	if wrongCode == code {
		wrongCode = "0001"
	}

	_, err = jwtMgr.VerifyActivationTicket(ticket, wrongCode)
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestActivationTicketWrongSecret(t *testing.T) {
	jwtMgr := newTestJWTManager()
	otherMgr := NewJWTManager(
		[]byte("access-secret"),
		[]byte("refresh-secret"),
		[]byte("a-different-activation-secret"),
		2*time.Hour,
		72*time.Hour,
		5*time.Minute,
	)

	ticket, code, err := jwtMgr.GenerateActivationTicket(&schemas.PendingUser{Username: "testUser"})
	require.NoError(t, err)

	_, err = otherMgr.VerifyActivationTicket(ticket, code)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenIsNoActivationTicket(t *testing.T) {
	jwtMgr := newTestJWTManager()

	accessToken, _, err := jwtMgr.GenerateTokenPair("user-123")
	require.NoError(t, err)

	_, err = jwtMgr.VerifyActivationTicket(accessToken, "1234")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
