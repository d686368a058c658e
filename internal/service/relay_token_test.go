package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

func TestRelayTokenRoundTrip(t *testing.T) {
	t.Setenv(KeyJWTSecret, "test-secret")

	token, expiry, err := GenerateRelayToken("gateway", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)

	claims, err := ParseRelayToken(token)
	require.NoError(t, err)
	assert.Equal(t, "gateway", claims.RelayName)
}

func TestRelayTokenRejected(t *testing.T) {
	t.Setenv(KeyJWTSecret, "test-secret")

	expired, _, err := GenerateRelayToken("gateway", -time.Minute)
	require.NoError(t, err)
	_, err = ParseRelayToken(expired)
	assert.ErrorIs(t, err, bot_errors.ErrUnAuthorized)

	token, _, err := GenerateRelayToken("gateway", time.Hour)
	require.NoError(t, err)
	t.Setenv(KeyJWTSecret, "other-secret")
	_, err = ParseRelayToken(token)
	assert.ErrorIs(t, err, bot_errors.ErrUnAuthorized)

	_, err = ParseRelayToken("garbage")
	assert.ErrorIs(t, err, bot_errors.ErrUnAuthorized)
}

func TestRelayTokenNeedsSecret(t *testing.T) {
	t.Setenv(KeyJWTSecret, "")
	_, _, err := GenerateRelayToken("gateway", time.Hour)
	assert.ErrorIs(t, err, bot_errors.ErrInternal)
}
