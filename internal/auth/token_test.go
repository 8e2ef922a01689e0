package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/osa-portal/osa-portal/internal/shared"
)

func TestTokenRoundTrip(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)
	userID := uuid.New()

	token, err := signer.Sign(userID)
	require.NoError(t, err)

	got, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer := NewTokenSigner("test-secret", -time.Minute)

	token, err := signer.Sign(uuid.New())
	require.NoError(t, err)

	_, err = signer.Verify(token)
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)
	other := NewTokenSigner("other-secret", time.Hour)

	token, err := signer.Sign(uuid.New())
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)

	_, err := signer.Verify("not.a.token")
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestPasswordPolicy(t *testing.T) {
	require.NoError(t, CheckPasswordPolicy("Sup3rSecret"))
	require.ErrorIs(t, CheckPasswordPolicy("Sh0rt"), shared.ErrValidation)
	require.ErrorIs(t, CheckPasswordPolicy("nouppercase1"), shared.ErrValidation)
	require.ErrorIs(t, CheckPasswordPolicy("NOLOWERCASE1"), shared.ErrValidation)
	require.ErrorIs(t, CheckPasswordPolicy("NoDigitsAtAll"), shared.ErrValidation)
}
