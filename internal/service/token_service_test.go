package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum-api/internal/model"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	svc, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("  ", time.Hour)
	require.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)

	token, err := svc.Issue(map[string]any{"email": "a@x.com", "name": "A"})
	require.NoError(t, err)

	principal, err := svc.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", principal.Email)
	assert.Equal(t, "A", principal.Claims["name"])
	assert.Empty(t, principal.Role)
}

func TestTokenService_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	token, err := svc.Issue(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify("Bearer " + tampered)
	require.ErrorIs(t, err, model.ErrInvalidCredential)
}

func TestTokenService_VerifyRejections(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	valid, err := svc.Issue(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		_, err := svc.Verify("")
		require.ErrorIs(t, err, model.ErrMissingCredential)
	})

	t.Run("no token segment", func(t *testing.T) {
		_, err := svc.Verify("Bearer")
		require.ErrorIs(t, err, model.ErrInvalidCredential)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := svc.Verify("Basic " + valid)
		require.ErrorIs(t, err, model.ErrInvalidCredential)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Verify("Bearer not.a.token")
		require.ErrorIs(t, err, model.ErrInvalidCredential)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewTokenService("other-secret", time.Hour)
		require.NoError(t, err)
		foreign, err := other.Issue(map[string]any{"email": "a@x.com"})
		require.NoError(t, err)

		_, err = svc.Verify("Bearer " + foreign)
		require.ErrorIs(t, err, model.ErrInvalidCredential)
	})

	t.Run("no email claim", func(t *testing.T) {
		token, err := svc.Issue(map[string]any{"name": "nobody"})
		require.NoError(t, err)

		_, err = svc.Verify("Bearer " + token)
		require.ErrorIs(t, err, model.ErrInvalidCredential)
	})

	t.Run("non hmac algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"email": "a@x.com"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify("Bearer " + token)
		require.ErrorIs(t, err, model.ErrInvalidCredential)
	})
}

func TestTokenService_Expiry(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	_, err = svc.Verify("Bearer " + token)
	require.NoError(t, err, "token is valid at issuance time")

	svc.now = time.Now
	_, err = svc.Verify("Bearer " + token)
	require.ErrorIs(t, err, model.ErrInvalidCredential)
}

func TestTokenService_IssueOverridesExpiry(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	token, err := svc.Issue(map[string]any{"email": "a@x.com", "exp": time.Now().Add(100 * 24 * time.Hour).Unix()})
	require.NoError(t, err)

	principal, err := svc.Verify("bearer " + token)
	require.NoError(t, err)

	exp, err := jwt.MapClaims(principal.Claims).GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}
