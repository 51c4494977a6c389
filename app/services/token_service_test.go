package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-key-0123456789"

func newHMACTokenService(t *testing.T) TokenService {
	t.Helper()
	svc, err := NewTokenService("https://auth.casinoradar.test/", "casinoradar-api", false, "", "", testSecret)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	t.Run("SecretRequiredWithoutRSA", func(t *testing.T) {
		_, err := NewTokenService("iss", "aud", false, "", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("RSAWithGarbagePublicKeyFails", func(t *testing.T) {
		_, err := NewTokenService("iss", "aud", true, "not a pem block", "", "")
		require.Error(t, err)
	})
}

func TestValidateSessionToken(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		svc := newHMACTokenService(t)

		token, err := svc.GenerateSessionToken("auth0|123456789", "admin@casinoradar.test", time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateSessionToken(token)
		require.NoError(t, err)
		assert.Equal(t, "auth0|123456789", claims.Subject)
		assert.Equal(t, "admin@casinoradar.test", claims.Email)
		assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		svc := newHMACTokenService(t)

		token, err := svc.GenerateSessionToken("auth0|123456789", "admin@casinoradar.test", -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		svc := newHMACTokenService(t)

		_, err := svc.ValidateSessionToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("WrongSecretRejected", func(t *testing.T) {
		issuing, err := NewTokenService("https://auth.casinoradar.test/", "casinoradar-api", false, "", "", "a different secret")
		require.NoError(t, err)

		token, err := issuing.GenerateSessionToken("auth0|123456789", "admin@casinoradar.test", time.Hour)
		require.NoError(t, err)

		_, err = newHMACTokenService(t).ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("IssuerMismatchRejected", func(t *testing.T) {
		other, err := NewTokenService("https://other-issuer.test/", "casinoradar-api", false, "", "", testSecret)
		require.NoError(t, err)

		token, err := other.GenerateSessionToken("auth0|123456789", "admin@casinoradar.test", time.Hour)
		require.NoError(t, err)

		_, err = newHMACTokenService(t).ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
