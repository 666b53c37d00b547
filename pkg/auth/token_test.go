package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	t.Run("Should sign a token carrying the user id", func(t *testing.T) {
		issuer := NewTokenIssuer("test-secret", time.Hour)

		signed, err := issuer.Issue("user-001")
		require.NoError(t, err)
		require.NotEmpty(t, signed)

		parsed, err := jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		claims := parsed.Claims.(*jwt.RegisteredClaims)
		assert.Equal(t, "user-001", claims.Subject)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("Should reject verification with the wrong secret", func(t *testing.T) {
		issuer := NewTokenIssuer("test-secret", time.Hour)

		signed, err := issuer.Issue("user-001")
		require.NoError(t, err)

		_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
			return []byte("other-secret"), nil
		})
		assert.Error(t, err)
	})
}
