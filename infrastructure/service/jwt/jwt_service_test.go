package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
	"github.com/techpro/techpromanager/infrastructure/config"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func newTestService(t *testing.T, secret string, clock *fakeClock) *JWTService {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:      secret,
		JWTIssuer:      "techpromanager",
		AccessTokenTTL: time.Hour,
	}
	service, err := NewJWTService(cfg, WithClock(clock.Now))
	require.NoError(t, err)
	return service
}

func sampleClaims() outbound.TokenClaims {
	return outbound.TokenClaims{
		UserID: "user-123",
		Email:  "a@x.com",
		Role:   entity.RoleMember,
	}
}

func TestJWTService(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(t, "test-secret", clock)

	t.Run("GenerateAndValidate", func(t *testing.T) {
		token, err := service.GenerateAccessToken(sampleClaims())
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		claims, err := service.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "a@x.com", claims.Email)
		assert.Equal(t, entity.RoleMember, claims.Role)
		assert.True(t, claims.IssuedAt.Equal(clock.t))
		assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
	})

	t.Run("MissingSubject", func(t *testing.T) {
		_, err := service.GenerateAccessToken(outbound.TokenClaims{Role: entity.RoleMember})
		assert.Error(t, err)
	})

	t.Run("ValidJustBeforeExpiry", func(t *testing.T) {
		c := &fakeClock{t: clock.t}
		s := newTestService(t, "test-secret", c)
		token, err := s.GenerateAccessToken(sampleClaims())
		require.NoError(t, err)

		c.t = clock.t.Add(time.Hour - time.Second)
		_, err = s.ValidateAccessToken(token)
		assert.NoError(t, err)
	})

	t.Run("RejectedFromExpOnward", func(t *testing.T) {
		c := &fakeClock{t: clock.t}
		s := newTestService(t, "test-secret", c)
		token, err := s.GenerateAccessToken(sampleClaims())
		require.NoError(t, err)

		for _, after := range []time.Duration{time.Hour, 2 * time.Hour, 24 * time.Hour} {
			c.t = clock.t.Add(after)
			_, err = s.ValidateAccessToken(token)
			assert.ErrorIs(t, err, ErrTokenExpired)
			assert.ErrorIs(t, err, ErrInvalidToken)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := newTestService(t, "other-secret", clock)
		token, err := other.GenerateAccessToken(sampleClaims())
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenSignature)
	})

	t.Run("SignatureCheckedBeforeExpiry", func(t *testing.T) {
		c := &fakeClock{t: clock.t}
		other := newTestService(t, "other-secret", c)
		token, err := other.GenerateAccessToken(sampleClaims())
		require.NoError(t, err)

		late := newTestService(t, "test-secret", &fakeClock{t: clock.t.Add(48 * time.Hour)})
		_, err = late.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenSignature)
	})

	t.Run("AnyAlteredCharacterIsRejected", func(t *testing.T) {
		token, err := service.GenerateAccessToken(sampleClaims())
		require.NoError(t, err)

		for i := 0; i < len(token); i++ {
			if token[i] == '.' {
				continue
			}
			replacement := byte('A')
			if token[i] == 'A' {
				replacement = 'B'
			}
			altered := token[:i] + string(replacement) + token[i+1:]

			_, err := service.ValidateAccessToken(altered)
			assert.ErrorIs(t, err, ErrInvalidToken, "position %d", i)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, token := range []string{"", "invalid-token", "a.b.c", "a.b"} {
			_, err := service.ValidateAccessToken(token)
			assert.ErrorIs(t, err, ErrTokenMalformed, "token=%q", token)
		}
	})

	t.Run("NoneAlgorithmRejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, accessClaims{
			Role: string(entity.RoleAdmin),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-123",
				Issuer:    "techpromanager",
				IssuedAt:  jwt.NewNumericDate(clock.t),
				ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
			},
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("UnknownRoleRejected", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
			Role: "superadmin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-123",
				Issuer:    "techpromanager",
				IssuedAt:  jwt.NewNumericDate(clock.t),
				ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
			},
		})
		token, err := forged.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		foreign, err := NewJWTService(&config.Config{JWTSecret: "test-secret", JWTIssuer: "elsewhere"}, WithClock(clock.Now))
		require.NoError(t, err)
		token, err := foreign.GenerateAccessToken(sampleClaims())
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTService(t *testing.T) {
	t.Run("EmptySecret", func(t *testing.T) {
		_, err := NewJWTService(&config.Config{})
		assert.ErrorIs(t, err, ErrMissingSigningSecret)
	})

	t.Run("DefaultTTL", func(t *testing.T) {
		service, err := NewJWTService(&config.Config{JWTSecret: "s"})
		require.NoError(t, err)
		assert.Equal(t, DefaultAccessTokenTTL, service.TTL())
	})
}
