package outbound

import (
	"time"

	"github.com/techpro/techpromanager/domain/entity"
)

type TokenClaims struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	IssuedAt  time.Time   `json:"iat"`
	ExpiresAt time.Time   `json:"exp"`
}

// TokenService issues and verifies signed access tokens. IssuedAt and ExpiresAt
// are set by GenerateAccessToken and ignored on input.
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}
