package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
	"github.com/techpro/techpromanager/infrastructure/config"
)

const DefaultAccessTokenTTL = time.Hour

var (
	ErrMissingSigningSecret = errors.New("jwt signing secret is required")

	ErrInvalidToken = errors.New("invalid token")
	// The kinds below all match ErrInvalidToken with errors.Is
	ErrTokenMalformed = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenSignature = fmt.Errorf("%w: bad signature", ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: expired", ErrInvalidToken)
)

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 access tokens
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*JWTService)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

func NewJWTService(cfg *config.Config, opts ...Option) (*JWTService, error) {
	if cfg == nil || cfg.JWTSecret == "" {
		return nil, ErrMissingSigningSecret
	}

	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	s := &JWTService{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL is the lifetime of tokens issued by this service
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

func (s *JWTService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	if claims.UserID == "" {
		return "", fmt.Errorf("token subject is required")
	}

	now := s.now()
	tokenClaims := accessClaims{
		Email: claims.Email,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken verifies the signature before looking at any claim.
// Returned errors are one of ErrTokenMalformed, ErrTokenSignature or ErrTokenExpired.
func (s *JWTService) ValidateAccessToken(tokenString string) (*outbound.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, s.handleValidationError(err)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	role := entity.Role(claims.Role)
	if claims.Subject == "" || !role.IsValid() || claims.IssuedAt == nil {
		return nil, ErrTokenMalformed
	}

	return &outbound.TokenClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *JWTService) handleValidationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenMalformed
	}
}
