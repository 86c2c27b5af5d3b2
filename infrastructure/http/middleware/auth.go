package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/domain/entity"
	apperr "github.com/techpro/techpromanager/domain/error"
	"github.com/techpro/techpromanager/infrastructure/http/response"
	"github.com/techpro/techpromanager/infrastructure/service/jwt"
	"github.com/techpro/techpromanager/infrastructure/service/logger"
)

type contextKey string

const authUserKey contextKey = "auth_user"

type AuthMiddleware struct {
	tokenService outbound.TokenService
	logger       logger.Logger
}

func NewAuthMiddleware(tokenService outbound.TokenService, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		logger:       log,
	}
}

// RequireAuth lets a request through only with a valid bearer token.
// A missing token is 401; any invalid token is 403 with one fixed body.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			response.AppError(w, apperr.ErrMissingToken())
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(token)
		if err != nil {
			logger.LogSecurityEvent(r.Context(), m.logger, "token_rejected", "LOW", map[string]interface{}{
				"reason": tokenFailureKind(err),
				"path":   r.URL.Path,
				"ip":     clientIP(r),
			})
			response.AppError(w, apperr.ErrInvalidToken(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserClaims(r.Context(), claims)))
	})
}

// RequireRole admits only callers whose role is in allowed. It must run after
// RequireAuth; without claims in the context the request is refused.
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserClaims(r.Context())
			if claims == nil {
				response.AppError(w, apperr.ErrInsufficientRole(""))
				return
			}

			for _, role := range allowed {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.AppError(w, apperr.ErrInsufficientRole(string(claims.Role)))
		})
	}
}

// RequireAdmin is RequireRole(entity.RoleAdmin)
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

func WithUserClaims(ctx context.Context, claims *outbound.TokenClaims) context.Context {
	return context.WithValue(ctx, authUserKey, claims)
}

// GetUserClaims retrieves user claims from context
func GetUserClaims(ctx context.Context) *outbound.TokenClaims {
	if claims, ok := ctx.Value(authUserKey).(*outbound.TokenClaims); ok {
		return claims
	}
	return nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func tokenFailureKind(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignature):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}
