package middleware

import (
	"context"
	"net/http"
	"strings"

	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/pkg/jwt"
	"dental-clinic-api/pkg/response"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
	TokenIDKey   contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	tokenStore service.TokenStore
}

func NewAuthMiddleware(jwtService *jwt.JWTService, tokenStore service.TokenStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Authenticate resolves the caller's identity from the Authorization header.
// An absent or malformed credential is 401; a credential that is present but
// invalid, expired, of the wrong type or revoked is uniformly 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Forbidden(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Forbidden(w, "Invalid token type")
			return
		}

		exists, err := m.tokenStore.Exists(r.Context(), service.AccessTokenKey(claims.UserID, claims.TokenID))
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if !exists {
			response.Forbidden(w, "Token has been revoked")
			return
		}

		principal := entity.Principal{ID: claims.UserID, Role: claims.Role}

		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPrincipalFromContext extracts the authenticated principal from context
func GetPrincipalFromContext(ctx context.Context) (entity.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(entity.Principal)
	return principal, ok
}

// GetTokenIDFromContext extracts the token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
