package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/unimarket/catalog-service/internal/platform/logger"
)

// ContextKey is a private key type so context values cannot collide.
type ContextKey string

// UserIDCtxKey holds the authenticated user's id in the request context.
const UserIDCtxKey = ContextKey("user_id")

// Claims is the token shape issued by the identity service.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTAuth validates a Bearer token signed with an HMAC secret and puts the
// subject's user id into the request context.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "authorization token is not provided", http.StatusUnauthorized)
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("JWTAuth: invalid authorization header format")
				http.Error(w, "authorization token format is invalid, expected 'Bearer <token>'", http.StatusUnauthorized)
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				log.Warn("JWTAuth: token validation failed", zap.Error(err))
				http.Error(w, "token is invalid", http.StatusUnauthorized)
				return
			}
			if claims.UserID == "" {
				log.Warn("JWTAuth: user id missing from token claims")
				http.Error(w, "user id not found in token claims", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
