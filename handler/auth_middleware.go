package handler

import (
	"context"
	"net/http"
	"strings"
	"voting-api/common"
	"voting-api/config"
	"voting-api/model"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	IdentityIDKey contextKey = "identityID"
	IsAdminKey    contextKey = "isAdmin"
)

// AuthMiddleware validates the bearer access token and injects the identity
// id and admin flag into the request context. Validation is stateless: a
// function of signature and expiry only.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			err := common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil)
			err.Send(w)
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			err := common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
			err.Send(w)
			return
		}

		tokenString := headerParts[1]
		claims := &model.AppClaims{}

		jwtKey := []byte(config.AppConfig.JWT.SecretKey)

		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return jwtKey, nil
		})

		if err != nil || !token.Valid {
			appErr := common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", err)
			appErr.Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityIDKey, claims.IdentityID)
		ctx = context.WithValue(ctx, IsAdminKey, claims.IsAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware gates routes that require an administrative identity.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAdmin, ok := r.Context().Value(IsAdminKey).(bool)

		if !ok || !isAdmin {
			err := common.NewAppError(http.StatusForbidden, "Access denied. Admin privileges required.", nil)
			err.Send(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
