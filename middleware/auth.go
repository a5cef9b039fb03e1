package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/abefas/taskapi/apierror"
	"github.com/abefas/taskapi/models"
)

// ContextKey is a custom type to avoid context key collisions.
type ContextKey string

// UserIDKey is the key we'll use to store the user's ID in the request context.
const UserIDKey ContextKey = "userId"

// UserID returns the authenticated user's ID stored by Auth.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

// Auth checks for a valid HS256 JWT in the Authorization header and
// adds the user ID to the request context.
func Auth(key []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apierror.Write(w, apierror.New(http.StatusUnauthorized, "Authorization header required"))
				return
			}

			// The token is in the format "Bearer <token>".
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				apierror.Write(w, apierror.New(http.StatusUnauthorized, "Invalid Authorization header format"))
				return
			}

			claims := &models.Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				if errors.Is(err, jwt.ErrSignatureInvalid) {
					log.Println("Invalid token signature")
				} else {
					log.Printf("Token parsing error: %v", err)
				}
				apierror.Write(w, apierror.New(http.StatusUnauthorized, "Invalid token"))
				return
			}
			if !token.Valid || claims.UserID == "" {
				apierror.Write(w, apierror.New(http.StatusUnauthorized, "Invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
