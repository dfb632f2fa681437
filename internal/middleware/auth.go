package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/retroboard-dev/retroboard/internal/domain"
	internal_jwt "github.com/retroboard-dev/retroboard/internal/jwt"
	"github.com/retroboard-dev/retroboard/internal/logger"
	"github.com/retroboard-dev/retroboard/internal/utils"
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

// CookieName holds the JWT access token.
const CookieName = "accessToken"

func NeedAuth(jwtService internal_jwt.JwtService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessCookie, err := r.Cookie(CookieName)
			if err == http.ErrNoCookie {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			} else if err != nil {
				logger.Log.Error("unexpected cookie error", "error", err)
				http.Error(w, "Invalid cookie", http.StatusInternalServerError)
				return
			}

			token, err := jwtService.DecodeToken(accessCookie.Value)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid access token", http.StatusUnauthorized)
				return
			}
			uid, uidOk := claims["uid"].(float64)
			email, emailOk := claims["email"].(string)
			if !uidOk || !emailOk {
				http.Error(w, "Invalid access token", http.StatusUnauthorized)
				return
			}

			user := &domain.User{Id: int64(uid), Email: email}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user, or nil outside NeedAuth.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
