package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/retroboard-dev/retroboard/internal/middleware/ratelimiter"
	"github.com/retroboard-dev/retroboard/internal/utils"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext is an identity source for authenticated routes.
func GetUserIDFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", errors.New("can't get user id")
	}
	return fmt.Sprintf("user_%d", user.Id), nil
}

// GetIP is an identity source for anonymous routes (signup, login).
func GetIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}
