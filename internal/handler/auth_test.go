package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroboard-dev/retroboard/internal/config"
	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/errors"
	"github.com/retroboard-dev/retroboard/internal/middleware"
)

type MockAuthService struct {
	MockSignup func(creds domain.Credentials) (domain.UserId, error)
	MockLogin  func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Signup(creds domain.Credentials) (domain.UserId, error) {
	if m.MockSignup != nil {
		return m.MockSignup(creds)
	}
	return 1, nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return "token", nil
}

func TestSignupHandler(t *testing.T) {
	h := &Handler{}

	t.Run("successful request", func(t *testing.T) {
		h.auth = &MockAuthService{}
		rr := httptest.NewRecorder()

		h.Signup(rr, createRequest(t, "POST", "/v1/auth/signup", []byte(`{"email": "user@example.com", "password": "longenough"}`)))

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("invalid request body", func(t *testing.T) {
		h.auth = &MockAuthService{}
		rr := httptest.NewRecorder()

		h.Signup(rr, createRequest(t, "POST", "/v1/auth/signup", []byte(`{invalid json::}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("password too short", func(t *testing.T) {
		h.auth = &MockAuthService{
			MockSignup: func(creds domain.Credentials) (domain.UserId, error) {
				t.Fatal("service must not be called for invalid input")
				return 0, nil
			},
		}
		rr := httptest.NewRecorder()

		h.Signup(rr, createRequest(t, "POST", "/v1/auth/signup", []byte(`{"email": "user@example.com", "password": "short"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h.auth = &MockAuthService{
			MockSignup: func(creds domain.Credentials) (domain.UserId, error) {
				return 0, errors.Conflict("User already exists")
			},
		}
		rr := httptest.NewRecorder()

		h.Signup(rr, createRequest(t, "POST", "/v1/auth/signup", []byte(`{"email": "user@example.com", "password": "longenough"}`)))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	h := &Handler{cfg: &config.Config{Public: config.Public{JwtTTL: time.Hour}}}
	requestBody := []byte(`{"email": "user@example.com", "password": "longenough"}`)

	t.Run("successful request sets cookie", func(t *testing.T) {
		h.auth = &MockAuthService{
			MockLogin: func(creds domain.Credentials) (string, error) {
				return "signed.jwt.token", nil
			},
		}
		rr := httptest.NewRecorder()

		h.Login(rr, createRequest(t, "POST", "/v1/auth/login", requestBody))

		assert.Equal(t, http.StatusOK, rr.Code)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.CookieName, cookies[0].Name)
		assert.Equal(t, "signed.jwt.token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		h.auth = &MockAuthService{
			MockLogin: func(creds domain.Credentials) (string, error) {
				return "", errors.Unauthorized("Invalid email or password")
			},
		}
		rr := httptest.NewRecorder()

		h.Login(rr, createRequest(t, "POST", "/v1/auth/login", requestBody))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("invalid request body", func(t *testing.T) {
		rr := httptest.NewRecorder()

		h.Login(rr, createRequest(t, "POST", "/v1/auth/login", []byte(`{"email": "not-an-email"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	h := &Handler{}
	rr := httptest.NewRecorder()

	h.Logout(rr, createRequest(t, "POST", "/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.CookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge, "cookie must be expired")
	assert.Empty(t, cookies[0].Value)
}
