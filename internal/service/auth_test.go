package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/retroboard-dev/retroboard/internal/domain"
	internal_errors "github.com/retroboard-dev/retroboard/internal/errors"
)

// MockAuthStorage mocks the AuthStorage interface.
type MockAuthStorage struct {
	saveUserFunc func(user domain.User) (domain.UserId, error)
	userFunc     func(email domain.Email) (domain.User, error)
}

func (m *MockAuthStorage) SaveUser(user domain.User) (domain.UserId, error) {
	if m.saveUserFunc != nil {
		return m.saveUserFunc(user)
	}
	return 1, nil
}

func (m *MockAuthStorage) User(email domain.Email) (domain.User, error) {
	if m.userFunc != nil {
		return m.userFunc(email)
	}
	return domain.User{}, nil
}

type MockJwt struct {
	newTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.newTokenFunc != nil {
		return m.newTokenFunc(user)
	}
	return "token", nil
}

func TestAuthSignup(t *testing.T) {
	var saved domain.User
	storage := &MockAuthStorage{
		saveUserFunc: func(user domain.User) (domain.UserId, error) {
			saved = user
			return 42, nil
		},
	}
	a := NewAuth(storage, &MockJwt{})

	id, err := a.Signup(domain.Credentials{Email: " User@Example.COM ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserId(42), id)
	assert.Equal(t, "user@example.com", saved.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PassHash), []byte("password123")))
}

func TestAuthSignupEmptyEmail(t *testing.T) {
	a := NewAuth(&MockAuthStorage{}, &MockJwt{})

	_, err := a.Signup(domain.Credentials{Email: "  ", Password: "password123"})
	assert.Error(t, err)
}

func TestAuthSignupStorageError(t *testing.T) {
	storage := &MockAuthStorage{
		saveUserFunc: func(domain.User) (domain.UserId, error) {
			return 0, errors.New("storage down")
		},
	}
	a := NewAuth(storage, &MockJwt{})

	_, err := a.Signup(domain.Credentials{Email: "a@b.c", Password: "password123"})
	assert.Error(t, err)
}

func TestAuthLogin(t *testing.T) {
	passHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	storage := &MockAuthStorage{
		userFunc: func(email domain.Email) (domain.User, error) {
			if email != "user@example.com" {
				return domain.User{}, internal_errors.NotFound("User not found")
			}
			return domain.User{Id: 1, Email: email, PassHash: string(passHash)}, nil
		},
	}
	a := NewAuth(storage, &MockJwt{})

	t.Run("successful login", func(t *testing.T) {
		token, err := a.Login(domain.Credentials{Email: "User@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "token", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Login(domain.Credentials{Email: "user@example.com", Password: "nope"})
		require.Error(t, err)
		e, ok := err.(*internal_errors.ErrorWithStatusCode)
		require.True(t, ok)
		assert.Equal(t, 401, e.StatusCode)
	})

	t.Run("unknown user maps to 401, not 404", func(t *testing.T) {
		_, err := a.Login(domain.Credentials{Email: "ghost@example.com", Password: "password123"})
		require.Error(t, err)
		e, ok := err.(*internal_errors.ErrorWithStatusCode)
		require.True(t, ok)
		assert.Equal(t, 401, e.StatusCode)
	})
}
