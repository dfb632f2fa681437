package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/errors"
	"github.com/retroboard-dev/retroboard/internal/logger"
)

// to mock service in tests
type AuthService interface {
	Signup(creds domain.Credentials) (domain.UserId, error)
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(email domain.Email) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage, jwt}
}

func (a *Auth) Signup(creds domain.Credentials) (domain.UserId, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" {
		return 0, errors.Validation("Email must not be empty")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, err
	}

	id, err := a.storage.SaveUser(domain.User{Email: email, PassHash: string(passHash)})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (a *Auth) Login(creds domain.Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := a.storage.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			// same answer as a wrong password, don't leak which emails exist
			return "", errors.Unauthorized("Invalid email or password")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", errors.Unauthorized("Invalid email or password")
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return "", err
	}
	return token, nil
}
