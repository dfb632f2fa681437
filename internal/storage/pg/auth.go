package pg

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/retroboard-dev/retroboard/internal/domain"
	internal_errors "github.com/retroboard-dev/retroboard/internal/errors"
)

const uniqueViolation = "23505"

func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRow(
		"INSERT INTO users(email, pass_hash) VALUES($1, $2) RETURNING id",
		strings.ToLower(user.Email), user.PassHash,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, internal_errors.Conflict("User already exists")
		}
		return 0, err
	}
	return id, nil
}

func (s *Storage) User(email domain.Email) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(
		"SELECT id, email, pass_hash, created FROM users WHERE email = $1",
		strings.ToLower(email),
	).Scan(&u.Id, &u.Email, &u.PassHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, err
	}
	return u, nil
}
