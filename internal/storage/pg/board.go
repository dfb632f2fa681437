package pg

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/retroboard-dev/retroboard/internal/domain"
	internal_errors "github.com/retroboard-dev/retroboard/internal/errors"
)

func (s *Storage) CreateBoard(data domain.BoardCreationData) (domain.Board, error) {
	var b domain.Board
	err := s.db.QueryRow(`
		INSERT INTO boards(id, title, description, owner_id)
		VALUES($1, $2, $3, $4)
		RETURNING id, title, description, owner_id, created, updated
	`, uuid.NewString(), data.Title, data.Description, data.OwnerId,
	).Scan(&b.Id, &b.Title, &b.Description, &b.OwnerId, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (s *Storage) GetBoard(id domain.BoardId) (domain.Board, error) {
	var b domain.Board
	err := s.db.QueryRow(`
		SELECT id, title, description, owner_id, created, updated
		FROM boards WHERE id = $1
	`, id).Scan(&b.Id, &b.Title, &b.Description, &b.OwnerId, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.NotFound("Board not found")
		}
		return domain.Board{}, err
	}
	return b, nil
}

func (s *Storage) GetBoards(ownerId domain.UserId) ([]domain.Board, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, owner_id, created, updated
		FROM boards WHERE owner_id = $1
		ORDER BY updated DESC
	`, ownerId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.Id, &b.Title, &b.Description, &b.OwnerId, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *Storage) UpdateBoard(id domain.BoardId, data domain.BoardUpdateData) error {
	result, err := s.db.Exec(`
		UPDATE boards SET title = $2, description = $3, updated = NOW()
		WHERE id = $1
	`, id, data.Title, data.Description)
	if err != nil {
		return err
	}
	return requireAffected(result, "Board not found")
}

// TouchBoard bumps the board's updated timestamp; called when items land.
func (s *Storage) TouchBoard(id domain.BoardId) error {
	result, err := s.db.Exec("UPDATE boards SET updated = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireAffected(result, "Board not found")
}

func (s *Storage) DeleteBoard(id domain.BoardId) error {
	// items cascade
	result, err := s.db.Exec("DELETE FROM boards WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireAffected(result, "Board not found")
}

func requireAffected(result sql.Result, notFoundMsg string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return internal_errors.NotFound(notFoundMsg)
	}
	return nil
}
