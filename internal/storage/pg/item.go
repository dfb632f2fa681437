package pg

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/retroboard-dev/retroboard/internal/domain"
	internal_errors "github.com/retroboard-dev/retroboard/internal/errors"
	"github.com/retroboard-dev/retroboard/internal/vote"
)

const itemColumns = "id, board_id, content, column_type, author_id, author_email, is_anonymous, votes, voters, created, updated"

func scanItem(row interface {
	Scan(dest ...any) error
}) (domain.Item, error) {
	var it domain.Item
	var voters []byte
	err := row.Scan(&it.Id, &it.BoardId, &it.Content, &it.Column, &it.AuthorId,
		&it.AuthorEmail, &it.IsAnonymous, &it.Votes, &voters, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return domain.Item{}, err
	}
	if err := json.Unmarshal(voters, &it.Voters); err != nil {
		return domain.Item{}, err
	}
	return it, nil
}

func (s *Storage) CreateItem(data domain.ItemCreationData) (domain.Item, error) {
	row := s.db.QueryRow(`
		INSERT INTO items(id, board_id, content, column_type, author_id, author_email, is_anonymous)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+itemColumns,
		uuid.NewString(), data.BoardId, data.Content, data.Column,
		data.AuthorId, data.AuthorEmail, data.IsAnonymous)
	return scanItem(row)
}

func (s *Storage) GetItem(id domain.ItemId) (domain.Item, error) {
	row := s.db.QueryRow("SELECT "+itemColumns+" FROM items WHERE id = $1", id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Item{}, internal_errors.NotFound("Item not found")
		}
		return domain.Item{}, err
	}
	return it, nil
}

// GetItems returns the board's items newest-first; sorting for a particular
// view happens client side of the storage, in the view package.
func (s *Storage) GetItems(boardId domain.BoardId) ([]domain.Item, error) {
	rows, err := s.db.Query(
		"SELECT "+itemColumns+" FROM items WHERE board_id = $1 ORDER BY created DESC", boardId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Storage) DeleteItem(id domain.ItemId) error {
	result, err := s.db.Exec("DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireAffected(result, "Item not found")
}

// ApplyVote performs the toggle under a row lock: read the user's current
// value, run the toggle, adjust the counter by the delta. The counter is
// never recomputed from the voter map.
func (s *Storage) ApplyVote(id domain.ItemId, userId domain.UserId, value domain.VoteValue) (domain.VoteState, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.VoteState{}, err
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	var votersRaw []byte
	err = tx.QueryRow("SELECT voters FROM items WHERE id = $1 FOR UPDATE", id).Scan(&votersRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.VoteState{}, internal_errors.NotFound("Item not found")
		}
		return domain.VoteState{}, err
	}

	voters := domain.Voters{}
	if err := json.Unmarshal(votersRaw, &voters); err != nil {
		return domain.VoteState{}, err
	}

	delta, err := vote.Apply(voters, userId, value)
	if err != nil {
		return domain.VoteState{}, internal_errors.Validation(err.Error())
	}

	newVoters, err := json.Marshal(voters)
	if err != nil {
		return domain.VoteState{}, err
	}

	var votes int
	err = tx.QueryRow(`
		UPDATE items SET votes = votes + $2, voters = $3, updated = NOW()
		WHERE id = $1
		RETURNING votes
	`, id, delta, newVoters).Scan(&votes)
	if err != nil {
		return domain.VoteState{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.VoteState{}, err
	}
	return domain.VoteState{Votes: votes, UserVote: voters[userId]}, nil
}
