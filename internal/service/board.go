package service

import (
	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/errors"
)

type BoardService interface {
	Create(data domain.BoardCreationData) (domain.Board, error)
	Get(id domain.BoardId) (domain.Board, error)
	GetAll(owner domain.UserId) ([]domain.Board, error)
	Update(id domain.BoardId, data domain.BoardUpdateData, actor domain.UserId) error
	Delete(id domain.BoardId, actor domain.UserId) error
}

type Board struct {
	storage   BoardStorage
	validator BoardValidator
}

type BoardStorage interface {
	CreateBoard(data domain.BoardCreationData) (domain.Board, error)
	GetBoard(id domain.BoardId) (domain.Board, error)
	GetBoards(owner domain.UserId) ([]domain.Board, error)
	UpdateBoard(id domain.BoardId, data domain.BoardUpdateData) error
	DeleteBoard(id domain.BoardId) error
}

type BoardValidator interface {
	Title(title domain.BoardTitle) error
}

func NewBoard(storage BoardStorage, validator BoardValidator) *Board {
	return &Board{storage, validator}
}

func (b *Board) Create(data domain.BoardCreationData) (domain.Board, error) {
	if err := b.validator.Title(data.Title); err != nil {
		return domain.Board{}, err
	}
	return b.storage.CreateBoard(data)
}

func (b *Board) Get(id domain.BoardId) (domain.Board, error) {
	return b.storage.GetBoard(id)
}

func (b *Board) GetAll(owner domain.UserId) ([]domain.Board, error) {
	return b.storage.GetBoards(owner)
}

// Update and Delete are owner-only operations.
func (b *Board) Update(id domain.BoardId, data domain.BoardUpdateData, actor domain.UserId) error {
	if err := b.validator.Title(data.Title); err != nil {
		return err
	}
	if err := b.requireOwner(id, actor); err != nil {
		return err
	}
	return b.storage.UpdateBoard(id, data)
}

func (b *Board) Delete(id domain.BoardId, actor domain.UserId) error {
	if err := b.requireOwner(id, actor); err != nil {
		return err
	}
	return b.storage.DeleteBoard(id)
}

func (b *Board) requireOwner(id domain.BoardId, actor domain.UserId) error {
	board, err := b.storage.GetBoard(id)
	if err != nil {
		return err
	}
	if board.OwnerId != actor {
		return errors.Forbidden("Only the board owner can do that")
	}
	return nil
}
