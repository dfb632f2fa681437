package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/errors"
	"github.com/retroboard-dev/retroboard/internal/view"
)

type ItemService interface {
	Create(data domain.ItemCreationData) (domain.Item, error)
	View(boardId domain.BoardId, key view.SortKey, searchTerm string) ([]domain.Item, error)
	Vote(id domain.ItemId, userId domain.UserId, value domain.VoteValue) (domain.VoteState, error)
	Delete(id domain.ItemId, actor domain.UserId) error
}

type Item struct {
	storage   ItemStorage
	boards    BoardStorage
	validator ItemValidator
	notifier  Notifier
	sanitizer *bluemonday.Policy
}

type ItemStorage interface {
	CreateItem(data domain.ItemCreationData) (domain.Item, error)
	GetItem(id domain.ItemId) (domain.Item, error)
	GetItems(boardId domain.BoardId) ([]domain.Item, error)
	DeleteItem(id domain.ItemId) error
	ApplyVote(id domain.ItemId, userId domain.UserId, value domain.VoteValue) (domain.VoteState, error)
	TouchBoard(id domain.BoardId) error
}

type ItemValidator interface {
	Content(content domain.ItemContent) error
	Column(c domain.Column) error
}

// Notifier is the optimistic poke to local subscribers; the db trigger
// covers other processes, the hub coalesces the duplicates.
type Notifier interface {
	Notify(boardId domain.BoardId)
}

func NewItem(storage ItemStorage, boards BoardStorage, validator ItemValidator, notifier Notifier) *Item {
	return &Item{
		storage:   storage,
		boards:    boards,
		validator: validator,
		notifier:  notifier,
		sanitizer: bluemonday.StrictPolicy(), // card content is plain text
	}
}

func (i *Item) Create(data domain.ItemCreationData) (domain.Item, error) {
	if err := i.validator.Column(data.Column); err != nil {
		return domain.Item{}, err
	}
	data.Content = strings.TrimSpace(i.sanitizer.Sanitize(data.Content))
	if err := i.validator.Content(data.Content); err != nil {
		return domain.Item{}, err
	}
	// item must land on an existing board
	if _, err := i.boards.GetBoard(data.BoardId); err != nil {
		return domain.Item{}, err
	}

	item, err := i.storage.CreateItem(data)
	if err != nil {
		return domain.Item{}, err
	}
	if err := i.storage.TouchBoard(data.BoardId); err != nil {
		return domain.Item{}, err
	}

	i.notifier.Notify(data.BoardId)
	return item, nil
}

// View is the read path: fetch, then run the pure sort/filter pipeline.
func (i *Item) View(boardId domain.BoardId, key view.SortKey, searchTerm string) ([]domain.Item, error) {
	items, err := i.storage.GetItems(boardId)
	if err != nil {
		return nil, err
	}
	return view.Apply(items, key, searchTerm), nil
}

func (i *Item) Vote(id domain.ItemId, userId domain.UserId, value domain.VoteValue) (domain.VoteState, error) {
	item, err := i.storage.GetItem(id)
	if err != nil {
		return domain.VoteState{}, err
	}

	state, err := i.storage.ApplyVote(id, userId, value)
	if err != nil {
		return domain.VoteState{}, err
	}

	i.notifier.Notify(item.BoardId)
	return state, nil
}

// Delete is allowed for the item's author and for the board owner.
func (i *Item) Delete(id domain.ItemId, actor domain.UserId) error {
	item, err := i.storage.GetItem(id)
	if err != nil {
		return err
	}

	if item.AuthorId != actor {
		board, err := i.boards.GetBoard(item.BoardId)
		if err != nil {
			return err
		}
		if board.OwnerId != actor {
			return errors.Forbidden("Only the author or the board owner can delete an item")
		}
	}

	if err := i.storage.DeleteItem(id); err != nil {
		return err
	}

	i.notifier.Notify(item.BoardId)
	return nil
}
