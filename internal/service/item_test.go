package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroboard-dev/retroboard/internal/domain"
	internal_errors "github.com/retroboard-dev/retroboard/internal/errors"
	"github.com/retroboard-dev/retroboard/internal/utils"
	"github.com/retroboard-dev/retroboard/internal/view"
	"github.com/retroboard-dev/retroboard/internal/vote"
)

// MockItemStorage mocks the ItemStorage interface.
type MockItemStorage struct {
	createItemFunc func(data domain.ItemCreationData) (domain.Item, error)
	getItemFunc    func(id domain.ItemId) (domain.Item, error)
	getItemsFunc   func(boardId domain.BoardId) ([]domain.Item, error)
	deleteItemFunc func(id domain.ItemId) error
	applyVoteFunc  func(id domain.ItemId, userId domain.UserId, value domain.VoteValue) (domain.VoteState, error)
	touchBoardFunc func(id domain.BoardId) error
}

func (m *MockItemStorage) CreateItem(data domain.ItemCreationData) (domain.Item, error) {
	if m.createItemFunc != nil {
		return m.createItemFunc(data)
	}
	return domain.Item{Id: "item-1", BoardId: data.BoardId, Content: data.Content, Column: data.Column}, nil
}

func (m *MockItemStorage) GetItem(id domain.ItemId) (domain.Item, error) {
	if m.getItemFunc != nil {
		return m.getItemFunc(id)
	}
	return domain.Item{Id: id, BoardId: "board-1"}, nil
}

func (m *MockItemStorage) GetItems(boardId domain.BoardId) ([]domain.Item, error) {
	if m.getItemsFunc != nil {
		return m.getItemsFunc(boardId)
	}
	return nil, nil
}

func (m *MockItemStorage) DeleteItem(id domain.ItemId) error {
	if m.deleteItemFunc != nil {
		return m.deleteItemFunc(id)
	}
	return nil
}

func (m *MockItemStorage) ApplyVote(id domain.ItemId, userId domain.UserId, value domain.VoteValue) (domain.VoteState, error) {
	if m.applyVoteFunc != nil {
		return m.applyVoteFunc(id, userId, value)
	}
	return domain.VoteState{Votes: int(value), UserVote: value}, nil
}

func (m *MockItemStorage) TouchBoard(id domain.BoardId) error {
	if m.touchBoardFunc != nil {
		return m.touchBoardFunc(id)
	}
	return nil
}

type MockNotifier struct {
	notified []domain.BoardId
}

func (m *MockNotifier) Notify(boardId domain.BoardId) {
	m.notified = append(m.notified, boardId)
}

func newItemService(storage *MockItemStorage, boards *MockBoardStorage, notifier *MockNotifier) *Item {
	return NewItem(storage, boards, &utils.ContentValidator{MaxLen: 100}, notifier)
}

func TestItemCreate(t *testing.T) {
	notifier := &MockNotifier{}
	var created domain.ItemCreationData
	touched := false
	storage := &MockItemStorage{
		createItemFunc: func(data domain.ItemCreationData) (domain.Item, error) {
			created = data
			return domain.Item{Id: "item-1", BoardId: data.BoardId}, nil
		},
		touchBoardFunc: func(domain.BoardId) error {
			touched = true
			return nil
		},
	}
	s := newItemService(storage, &MockBoardStorage{}, notifier)

	_, err := s.Create(domain.ItemCreationData{
		BoardId:  "board-1",
		Content:  "  Great sprint! ",
		Column:   domain.ColumnWentWell,
		AuthorId: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Great sprint!", created.Content)
	assert.True(t, touched)
	assert.Equal(t, []domain.BoardId{"board-1"}, notifier.notified)
}

func TestItemCreateSanitizesMarkup(t *testing.T) {
	var created domain.ItemCreationData
	storage := &MockItemStorage{
		createItemFunc: func(data domain.ItemCreationData) (domain.Item, error) {
			created = data
			return domain.Item{}, nil
		},
	}
	s := newItemService(storage, &MockBoardStorage{}, &MockNotifier{})

	_, err := s.Create(domain.ItemCreationData{
		BoardId: "board-1",
		Content: `hello <script>alert(1)</script>world`,
		Column:  domain.ColumnToImprove,
	})
	require.NoError(t, err)
	assert.NotContains(t, created.Content, "<script>")
}

func TestItemCreateValidation(t *testing.T) {
	storage := &MockItemStorage{}
	notifier := &MockNotifier{}
	s := newItemService(storage, &MockBoardStorage{}, notifier)

	t.Run("empty content", func(t *testing.T) {
		_, err := s.Create(domain.ItemCreationData{BoardId: "b", Content: "  ", Column: domain.ColumnWentWell})
		assert.Error(t, err)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := s.Create(domain.ItemCreationData{BoardId: "b", Content: "x", Column: "kudos"})
		assert.Error(t, err)
	})

	assert.Empty(t, notifier.notified, "validation failures must not reach the store or notify")
}

func TestItemCreateMissingBoard(t *testing.T) {
	boards := &MockBoardStorage{
		getBoardFunc: func(domain.BoardId) (domain.Board, error) {
			return domain.Board{}, internal_errors.NotFound("Board not found")
		},
	}
	s := newItemService(&MockItemStorage{}, boards, &MockNotifier{})

	_, err := s.Create(domain.ItemCreationData{BoardId: "ghost", Content: "x", Column: domain.ColumnWentWell})
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestItemView(t *testing.T) {
	now := time.Now()
	storage := &MockItemStorage{
		getItemsFunc: func(domain.BoardId) ([]domain.Item, error) {
			return []domain.Item{
				{Id: "a", Content: "alpha", CreatedAt: now.Add(-time.Hour)},
				{Id: "b", Content: "beta", CreatedAt: now},
			}, nil
		},
	}
	s := newItemService(storage, &MockBoardStorage{}, &MockNotifier{})

	items, err := s.View("board-1", view.SortNewest, "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Id)

	items, err = s.View("board-1", view.SortNewest, "alpha")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Id)
}

func TestItemVote(t *testing.T) {
	notifier := &MockNotifier{}
	storage := &MockItemStorage{
		getItemFunc: func(id domain.ItemId) (domain.Item, error) {
			return domain.Item{Id: id, BoardId: "board-7"}, nil
		},
		applyVoteFunc: func(id domain.ItemId, userId domain.UserId, value domain.VoteValue) (domain.VoteState, error) {
			return domain.VoteState{Votes: 1, UserVote: value}, nil
		},
	}
	s := newItemService(storage, &MockBoardStorage{}, notifier)

	state, err := s.Vote("item-1", 5, vote.Up)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Votes)
	assert.Equal(t, vote.Up, state.UserVote)
	assert.Equal(t, []domain.BoardId{"board-7"}, notifier.notified)
}

func TestItemVoteMissingItem(t *testing.T) {
	notifier := &MockNotifier{}
	storage := &MockItemStorage{
		getItemFunc: func(domain.ItemId) (domain.Item, error) {
			return domain.Item{}, internal_errors.NotFound("Item not found")
		},
	}
	s := newItemService(storage, &MockBoardStorage{}, notifier)

	_, err := s.Vote("ghost", 5, vote.Up)
	assert.True(t, internal_errors.IsNotFound(err))
	assert.Empty(t, notifier.notified)
}

func TestItemDeletePermissions(t *testing.T) {
	item := domain.Item{Id: "item-1", BoardId: "board-1", AuthorId: 5}
	boards := &MockBoardStorage{
		getBoardFunc: func(id domain.BoardId) (domain.Board, error) {
			return domain.Board{Id: id, OwnerId: 10}, nil
		},
	}

	newService := func(deleted *bool) *Item {
		storage := &MockItemStorage{
			getItemFunc: func(domain.ItemId) (domain.Item, error) { return item, nil },
			deleteItemFunc: func(domain.ItemId) error {
				*deleted = true
				return nil
			},
		}
		return newItemService(storage, boards, &MockNotifier{})
	}

	t.Run("author can delete", func(t *testing.T) {
		deleted := false
		require.NoError(t, newService(&deleted).Delete("item-1", 5))
		assert.True(t, deleted)
	})

	t.Run("board owner can delete", func(t *testing.T) {
		deleted := false
		require.NoError(t, newService(&deleted).Delete("item-1", 10))
		assert.True(t, deleted)
	})

	t.Run("stranger gets 403", func(t *testing.T) {
		deleted := false
		err := newService(&deleted).Delete("item-1", 99)
		require.Error(t, err)
		e, ok := err.(*internal_errors.ErrorWithStatusCode)
		require.True(t, ok)
		assert.Equal(t, 403, e.StatusCode)
		assert.False(t, deleted)
	})
}
