package api

import (
	"time"

	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/view"
)

// Request DTOs

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateBoardRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateBoardRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

type CreateItemRequest struct {
	Content     string `json:"content" validate:"required"`
	Column      string `json:"column" validate:"required"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
}

type VoteRequest struct {
	Value int `json:"value" validate:"required,oneof=-1 1"`
}

// Response DTOs

type BoardResponse struct {
	Id          domain.BoardId `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	OwnerId     domain.UserId  `json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type BoardListResponse struct {
	Boards []BoardResponse `json:"boards"`
}

// ItemResponse is an item as seen by one viewer: the raw voter map stays
// server-side, the response carries the viewer's own vote instead.
type ItemResponse struct {
	Id          domain.ItemId  `json:"id"`
	BoardId     domain.BoardId `json:"board_id"`
	Content     string         `json:"content"`
	Column      domain.Column  `json:"column"`
	Author      string         `json:"author"` // empty for anonymous items
	IsAnonymous bool           `json:"is_anonymous"`
	Votes       int            `json:"votes"`
	UserVote    int            `json:"user_vote"`
	CanDelete   bool           `json:"can_delete"`
	CreatedAt   time.Time      `json:"created_at"`
}

type BoardViewResponse struct {
	Board   BoardResponse                    `json:"board"`
	Columns map[domain.Column][]ItemResponse `json:"columns"`
}

type VoteResponse struct {
	Id       domain.ItemId `json:"id"`
	Votes    int           `json:"votes"`
	UserVote int           `json:"user_vote"`
}

// Event stream payloads

const (
	EventSnapshot = "snapshot"
	EventPatch    = "patch"
	EventReady    = "ready"
	EventError    = "error"
)

type StreamEvent struct {
	Type  string         `json:"type"`
	Items []ItemResponse `json:"items,omitempty"`
	Ops   []view.Op      `json:"ops,omitempty"`
	Error string         `json:"error,omitempty"`
}

func NewBoardResponse(b domain.Board) BoardResponse {
	return BoardResponse{
		Id:          b.Id,
		Title:       b.Title,
		Description: b.Description,
		OwnerId:     b.OwnerId,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// NewItemResponse projects an item for a particular viewer. ownerId is the
// board owner, who may delete any item on the board.
func NewItemResponse(it domain.Item, viewer domain.UserId, ownerId domain.UserId) ItemResponse {
	author := it.AuthorEmail
	if it.IsAnonymous {
		author = ""
	}
	return ItemResponse{
		Id:          it.Id,
		BoardId:     it.BoardId,
		Content:     it.Content,
		Column:      it.Column,
		Author:      author,
		IsAnonymous: it.IsAnonymous,
		Votes:       it.Votes,
		UserVote:    it.Voters[viewer],
		CanDelete:   viewer == it.AuthorId || viewer == ownerId,
		CreatedAt:   it.CreatedAt,
	}
}

func NewItemResponses(items []domain.Item, viewer domain.UserId, ownerId domain.UserId) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = NewItemResponse(it, viewer, ownerId)
	}
	return out
}
