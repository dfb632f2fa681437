package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retroboard-dev/retroboard/internal/api"
	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/middleware"
	"github.com/retroboard-dev/retroboard/internal/utils"
	"github.com/retroboard-dev/retroboard/internal/view"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.boards.Create(domain.BoardCreationData{
		Title:       body.Title,
		Description: body.Description,
		OwnerId:     user.Id,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.NewBoardResponse(board))
}

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	boards, err := h.boards.GetAll(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.BoardListResponse{Boards: make([]api.BoardResponse, len(boards))}
	for i, b := range boards {
		response.Boards[i] = api.NewBoardResponse(b)
	}
	writeJSON(w, response)
}

// GetBoard returns the board plus its items sorted, filtered and grouped
// into the three columns for the requesting user.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	boardId := chi.URLParam(r, "board")

	sortKey, err := view.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.boards.Get(boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	items, err := h.items.View(boardId, sortKey, r.URL.Query().Get("q"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	grouped := view.Group(items)
	columns := make(map[domain.Column][]api.ItemResponse, len(grouped))
	for c, colItems := range grouped {
		columns[c] = api.NewItemResponses(colItems, user.Id, board.OwnerId)
	}

	writeJSON(w, api.BoardViewResponse{
		Board:   api.NewBoardResponse(board),
		Columns: columns,
	})
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	err := h.boards.Update(chi.URLParam(r, "board"), domain.BoardUpdateData{
		Title:       body.Title,
		Description: body.Description,
	}, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := h.boards.Delete(chi.URLParam(r, "board"), user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
