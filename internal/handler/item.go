package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retroboard-dev/retroboard/internal/api"
	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/middleware"
	"github.com/retroboard-dev/retroboard/internal/utils"
)

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateItemRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	item, err := h.items.Create(domain.ItemCreationData{
		BoardId:     chi.URLParam(r, "board"),
		Content:     body.Content,
		Column:      body.Column,
		AuthorId:    user.Id,
		AuthorEmail: user.Email,
		IsAnonymous: body.IsAnonymous,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// owner id is irrelevant for CanDelete here: the author always can
	writeJSONStatus(w, http.StatusCreated, api.NewItemResponse(item, user.Id, 0))
}

// Vote applies a toggleable directed vote and answers with the new state so
// the caller can patch its view before the next snapshot arrives.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.VoteRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	itemId := chi.URLParam(r, "item")
	state, err := h.items.Vote(itemId, user.Id, body.Value)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.VoteResponse{Id: itemId, Votes: state.Votes, UserVote: state.UserVote})
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := h.items.Delete(chi.URLParam(r, "item"), user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
