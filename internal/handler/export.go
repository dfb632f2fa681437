package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/retroboard-dev/retroboard/internal/domain"
	internal_errors "github.com/retroboard-dev/retroboard/internal/errors"
	"github.com/retroboard-dev/retroboard/internal/export"
	"github.com/retroboard-dev/retroboard/internal/logger"
	"github.com/retroboard-dev/retroboard/internal/middleware"
	"github.com/retroboard-dev/retroboard/internal/utils"
	"github.com/retroboard-dev/retroboard/internal/view"
)

// ExportCSV downloads the whole board, grouped by column, newest first
// within each column.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	_, grouped, err := h.exportData(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("csv", time.Now())+`"`)
	if err := export.WriteCSV(w, grouped); err != nil {
		// headers already sent, nothing better to do than log
		logger.Log.Error("csv export failed mid-stream", "error", err)
	}
}

// ExportHTML renders the printable document used as the PDF pipeline input.
func (h *Handler) ExportHTML(w http.ResponseWriter, r *http.Request) {
	board, grouped, err := h.exportData(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.WriteHTML(w, board, grouped, time.Now()); err != nil {
		logger.Log.Error("html export failed mid-stream", "error", err)
	}
}

func (h *Handler) exportData(r *http.Request) (domain.Board, map[domain.Column][]domain.Item, error) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		return domain.Board{}, nil, internal_errors.Unauthorized("Not authorized")
	}
	boardId := chi.URLParam(r, "board")

	board, err := h.boards.Get(boardId)
	if err != nil {
		return domain.Board{}, nil, err
	}

	items, err := h.items.View(boardId, view.SortNewest, "")
	if err != nil {
		return domain.Board{}, nil, err
	}

	return board, view.Group(items), nil
}
