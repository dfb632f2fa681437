package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/retroboard-dev/retroboard/internal/api"
	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/logger"
	"github.com/retroboard-dev/retroboard/internal/middleware"
	"github.com/retroboard-dev/retroboard/internal/utils"
	"github.com/retroboard-dev/retroboard/internal/view"
)

// StreamBoard serves the board's live view over SSE.
//
// Per connection: one hub subscription (detached on disconnect), an initial
// snapshot event, then a patch event with reconcile ops on every change
// poke. State is re-read on each poke, so whichever snapshot loads last
// wins; no cross-snapshot ordering is promised. A failsafe timer emits a
// ready event if the first load is still pending, so clients never hang on
// a spinner.
func (h *Handler) StreamBoard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	boardId := chi.URLParam(r, "board")
	sortKey, err := view.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	searchTerm := r.URL.Query().Get("q")

	board, err := h.boards.Get(boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	sub := h.hub.Subscribe(boardId)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	send := func(event api.StreamEvent) {
		payload, err := json.Marshal(event)
		if err != nil {
			logger.Log.Error("failed to marshal stream event", "error", err)
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
		flusher.Flush()
	}

	load := func() ([]domain.Item, error) {
		return h.items.View(boardId, sortKey, searchTerm)
	}

	// Initial snapshot, bounded by the failsafe so a stalled store never
	// leaves the client waiting indefinitely.
	type loadResult struct {
		items []domain.Item
		err   error
	}
	firstLoad := make(chan loadResult, 1)
	go func() {
		items, err := load()
		firstLoad <- loadResult{items, err}
	}()

	var prev []domain.Item
	select {
	case res := <-firstLoad:
		if res.err != nil {
			send(api.StreamEvent{Type: api.EventError, Error: "Failed to load board"})
		} else {
			prev = res.items
			send(api.StreamEvent{Type: api.EventSnapshot, Items: api.NewItemResponses(prev, user.Id, board.OwnerId)})
		}
	case <-time.After(h.cfg.Public.LoadFailsafe):
		logger.Log.Warn("initial board load exceeded failsafe", "board", boardId)
		send(api.StreamEvent{Type: api.EventReady})
	case <-r.Context().Done():
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case res := <-firstLoad:
			// late arrival after the failsafe already fired
			if prev == nil && res.err == nil {
				prev = res.items
				send(api.StreamEvent{Type: api.EventSnapshot, Items: api.NewItemResponses(prev, user.Id, board.OwnerId)})
			}
		case <-sub.C():
			next, err := load()
			if err != nil {
				// transient: keep the stream open, the next poke retries
				logger.Log.Error("failed to reload board", "board", boardId, "error", err)
				send(api.StreamEvent{Type: api.EventError, Error: "Failed to refresh board"})
				continue
			}
			if prev == nil {
				prev = next
				send(api.StreamEvent{Type: api.EventSnapshot, Items: api.NewItemResponses(next, user.Id, board.OwnerId)})
				continue
			}
			if ops := view.Reconcile(prev, next, user.Id); len(ops) > 0 {
				send(api.StreamEvent{Type: api.EventPatch, Ops: ops})
			}
			prev = next
		}
	}
}
