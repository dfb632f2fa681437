package handler

import (
	"encoding/json"
	"net/http"

	"github.com/retroboard-dev/retroboard/internal/config"
	"github.com/retroboard-dev/retroboard/internal/logger"
	"github.com/retroboard-dev/retroboard/internal/realtime"
	"github.com/retroboard-dev/retroboard/internal/service"
)

type Handler struct {
	auth   service.AuthService
	boards service.BoardService
	items  service.ItemService
	hub    *realtime.Hub
	cfg    *config.Config
}

func New(auth service.AuthService, boards service.BoardService, items service.ItemService, hub *realtime.Hub, cfg *config.Config) *Handler {
	return &Handler{auth, boards, items, hub, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
