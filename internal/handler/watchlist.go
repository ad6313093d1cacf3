package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cosmicwatch/cosmicwatch-go/internal/middleware"
	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
	"github.com/cosmicwatch/cosmicwatch-go/internal/service"
)

// WatchlistHandler handles HTTP requests for the server-side watchlist.
type WatchlistHandler struct {
	service *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(svc *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: svc}
}

// HandleList handles GET /api/watchlist requests.
func (h *WatchlistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		slog.Error("listing watchlist failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to get watchlist"))
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleAdd handles POST /api/watchlist/{asteroidId} requests.
func (h *WatchlistHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	item, err := h.service.Add(r.Context(), userID, chi.URLParam(r, "asteroidId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyWatched):
			writeJSON(w, http.StatusBadRequest, errorResponse("Already in watchlist"))
		case errors.Is(err, service.ErrMissingFields):
			writeJSON(w, http.StatusBadRequest, errorResponse("Missing required fields"))
		default:
			slog.Error("adding to watchlist failed", "user_id", userID, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to add to watchlist"))
		}
		return
	}

	writeJSON(w, http.StatusOK, model.WatchlistAddResponse{Success: true, Item: item})
}

// HandleRemove handles DELETE /api/watchlist/{asteroidId} requests.
func (h *WatchlistHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	if err := h.service.Remove(r.Context(), userID, chi.URLParam(r, "asteroidId")); err != nil {
		if errors.Is(err, service.ErrNotWatched) {
			writeJSON(w, http.StatusNotFound, errorResponse("Item not in watchlist"))
			return
		}
		slog.Error("removing from watchlist failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to remove from watchlist"))
		return
	}

	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}
