package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cosmicwatch/cosmicwatch-go/internal/neo"
)

// NeoHandler proxies the scored, cached feed to browser clients.
type NeoHandler struct {
	client *neo.Client
}

// NewNeoHandler creates a new NeoHandler.
func NewNeoHandler(client *neo.Client) *NeoHandler {
	return &NeoHandler{client: client}
}

// HandleFeed handles GET /api/neo/feed requests.
func (h *NeoHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	objs, err := h.client.FetchFeed(r.Context())
	if err != nil {
		slog.Error("fetching feed failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse("Failed to fetch asteroid feed"))
		return
	}

	writeJSON(w, http.StatusOK, objs)
}

// HandleObject handles GET /api/neo/{id} requests.
func (h *NeoHandler) HandleObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	obj, err := h.client.FetchOne(r.Context(), id)
	if err != nil {
		if neo.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, errorResponse("Asteroid not found"))
			return
		}
		slog.Error("fetching object failed", "id", id, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse("Failed to fetch asteroid"))
		return
	}

	writeJSON(w, http.StatusOK, obj)
}
