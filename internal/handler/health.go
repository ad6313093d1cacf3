package handler

import (
	"net/http"
	"time"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

// HandleHealth handles GET /api/health requests.
func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}
