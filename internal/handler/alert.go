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

// AlertHandler handles HTTP requests for risk alerts.
type AlertHandler struct {
	service *service.AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(svc *service.AlertService) *AlertHandler {
	return &AlertHandler{service: svc}
}

// HandleList handles GET /api/alerts requests.
func (h *AlertHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	alerts, err := h.service.List(r.Context(), userID)
	if err != nil {
		slog.Error("listing alerts failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to get alerts"))
		return
	}

	writeJSON(w, http.StatusOK, alerts)
}

// HandleCreate handles POST /api/alerts requests.
func (h *AlertHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req model.CreateAlertRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	alert, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		slog.Error("creating alert failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to create alert"))
		return
	}

	writeJSON(w, http.StatusOK, alert)
}

// HandleUpdate handles PUT /api/alerts/{alertId} requests. Only isRead,
// alertDate and riskLevel may be sent.
func (h *AlertHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req model.UpdateAlertRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	alert, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "alertId"), req)
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		if errors.Is(err, service.ErrAlertNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("Alert not found"))
			return
		}
		slog.Error("updating alert failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to update alert"))
		return
	}

	writeJSON(w, http.StatusOK, alert)
}

func writeValidationError(w http.ResponseWriter, err error) bool {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	if verr.MissingOnly() {
		writeJSON(w, http.StatusBadRequest, errorResponse("Missing required fields"))
	} else {
		writeJSON(w, http.StatusBadRequest, errorResponse(verr.Error()))
	}
	return true
}
