package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
	"github.com/cosmicwatch/cosmicwatch-go/internal/repository"
)

// AlertService manages per-user risk alerts.
type AlertService struct {
	repo AlertRepository
	now  func() time.Time
}

// NewAlertService creates a new AlertService.
func NewAlertService(repo AlertRepository) *AlertService {
	return &AlertService{repo: repo, now: time.Now}
}

// List returns the user's alerts in creation order.
func (s *AlertService) List(ctx context.Context, userID string) ([]model.Alert, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create stores a new unread alert. AlertDate defaults to now.
func (s *AlertService) Create(ctx context.Context, userID string, req model.CreateAlertRequest) (model.Alert, error) {
	if err := validateStruct(req); err != nil {
		return model.Alert{}, err
	}

	now := s.now().UTC()
	alert := model.Alert{
		ID:           uuid.NewString(),
		UserID:       userID,
		AsteroidID:   req.AsteroidID,
		AsteroidName: req.AsteroidName,
		RiskLevel:    req.RiskLevel,
		AlertDate:    now,
		CreatedAt:    now,
	}
	if req.AlertDate != nil {
		alert.AlertDate = req.AlertDate.UTC()
	}

	if err := s.repo.Create(ctx, &alert); err != nil {
		return model.Alert{}, err
	}
	return alert, nil
}

// Update merges the allowed fields of req into the user's alert with id.
func (s *AlertService) Update(ctx context.Context, userID, id string, req model.UpdateAlertRequest) (model.Alert, error) {
	if err := validateStruct(req); err != nil {
		return model.Alert{}, err
	}

	alert, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return model.Alert{}, ErrAlertNotFound
		}
		return model.Alert{}, err
	}

	req.Apply(alert)
	if err := s.repo.Update(ctx, alert); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return model.Alert{}, ErrAlertNotFound
		}
		return model.Alert{}, err
	}
	return *alert, nil
}
