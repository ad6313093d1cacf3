package model

import "time"

// Alert is a user-created notice about an asteroid's risk.
type Alert struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	AsteroidID   string    `json:"asteroidId"`
	AsteroidName string    `json:"asteroidName"`
	RiskLevel    string    `json:"riskLevel"`
	AlertDate    time.Time `json:"alertDate"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateAlertRequest represents a POST /api/alerts body.
type CreateAlertRequest struct {
	AsteroidID   string     `json:"asteroidId" validate:"required"`
	AsteroidName string     `json:"asteroidName" validate:"required"`
	RiskLevel    string     `json:"riskLevel" validate:"required,oneof=Low Medium High"`
	AlertDate    *time.Time `json:"alertDate"`
}

// UpdateAlertRequest lists the only fields a PUT /api/alerts/{alertId} may change.
// Nil fields are left untouched.
type UpdateAlertRequest struct {
	IsRead    *bool      `json:"isRead"`
	AlertDate *time.Time `json:"alertDate"`
	RiskLevel *string    `json:"riskLevel" validate:"omitempty,oneof=Low Medium High"`
}

// Apply merges the non-nil fields of r into a.
func (r UpdateAlertRequest) Apply(a *Alert) {
	if r.IsRead != nil {
		a.IsRead = *r.IsRead
	}
	if r.AlertDate != nil {
		a.AlertDate = r.AlertDate.UTC()
	}
	if r.RiskLevel != nil {
		a.RiskLevel = *r.RiskLevel
	}
}
