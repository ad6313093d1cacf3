package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

const alertColumns = `id, user_id, asteroid_id, asteroid_name, risk_level, alert_date, is_read, created_at`

// AlertRepository handles alert persistence in MySQL.
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new AlertRepository.
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// ListByUser returns the user's alerts, oldest first.
func (r *AlertRepository) ListByUser(ctx context.Context, userID string) ([]model.Alert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := []model.Alert{}
	for rows.Next() {
		var a model.Alert
		if err := scanAlert(rows, &a); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// Create inserts alert.
func (r *AlertRepository) Create(ctx context.Context, a *model.Alert) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (`+alertColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.AsteroidID, a.AsteroidName, a.RiskLevel, a.AlertDate, a.IsRead, a.CreatedAt)
	return err
}

// GetByID returns the alert with id if it belongs to userID.
func (r *AlertRepository) GetByID(ctx context.Context, userID, id string) (*model.Alert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE id = ? AND user_id = ?`, id, userID)

	a := &model.Alert{}
	if err := scanAlert(row, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update writes the mutable alert columns.
func (r *AlertRepository) Update(ctx context.Context, a *model.Alert) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET risk_level = ?, alert_date = ?, is_read = ? WHERE id = ? AND user_id = ?`,
		a.RiskLevel, a.AlertDate, a.IsRead, a.ID, a.UserID)
	if err != nil {
		return err
	}

	// MySQL reports 0 affected rows when values are unchanged, so confirm existence separately.
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, a.UserID, a.ID); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(s rowScanner, a *model.Alert) error {
	return s.Scan(&a.ID, &a.UserID, &a.AsteroidID, &a.AsteroidName, &a.RiskLevel, &a.AlertDate, &a.IsRead, &a.CreatedAt)
}
