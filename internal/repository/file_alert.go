package repository

import (
	"context"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

// FileAlertRepository stores alerts in a FileStore.
type FileAlertRepository struct {
	store *FileStore
}

// NewFileAlertRepository creates a new FileAlertRepository.
func NewFileAlertRepository(store *FileStore) *FileAlertRepository {
	return &FileAlertRepository{store: store}
}

// ListByUser returns the user's alerts in creation order.
func (r *FileAlertRepository) ListByUser(_ context.Context, userID string) ([]model.Alert, error) {
	alerts := []model.Alert{}
	r.store.view(func(doc *Document) {
		for _, a := range doc.Alerts {
			if a.UserID == userID {
				alerts = append(alerts, a)
			}
		}
	})
	return alerts, nil
}

// Create appends alert.
func (r *FileAlertRepository) Create(_ context.Context, alert *model.Alert) error {
	return r.store.update(func(doc *Document) error {
		doc.Alerts = append(doc.Alerts, *alert)
		return nil
	})
}

// GetByID returns the alert with id if it belongs to userID.
func (r *FileAlertRepository) GetByID(_ context.Context, userID, id string) (*model.Alert, error) {
	var found *model.Alert
	r.store.view(func(doc *Document) {
		for _, a := range doc.Alerts {
			if a.ID == id && a.UserID == userID {
				found = &a
				return
			}
		}
	})
	if found == nil {
		return nil, ErrAlertNotFound
	}
	return found, nil
}

// Update replaces the stored alert with the same ID and owner.
func (r *FileAlertRepository) Update(_ context.Context, alert *model.Alert) error {
	return r.store.update(func(doc *Document) error {
		for i := range doc.Alerts {
			if doc.Alerts[i].ID == alert.ID && doc.Alerts[i].UserID == alert.UserID {
				doc.Alerts[i] = *alert
				return nil
			}
		}
		return ErrAlertNotFound
	})
}
