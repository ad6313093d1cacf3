package repository

import (
	"context"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

// FileUserRepository stores users in a FileStore.
type FileUserRepository struct {
	store *FileStore
}

// NewFileUserRepository creates a new FileUserRepository.
func NewFileUserRepository(store *FileStore) *FileUserRepository {
	return &FileUserRepository{store: store}
}

// Create appends user, rejecting a duplicate email.
func (r *FileUserRepository) Create(_ context.Context, user *model.User) error {
	return r.store.update(func(doc *Document) error {
		for _, u := range doc.Users {
			if u.Email == user.Email {
				return ErrDuplicateEmail
			}
		}
		doc.Users = append(doc.Users, *user)
		return nil
	})
}

// GetByEmail retrieves a user by their email address.
func (r *FileUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

// GetByID retrieves a user by their ID.
func (r *FileUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *FileUserRepository) find(match func(*model.User) bool) (*model.User, error) {
	var found *model.User
	r.store.view(func(doc *Document) {
		for i := range doc.Users {
			if match(&doc.Users[i]) {
				u := doc.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, ErrUserNotFound
	}
	return found, nil
}

// UpdatePasswordHash replaces the stored hash for the user with id.
func (r *FileUserRepository) UpdatePasswordHash(_ context.Context, id, hash string) error {
	return r.store.update(func(doc *Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				doc.Users[i].PasswordHash = hash
				return nil
			}
		}
		return ErrUserNotFound
	})
}
