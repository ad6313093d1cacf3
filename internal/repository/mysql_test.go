package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func q(query string) string { return regexp.QuoteMeta(query) }

var (
	userCols  = []string{"id", "name", "email", "password_hash", "role", "created_at"}
	alertCols = []string{"id", "user_id", "asteroid_id", "asteroid_name", "risk_level", "alert_date", "is_read", "created_at"}
	created   = time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)
)

func TestMigrate(t *testing.T) {
	db, mock := newMockDB(t)
	for range schemaStatements() {
		mock.ExpectExec(q("CREATE TABLE IF NOT EXISTS")).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, Migrate(context.Background(), db))
}

func TestMigrate_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(q("CREATE TABLE IF NOT EXISTS")).WillReturnError(errors.New("access denied"))

	err := Migrate(context.Background(), db)
	assert.ErrorContains(t, err, "applying schema")
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user := &model.User{ID: "u1", Name: "Vera", Email: "vera@example.com", PasswordHash: "h", Role: model.RoleResearcher, CreatedAt: created}

	mock.ExpectExec(q("INSERT INTO users")).
		WithArgs("u1", "Vera", "vera@example.com", "h", model.RoleResearcher, created).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(ctx, user))

	mock.ExpectExec(q("INSERT INTO users")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.ErrorIs(t, repo.Create(ctx, user), ErrDuplicateEmail)
}

func TestUserRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(q("FROM users WHERE email = ?")).WithArgs("vera@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "Vera", "vera@example.com", "h", model.RoleResearcher, created))
	user, err := repo.GetByEmail(ctx, "vera@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, created, user.CreatedAt)

	mock.ExpectQuery(q("FROM users WHERE id = ?")).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))
	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_UpdatePasswordHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectExec(q("UPDATE users SET password_hash = ?")).WithArgs("new", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdatePasswordHash(ctx, "u1", "new"))

	mock.ExpectExec(q("UPDATE users SET password_hash = ?")).WithArgs("new", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, "ghost", "new"), ErrUserNotFound)
}

func TestWatchlistRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWatchlistRepository(db)
	ctx := context.Background()
	item := &model.WatchlistItem{UserID: "u1", AsteroidID: "2142257", CreatedAt: created}

	mock.ExpectExec(q("INSERT INTO watchlist")).WithArgs("u1", "2142257", created).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Add(ctx, item))

	mock.ExpectExec(q("INSERT INTO watchlist")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.ErrorIs(t, repo.Add(ctx, item), ErrWatchlistItemExists)

	mock.ExpectQuery(q("FROM watchlist WHERE user_id = ?")).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "asteroid_id", "created_at"}).
			AddRow("u1", "2142257", created).
			AddRow("u1", "3671668", created.Add(time.Minute)))
	items, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "3671668", items[1].AsteroidID)

	mock.ExpectQuery(q("FROM watchlist WHERE user_id = ?")).WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "asteroid_id", "created_at"}))
	items, err = repo.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	mock.ExpectExec(q("DELETE FROM watchlist")).WithArgs("u1", "2142257").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Remove(ctx, "u1", "2142257"))

	mock.ExpectExec(q("DELETE FROM watchlist")).WithArgs("u1", "2142257").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Remove(ctx, "u1", "2142257"), ErrWatchlistItemNotFound)
}

func TestAlertRepository_GetByIDScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlertRepository(db)

	mock.ExpectQuery(q("FROM alerts WHERE id = ? AND user_id = ?")).WithArgs("a1", "u2").
		WillReturnRows(sqlmock.NewRows(alertCols))
	_, err := repo.GetByID(context.Background(), "u2", "a1")
	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestAlertRepository_Update(t *testing.T) {
	alert := &model.Alert{ID: "a1", UserID: "u1", RiskLevel: "High", AlertDate: created, IsRead: true}
	update := q("UPDATE alerts SET risk_level = ?")
	lookup := q("FROM alerts WHERE id = ? AND user_id = ?")

	t.Run("row changed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WithArgs("High", created, true, "a1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, NewAlertRepository(db).Update(context.Background(), alert))
	})

	t.Run("unchanged values on an existing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(lookup).WithArgs("a1", "u1").
			WillReturnRows(sqlmock.NewRows(alertCols).AddRow("a1", "u1", "2142257", "(1999 AN10)", "High", created, true, created))
		assert.NoError(t, NewAlertRepository(db).Update(context.Background(), alert))
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(lookup).WithArgs("a1", "u1").WillReturnRows(sqlmock.NewRows(alertCols))
		assert.ErrorIs(t, NewAlertRepository(db).Update(context.Background(), alert), ErrAlertNotFound)
	})
}

func TestAlertRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(q("FROM alerts WHERE user_id = ? ORDER BY created_at ASC")).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(alertCols).AddRow("a1", "u1", "2142257", "(1999 AN10)", "Medium", created, false, created))
	alerts, err := NewAlertRepository(db).ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Medium", alerts[0].RiskLevel)
	assert.False(t, alerts[0].IsRead)
}
