package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/contacthub/internal/common"
	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userColumns() []string {
	return []string{"id", "username", "email", "password", "refresh_token", "avatar", "role", "confirmed", "created_at"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(username,\s*email,\s*password,\s*avatar,\s*role,\s*confirmed\)`

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), time.Now())
	mock.ExpectQuery(q).
		WithArgs("alice", "a@x.com", "hash", "http://avatar", models.RoleUser, false).
		WillReturnRows(rows)

	u := &models.User{Username: "alice", Email: "a@x.com", Password: "hash", Avatar: "http://avatar", Role: models.RoleUser}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", Email: "a@x.com"})
	if err == nil {
		t.Fatal("expected wrapped db error, got nil")
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	token := "refresh-token"
	rows := sqlmock.NewRows(userColumns()).
		AddRow(int64(1), "alice", "a@x.com", "hash", token, "http://avatar", "user", true, time.Now())
	mock.ExpectQuery(`SELECT\s+id,\s*username,\s*email,\s*password,\s*refresh_token`).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.Email != "a@x.com" || got.RefreshToken == nil || *got.RefreshToken != token {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.Role != models.RoleUser || !got.Confirmed {
		t.Fatalf("unexpected role/confirmed: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*username`).
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@x.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRotateRefreshToken_CASMiss(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	old := "stale"
	next := "fresh"
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+refresh_token\s*=\s*\$3`).
		WithArgs("a@x.com", old, next).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RotateRefreshToken(context.Background(), "a@x.com", &old, &next)
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict when the guard matches no row, got %v", err)
	}
}

func TestRotateRefreshToken_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	old := "current"
	next := "fresh"
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+refresh_token\s*=\s*\$3`).
		WithArgs("a@x.com", old, next).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RotateRefreshToken(context.Background(), "a@x.com", &old, &next); err != nil {
		t.Fatalf("RotateRefreshToken error: %v", err)
	}
}

func TestMarkConfirmed_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+confirmed\s*=\s*TRUE`).
		WithArgs("missing@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkConfirmed(context.Background(), "missing@x.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
