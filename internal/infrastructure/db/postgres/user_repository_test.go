package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/99minutos/auth-service/internal/core/domain"
)

var userColumns = []string{"id", "name", "email", "password", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return NewUserRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got, err := repo.Create(context.Background(), &domain.User{
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "ann@x.com", got.Email)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	assert.True(t, got.CreatedAt.Equal(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &domain.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &domain.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.Regexp(t, `insert user: .*db down`, err.Error())
	assert.False(t, errors.Is(err, domain.ErrUserExists))
}

func TestFindByEmail_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userColumns).
		AddRow("7f1c7a56-8f0e-4c8e-9a4b-0b1e6f3f2a11", "Ann", "ann@x.com", "$2a$10$hash", created, created)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(rows)

	got, err := repo.FindByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "7f1c7a56-8f0e-4c8e-9a4b-0b1e6f3f2a11", got.ID)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestFindByEmail_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.FindByEmail(context.Background(), "ann@x.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestFindByID_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	id := "7f1c7a56-8f0e-4c8e-9a4b-0b1e6f3f2a11"
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id, "Ann", "ann@x.com", "h", now, now))

	got, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
}

func TestFindByID_MalformedIDSkipsQuery(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
