package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	errorvalues "github.com/ryabov/momentum/internal/error_values"
	"github.com/ryabov/momentum/internal/repository"
	"github.com/ryabov/momentum/pkg/entity"
	"github.com/stretchr/testify/assert"
)

var userColumns = []string{"id", "email", "password_hash", "first_name", "last_name", "created_at", "updated_at"}

func testUser() entity.User {
	return entity.User{
		ID:           uuid.New(),
		Email:        "tester@example.com",
		PasswordHash: "test_password_hash",
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func TestCreateUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	user := testUser()
	query := regexp.QuoteMeta(`INSERT INTO users (email, password_hash, first_name, last_name) VALUES ($1, $2, $3, $4);`)
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	t.Run("successfully created", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.Email, user.PasswordHash, user.FirstName, user.LastName).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Create(ctx, &user)
		assert.NoError(t, err)
	})
	t.Run("unique violation error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.Email, user.PasswordHash, user.FirstName, user.LastName).
			WillReturnError(&pgconn.PgError{
				Code: "23505",
			})
		err := repo.Create(ctx, &user)
		assert.ErrorIs(t, err, errorvalues.ErrEmailTaken)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.Email, user.PasswordHash, user.FirstName, user.LastName).
			WillReturnError(errors.New("db error"))
		err := repo.Create(ctx, &user)
		assert.Error(t, err)
	})
}

func TestFindByEmail(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := testUser()
	query := regexp.QuoteMeta(`SELECT id, email, password_hash, first_name, last_name, created_at, updated_at FROM users WHERE email = $1 AND deleted_at IS NULL;`)
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt, user.UpdatedAt))
		result, err := repo.FindByEmail(ctx, user.Email)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByEmail(ctx, user.Email)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email).
			WillReturnError(errors.New("db error"))
		_, err := repo.FindByEmail(ctx, user.Email)
		assert.Error(t, err)
	})
}

func TestFindByID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := testUser()
	query := regexp.QuoteMeta(`SELECT id, email, password_hash, first_name, last_name, created_at, updated_at FROM users WHERE id = $1 AND deleted_at IS NULL;`)
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt, user.UpdatedAt))
		result, err := repo.FindByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestUpdateUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := testUser()
	query := regexp.QuoteMeta(`UPDATE users SET first_name = $1, last_name = $2, password_hash = $3, updated_at = NOW() WHERE id = $4 AND deleted_at IS NULL;`)
	t.Run("updated", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.FirstName, user.LastName, user.PasswordHash, user.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.Update(ctx, &user)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.FirstName, user.LastName, user.PasswordHash, user.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.Update(ctx, &user)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}
