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

var actionColumns = []string{"user_id", "name", "type", "target", "unit", "increment", "color", "icon", "start_date", "end_date", "weekdays", "created_at", "updated_at"}

func testAction() entity.Action {
	return entity.Action{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Name:      "Read",
		Type:      entity.ActionTypeNumber,
		Target:    5,
		Unit:      "pages",
		Increment: 2,
		Color:     "#ff8800",
		Icon:      "book",
		StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   nil,
		Weekdays:  []string{"mon", "wed", "fri"},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestCreateAction(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActionsRepoWithConn(conn)
	action := testAction()
	query := regexp.QuoteMeta(`INSERT INTO actions (user_id, name, type, target, unit, increment, color, icon, start_date, end_date, weekdays)`)
	t.Run("created", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(action.UserID, action.Name, action.Type, action.Target, action.Unit, action.Increment,
				action.Color, action.Icon, action.StartDate, action.EndDate, action.Weekdays).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(action.ID))
		id, err := repo.Create(ctx, &action)
		assert.NoError(t, err)
		assert.Equal(t, action.ID, id)
	})
	t.Run("owner fk violation", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(action.UserID, action.Name, action.Type, action.Target, action.Unit, action.Increment,
				action.Color, action.Icon, action.StartDate, action.EndDate, action.Weekdays).
			WillReturnError(&pgconn.PgError{
				Code: "23503",
			})
		_, err := repo.Create(ctx, &action)
		assert.ErrorIs(t, err, errorvalues.ErrOwnerNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(action.UserID, action.Name, action.Type, action.Target, action.Unit, action.Increment,
				action.Color, action.Icon, action.StartDate, action.EndDate, action.Weekdays).
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, &action)
		assert.Error(t, err)
	})
}

func TestGetActionByID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActionsRepoWithConn(conn)
	action := testAction()
	query := regexp.QuoteMeta(`SELECT user_id, name, type, target, unit, increment, color, icon, start_date, end_date, weekdays, created_at, updated_at`)
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(action.ID).
			WillReturnRows(pgxmock.NewRows(actionColumns).
				AddRow(action.UserID, action.Name, action.Type, action.Target, action.Unit, action.Increment,
					action.Color, action.Icon, action.StartDate, action.EndDate, action.Weekdays, action.CreatedAt, action.UpdatedAt))
		result, err := repo.GetByID(ctx, action.ID)
		assert.NoError(t, err)
		assert.Equal(t, action, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(action.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByID(ctx, action.ID)
		assert.ErrorIs(t, err, errorvalues.ErrActionNotFound)
	})
}

func TestGetActionsByUserID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActionsRepoWithConn(conn)
	action := testAction()
	columns := append([]string{"id"}, actionColumns...)
	query := regexp.QuoteMeta(`FROM actions WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at;`)
	t.Run("listed", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(action.UserID).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(action.ID, action.UserID, action.Name, action.Type, action.Target, action.Unit, action.Increment,
					action.Color, action.Icon, action.StartDate, action.EndDate, action.Weekdays, action.CreatedAt, action.UpdatedAt))
		result, err := repo.GetByUserID(ctx, action.UserID)
		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, action, *result[0])
	})
	t.Run("empty list", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(action.UserID).
			WillReturnRows(pgxmock.NewRows(columns))
		result, err := repo.GetByUserID(ctx, action.UserID)
		assert.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestUpdateAction(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActionsRepoWithConn(conn)
	action := testAction()
	query := regexp.QuoteMeta(`UPDATE actions SET name = $1, type = $2, target = $3, unit = $4, increment = $5, color = $6, icon = $7, start_date = $8, end_date = $9, weekdays = $10, updated_at = NOW()`)
	t.Run("updated", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(action.Name, action.Type, action.Target, action.Unit, action.Increment,
				action.Color, action.Icon, action.StartDate, action.EndDate, action.Weekdays, action.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.Update(ctx, &action)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(action.Name, action.Type, action.Target, action.Unit, action.Increment,
				action.Color, action.Icon, action.StartDate, action.EndDate, action.Weekdays, action.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.Update(ctx, &action)
		assert.ErrorIs(t, err, errorvalues.ErrActionNotFound)
	})
}

func TestSoftDeleteActionsByOwner(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActionsRepoWithConn(conn)
	uid := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	query := regexp.QuoteMeta(`UPDATE actions SET deleted_at = NOW() WHERE id = ANY($1) AND user_id = $2 AND deleted_at IS NULL;`)
	t.Run("deleted", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(ids, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 2))
		count, err := repo.SoftDeleteByOwner(ctx, uid, ids)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
	t.Run("foreign ids are not counted", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(ids, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		count, err := repo.SoftDeleteByOwner(ctx, uid, ids)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})
}
