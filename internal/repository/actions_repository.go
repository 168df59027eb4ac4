package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/ryabov/momentum/internal/error_values"
	"github.com/ryabov/momentum/pkg/cleanup"
	"github.com/ryabov/momentum/pkg/entity"
)

type ActionsRepository struct {
	conn PgConnection
}

func NewActionsRepo(cfg DBConfig) *ActionsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for actionsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for actionsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing actionsRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ActionsRepository{
		conn: pool,
	}
}

func NewActionsRepoWithConn(conn PgConnection) *ActionsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for actionsRepo: " + err.Error())
	}
	return &ActionsRepository{
		conn: conn,
	}
}

func (ar *ActionsRepository) Create(ctx context.Context, action *entity.Action) (uuid.UUID, error) {
	var id uuid.UUID
	row := ar.conn.QueryRow(ctx, `INSERT INTO actions (user_id, name, type, target, unit, increment, color, icon, start_date, end_date, weekdays)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id;`,
		action.UserID,
		action.Name,
		action.Type,
		action.Target,
		action.Unit,
		action.Increment,
		action.Color,
		action.Icon,
		action.StartDate,
		action.EndDate,
		action.Weekdays,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating action db error: " + err.Error())
	}
	return id, nil
}

func (ar *ActionsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Action, error) {
	var action entity.Action
	action.ID = id
	row := ar.conn.QueryRow(ctx, `SELECT user_id, name, type, target, unit, increment, color, icon, start_date, end_date, weekdays, created_at, updated_at
		FROM actions WHERE id = $1 AND deleted_at IS NULL;`, id)
	if err := row.Scan(&action.UserID, &action.Name, &action.Type, &action.Target, &action.Unit, &action.Increment,
		&action.Color, &action.Icon, &action.StartDate, &action.EndDate, &action.Weekdays, &action.CreatedAt, &action.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrActionNotFound
		}
		return nil, errors.New("getting action by id error: " + err.Error())
	}
	return &action, nil
}

func (ar *ActionsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Action, error) {
	actions := make([]*entity.Action, 0)
	rows, err := ar.conn.Query(ctx, `SELECT id, user_id, name, type, target, unit, increment, color, icon, start_date, end_date, weekdays, created_at, updated_at
		FROM actions WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at;`, uid)
	if err != nil {
		return nil, errors.New("getting actions by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		a := entity.Action{}
		err = rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Target, &a.Unit, &a.Increment,
			&a.Color, &a.Icon, &a.StartDate, &a.EndDate, &a.Weekdays, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling action error: " + err.Error())
		}
		actions = append(actions, &a)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return actions, nil
}

func (ar *ActionsRepository) Update(ctx context.Context, action *entity.Action) error {
	ct, err := ar.conn.Exec(ctx, `UPDATE actions SET name = $1, type = $2, target = $3, unit = $4, increment = $5, color = $6, icon = $7, start_date = $8, end_date = $9, weekdays = $10, updated_at = NOW()
		WHERE id = $11 AND deleted_at IS NULL;`,
		action.Name,
		action.Type,
		action.Target,
		action.Unit,
		action.Increment,
		action.Color,
		action.Icon,
		action.StartDate,
		action.EndDate,
		action.Weekdays,
		action.ID,
	)
	if err != nil {
		return errors.New("error updating action: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrActionNotFound
	}
	return nil
}

func (ar *ActionsRepository) SoftDeleteByOwner(ctx context.Context, uid uuid.UUID, ids []uuid.UUID) (int64, error) {
	ct, err := ar.conn.Exec(ctx, `UPDATE actions SET deleted_at = NOW() WHERE id = ANY($1) AND user_id = $2 AND deleted_at IS NULL;`, ids, uid)
	if err != nil {
		return 0, errors.New("error soft-deleting actions: " + err.Error())
	}
	return ct.RowsAffected(), nil
}
