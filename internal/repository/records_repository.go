package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/ryabov/momentum/internal/error_values"
	"github.com/ryabov/momentum/pkg/cleanup"
	"github.com/ryabov/momentum/pkg/entity"
	"github.com/ryabov/momentum/pkg/progress"
)

type RecordsRepository struct {
	conn PgConnection
}

func NewRecordsRepo(cfg DBConfig) *RecordsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for recordsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for recordsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing recordsRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RecordsRepository{
		conn: pool,
	}
}

func NewRecordsRepoWithConn(conn PgConnection) *RecordsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for recordsRepo: " + err.Error())
	}
	return &RecordsRepository{
		conn: conn,
	}
}

func (rr *RecordsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ActionRecord, error) {
	var rec entity.ActionRecord
	rec.ID = id
	row := rr.conn.QueryRow(ctx, `SELECT action_id, name, type, target, unit, increment, done, color, icon, date, created_at, updated_at
		FROM action_records WHERE id = $1 AND deleted_at IS NULL;`, id)
	if err := row.Scan(&rec.ActionID, &rec.Name, &rec.Type, &rec.Target, &rec.Unit, &rec.Increment, &rec.Done,
		&rec.Color, &rec.Icon, &rec.Date, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrRecordNotFound
		}
		return nil, errors.New("getting record by id error: " + err.Error())
	}
	return &rec, nil
}

// GetDailyActions lists the user's actions active on date, left-joined
// with at most one record per action for that exact date. Done is the
// record's counter or 0 when no record exists yet.
func (rr *RecordsRepository) GetDailyActions(ctx context.Context, uid uuid.UUID, date time.Time) ([]*entity.DailyAction, error) {
	result := make([]*entity.DailyAction, 0)
	rows, err := rr.conn.Query(ctx, `SELECT a.id, a.user_id, a.name, a.type, a.target, a.unit, a.increment, a.color, a.icon, a.start_date, a.end_date, a.weekdays, a.created_at, a.updated_at, COALESCE(r.done, 0)
		FROM actions a
		LEFT JOIN action_records r ON r.action_id = a.id AND r.date = $2 AND r.deleted_at IS NULL
		WHERE a.user_id = $1 AND a.deleted_at IS NULL AND a.start_date <= $2 AND (a.end_date IS NULL OR a.end_date >= $2)
		ORDER BY a.created_at;`, uid, date)
	if err != nil {
		return nil, errors.New("getting daily actions error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		da := entity.DailyAction{}
		err = rows.Scan(&da.ID, &da.UserID, &da.Name, &da.Type, &da.Target, &da.Unit, &da.Increment,
			&da.Color, &da.Icon, &da.StartDate, &da.EndDate, &da.Weekdays, &da.CreatedAt, &da.UpdatedAt, &da.Done)
		if err != nil {
			return nil, errors.New("unmarshalling daily action error: " + err.Error())
		}
		result = append(result, &da)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return result, nil
}

// ApplyProgress runs the read-modify-write for one (action, date) pair in
// a single transaction. The existing row is locked with FOR UPDATE so
// concurrent calls serialize instead of losing updates.
func (rr *RecordsRepository) ApplyProgress(ctx context.Context, action *entity.Action, date time.Time, op progress.Op) (*entity.ActionRecord, error) {
	tx, err := rr.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("beginning progress tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)

	var rec entity.ActionRecord
	row := tx.QueryRow(ctx, `SELECT id, action_id, name, type, target, unit, increment, done, color, icon, date, created_at, updated_at
		FROM action_records WHERE action_id = $1 AND date = $2 AND deleted_at IS NULL FOR UPDATE;`, action.ID, date)
	err = row.Scan(&rec.ID, &rec.ActionID, &rec.Name, &rec.Type, &rec.Target, &rec.Unit, &rec.Increment, &rec.Done,
		&rec.Color, &rec.Icon, &rec.Date, &rec.CreatedAt, &rec.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Fresh day: snapshot the action's display fields and apply the
		// transition to a zero counter.
		rec = entity.ActionRecord{
			ActionID:  action.ID,
			Name:      action.Name,
			Type:      action.Type,
			Target:    action.Target,
			Unit:      action.Unit,
			Increment: action.Increment,
			Done:      progress.Next(0, action.Increment, action.Target, op),
			Color:     action.Color,
			Icon:      action.Icon,
			Date:      date,
		}
		insertRow := tx.QueryRow(ctx, `INSERT INTO action_records (action_id, name, type, target, unit, increment, done, color, icon, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at;`,
			rec.ActionID, rec.Name, rec.Type, rec.Target, rec.Unit, rec.Increment, rec.Done, rec.Color, rec.Icon, rec.Date,
		)
		if err = insertRow.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, errors.New("inserting record error: " + err.Error())
		}
	case err != nil:
		return nil, errors.New("locking record error: " + err.Error())
	default:
		rec.Done = progress.Next(rec.Done, rec.Increment, rec.Target, op)
		updateRow := tx.QueryRow(ctx, `UPDATE action_records SET done = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at;`, rec.Done, rec.ID)
		if err = updateRow.Scan(&rec.UpdatedAt); err != nil {
			return nil, errors.New("updating record error: " + err.Error())
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing progress tx error: " + err.Error())
	}
	return &rec, nil
}

func (rr *RecordsRepository) Update(ctx context.Context, record *entity.ActionRecord) error {
	ct, err := rr.conn.Exec(ctx, `UPDATE action_records SET name = $1, type = $2, target = $3, unit = $4, increment = $5, done = $6, color = $7, icon = $8, date = $9, updated_at = NOW()
		WHERE id = $10 AND deleted_at IS NULL;`,
		record.Name,
		record.Type,
		record.Target,
		record.Unit,
		record.Increment,
		record.Done,
		record.Color,
		record.Icon,
		record.Date,
		record.ID,
	)
	if err != nil {
		return errors.New("error updating record: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrRecordNotFound
	}
	return nil
}

func (rr *RecordsRepository) SoftDeleteByOwner(ctx context.Context, uid uuid.UUID, ids []uuid.UUID) (int64, error) {
	ct, err := rr.conn.Exec(ctx, `UPDATE action_records SET deleted_at = NOW()
		WHERE id = ANY($1) AND deleted_at IS NULL AND action_id IN (SELECT id FROM actions WHERE user_id = $2);`, ids, uid)
	if err != nil {
		return 0, errors.New("error soft-deleting records: " + err.Error())
	}
	return ct.RowsAffected(), nil
}
