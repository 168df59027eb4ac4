package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ryabov/momentum/pkg/entity"
	"github.com/ryabov/momentum/pkg/progress"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates user's name fields and password hash
	Update(ctx context.Context, user *entity.User) error
}

type ActionsRepositoryI interface {
	// Creates new action row. Returns generated id
	Create(ctx context.Context, action *entity.Action) (uuid.UUID, error)
	// Searches non-deleted action with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Action, error)
	// Lists non-deleted actions owned by user with uid
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Action, error)
	// Updates action by ID (ID in action is necessary)
	Update(ctx context.Context, action *entity.Action) error
	// Soft-deletes actions from ids owned by uid. Returns affected row count
	SoftDeleteByOwner(ctx context.Context, uid uuid.UUID, ids []uuid.UUID) (int64, error)
}

type RecordsRepositoryI interface {
	// Searches non-deleted record with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ActionRecord, error)
	// Lists actions of uid active on date, each with the done counter of
	// its record for that date (0 when no record exists)
	GetDailyActions(ctx context.Context, uid uuid.UUID, date time.Time) ([]*entity.DailyAction, error)
	// Applies op to the (action, date) record inside a row-locking
	// transaction, creating the snapshot row when none exists
	ApplyProgress(ctx context.Context, action *entity.Action, date time.Time, op progress.Op) (*entity.ActionRecord, error)
	// Updates record by ID (ID in record is necessary)
	Update(ctx context.Context, record *entity.ActionRecord) error
	// Soft-deletes records from ids whose owning action belongs to uid.
	// Returns affected row count
	SoftDeleteByOwner(ctx context.Context, uid uuid.UUID, ids []uuid.UUID) (int64, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
