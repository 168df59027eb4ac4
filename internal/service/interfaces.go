package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ryabov/momentum/pkg/entity"
)

type SignupRequest struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=4,max=72"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

type ChangeInfoRequest struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

type ChangePasswordRequest struct {
	Password string `validate:"required,min=8,max=72"`
}

// ActionPayload carries the validated fields of create/update action
// requests. Dates arrive as yyyy-MM-dd strings; an empty EndDate means
// the habit has no end.
type ActionPayload struct {
	Name      string   `validate:"required"`
	Type      string   `validate:"required,action_type"`
	Target    int      `validate:"required,min=1"`
	Unit      string   `validate:"required"`
	Increment int      `validate:"required,min=1"`
	Color     string   `validate:"required"`
	Icon      string   `validate:"required"`
	StartDate string   `validate:"required,date_string"`
	EndDate   string   `validate:"omitempty,date_string"`
	Weekdays  []string `validate:"max=7,dive,weekday"`
}

type RecordPayload struct {
	Name      string `validate:"required"`
	Type      string `validate:"required,action_type"`
	Target    int    `validate:"required,min=1"`
	Unit      string `validate:"required"`
	Increment int    `validate:"required,min=1"`
	Done      int    `validate:"min=0"`
	Color     string `validate:"required"`
	Icon      string `validate:"required"`
	Date      string `validate:"required,date_string"`
}

type UserServiceI interface {
	// Validates credentials, rejects taken emails, hashes the password and
	// creates the row. Returns user's data with ID
	Signup(ctx context.Context, req *SignupRequest) (*entity.User, error)
	// Compares given credentials. Unknown email and wrong password both
	// come back as ErrWrongCredentials
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ChangeInfo(ctx context.Context, uid uuid.UUID, req *ChangeInfoRequest) (*entity.User, error)
	ChangePassword(ctx context.Context, uid uuid.UUID, req *ChangePasswordRequest) (*entity.User, error)
}

type ActionsServiceI interface {
	List(ctx context.Context, uid uuid.UUID) ([]*entity.Action, error)
	Create(ctx context.Context, uid uuid.UUID, payload *ActionPayload) (*entity.Action, error)
	Update(ctx context.Context, uid, id uuid.UUID, payload *ActionPayload) (*entity.Action, error)
	// Soft-deletes the user's actions among ids, returns affected count
	Delete(ctx context.Context, uid uuid.UUID, ids []uuid.UUID) (int64, error)
}

type RecordsServiceI interface {
	GetDaily(ctx context.Context, uid uuid.UUID, date time.Time) ([]*entity.DailyAction, error)
	ApplyProgress(ctx context.Context, uid, actionID uuid.UUID, date time.Time, opName string) (*entity.ActionRecord, error)
	UpdateRecord(ctx context.Context, uid, id uuid.UUID, payload *RecordPayload) (*entity.ActionRecord, error)
	Delete(ctx context.Context, uid uuid.UUID, ids []uuid.UUID) (int64, error)
}
