package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/ryabov/momentum/internal/error_values"
	"github.com/ryabov/momentum/internal/repository"
	"github.com/ryabov/momentum/pkg/entity"
)

type ActionsService struct {
	repo repository.ActionsRepositoryI
}

func NewActionsService(actionsRepo repository.ActionsRepositoryI) *ActionsService {
	if actionsRepo == nil {
		log.Fatal("provided nil actionsRepo")
	}
	return &ActionsService{
		repo: actionsRepo,
	}
}

func (as *ActionsService) List(ctx context.Context, uid uuid.UUID) ([]*entity.Action, error) {
	actions, err := as.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("actions repository error: " + err.Error())
	}
	return actions, nil
}

func (as *ActionsService) Create(ctx context.Context, uid uuid.UUID, payload *ActionPayload) (*entity.Action, error) {
	if fieldErrs := ValidateStruct(*payload); len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	a := entity.Action{UserID: uid}
	applyActionPayload(&a, payload)
	id, err := as.repo.Create(ctx, &a)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrOwnerNotFound):
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("actions repository error: " + err.Error())
	}
	action, err := as.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrActionNotFound) {
			return nil, err
		}
		return nil, errors.New("actions repository error: " + err.Error())
	}
	return action, nil
}

func (as *ActionsService) Update(ctx context.Context, uid, id uuid.UUID, payload *ActionPayload) (*entity.Action, error) {
	if fieldErrs := ValidateStruct(*payload); len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	action, err := as.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrActionNotFound) {
			return nil, err
		}
		return nil, errors.New("actions repository error: " + err.Error())
	}
	if action.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	applyActionPayload(action, payload)
	if err = as.repo.Update(ctx, action); err != nil {
		if errors.Is(err, errorvalues.ErrActionNotFound) {
			return nil, err
		}
		return nil, errors.New("actions repository error: " + err.Error())
	}
	return action, nil
}

func (as *ActionsService) Delete(ctx context.Context, uid uuid.UUID, ids []uuid.UUID) (int64, error) {
	count, err := as.repo.SoftDeleteByOwner(ctx, uid, ids)
	if err != nil {
		return 0, errors.New("actions repository error: " + err.Error())
	}
	return count, nil
}

// applyActionPayload merges the whitelisted payload fields over the
// action. Dates are pre-validated by the date_string rule, so parse
// errors cannot happen here.
func applyActionPayload(a *entity.Action, payload *ActionPayload) {
	a.Name = payload.Name
	a.Type = payload.Type
	a.Target = payload.Target
	a.Unit = payload.Unit
	a.Increment = payload.Increment
	a.Color = payload.Color
	a.Icon = payload.Icon
	a.StartDate, _ = time.Parse(dateLayout, payload.StartDate)
	if payload.EndDate == "" {
		a.EndDate = nil
	} else {
		endDate, _ := time.Parse(dateLayout, payload.EndDate)
		a.EndDate = &endDate
	}
	// Column is NOT NULL, a nil slice would encode as SQL NULL.
	if payload.Weekdays == nil {
		a.Weekdays = []string{}
	} else {
		a.Weekdays = payload.Weekdays
	}
}
