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
	"github.com/ryabov/momentum/pkg/progress"
)

type RecordsService struct {
	actionsRepo repository.ActionsRepositoryI
	recordsRepo repository.RecordsRepositoryI
}

func NewRecordsService(actionsRepo repository.ActionsRepositoryI, recordsRepo repository.RecordsRepositoryI) *RecordsService {
	if actionsRepo == nil || recordsRepo == nil {
		log.Fatal("on records service provided nil repos")
	}
	return &RecordsService{
		actionsRepo: actionsRepo,
		recordsRepo: recordsRepo,
	}
}

func (rs *RecordsService) GetDaily(ctx context.Context, uid uuid.UUID, date time.Time) ([]*entity.DailyAction, error) {
	daily, err := rs.recordsRepo.GetDailyActions(ctx, uid, date)
	if err != nil {
		return nil, errors.New("records repository error: " + err.Error())
	}
	return daily, nil
}

func (rs *RecordsService) ApplyProgress(ctx context.Context, uid, actionID uuid.UUID, date time.Time, opName string) (*entity.ActionRecord, error) {
	action, err := rs.actionsRepo.GetByID(ctx, actionID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrActionNotFound) {
			return nil, err
		}
		return nil, errors.New("actions repository error: " + err.Error())
	}
	if action.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	record, err := rs.recordsRepo.ApplyProgress(ctx, action, date, progress.ParseOp(opName))
	if err != nil {
		return nil, errors.New("records repository error: " + err.Error())
	}
	return record, nil
}

func (rs *RecordsService) UpdateRecord(ctx context.Context, uid, id uuid.UUID, payload *RecordPayload) (*entity.ActionRecord, error) {
	if fieldErrs := ValidateStruct(*payload); len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	record, err := rs.recordsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRecordNotFound) {
			return nil, err
		}
		return nil, errors.New("records repository error: " + err.Error())
	}
	action, err := rs.actionsRepo.GetByID(ctx, record.ActionID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrActionNotFound) {
			return nil, errorvalues.ErrRecordNotFound
		}
		return nil, errors.New("actions repository error: " + err.Error())
	}
	if action.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	record.Name = payload.Name
	record.Type = payload.Type
	record.Target = payload.Target
	record.Unit = payload.Unit
	record.Increment = payload.Increment
	record.Color = payload.Color
	record.Icon = payload.Icon
	record.Date, _ = time.Parse(dateLayout, payload.Date)
	// Keep the stored counter inside [0, target] whatever the payload says.
	record.Done = payload.Done
	if record.Done > record.Target {
		record.Done = record.Target
	}
	if err = rs.recordsRepo.Update(ctx, record); err != nil {
		if errors.Is(err, errorvalues.ErrRecordNotFound) {
			return nil, err
		}
		return nil, errors.New("records repository error: " + err.Error())
	}
	return record, nil
}

func (rs *RecordsService) Delete(ctx context.Context, uid uuid.UUID, ids []uuid.UUID) (int64, error) {
	count, err := rs.recordsRepo.SoftDeleteByOwner(ctx, uid, ids)
	if err != nil {
		return 0, errors.New("records repository error: " + err.Error())
	}
	return count, nil
}
