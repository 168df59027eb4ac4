package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	errorvalues "github.com/ryabov/momentum/internal/error_values"
	"github.com/ryabov/momentum/internal/repository"
	"github.com/ryabov/momentum/pkg/entity"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo     repository.UsersRepositoryI
	hashCost int
}

func NewUserService(usersRepo repository.UsersRepositoryI, hashCost int) *UserService {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:     usersRepo,
		hashCost: hashCost,
	}
}

func (us *UserService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), us.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (us *UserService) Signup(ctx context.Context, req *SignupRequest) (*entity.User, error) {
	fieldErrs := ValidateStruct(*req)
	// The email uniqueness check joins the regular field failures so the
	// caller gets one ordered list.
	_, err := us.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		fieldErrs = append(fieldErrs, FieldError{Field: "email", Message: "Email address already exists."})
	case !errors.Is(err, errorvalues.ErrUserNotFound):
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	passwordHash, err := us.Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	err = us.repo.Create(ctx, &entity.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrEmailTaken) {
			return nil, FieldErrors{{Field: "email", Message: "Email address already exists."}}
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	user, err := us.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := us.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			// Same outcome as a wrong password, so callers can't probe
			// which emails are registered.
			return nil, errorvalues.ErrWrongCredentials
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorvalues.ErrWrongCredentials
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) ChangeInfo(ctx context.Context, uid uuid.UUID, req *ChangeInfoRequest) (*entity.User, error) {
	if fieldErrs := ValidateStruct(*req); len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	user, err := us.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err = us.repo.Update(ctx, user); err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository updating error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) ChangePassword(ctx context.Context, uid uuid.UUID, req *ChangePasswordRequest) (*entity.User, error) {
	if fieldErrs := ValidateStruct(*req); len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	user, err := us.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	passwordHash, err := us.Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	user.PasswordHash = passwordHash
	if err = us.repo.Update(ctx, user); err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository updating error: " + err.Error())
	}
	return user, nil
}
