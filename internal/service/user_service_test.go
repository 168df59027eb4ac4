package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/ryabov/momentum/internal/error_values"
	"github.com/ryabov/momentum/internal/service"
	"github.com/ryabov/momentum/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()
	repo := newUsersRepoFake()
	us := service.NewUserService(repo, bcrypt.MinCost)

	var user *entity.User
	var err error
	t.Run("signed up", func(t *testing.T) {
		user, err = us.Signup(ctx, &service.SignupRequest{
			Email:     "tester@example.com",
			Password:  "secret",
			FirstName: "Test",
			LastName:  "User",
		})
		require.NoError(t, err)
		assert.Equal(t, "tester@example.com", user.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
	})
	t.Run("taken email rejected before any row is created", func(t *testing.T) {
		before := len(repo.users)
		_, err = us.Signup(ctx, &service.SignupRequest{
			Email:     "tester@example.com",
			Password:  "another",
			FirstName: "Other",
			LastName:  "User",
		})
		var fieldErrs service.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "email", fieldErrs[0].Field)
		assert.Equal(t, before, len(repo.users))
	})
	t.Run("all field failures accumulate in order", func(t *testing.T) {
		_, err = us.Signup(ctx, &service.SignupRequest{
			Email:    "not-an-email",
			Password: "abc",
		})
		var fieldErrs service.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Len(t, fieldErrs, 4)
		assert.Equal(t, "email", fieldErrs[0].Field)
		assert.Equal(t, "password", fieldErrs[1].Field)
		assert.Equal(t, "firstName", fieldErrs[2].Field)
		assert.Equal(t, "lastName", fieldErrs[3].Field)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newUsersRepoFake()
	us := service.NewUserService(repo, bcrypt.MinCost)
	user, err := us.Signup(ctx, &service.SignupRequest{
		Email:     "tester@example.com",
		Password:  "secret",
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Run("logged in", func(t *testing.T) {
		res, err := us.Login(ctx, user.Email, "secret")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, res.ID)
	})
	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPwdErr := us.Login(ctx, user.Email, "not-the-password")
		_, unknownErr := us.Login(ctx, "nobody@example.com", "secret")
		assert.ErrorIs(t, wrongPwdErr, errorvalues.ErrWrongCredentials)
		assert.ErrorIs(t, unknownErr, errorvalues.ErrWrongCredentials)
		assert.Equal(t, wrongPwdErr.Error(), unknownErr.Error())
	})
}

func TestChangeInfo(t *testing.T) {
	ctx := context.Background()
	repo := newUsersRepoFake()
	us := service.NewUserService(repo, bcrypt.MinCost)
	user, err := us.Signup(ctx, &service.SignupRequest{
		Email:     "tester@example.com",
		Password:  "secret",
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Run("updated", func(t *testing.T) {
		res, err := us.ChangeInfo(ctx, user.ID, &service.ChangeInfoRequest{
			FirstName: "New",
			LastName:  "Name",
		})
		assert.NoError(t, err)
		assert.Equal(t, "New", res.FirstName)
		assert.Equal(t, "Name", res.LastName)
	})
	t.Run("empty names rejected", func(t *testing.T) {
		_, err := us.ChangeInfo(ctx, user.ID, &service.ChangeInfoRequest{})
		var fieldErrs service.FieldErrors
		assert.ErrorAs(t, err, &fieldErrs)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := us.ChangeInfo(ctx, uuid.New(), &service.ChangeInfoRequest{
			FirstName: "New",
			LastName:  "Name",
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := newUsersRepoFake()
	us := service.NewUserService(repo, bcrypt.MinCost)
	user, err := us.Signup(ctx, &service.SignupRequest{
		Email:     "tester@example.com",
		Password:  "secret",
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Run("rehashed", func(t *testing.T) {
		res, err := us.ChangePassword(ctx, user.ID, &service.ChangePasswordRequest{
			Password: "new-password",
		})
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.PasswordHash), []byte("new-password")))
		_, err = us.Login(ctx, user.Email, "new-password")
		assert.NoError(t, err)
	})
	t.Run("short password rejected", func(t *testing.T) {
		_, err := us.ChangePassword(ctx, user.ID, &service.ChangePasswordRequest{
			Password: "short",
		})
		var fieldErrs service.FieldErrors
		assert.ErrorAs(t, err, &fieldErrs)
	})
}
