package errorvalues

import "errors"

var (
	ErrEmailTaken       = errors.New("email address already exists")
	ErrUserNotFound     = errors.New("user doesn't exist")
	ErrWrongCredentials = errors.New("invalid email or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrActionNotFound   = errors.New("action doesn't exist")
	ErrRecordNotFound   = errors.New("action record doesn't exist")
	ErrWrongOwner       = errors.New("resource has different owner")
	ErrOwnerNotFound    = errors.New("owning user doesn't exist")
)
