package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateUsername    = errors.New("username already exists")
	UnexpectedDatabaseError = errors.New("unexpected database error")
	ErrInvalidSigningAlg    = errors.New("invalid signing algorithm")
	ErrCorruptedToken       = errors.New("corrupted token")
)
