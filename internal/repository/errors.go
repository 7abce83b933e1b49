package repository

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrRetryable = errors.New("transaction conflict, retry")
)
