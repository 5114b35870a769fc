package database

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrThreadNotFound = errors.New("thread not found")
	ErrNotFound       = errors.New("record not found")
	ErrSelfThread     = errors.New("cannot open thread with yourself")
)
