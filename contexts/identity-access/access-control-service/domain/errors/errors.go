package errors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid access control input")
	ErrInvalidRole   = errors.New("unknown role")
	ErrGrantNotFound = errors.New("role grant not found")
	ErrConflict      = errors.New("access control state conflict")
)
