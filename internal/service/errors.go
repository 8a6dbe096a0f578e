package service

import "errors"

var (
	ErrInternal        = errors.New("internal server error")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("forbidden")
)
