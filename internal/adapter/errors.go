package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("request cannot be processed")
	ErrUnavailable         = errors.New("daemon unavailable")
	ErrInternalServerError = errors.New("internal daemon error")
)
