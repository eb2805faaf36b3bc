package http

import "errors"

// Request decoding errors. All of them are answered with 400, except the
// authorization ones which get 401.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrInvalidJSON    = errors.New("invalid JSON was passed")
	ErrInvalidHandle  = errors.New("invalid request handle")
	ErrInvalidPilotID = errors.New("invalid pilot id")
)
