package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrPCIDIsNotSpecified    = errors.New("pc id is not specified")

	ErrValidationNoHandle = errors.New("no request handle given")
	ErrUnknownPilot       = errors.New("unknown pilot")
	ErrUnknownCradle      = errors.New("unknown cradle")
	ErrRequestNotQueued   = errors.New("request is not queued")
)
