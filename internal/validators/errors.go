package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyPilot          = errors.New("pilot is required")
	ErrEmptyFile           = errors.New("file is required")
	ErrEmptyConduit        = errors.New("conduit is required")
	ErrEmptyCradle         = errors.New("cradle is required")
	ErrInvalidPersistence  = errors.New("invalid persistence")
	ErrInvalidTimeout      = errors.New("timeout must not be negative")
	ErrInvalidOperation    = errors.New("invalid conduit operation")
	ErrMissingUserInfo     = errors.New("user info is required")
	ErrInvalidUserName     = errors.New("user name is too long")
	ErrTimeoutNotPersisted = errors.New("timeout applies to immediate requests only")
)
