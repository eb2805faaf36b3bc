package conduit

import "errors"

var (
	ErrDuplicate   = errors.New("conduit already registered")
	ErrMissingInfo = errors.New("conduit metadata is missing")
	ErrNotFound    = errors.New("conduit not registered")
	ErrCapability  = errors.New("conduit does not implement its capability")
	ErrDisabled    = errors.New("conduit is disabled")
)
