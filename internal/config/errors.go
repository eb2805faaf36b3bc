package config

import "errors"

// Validation errors returned by validate when a configuration group is
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an unknown driver or an empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a missing control API address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidDaemonConfigs indicates a malformed device spec or a
	// non-positive timer.
	ErrInvalidDaemonConfigs = errors.New("invalid daemon configuration")
	// ErrInvalidAppConfigs indicates a zero PC id.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidCtlConfigs indicates a control tool config without an address.
	ErrInvalidCtlConfigs = errors.New("invalid control tool configuration")
	// ErrInvalidDeviceSpec is returned by ParseDeviceSpec.
	ErrInvalidDeviceSpec = errors.New("invalid device spec")
)
