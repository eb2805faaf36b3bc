package validators

import (
	"context"

	"github.com/MKhiriev/go-pilot/models"
)

const (
	FieldPilot       = "pilot"
	FieldFile        = "file"
	FieldConduit     = "conduit"
	FieldOperation   = "operation"
	FieldCradle      = "cradle"
	FieldPersistence = "persistence"
	FieldTimeout     = "timeout"
	FieldUserInfo    = "user_info"
)

// maxUserNameLen is the size of the user name field of the handheld
// identity block, without its terminator.
const maxUserNameLen = 40

type RequestValidator struct{}

// NewRequestValidator validates control requests before they are queued.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.InstallRequest:
		return v.validateInstall(value, fields...)
	case *models.InstallRequest:
		return v.validateInstall(*value, fields...)

	case models.RestoreRequest:
		return v.validateRestore(value, fields...)
	case *models.RestoreRequest:
		return v.validateRestore(*value, fields...)

	case models.ConduitRunRequest:
		return v.validateConduitRun(value, fields...)
	case *models.ConduitRunRequest:
		return v.validateConduitRun(*value, fields...)

	case models.CradleRequest:
		return v.validateCradle(value, fields...)
	case *models.CradleRequest:
		return v.validateCradle(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateInstall(req models.InstallRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPilot, FieldFile, FieldPersistence, FieldTimeout}
	}

	for _, f := range fields {
		switch f {
		case FieldPilot:
			if req.Pilot == "" {
				return ErrEmptyPilot
			}
		case FieldFile:
			if req.File == "" {
				return ErrEmptyFile
			}
		case FieldPersistence:
			if err := validatePersistence(req.Persistence); err != nil {
				return err
			}
		case FieldTimeout:
			if err := validateTimeout(req.Persistence, req.Timeout); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RequestValidator) validateRestore(req models.RestoreRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPilot, FieldPersistence, FieldTimeout}
	}

	for _, f := range fields {
		switch f {
		case FieldPilot:
			if req.Pilot == "" {
				return ErrEmptyPilot
			}
		case FieldPersistence:
			if err := validatePersistence(req.Persistence); err != nil {
				return err
			}
		case FieldTimeout:
			if err := validateTimeout(req.Persistence, req.Timeout); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RequestValidator) validateConduitRun(req models.ConduitRunRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPilot, FieldConduit, FieldOperation, FieldPersistence, FieldTimeout}
	}

	for _, f := range fields {
		switch f {
		case FieldPilot:
			if req.Pilot == "" {
				return ErrEmptyPilot
			}
		case FieldConduit:
			if req.Conduit == "" {
				return ErrEmptyConduit
			}
		case FieldOperation:
			if _, err := req.Operation.SyncType(); err != nil {
				return ErrInvalidOperation
			}
		case FieldPersistence:
			if err := validatePersistence(req.Persistence); err != nil {
				return err
			}
		case FieldTimeout:
			if err := validateTimeout(req.Persistence, req.Timeout); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// validateCradle checks cradle, persistence and timeout by default; pass
// FieldUserInfo explicitly for SetUserInfo.
func (v *RequestValidator) validateCradle(req models.CradleRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCradle, FieldPersistence, FieldTimeout}
	}

	for _, f := range fields {
		switch f {
		case FieldCradle:
			if req.Cradle == "" {
				return ErrEmptyCradle
			}
		case FieldPersistence:
			if err := validatePersistence(req.Persistence); err != nil {
				return err
			}
		case FieldTimeout:
			if err := validateTimeout(req.Persistence, req.Timeout); err != nil {
				return err
			}
		case FieldUserInfo:
			if req.UserInfo == nil {
				return ErrMissingUserInfo
			}
			if len(req.UserInfo.Username) > maxUserNameLen {
				return ErrInvalidUserName
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func validatePersistence(p models.Persistence) error {
	if _, err := models.ParsePersistence(string(p)); err != nil {
		return ErrInvalidPersistence
	}
	return nil
}

func validateTimeout(p models.Persistence, seconds int) error {
	if seconds < 0 {
		return ErrInvalidTimeout
	}
	if seconds > 0 && p != models.PersistenceImmediate {
		return ErrTimeoutNotPersisted
	}
	return nil
}
