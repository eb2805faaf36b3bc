package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/validators"
	"github.com/MKhiriev/go-pilot/models"
)

type RequestValidationService struct {
	inner     RequestService
	validator validators.Validator
}

func NewRequestValidationService() RequestServiceWrapper {
	return &RequestValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *RequestValidationService) RequestInstall(ctx context.Context, req models.InstallRequest) (int64, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return 0, fmt.Errorf("error during install request validation: %w", err)
	}
	return v.inner.RequestInstall(ctx, req)
}

func (v *RequestValidationService) RequestRestore(ctx context.Context, req models.RestoreRequest) (int64, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return 0, fmt.Errorf("error during restore request validation: %w", err)
	}
	return v.inner.RequestRestore(ctx, req)
}

func (v *RequestValidationService) RequestConduit(ctx context.Context, req models.ConduitRunRequest) (int64, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return 0, fmt.Errorf("error during conduit request validation: %w", err)
	}
	return v.inner.RequestConduit(ctx, req)
}

func (v *RequestValidationService) GetSystemInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return 0, fmt.Errorf("error during cradle request validation: %w", err)
	}
	return v.inner.GetSystemInfo(ctx, req)
}

func (v *RequestValidationService) GetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return 0, fmt.Errorf("error during cradle request validation: %w", err)
	}
	return v.inner.GetUserInfo(ctx, req)
}

func (v *RequestValidationService) SetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	fields := []string{
		validators.FieldCradle,
		validators.FieldPersistence,
		validators.FieldTimeout,
		validators.FieldUserInfo,
	}
	if err := v.validator.Validate(ctx, req, fields...); err != nil {
		return 0, fmt.Errorf("error during cradle request validation: %w", err)
	}
	return v.inner.SetUserInfo(ctx, req)
}

func (v *RequestValidationService) RemoveRequest(ctx context.Context, handle int64) error {
	if handle <= 0 {
		return ErrValidationNoHandle
	}
	return v.inner.RemoveRequest(ctx, handle)
}

func (v *RequestValidationService) ListRequests(ctx context.Context) ([]models.Request, error) {
	return v.inner.ListRequests(ctx)
}

func (v *RequestValidationService) Wrap(wrapper RequestService) RequestService {
	v.inner = wrapper
	return v
}
