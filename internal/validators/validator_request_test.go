// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/models"
)

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestNewRequestValidator(t *testing.T) {
	require.NotNil(t, NewRequestValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	install := models.InstallRequest{Pilot: "ann", File: "/tmp/a.prc"}
	assert.NoError(t, v.Validate(ctx, install))
	assert.NoError(t, v.Validate(ctx, &install))

	restore := models.RestoreRequest{Pilot: "ann"}
	assert.NoError(t, v.Validate(ctx, restore))
	assert.NoError(t, v.Validate(ctx, &restore))

	run := models.ConduitRunRequest{Pilot: "ann", Conduit: "memo", Operation: models.OperationCopyTo}
	assert.NoError(t, v.Validate(ctx, run))
	assert.NoError(t, v.Validate(ctx, &run))

	cradle := models.CradleRequest{Cradle: "usb0"}
	assert.NoError(t, v.Validate(ctx, cradle))
	assert.NoError(t, v.Validate(ctx, &cradle))

	assert.ErrorIs(t, v.Validate(ctx, "string"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, nil), ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// Install
// ---------------------------------------------------------------------------

func TestValidateInstall(t *testing.T) {
	tests := []struct {
		name    string
		req     models.InstallRequest
		fields  []string
		wantErr error
	}{
		{name: "valid", req: models.InstallRequest{Pilot: "ann", File: "a.prc"}},
		{name: "empty pilot", req: models.InstallRequest{File: "a.prc"}, wantErr: ErrEmptyPilot},
		{name: "empty file", req: models.InstallRequest{Pilot: "ann"}, wantErr: ErrEmptyFile},
		{
			name:    "bad persistence",
			req:     models.InstallRequest{Pilot: "ann", File: "a.prc", Persistence: "forever"},
			wantErr: ErrInvalidPersistence,
		},
		{
			name:    "negative timeout",
			req:     models.InstallRequest{Pilot: "ann", File: "a.prc", Persistence: models.PersistenceImmediate, Timeout: -1},
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "timeout on persistent request",
			req:     models.InstallRequest{Pilot: "ann", File: "a.prc", Timeout: 30},
			wantErr: ErrTimeoutNotPersisted,
		},
		{
			name: "immediate with timeout",
			req:  models.InstallRequest{Pilot: "ann", File: "a.prc", Persistence: models.PersistenceImmediate, Timeout: 30},
		},
		{name: "only file checked", req: models.InstallRequest{File: "a.prc"}, fields: []string{FieldFile}},
		{name: "unknown field", req: models.InstallRequest{}, fields: []string{"size"}, wantErr: ErrUnknownField},
	}

	v := NewRequestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Restore and conduit run
// ---------------------------------------------------------------------------

func TestValidateRestore(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.RestoreRequest{Pilot: "ann", Directory: "/backups"}))
	assert.ErrorIs(t, v.Validate(ctx, models.RestoreRequest{}), ErrEmptyPilot)
	assert.ErrorIs(t, v.Validate(ctx, models.RestoreRequest{Pilot: "ann", Persistence: "x"}), ErrInvalidPersistence)
	assert.ErrorIs(t, v.Validate(ctx, models.RestoreRequest{}, FieldFile), ErrUnknownField)
}

func TestValidateConduitRun(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ConduitRunRequest{Pilot: "ann", Conduit: "memo"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ConduitRunRequest{Conduit: "memo"}), ErrEmptyPilot)
	assert.ErrorIs(t, v.Validate(ctx, models.ConduitRunRequest{Pilot: "ann"}), ErrEmptyConduit)
	assert.ErrorIs(t, v.Validate(ctx, models.ConduitRunRequest{
		Pilot: "ann", Conduit: "memo", Operation: "sideways",
	}), ErrInvalidOperation)
}

// ---------------------------------------------------------------------------
// Cradle
// ---------------------------------------------------------------------------

func TestValidateCradle(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.CradleRequest{Cradle: "usb0", ContinueSync: true}))
	assert.ErrorIs(t, v.Validate(ctx, models.CradleRequest{}), ErrEmptyCradle)

	// user info is only required when asked for
	assert.NoError(t, v.Validate(ctx, models.CradleRequest{Cradle: "usb0"}))
	assert.ErrorIs(t, v.Validate(ctx, models.CradleRequest{Cradle: "usb0"}, FieldCradle, FieldUserInfo), ErrMissingUserInfo)

	long := models.CradleRequest{Cradle: "usb0", UserInfo: &models.UserInfo{Username: strings.Repeat("a", 41)}}
	assert.ErrorIs(t, v.Validate(ctx, long, FieldUserInfo), ErrInvalidUserName)

	ok := models.CradleRequest{Cradle: "usb0", UserInfo: &models.UserInfo{UserID: 9, Username: "Ann"}}
	assert.NoError(t, v.Validate(ctx, ok, FieldCradle, FieldPersistence, FieldTimeout, FieldUserInfo))
}
