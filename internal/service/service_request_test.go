// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/mock"
	"github.com/MKhiriev/go-pilot/internal/queue"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/internal/storetest"
	"github.com/MKhiriev/go-pilot/internal/validators"
	"github.com/MKhiriev/go-pilot/models"
)

type requestFixture struct {
	pilots  *mock.MockPilotRepository
	devices *mock.MockDeviceRepository
	queue   *queue.Queue
	svc     RequestService
}

func newRequestFixture(t *testing.T) requestFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	s := storetest.New(t)

	f := requestFixture{
		pilots:  mock.NewMockPilotRepository(ctrl),
		devices: mock.NewMockDeviceRepository(ctrl),
		queue:   queue.New(s.RequestRepository, filepath.Join(t.TempDir(), "queue"), logger.Nop()),
	}
	f.svc = NewRequestValidationService().Wrap(NewRequestService(f.queue, f.pilots, f.devices, logger.Nop()))
	return f
}

func (f requestFixture) knowsPilot(name string, id uint32) {
	f.pilots.EXPECT().GetByName(gomock.Any(), name).Return(models.Pilot{ID: id, Name: name}, nil).AnyTimes()
}

func TestRequestService_Install(t *testing.T) {
	f := newRequestFixture(t)
	f.knowsPilot("ann", 7)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "game.prc")
	require.NoError(t, os.WriteFile(src, []byte("prc"), 0o644))

	handle, err := f.svc.RequestInstall(ctx, models.InstallRequest{Pilot: "ann", File: src, Description: "a game"})
	require.NoError(t, err)
	assert.Equal(t, 7*models.HandleBase+1, handle)

	req, err := f.queue.Get(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, models.RequestInstall, req.Type)
	assert.Equal(t, "a game", req.Params.Description)
	assert.NotEqual(t, src, req.Params.Filename)
	assert.FileExists(t, req.Params.Filename)
}

func TestRequestService_InstallMissingFile(t *testing.T) {
	f := newRequestFixture(t)
	f.knowsPilot("ann", 7)

	handle, err := f.svc.RequestInstall(context.Background(), models.InstallRequest{
		Pilot: "ann",
		File:  filepath.Join(t.TempDir(), "nope.prc"),
	})

	assert.ErrorIs(t, err, queue.ErrMissingFile)
	assert.Zero(t, handle)

	all, err := f.queue.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRequestService_ValidationRunsFirst(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.RequestInstall(context.Background(), models.InstallRequest{File: "x.prc"})
	assert.ErrorIs(t, err, validators.ErrEmptyPilot)

	_, err = f.svc.SetUserInfo(context.Background(), models.CradleRequest{Cradle: "usb0"})
	assert.ErrorIs(t, err, validators.ErrMissingUserInfo)

	assert.ErrorIs(t, f.svc.RemoveRequest(context.Background(), 0), ErrValidationNoHandle)
}

func TestRequestService_UnknownPilot(t *testing.T) {
	f := newRequestFixture(t)
	f.pilots.EXPECT().GetByName(gomock.Any(), "ghost").Return(models.Pilot{}, store.ErrPilotNotFound)

	_, err := f.svc.RequestRestore(context.Background(), models.RestoreRequest{Pilot: "ghost"})

	assert.ErrorIs(t, err, ErrUnknownPilot)
}

func TestRequestService_ConduitMapsOperation(t *testing.T) {
	f := newRequestFixture(t)
	f.knowsPilot("ann", 7)
	ctx := context.Background()

	handle, err := f.svc.RequestConduit(ctx, models.ConduitRunRequest{
		Pilot:       "ann",
		Conduit:     "memo",
		Operation:   models.OperationCopyTo,
		Persistence: models.PersistenceImmediate,
		Timeout:     60,
	})
	require.NoError(t, err)

	req, err := f.queue.Get(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, "memo", req.Params.Conduit)
	assert.Equal(t, models.SyncTypeCopyToPilot, req.Params.SyncType)
	require.NotNil(t, req.ExpiresAt)
}

func TestRequestService_CradleRequests(t *testing.T) {
	f := newRequestFixture(t)
	f.devices.EXPECT().List(gomock.Any()).Return([]models.Device{{Name: "usb0"}}, nil).AnyTimes()
	ctx := context.Background()

	h1, err := f.svc.GetSystemInfo(ctx, models.CradleRequest{Cradle: "usb0", ContinueSync: true})
	require.NoError(t, err)
	h2, err := f.svc.SetUserInfo(ctx, models.CradleRequest{
		Cradle:   "usb0",
		UserInfo: &models.UserInfo{UserID: 12, Username: "Ann"},
	})
	require.NoError(t, err)
	assert.Equal(t, h1+1, h2)

	reqs, err := f.queue.LoadCradle(ctx, "usb0")
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.True(t, reqs[0].Params.ContinueSync)
	require.NotNil(t, reqs[1].Params.UserInfo)
	assert.Equal(t, uint32(12), reqs[1].Params.UserInfo.UserID)

	_, err = f.svc.GetUserInfo(ctx, models.CradleRequest{Cradle: "ttyS9"})
	assert.ErrorIs(t, err, ErrUnknownCradle)
}

func TestRequestService_RemoveRequest(t *testing.T) {
	f := newRequestFixture(t)
	f.knowsPilot("ann", 7)
	ctx := context.Background()

	handle, err := f.svc.RequestRestore(ctx, models.RestoreRequest{Pilot: "ann"})
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveRequest(ctx, handle))
	assert.ErrorIs(t, f.svc.RemoveRequest(ctx, handle), ErrRequestNotQueued)

	all, err := f.svc.ListRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
