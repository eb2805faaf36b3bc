package transport

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func waitActivity(t *testing.T, ch <-chan Activity) Activity {
	t.Helper()
	select {
	case a := <-ch:
		return a
	case <-time.After(3 * time.Second):
		t.Fatal("no activity posted")
	}
	return Activity{}
}

func TestLock(t *testing.T) {
	dir := t.TempDir()

	l, err := AcquireLock(dir, "/dev/ttyS0")
	require.NoError(t, err)
	assert.True(t, l.Held())

	data, err := os.ReadFile(filepath.Join(dir, "LCK..ttyS0"))
	require.NoError(t, err)
	assert.Contains(t, string(data), strconv.Itoa(os.Getpid()))

	_, err = AcquireLock(dir, "/dev/ttyS0")
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, l.Release())
	require.NoError(t, l.Release())
	_, err = os.Stat(filepath.Join(dir, "LCK..ttyS0"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	again, err := AcquireLock(dir, "/dev/ttyS0")
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestLock_NoPrivilegeIsNoop(t *testing.T) {
	l, err := AcquireLock(filepath.Join(t.TempDir(), "missing"), "/dev/ttyS0")
	require.NoError(t, err)
	assert.False(t, l.Held())
	assert.NoError(t, l.Release())
}

func TestNetworkTransport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	port := freePort(t)
	tr := New(models.Device{Name: "net", Kind: models.DeviceNetwork, Host: "127.0.0.1", NetPort: port}, t.TempDir(), logger.Nop())
	require.NoError(t, tr.Initialize(ctx))
	require.NoError(t, tr.Initialize(ctx), "initialize is idempotent")
	assert.True(t, tr.Usable())
	assert.True(t, tr.Opened())

	activity := make(chan Activity, 4)
	tr.Watch(ctx, activity)
	assert.True(t, tr.Watching())

	client, err := net.Dial("tcp", tr.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	a := waitActivity(t, activity)
	assert.Equal(t, Activity{Device: "net", Kind: ActivityReadable}, a)

	ch, err := tr.Accept(ctx, time.Second)
	require.NoError(t, err)
	assert.True(t, tr.Live())

	_, err = client.Write([]byte("hi"))
	require.NoError(t, err)
	buf := make([]byte, 2)
	require.NoError(t, ch.SetDeadline(time.Now().Add(time.Second)))
	_, err = ch.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(buf))

	_, err = tr.Accept(ctx, 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrBusy)

	tr.Release()
	assert.False(t, tr.Live())

	_, err = tr.Accept(ctx, 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrAcceptTimeout)

	tr.Deinit()
	tr.Deinit()
	assert.False(t, tr.Watching())
	assert.False(t, tr.Opened())

	_, err = net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), 200*time.Millisecond)
	assert.Error(t, err, "listener is closed after deinit")
}

func TestNetworkTransport_BindFailureIsUnusable(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	tr := New(models.Device{
		Name:    "net",
		Kind:    models.DeviceNetwork,
		Host:    "127.0.0.1",
		NetPort: busy.Addr().(*net.TCPAddr).Port,
	}, t.TempDir(), logger.Nop())

	err = tr.Initialize(context.Background())
	assert.ErrorIs(t, err, ErrUnusable)
	assert.False(t, tr.Usable())

	activity := make(chan Activity, 1)
	tr.Watch(context.Background(), activity)
	assert.False(t, tr.Watching())
}

func TestBluetoothTransport_BadChannel(t *testing.T) {
	tr := New(models.Device{Name: "bt", Kind: models.DeviceBluetooth, Port: "zero"}, t.TempDir(), logger.Nop())
	assert.ErrorIs(t, tr.Initialize(context.Background()), ErrUnusable)
}

func TestSerialTransport_MissingDeviceReleasesLockOnFinalize(t *testing.T) {
	lockDir := t.TempDir()
	port := filepath.Join(t.TempDir(), "ttyS9")

	tr := New(models.Device{Name: "serial", Kind: models.DeviceSerial, Port: port}, lockDir, logger.Nop())
	assert.ErrorIs(t, tr.Initialize(context.Background()), ErrUnusable)

	_, err := os.Stat(LockPath(lockDir, port))
	require.NoError(t, err, "lock is held until finalize")

	tr.Finalize()
	_, err = os.Stat(LockPath(lockDir, port))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, tr.Device.Port)
}

func TestUSBTransport_Hotplug(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	devDir := t.TempDir()
	port := filepath.Join(devDir, "ttyUSB0")

	tr := New(models.Device{Name: "usb", Kind: models.DeviceUSB, Port: port}, t.TempDir(), logger.Nop())
	require.NoError(t, tr.Initialize(ctx))
	assert.True(t, tr.Usable())
	assert.False(t, tr.Opened(), "opening waits for the node")

	_, err := tr.Accept(ctx, 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrNotOpen)

	hp, err := NewHotplug(devDir, logger.Nop())
	require.NoError(t, err)
	defer hp.Close()
	require.NoError(t, hp.Track("usb", port))

	activity := make(chan Activity, 4)
	go hp.Run(ctx, activity)

	require.NoError(t, os.WriteFile(port, []byte("x"), 0o600))
	assert.Equal(t, Activity{Device: "usb", Kind: ActivityHotplug}, waitActivity(t, activity))

	open, err := tr.Probe()
	require.NoError(t, err)
	assert.True(t, open)

	tr.Watch(ctx, activity)
	assert.Equal(t, Activity{Device: "usb", Kind: ActivityReadable}, waitActivity(t, activity))

	ch, err := tr.Accept(ctx, time.Second)
	require.NoError(t, err)
	require.NoError(t, ch.Close())
	tr.Release()

	tr.Deinit()
	assert.False(t, tr.Opened())
}
