// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transport owns the OS resources of one configured cradle: the
// advisory lock, the opened device node or listening socket and the live
// channel of an accepted connection.
//
// Watch goroutines never act on activity themselves; they post an Activity
// into the daemon reactor and wait until the reactor accepts or releases.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

// default line speeds when a cradle does not configure one
const (
	defaultSerialSpeed = 9600
	defaultIrDASpeed   = 115200
	pollInterval       = 250 * time.Millisecond
)

// Channel is a live connection with one handheld.
type Channel interface {
	io.ReadWriteCloser
	SetDeadline(t time.Time) error
}

// ActivityKind tells the reactor why a transport woke up.
type ActivityKind int

const (
	// ActivityReadable means a handheld is knocking; call Accept.
	ActivityReadable ActivityKind = iota
	// ActivityHotplug means the device node of a USB cradle appeared.
	ActivityHotplug
	// ActivityRescan is the periodic USB rescan tick.
	ActivityRescan
)

// Activity is posted by watchers into the reactor loop.
type Activity struct {
	Device string
	Kind   ActivityKind
}

// Transport is one cradle and the resources it owns.
type Transport struct {
	Device  models.Device
	lockDir string
	logger  *logger.Logger

	mu       sync.Mutex
	inited   bool
	usable   bool
	lock     *Lock
	fd       int
	file     *os.File
	listener net.Listener
	btfd     int
	pending  chan Channel
	live     Channel
	stop     context.CancelFunc
	wg       sync.WaitGroup
	wake     chan struct{}
}

// New returns an uninitialized transport for dev.
func New(dev models.Device, lockDir string, log *logger.Logger) *Transport {
	return &Transport{
		Device:  dev,
		lockDir: lockDir,
		logger:  log.GetChildLogger(),
		fd:      -1,
		btfd:    -1,
		pending: make(chan Channel, 1),
		wake:    make(chan struct{}, 1),
	}
}

// Name returns the cradle name.
func (t *Transport) Name() string { return t.Device.Name }

// Usable reports whether the last Initialize succeeded.
func (t *Transport) Usable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usable
}

// Opened reports whether a polled device node is open or a socket is bound.
func (t *Transport) Opened() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fd >= 0 || t.listener != nil || t.btfd >= 0
}

// Initialize acquires the lock and opens or binds the cradle. USB cradles
// whose node does not exist yet stay usable but closed until a hotplug.
// A failure marks the transport unusable and returns ErrUnusable.
func (t *Transport) Initialize(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inited {
		return nil
	}

	log := t.logger.With().Str("func", "Transport.Initialize").Str("device", t.Device.Name).Logger()

	if t.Device.Polled() && t.lock == nil {
		lock, err := AcquireLock(t.lockDir, t.Device.Port)
		if err != nil {
			log.Err(err).Str("port", t.Device.Port).Msg("failed to lock device")
			t.usable = false
			return fmt.Errorf("%w: %w", ErrUnusable, err)
		}
		t.lock = lock
	}

	var err error
	switch t.Device.Kind {
	case models.DeviceSerial, models.DeviceIrDA:
		err = t.openPolled(true)
	case models.DeviceUSB:
		err = t.openPolled(false)
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("port", t.Device.Port).Msg("usb cradle not present, waiting for hotplug")
			err = nil
		}
	case models.DeviceNetwork:
		err = t.listenNetwork(ctx)
	case models.DeviceBluetooth:
		err = t.listenBluetooth()
	default:
		err = fmt.Errorf("%w: %q", models.ErrUnknownDeviceKind, t.Device.Kind)
	}

	if err != nil {
		log.Err(err).Str("kind", string(t.Device.Kind)).Msg("transport is unusable")
		t.usable = false
		return fmt.Errorf("%w: %w", ErrUnusable, err)
	}

	t.inited = true
	t.usable = true
	log.Info().Str("kind", string(t.Device.Kind)).Msg("transport initialized")
	return nil
}

func (t *Transport) openPolled(termios bool) error {
	fd, err := openDevice(t.Device.Port)
	if err != nil {
		return err
	}
	if termios {
		speed := t.Device.Speed
		if speed == 0 {
			speed = defaultSerialSpeed
			if t.Device.Kind == models.DeviceIrDA {
				speed = defaultIrDASpeed
			}
		}
		if err := setRaw(fd, speed); err != nil {
			unix.Close(fd)
			return err
		}
	}
	t.fd = fd
	t.file = os.NewFile(uintptr(fd), t.Device.Port)
	return nil
}

func (t *Transport) listenNetwork(ctx context.Context) error {
	host := t.Device.Host
	if host == "any" {
		host = ""
	}
	port := t.Device.NetPort
	if port == 0 {
		port = models.DefaultNetworkPort
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return err
	}
	t.listener = ln
	return nil
}

func (t *Transport) listenBluetooth() error {
	ch, err := strconv.ParseUint(t.Device.Port, 10, 8)
	if err != nil || ch == 0 {
		return fmt.Errorf("bad rfcomm channel %q", t.Device.Port)
	}
	fd, err := listenRFCOMM(uint8(ch))
	if err != nil {
		return err
	}
	t.btfd = fd
	return nil
}

// Addr returns the bound address of a network transport, or nil.
func (t *Transport) Addr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// Watch starts posting Activity into out until Deinit. It is a no-op for an
// unusable or closed transport and when a watcher already runs.
func (t *Transport) Watch(ctx context.Context, out chan<- Activity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.usable || t.stop != nil {
		return
	}

	wctx, cancel := context.WithCancel(ctx)
	switch {
	case t.listener != nil:
		t.stop = cancel
		t.wg.Add(1)
		go t.acceptLoop(wctx, t.listener, out)
	case t.btfd >= 0:
		t.stop = cancel
		t.wg.Add(1)
		go t.pollLoop(wctx, t.btfd, out, true)
	case t.fd >= 0:
		t.stop = cancel
		t.wg.Add(1)
		go t.pollLoop(wctx, t.fd, out, false)
	default:
		cancel()
	}
}

// Watching reports whether a watcher goroutine runs.
func (t *Transport) Watching() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

func (t *Transport) post(ctx context.Context, out chan<- Activity, kind ActivityKind) bool {
	select {
	case out <- Activity{Device: t.Device.Name, Kind: kind}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (t *Transport) acceptLoop(ctx context.Context, ln net.Listener, out chan<- Activity) {
	defer t.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				t.logger.Err(err).Str("func", "Transport.acceptLoop").Str("device", t.Device.Name).Msg("accept failed")
			}
			return
		}

		select {
		case t.pending <- conn:
		case <-ctx.Done():
			conn.Close()
			return
		}
		if !t.post(ctx, out, ActivityReadable) {
			return
		}
	}
}

func (t *Transport) pollLoop(ctx context.Context, fd int, out chan<- Activity, listening bool) {
	defer t.wg.Done()

	for {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(pollInterval/time.Millisecond))
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			t.logger.Err(err).Str("func", "Transport.pollLoop").Str("device", t.Device.Name).Msg("poll failed")
			return
		}
		if n == 0 {
			continue
		}
		if !listening && t.Device.Kind == models.DeviceUSB && fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
			t.nodeGone()
			return
		}
		if fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
			continue
		}

		if listening {
			nfd, err := acceptRFCOMM(fd)
			if err != nil {
				if !errors.Is(err, unix.EAGAIN) {
					t.logger.Err(err).Str("func", "Transport.pollLoop").Str("device", t.Device.Name).Msg("rfcomm accept failed")
				}
				continue
			}
			select {
			case t.pending <- os.NewFile(uintptr(nfd), "rfcomm:"+t.Device.Port):
			case <-ctx.Done():
				unix.Close(nfd)
				return
			}
			if !t.post(ctx, out, ActivityReadable) {
				return
			}
			continue
		}

		if !t.post(ctx, out, ActivityReadable) {
			return
		}
		// wait until the reactor released the session
		select {
		case <-t.wake:
		case <-ctx.Done():
			return
		}
	}
}

// nodeGone closes a USB node that was unplugged. Its watcher exits and the
// transport waits for the next hotplug.
func (t *Transport) nodeGone() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
		t.fd = -1
	}
	t.logger.Info().Str("func", "Transport.nodeGone").Str("device", t.Device.Name).Msg("usb cradle disconnected")
}

// Probe opens the node of an initialized USB cradle that appeared since.
// It reports whether the node is open afterwards.
func (t *Transport) Probe() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Device.Kind != models.DeviceUSB || !t.inited {
		return t.fd >= 0, nil
	}
	if t.fd >= 0 {
		return true, nil
	}
	err := t.openPolled(false)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	t.logger.Info().Str("func", "Transport.Probe").Str("device", t.Device.Name).Msg("usb cradle connected")
	return true, nil
}

// Accept returns the live channel of a knocking handheld. It waits at most
// timeout for a network or Bluetooth connection.
func (t *Transport) Accept(ctx context.Context, timeout time.Duration) (Channel, error) {
	t.mu.Lock()
	if t.live != nil {
		t.mu.Unlock()
		return nil, ErrBusy
	}

	if t.file != nil {
		t.live = &fileChannel{File: t.file}
		ch := t.live
		t.mu.Unlock()
		return ch, nil
	}
	if t.listener == nil && t.btfd < 0 {
		t.mu.Unlock()
		return nil, ErrNotOpen
	}
	t.mu.Unlock()

	if timeout <= 0 {
		timeout = time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch := <-t.pending:
		t.mu.Lock()
		t.live = ch
		t.mu.Unlock()
		return ch, nil
	case <-timer.C:
		return nil, ErrAcceptTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release ends the live channel. Socket connections are closed; a polled
// device stays open and its watcher is rearmed.
func (t *Transport) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.live == nil {
		t.rearm()
		return
	}
	if _, polled := t.live.(*fileChannel); !polled {
		_ = t.live.Close()
	}
	t.live = nil
	t.rearm()
}

func (t *Transport) rearm() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// Live reports whether a channel is in use.
func (t *Transport) Live() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live != nil
}

// Deinit stops the watcher and closes the channel, the device node and the
// listening socket. It is idempotent. The lock is kept until Finalize.
func (t *Transport) Deinit() {
	t.mu.Lock()
	stop := t.stop
	t.stop = nil

	if t.live != nil {
		_ = t.live.Close()
		t.live = nil
	}
	if t.listener != nil {
		_ = t.listener.Close()
		t.listener = nil
	}
	if t.btfd >= 0 {
		_ = unix.Close(t.btfd)
		t.btfd = -1
	}
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
	t.wg.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
		t.fd = -1
	}
drain:
	for {
		select {
		case ch := <-t.pending:
			_ = ch.Close()
		default:
			break drain
		}
	}
	select {
	case <-t.wake:
	default:
	}
	t.inited = false
}

// Finalize deinitializes the transport, releases the lock and clears the
// configured addresses.
func (t *Transport) Finalize() {
	t.Deinit()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lock != nil {
		if err := t.lock.Release(); err != nil {
			t.logger.Warn().Err(err).Str("func", "Transport.Finalize").Str("device", t.Device.Name).Msg("failed to release lock")
		}
		t.lock = nil
	}
	t.usable = false
	t.Device.Port = ""
	t.Device.Host = ""
}

// fileChannel is the live channel of a polled device node. Closing it is
// a no-op; the node stays open for the next session.
type fileChannel struct {
	*os.File
}

func (c *fileChannel) Close() error { return nil }
