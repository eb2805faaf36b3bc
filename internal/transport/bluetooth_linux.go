//go:build linux

package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// listenRFCOMM binds a non-blocking RFCOMM socket on channel of any local
// adapter.
func listenRFCOMM(channel uint8) (int, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, unix.BTPROTO_RFCOMM)
	if err != nil {
		return -1, fmt.Errorf("rfcomm socket: %w", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrRFCOMM{Channel: channel}); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("rfcomm bind channel %d: %w", channel, err)
	}
	if err := unix.Listen(fd, 1); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("rfcomm listen: %w", err)
	}
	return fd, nil
}

func acceptRFCOMM(fd int) (int, error) {
	nfd, _, err := unix.Accept4(fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	return nfd, err
}
