//go:build !linux

package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func openDevice(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, fmt.Errorf("open %s: %w", path, err)
	}
	return fd, nil
}

func setRaw(int, int) error { return ErrUnsupported }
