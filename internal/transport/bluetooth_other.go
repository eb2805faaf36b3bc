//go:build !linux

package transport

func listenRFCOMM(uint8) (int, error) { return -1, ErrUnsupported }

func acceptRFCOMM(int) (int, error) { return -1, ErrUnsupported }
