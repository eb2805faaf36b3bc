package transport

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Lock is a UUCP style advisory lock file (LCK..<device>) held with flock.
// A Lock acquired without permission to create the file is a no-op.
type Lock struct {
	path string
	f    *os.File
}

// LockPath returns the lock file path for device under dir.
func LockPath(dir, device string) string {
	return filepath.Join(dir, "LCK.."+filepath.Base(device))
}

// AcquireLock takes the lock for device. Missing directories and
// permission errors yield a no-op lock; a lock held by another process
// yields ErrLocked.
func AcquireLock(dir, device string) (*Lock, error) {
	path := LockPath(dir, device)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		return &Lock{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}

	// HDB format: pid as ten ascii digits and a newline
	if err := f.Truncate(0); err == nil {
		_, _ = fmt.Fprintf(f, "%10d\n", os.Getpid())
	}

	return &Lock{path: path, f: f}, nil
}

// Held reports whether the lock owns a lock file.
func (l *Lock) Held() bool { return l != nil && l.f != nil }

// Release unlocks and removes the lock file. It is safe to call on a
// no-op or already released lock.
func (l *Lock) Release() error {
	if !l.Held() {
		return nil
	}
	_ = os.Remove(l.path)
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	err := l.f.Close()
	l.f = nil
	return err
}
