// Package filelock provides advisory file locking so concurrent pm-bot
// runs do not interleave their dispatch log rewrites.
package filelock

import "os"

const lockFileMode = 0o600

// WithLock runs fn while holding an exclusive advisory lock on the file
// at path, creating the lock file if needed. Other callers block until
// the lock is released.
func WithLock(path string, fn func() error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return err
	}
	defer f.Close()

	if err := lockFile(f); err != nil {
		return err
	}
	defer func() { _ = unlockFile(f) }()

	return fn()
}
