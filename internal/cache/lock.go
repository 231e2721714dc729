package cache

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/jacksparrot/jsp/internal/messages"
)

// keyLock is an open sidecar lock file guarding writes to one cache key.
type keyLock struct {
	path string
	file *os.File
}

var (
	flockFn      = unix.Flock
	lockSleep    = time.Sleep
	lockNow      = time.Now
	lockFileFn   = waitExclusive
	unlockFileFn = unlockFile
)

var (
	lockWaitTimeout = 10 * time.Second
	lockPollEvery   = 50 * time.Millisecond
)

// lockPath returns the sidecar lock file for a cache entry.
func lockPath(entry string) string {
	return entry + ".lock"
}

// withKeyLock runs fn while holding the exclusive lock for entry.
// Concurrent jsp processes writing the same key are serialized.
func withKeyLock(entry string, fn func() error) error {
	lock, err := lockKey(entry)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.unlock()
	}()
	return fn()
}

func lockKey(entry string) (*keyLock, error) {
	path := lockPath(entry)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.CacheOpenLockFmt, path, err)
	}
	if err := lockFileFn(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.CacheLockFmt, path, err)
	}
	return &keyLock{path: path, file: file}, nil
}

func (l *keyLock) unlock() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlockFileFn(l.file)
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return fmt.Errorf(messages.CacheUnlockFmt, l.path, unlockErr)
	}
	return closeErr
}

// waitExclusive retries a non-blocking exclusive flock every lockPollEvery
// until it is granted or lockWaitTimeout elapses. Errors other than
// contention are returned at once.
func waitExclusive(file *os.File) error {
	fd := int(file.Fd())
	deadline := lockNow().Add(lockWaitTimeout)
	for {
		err := flockFn(fd, unix.LOCK_EX|unix.LOCK_NB)
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN):
			return err
		case lockNow().After(deadline):
			return fmt.Errorf(messages.CacheLockTimeoutFmt, lockWaitTimeout)
		}
		lockSleep(lockPollEvery)
	}
}

func unlockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_UN)
}
