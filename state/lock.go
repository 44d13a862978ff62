package state

import "errors"

// WithWriteLock holds the exclusive lock on key while fn runs.
// The lock is released when fn returns an error or panics; a release failure
// is joined with fn's error.
func WithWriteLock(s Store, key string, fn func() error) error {
	return withLock(s.LockWrite, s.UnlockWrite, key, fn)
}

// WithReadLock holds a shared lock on key while fn runs.
func WithReadLock(s Store, key string, fn func() error) error {
	return withLock(s.LockRead, s.UnlockRead, key, fn)
}

func withLock(lock, unlock func(string) error, key string, fn func() error) (err error) {
	if err := lock(key); err != nil {
		return err
	}
	defer func() {
		if unlockErr := unlock(key); unlockErr != nil {
			err = errors.Join(err, unlockErr)
		}
	}()
	return fn()
}
