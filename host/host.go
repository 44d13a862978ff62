package host

import (
	"errors"
	"fmt"
	"math"
)

// ErrBufferTooLarge is returned when a buffer or key cannot be described by the host's i32 lengths.
var ErrBufferTooLarge = errors.New("buffer exceeds host length limit")

// Host is the set of functions exported by the execution host.
type Host interface {
	// ReadInput copies the invocation input into buf and returns the bytes
	// written. With an empty buf it returns the total input size instead.
	ReadInput(buf []byte) (int, error)

	// WriteOutput replaces the invocation output.
	WriteOutput(data []byte) error

	// ReadState copies the entry stored under key into buf and returns the
	// bytes written. With an empty buf it returns the entry size; zero means
	// the key is absent.
	ReadState(key string, buf []byte) (int, error)

	// WriteState overwrites the entry stored under key.
	WriteState(key string, data []byte) error

	// PushState promotes the local entry for key into the global store.
	PushState(key string) error

	// LockStateRead acquires a shared lock on key, blocking until granted.
	LockStateRead(key string) error

	// UnlockStateRead releases a shared lock on key.
	UnlockStateRead(key string) error

	// LockStateWrite acquires an exclusive lock on key, blocking until granted.
	LockStateWrite(key string) error

	// UnlockStateWrite releases an exclusive lock on key.
	UnlockStateWrite(key string) error
}

// Faasm binds Host to the raw functions imported from the "env" module.
type Faasm struct{}

// Ensure Faasm satisfies the Host interface at compile time.
var _ Host = Faasm{}

// Default returns the binding used when a client is configured without a Host.
func Default() Host { return Faasm{} }

// length converts a buffer length to the i32 the host ABI expects.
func length(n int) (int32, error) {
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d bytes", ErrBufferTooLarge, n)
	}
	return int32(n), nil
}

// size validates a size or byte count reported by the host.
func size(n int32) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: host reported size %d", ErrHostResponseInvalid, n)
	}
	return int(n), nil
}
