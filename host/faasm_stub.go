//go:build !wasip1 && !(tinygo && wasm)

package host

// ReadInput implements Host.
func (Faasm) ReadInput([]byte) (int, error) { return 0, ErrHostUnavailable }

// WriteOutput implements Host.
func (Faasm) WriteOutput([]byte) error { return ErrHostUnavailable }

// ReadState implements Host.
func (Faasm) ReadState(string, []byte) (int, error) { return 0, ErrHostUnavailable }

// WriteState implements Host.
func (Faasm) WriteState(string, []byte) error { return ErrHostUnavailable }

// PushState implements Host.
func (Faasm) PushState(string) error { return ErrHostUnavailable }

// LockStateRead implements Host.
func (Faasm) LockStateRead(string) error { return ErrHostUnavailable }

// UnlockStateRead implements Host.
func (Faasm) UnlockStateRead(string) error { return ErrHostUnavailable }

// LockStateWrite implements Host.
func (Faasm) LockStateWrite(string) error { return ErrHostUnavailable }

// UnlockStateWrite implements Host.
func (Faasm) UnlockStateWrite(string) error { return ErrHostUnavailable }
