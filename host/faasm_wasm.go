//go:build wasip1 || (tinygo && wasm)

package host

import (
	"runtime"
	"unsafe"
)

//go:wasmimport env __faasm_read_input
func faasmReadInput(buf unsafe.Pointer, bufLen int32) int32

//go:wasmimport env __faasm_write_output
func faasmWriteOutput(data unsafe.Pointer, dataLen int32)

//go:wasmimport env __faasm_read_state
func faasmReadState(key unsafe.Pointer, buf unsafe.Pointer, bufLen int32) int32

//go:wasmimport env __faasm_write_state
func faasmWriteState(key unsafe.Pointer, data unsafe.Pointer, dataLen int32)

//go:wasmimport env __faasm_push_state
func faasmPushState(key unsafe.Pointer)

//go:wasmimport env __faasm_lock_state_read
func faasmLockStateRead(key unsafe.Pointer)

//go:wasmimport env __faasm_unlock_state_read
func faasmUnlockStateRead(key unsafe.Pointer)

//go:wasmimport env __faasm_lock_state_write
func faasmLockStateWrite(key unsafe.Pointer)

//go:wasmimport env __faasm_unlock_state_write
func faasmUnlockStateWrite(key unsafe.Pointer)

// ReadInput implements Host.
func (Faasm) ReadInput(buf []byte) (int, error) {
	n, err := length(len(buf))
	if err != nil {
		return 0, err
	}
	got := faasmReadInput(bytesPtr(buf), n)
	runtime.KeepAlive(buf)
	return size(got)
}

// WriteOutput implements Host.
func (Faasm) WriteOutput(data []byte) error {
	n, err := length(len(data))
	if err != nil {
		return err
	}
	faasmWriteOutput(bytesPtr(data), n)
	runtime.KeepAlive(data)
	return nil
}

// ReadState implements Host.
func (Faasm) ReadState(key string, buf []byte) (int, error) {
	n, err := length(len(buf))
	if err != nil {
		return 0, err
	}
	k, err := cString(key)
	if err != nil {
		return 0, err
	}
	got := faasmReadState(bytesPtr(k), bytesPtr(buf), n)
	runtime.KeepAlive(k)
	runtime.KeepAlive(buf)
	return size(got)
}

// WriteState implements Host.
func (Faasm) WriteState(key string, data []byte) error {
	n, err := length(len(data))
	if err != nil {
		return err
	}
	k, err := cString(key)
	if err != nil {
		return err
	}
	faasmWriteState(bytesPtr(k), bytesPtr(data), n)
	runtime.KeepAlive(k)
	runtime.KeepAlive(data)
	return nil
}

// PushState implements Host.
func (Faasm) PushState(key string) error { return withKey(key, faasmPushState) }

// LockStateRead implements Host.
func (Faasm) LockStateRead(key string) error { return withKey(key, faasmLockStateRead) }

// UnlockStateRead implements Host.
func (Faasm) UnlockStateRead(key string) error { return withKey(key, faasmUnlockStateRead) }

// LockStateWrite implements Host.
func (Faasm) LockStateWrite(key string) error { return withKey(key, faasmLockStateWrite) }

// UnlockStateWrite implements Host.
func (Faasm) UnlockStateWrite(key string) error { return withKey(key, faasmUnlockStateWrite) }

func withKey(key string, fn func(unsafe.Pointer)) error {
	k, err := cString(key)
	if err != nil {
		return err
	}
	fn(bytesPtr(k))
	runtime.KeepAlive(k)
	return nil
}

// bytesPtr returns the address of the first element, or nil for an empty slice.
func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}
