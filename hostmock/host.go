package hostmock

import (
	"errors"
	"fmt"
	"sync"

	"github.com/faasm/faasm-go-sdk/host"
)

// Operation names recorded by Host.
const (
	OpReadInput   = "read_input"
	OpWriteOutput = "write_output"
	OpReadState   = "read_state"
	OpWriteState  = "write_state"
	OpPushState   = "push_state"
	OpLockRead    = "lock_read"
	OpUnlockRead  = "unlock_read"
	OpLockWrite   = "lock_write"
	OpUnlockWrite = "unlock_write"
)

var (
	// ErrWouldBlock is returned when a lock request conflicts with a lock already held.
	// A real host would block; the mock reports the conflict instead of deadlocking a test.
	ErrWouldBlock = errors.New("lock request would block")

	// ErrNotLocked is returned when releasing a lock that is not held.
	ErrNotLocked = errors.New("lock is not held")
)

// HostConfig configures an in-memory Host.
type HostConfig struct {
	// Input is the invocation input returned by ReadInput.
	Input []byte

	// Seed pre-populates the local state store.
	Seed map[string][]byte

	// Global pre-populates the global state store.
	Global map[string][]byte

	// Errors forces an operation to fail. Keys are Op* names.
	Errors map[string]error

	// ReportSize rewrites the size returned by a probe (zero-capacity read).
	// It receives the operation, the key (empty for input) and the real size.
	ReportSize func(op, key string, size int) int
}

// Call records one operation performed against Host.
type Call struct {
	Op  string
	Key string
	// Len is the buffer capacity for reads and the data length for writes.
	Len int
}

type lockState struct {
	readers int
	writer  bool
}

// Host is an in-memory implementation of host.Host that records every call.
//
// The local store receives writes; PushState copies an entry to the global
// store, and reads of keys missing locally fall back to it. Locks never
// block: a conflicting request returns ErrWouldBlock.
type Host struct {
	mu         sync.Mutex
	input      []byte
	output     []byte
	outputSet  bool
	local      map[string][]byte
	global     map[string][]byte
	locks      map[string]*lockState
	errs       map[string]error
	reportSize func(op, key string, size int) int
	calls      []Call
}

// Ensure Host satisfies the host.Host interface at compile time.
var _ host.Host = (*Host)(nil)

// NewHost creates an in-memory host.
func NewHost(cfg HostConfig) *Host {
	h := &Host{
		input:      append([]byte(nil), cfg.Input...),
		local:      make(map[string][]byte),
		global:     make(map[string][]byte),
		locks:      make(map[string]*lockState),
		errs:       make(map[string]error),
		reportSize: cfg.ReportSize,
	}
	for k, v := range cfg.Seed {
		h.local[k] = append([]byte(nil), v...)
	}
	for k, v := range cfg.Global {
		h.global[k] = append([]byte(nil), v...)
	}
	for op, err := range cfg.Errors {
		h.errs[op] = err
	}
	return h
}

// record appends a call and returns the configured error for op, if any.
func (h *Host) record(op, key string, n int) error {
	h.calls = append(h.calls, Call{Op: op, Key: key, Len: n})
	return h.errs[op]
}

// ReadInput implements host.Host.
func (h *Host) ReadInput(buf []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.record(OpReadInput, "", len(buf)); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return h.probe(OpReadInput, "", len(h.input)), nil
	}
	return copy(buf, h.input), nil
}

// WriteOutput implements host.Host.
func (h *Host) WriteOutput(data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.record(OpWriteOutput, "", len(data)); err != nil {
		return err
	}
	h.output = append([]byte(nil), data...)
	h.outputSet = true
	return nil
}

// ReadState implements host.Host.
func (h *Host) ReadState(key string, buf []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.record(OpReadState, key, len(buf)); err != nil {
		return 0, err
	}
	v, ok := h.local[key]
	if !ok {
		v = h.global[key]
	}
	if len(buf) == 0 {
		return h.probe(OpReadState, key, len(v)), nil
	}
	return copy(buf, v), nil
}

func (h *Host) probe(op, key string, n int) int {
	if h.reportSize != nil {
		return h.reportSize(op, key, n)
	}
	return n
}

// WriteState implements host.Host.
func (h *Host) WriteState(key string, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.record(OpWriteState, key, len(data)); err != nil {
		return err
	}
	h.local[key] = append([]byte(nil), data...)
	return nil
}

// PushState implements host.Host.
func (h *Host) PushState(key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.record(OpPushState, key, 0); err != nil {
		return err
	}
	if v, ok := h.local[key]; ok {
		h.global[key] = append([]byte(nil), v...)
	}
	return nil
}

// LockStateRead implements host.Host.
func (h *Host) LockStateRead(key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.record(OpLockRead, key, 0); err != nil {
		return err
	}
	l := h.lock(key)
	if l.writer {
		return fmt.Errorf("%w: %s is write locked", ErrWouldBlock, key)
	}
	l.readers++
	return nil
}

// UnlockStateRead implements host.Host.
func (h *Host) UnlockStateRead(key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.record(OpUnlockRead, key, 0); err != nil {
		return err
	}
	l := h.lock(key)
	if l.readers == 0 {
		return fmt.Errorf("%w: read lock on %s", ErrNotLocked, key)
	}
	l.readers--
	return nil
}

// LockStateWrite implements host.Host.
func (h *Host) LockStateWrite(key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.record(OpLockWrite, key, 0); err != nil {
		return err
	}
	l := h.lock(key)
	if l.writer || l.readers > 0 {
		return fmt.Errorf("%w: %s is locked", ErrWouldBlock, key)
	}
	l.writer = true
	return nil
}

// UnlockStateWrite implements host.Host.
func (h *Host) UnlockStateWrite(key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.record(OpUnlockWrite, key, 0); err != nil {
		return err
	}
	l := h.lock(key)
	if !l.writer {
		return fmt.Errorf("%w: write lock on %s", ErrNotLocked, key)
	}
	l.writer = false
	return nil
}

func (h *Host) lock(key string) *lockState {
	l, ok := h.locks[key]
	if !ok {
		l = &lockState{}
		h.locks[key] = l
	}
	return l
}

// Output returns the last output written and whether any was written.
func (h *Host) Output() ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]byte(nil), h.output...), h.outputSet
}

// State returns the local entry for key.
func (h *Host) State(key string) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.local[key]
	return append([]byte(nil), v...), ok
}

// Global returns the global entry for key.
func (h *Host) Global(key string) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.global[key]
	return append([]byte(nil), v...), ok
}

// Locked reports whether key currently holds a write lock or any read locks.
func (h *Host) Locked(key string) (writer bool, readers int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if l, ok := h.locks[key]; ok {
		return l.writer, l.readers
	}
	return false, 0
}

// Calls returns a copy of every call observed so far.
func (h *Host) Calls() []Call {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Call(nil), h.calls...)
}

// Count returns how many times op was called.
func (h *Host) Count(op string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, c := range h.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}
