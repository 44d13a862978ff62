package wazerohost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// ModuleName is the import module guests link the Faasm functions from.
const ModuleName = "env"

// MaxKeyLength bounds how far a NUL-terminated key is scanned in guest memory.
const MaxKeyLength = 4096

// Host function export names.
const (
	FuncReadInput        = "__faasm_read_input"
	FuncWriteOutput      = "__faasm_write_output"
	FuncReadState        = "__faasm_read_state"
	FuncWriteState       = "__faasm_write_state"
	FuncPushState        = "__faasm_push_state"
	FuncLockStateRead    = "__faasm_lock_state_read"
	FuncUnlockStateRead  = "__faasm_unlock_state_read"
	FuncLockStateWrite   = "__faasm_lock_state_write"
	FuncUnlockStateWrite = "__faasm_unlock_state_write"
)

var (
	// ErrOutOfRange is logged when a guest pointer falls outside its memory.
	ErrOutOfRange = errors.New("guest memory access out of range")

	// ErrKeyUnterminated is logged when no NUL is found within MaxKeyLength bytes.
	ErrKeyUnterminated = errors.New("key is not NUL terminated")
)

// memory is the subset of api.Memory the host functions use.
type memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
	ReadByte(offset uint32) (byte, bool)
}

// Config controls a Host.
type Config struct {
	// Input is returned to the guest by __faasm_read_input.
	Input []byte

	// Seed pre-populates the global store.
	Seed map[string][]byte

	// Logger receives rejected calls and lock misuse. Defaults to a logger
	// that discards everything.
	Logger *logrus.Logger
}

// Host serves the Faasm import table for one or more guest invocations.
type Host struct {
	mu        sync.Mutex
	input     []byte
	output    []byte
	hasOutput bool
	local     map[string][]byte
	global    map[string][]byte
	locks     *lockTable
	log       *logrus.Logger
}

// New creates a Host.
func New(cfg Config) *Host {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	h := &Host{
		input:  bytes.Clone(cfg.Input),
		local:  make(map[string][]byte),
		global: make(map[string][]byte),
		locks:  newLockTable(),
		log:    logger,
	}
	for k, v := range cfg.Seed {
		h.global[k] = bytes.Clone(v)
	}
	return h
}

// Instantiate registers the host functions as module "env" in r.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	i32 := api.ValueTypeI32
	b := r.NewHostModuleBuilder(ModuleName)

	export := func(name string, fn api.GoModuleFunc, params, results []api.ValueType) {
		b.NewFunctionBuilder().WithGoModuleFunction(fn, params, results).Export(name)
	}

	export(FuncReadInput, func(_ context.Context, m api.Module, stack []uint64) {
		stack[0] = api.EncodeI32(h.readInput(m.Memory(), api.DecodeU32(stack[0]), api.DecodeI32(stack[1])))
	}, []api.ValueType{i32, i32}, []api.ValueType{i32})

	export(FuncWriteOutput, func(_ context.Context, m api.Module, stack []uint64) {
		h.writeOutput(m.Memory(), api.DecodeU32(stack[0]), api.DecodeI32(stack[1]))
	}, []api.ValueType{i32, i32}, nil)

	export(FuncReadState, func(_ context.Context, m api.Module, stack []uint64) {
		stack[0] = api.EncodeI32(h.readState(m.Memory(), api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeI32(stack[2])))
	}, []api.ValueType{i32, i32, i32}, []api.ValueType{i32})

	export(FuncWriteState, func(_ context.Context, m api.Module, stack []uint64) {
		h.writeState(m.Memory(), api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeI32(stack[2]))
	}, []api.ValueType{i32, i32, i32}, nil)

	keyFuncs := map[string]func(memory, uint32){
		FuncPushState:        h.pushState,
		FuncLockStateRead:    h.lockRead,
		FuncUnlockStateRead:  h.unlockRead,
		FuncLockStateWrite:   h.lockWrite,
		FuncUnlockStateWrite: h.unlockWrite,
	}
	for name, fn := range keyFuncs {
		export(name, func(_ context.Context, m api.Module, stack []uint64) {
			fn(m.Memory(), api.DecodeU32(stack[0]))
		}, []api.ValueType{i32}, nil)
	}

	mod, err := b.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate %s host module: %w", ModuleName, err)
	}
	return mod, nil
}

// Output returns the last output written by a guest.
func (h *Host) Output() ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return bytes.Clone(h.output), h.hasOutput
}

// State returns the local entry for key.
func (h *Host) State(key string) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.local[key]
	return bytes.Clone(v), ok
}

// Global returns the pushed entry for key.
func (h *Host) Global(key string) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.global[key]
	return bytes.Clone(v), ok
}

func (h *Host) reject(fn string, err error) {
	h.log.WithField("function", fn).WithError(err).Warn("rejected guest call")
}

// readInput copies up to n bytes of input to ptr. n == 0 probes the size.
func (h *Host) readInput(mem memory, ptr uint32, n int32) int32 {
	if n < 0 {
		h.reject(FuncReadInput, fmt.Errorf("negative buffer length %d", n))
		return -1
	}

	h.mu.Lock()
	input := h.input
	h.mu.Unlock()

	return h.copyOut(FuncReadInput, mem, ptr, n, input)
}

func (h *Host) writeOutput(mem memory, ptr uint32, n int32) {
	data, err := readBytes(mem, ptr, n)
	if err != nil {
		h.reject(FuncWriteOutput, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.output = data
	h.hasOutput = true
}

// readState copies up to n bytes of the entry for the key at keyPtr.
// n == 0 probes the size; an absent key has size 0.
func (h *Host) readState(mem memory, keyPtr, ptr uint32, n int32) int32 {
	if n < 0 {
		h.reject(FuncReadState, fmt.Errorf("negative buffer length %d", n))
		return -1
	}
	key, err := readKey(mem, keyPtr)
	if err != nil {
		h.reject(FuncReadState, err)
		return -1
	}

	h.mu.Lock()
	value, ok := h.local[key]
	if !ok {
		value = h.global[key]
	}
	h.mu.Unlock()

	return h.copyOut(FuncReadState, mem, ptr, n, value)
}

func (h *Host) copyOut(fn string, mem memory, ptr uint32, n int32, src []byte) int32 {
	if n == 0 {
		return int32(len(src)) //nolint:gosec // sizes are bounded by guest memory
	}
	count := min(int(n), len(src))
	if count > 0 && !mem.Write(ptr, src[:count]) {
		h.reject(fn, fmt.Errorf("%w: write of %d bytes at %d", ErrOutOfRange, count, ptr))
		return -1
	}
	return int32(count) //nolint:gosec // count <= n
}

func (h *Host) writeState(mem memory, keyPtr, ptr uint32, n int32) {
	key, err := readKey(mem, keyPtr)
	if err != nil {
		h.reject(FuncWriteState, err)
		return
	}
	data, err := readBytes(mem, ptr, n)
	if err != nil {
		h.reject(FuncWriteState, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.local[key] = data
}

func (h *Host) pushState(mem memory, keyPtr uint32) {
	key, err := readKey(mem, keyPtr)
	if err != nil {
		h.reject(FuncPushState, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.local[key]
	if !ok {
		h.log.WithField("key", key).Debug("push of key with no local entry")
		return
	}
	h.global[key] = bytes.Clone(v)
}

func (h *Host) lockRead(mem memory, keyPtr uint32) {
	if key, ok := h.key(FuncLockStateRead, mem, keyPtr); ok {
		h.locks.lockRead(key)
	}
}

func (h *Host) unlockRead(mem memory, keyPtr uint32) {
	if key, ok := h.key(FuncUnlockStateRead, mem, keyPtr); ok && !h.locks.unlockRead(key) {
		h.log.WithField("key", key).Warn("read unlock of key not read locked")
	}
}

func (h *Host) lockWrite(mem memory, keyPtr uint32) {
	if key, ok := h.key(FuncLockStateWrite, mem, keyPtr); ok {
		h.locks.lockWrite(key)
	}
}

func (h *Host) unlockWrite(mem memory, keyPtr uint32) {
	if key, ok := h.key(FuncUnlockStateWrite, mem, keyPtr); ok && !h.locks.unlockWrite(key) {
		h.log.WithField("key", key).Warn("write unlock of key not write locked")
	}
}

func (h *Host) key(fn string, mem memory, keyPtr uint32) (string, bool) {
	key, err := readKey(mem, keyPtr)
	if err != nil {
		h.reject(fn, err)
		return "", false
	}
	return key, true
}

// readBytes copies n bytes at ptr out of guest memory.
func readBytes(mem memory, ptr uint32, n int32) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative length %d", n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	b, ok := mem.Read(ptr, uint32(n))
	if !ok {
		return nil, fmt.Errorf("%w: read of %d bytes at %d", ErrOutOfRange, n, ptr)
	}
	return bytes.Clone(b), nil
}

// readKey reads the NUL-terminated key at ptr.
func readKey(mem memory, ptr uint32) (string, error) {
	var buf []byte
	for i := uint32(0); i < MaxKeyLength; i++ {
		c, ok := mem.ReadByte(ptr + i)
		if !ok || ptr+i < ptr {
			return "", fmt.Errorf("%w: key at %d", ErrOutOfRange, ptr)
		}
		if c == 0 {
			return string(buf), nil
		}
		buf = append(buf, c)
	}
	return "", fmt.Errorf("%w: key at %d", ErrKeyUnterminated, ptr)
}
