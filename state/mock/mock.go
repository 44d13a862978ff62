package mock

import (
	"fmt"

	"github.com/faasm/faasm-go-sdk/state"
)

// Operation names used for per-call configuration.
const (
	opSize             = "SIZE"
	opRead             = "READ"
	opReadWithPadding  = "READ_PADDED"
	opWrite            = "WRITE"
	opWriteWithPadding = "WRITE_PADDED"
	opPush             = "PUSH"
	opLockRead         = "LOCK_READ"
	opUnlockRead       = "UNLOCK_READ"
	opLockWrite        = "LOCK_WRITE"
	opUnlockWrite      = "UNLOCK_WRITE"
)

// Config configures the mock client.
type Config struct {
	// Seed pre-populates the in-memory store with raw entries.
	Seed map[string][]byte
}

// Response describes a configured mock outcome.
type Response struct {
	// Value applies to READ and READ_PADDED.
	Value []byte
	// Err indicates an error to return for the operation.
	Err error
}

// ResponseBuilder allows fluent configuration of responses.
type ResponseBuilder struct {
	m   *Client
	key string // composite key: OP + " " + target
}

// ReturnValue sets bytes returned by a read.
func (b *ResponseBuilder) ReturnValue(v []byte) *ResponseBuilder {
	r := b.m.responses[b.key]
	r.Value = append([]byte(nil), v...)
	b.m.responses[b.key] = r
	return b
}

// ReturnError sets an error for the configured operation.
func (b *ResponseBuilder) ReturnError(err error) *Client {
	r := b.m.responses[b.key]
	r.Err = err
	b.m.responses[b.key] = r
	return b.m
}

// Call records an operation performed against the mock.
type Call struct {
	Op        string
	Key       string
	Value     []byte
	TotalSize int
}

// Client implements state.Store for tests.
type Client struct {
	store     map[string][]byte
	global    map[string][]byte
	writers   map[string]bool
	readers   map[string]int
	responses map[string]Response
	// Calls stores a history of operations for assertions.
	Calls []Call
}

// Ensure Client satisfies the state.Store interface at compile time.
var _ state.Store = (*Client)(nil)

// New creates a new mock state client.
func New(cfg Config) *Client {
	st := make(map[string][]byte)
	for k, v := range cfg.Seed {
		st[k] = append([]byte(nil), v...)
	}
	return &Client{
		store:     st,
		global:    make(map[string][]byte),
		writers:   make(map[string]bool),
		readers:   make(map[string]int),
		responses: make(map[string]Response),
		Calls:     []Call{},
	}
}

func (m *Client) on(op, key string) *ResponseBuilder {
	return &ResponseBuilder{m: m, key: op + " " + key}
}

// OnRead configures a READ response for a key.
func (m *Client) OnRead(key string) *ResponseBuilder { return m.on(opRead, key) }

// OnReadWithPadding configures a READ_PADDED response for a key.
func (m *Client) OnReadWithPadding(key string) *ResponseBuilder { return m.on(opReadWithPadding, key) }

// OnWrite configures a WRITE response for a key.
func (m *Client) OnWrite(key string) *ResponseBuilder { return m.on(opWrite, key) }

// OnWriteWithPadding configures a WRITE_PADDED response for a key.
func (m *Client) OnWriteWithPadding(key string) *ResponseBuilder {
	return m.on(opWriteWithPadding, key)
}

// OnPush configures a PUSH response for a key.
func (m *Client) OnPush(key string) *ResponseBuilder { return m.on(opPush, key) }

// OnLockRead configures a LOCK_READ response for a key.
func (m *Client) OnLockRead(key string) *ResponseBuilder { return m.on(opLockRead, key) }

// OnLockWrite configures a LOCK_WRITE response for a key.
func (m *Client) OnLockWrite(key string) *ResponseBuilder { return m.on(opLockWrite, key) }

// override records the call and returns any configured response.
func (m *Client) override(c Call) (Response, bool) {
	m.Calls = append(m.Calls, c)
	r, ok := m.responses[c.Op+" "+c.Key]
	return r, ok
}

// Size implements state.Store.
func (m *Client) Size(key string) (int, error) {
	m.Calls = append(m.Calls, Call{Op: opSize, Key: key})
	if err := state.ValidateKey(key); err != nil {
		return 0, err
	}
	return len(m.lookup(key)), nil
}

func (m *Client) lookup(key string) []byte {
	if v, ok := m.store[key]; ok {
		return v
	}
	return m.global[key]
}

// Read implements state.Store.
func (m *Client) Read(key string) ([]byte, error) {
	r, ok := m.override(Call{Op: opRead, Key: key})
	if err := state.ValidateKey(key); err != nil {
		return nil, err
	}
	if ok {
		return r.Value, r.Err
	}
	v := m.lookup(key)
	if len(v) == 0 {
		return nil, state.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// ReadWithPadding implements state.Store.
func (m *Client) ReadWithPadding(key string, totalSize int) ([]byte, error) {
	r, ok := m.override(Call{Op: opReadWithPadding, Key: key, TotalSize: totalSize})
	if err := state.ValidateKey(key); err != nil {
		return nil, err
	}
	if ok {
		return r.Value, r.Err
	}
	v := m.lookup(key)
	if len(v) == 0 {
		return nil, state.ErrKeyNotFound
	}
	if len(v) != totalSize {
		return nil, fmt.Errorf("%w: %q holds %d bytes, expected %d", state.ErrSlotSizeMismatch, key, len(v), totalSize)
	}
	return state.DecodePadded(v)
}

// Write implements state.Store.
func (m *Client) Write(key string, value []byte) error {
	r, ok := m.override(Call{Op: opWrite, Key: key, Value: append([]byte(nil), value...)})
	if err := state.ValidateKey(key); err != nil {
		return err
	}
	if ok && r.Err != nil {
		return r.Err
	}
	m.store[key] = append([]byte(nil), value...)
	return nil
}

// WriteWithPadding implements state.Store.
func (m *Client) WriteWithPadding(key string, value []byte, totalSize int) error {
	r, ok := m.override(Call{Op: opWriteWithPadding, Key: key, Value: append([]byte(nil), value...), TotalSize: totalSize})
	if err := state.ValidateKey(key); err != nil {
		return err
	}
	if ok && r.Err != nil {
		return r.Err
	}
	slot, err := state.EncodePadded(value, totalSize)
	if err != nil {
		return err
	}
	m.store[key] = slot
	return nil
}

// Push implements state.Store.
func (m *Client) Push(key string) error {
	r, ok := m.override(Call{Op: opPush, Key: key})
	if err := state.ValidateKey(key); err != nil {
		return err
	}
	if ok && r.Err != nil {
		return r.Err
	}
	if v, found := m.store[key]; found {
		m.global[key] = append([]byte(nil), v...)
	}
	return nil
}

// LockRead implements state.Store.
func (m *Client) LockRead(key string) error {
	return m.lockCall(opLockRead, key, func() { m.readers[key]++ })
}

// UnlockRead implements state.Store.
func (m *Client) UnlockRead(key string) error {
	return m.lockCall(opUnlockRead, key, func() {
		if m.readers[key] > 0 {
			m.readers[key]--
		}
	})
}

// LockWrite implements state.Store.
func (m *Client) LockWrite(key string) error {
	return m.lockCall(opLockWrite, key, func() { m.writers[key] = true })
}

// UnlockWrite implements state.Store.
func (m *Client) UnlockWrite(key string) error {
	return m.lockCall(opUnlockWrite, key, func() { delete(m.writers, key) })
}

func (m *Client) lockCall(op, key string, apply func()) error {
	r, ok := m.override(Call{Op: op, Key: key})
	if err := state.ValidateKey(key); err != nil {
		return err
	}
	if ok && r.Err != nil {
		return r.Err
	}
	apply()
	return nil
}

// Held reports whether key holds the write lock and how many read locks.
func (m *Client) Held(key string) (writer bool, readers int) {
	return m.writers[key], m.readers[key]
}

// Pushed returns the global entry for key.
func (m *Client) Pushed(key string) ([]byte, bool) {
	v, ok := m.global[key]
	return v, ok
}

// Example errors used in tests of this mock. Exported for convenience.
var (
	// ErrExample is a sentinel error to help tests customize failures.
	ErrExample = fmt.Errorf("state mock example error")
)
