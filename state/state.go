package state

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/faasm/faasm-go-sdk/host"
)

// Store is the state capability interface.
type Store interface {
	// Size returns the stored size of key; zero means absent.
	Size(key string) (int, error)

	// Read returns the raw bytes stored under key.
	Read(key string) ([]byte, error)

	// ReadWithPadding returns the payload of a padded slot of totalSize bytes.
	ReadWithPadding(key string, totalSize int) ([]byte, error)

	// Write stores value under key as-is.
	Write(key string, value []byte) error

	// WriteWithPadding stores value in a padded slot of totalSize bytes.
	WriteWithPadding(key string, value []byte, totalSize int) error

	// Push promotes the local entry for key to the global store.
	Push(key string) error

	// LockRead acquires a shared lock on key.
	LockRead(key string) error

	// UnlockRead releases a shared lock on key.
	UnlockRead(key string) error

	// LockWrite acquires an exclusive lock on key.
	LockWrite(key string) error

	// UnlockWrite releases an exclusive lock on key.
	UnlockWrite(key string) error
}

// Config controls how a Client interacts with the host.
type Config struct {
	// Host overrides the host binding. Defaults to host.Default().
	Host host.Host
}

// Client is the state capability client implementation.
type Client struct {
	host host.Host
}

// Ensure Client satisfies the Store interface at compile time.
var _ Store = (*Client)(nil)

// New creates a state client.
func New(config Config) (*Client, error) {
	h := config.Host
	if h == nil {
		h = host.Default()
	}
	return &Client{host: h}, nil
}

// ValidateKey reports whether key can be passed to the host.
func ValidateKey(key string) error {
	if strings.IndexByte(key, 0) >= 0 {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidKey, key)
	}
	if !utf8.ValidString(key) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidKey, key)
	}
	return nil
}

// Size returns the stored size of key; zero means absent.
func (c *Client) Size(key string) (int, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}
	return c.size(key)
}

func (c *Client) size(key string) (int, error) {
	n, err := c.host.ReadState(key, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to probe state size of %q: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: state size %d for %q", host.ErrHostResponseInvalid, n, key)
	}
	return n, nil
}

// fetch reads exactly size bytes of key.
func (c *Client) fetch(key string, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := c.host.ReadState(key, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read state %q: %w", key, err)
	}
	if n != size {
		return nil, fmt.Errorf("%w: read %d of %d bytes of %q", host.ErrHostResponseInvalid, n, size, key)
	}
	return buf, nil
}

// Read returns the raw bytes stored under key, or ErrKeyNotFound.
func (c *Client) Read(key string) ([]byte, error) {
	size, err := c.Size(key)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, ErrKeyNotFound
	}
	return c.fetch(key, size)
}

// ReadWithPadding returns the payload of the padded slot stored under key.
// An absent key and a slot with a zero length prefix both yield ErrKeyNotFound.
func (c *Client) ReadWithPadding(key string, totalSize int) ([]byte, error) {
	size, err := c.Size(key)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, ErrKeyNotFound
	}
	if size != totalSize {
		return nil, fmt.Errorf("%w: %q holds %d bytes, expected %d", ErrSlotSizeMismatch, key, size, totalSize)
	}

	slot, err := c.fetch(key, totalSize)
	if err != nil {
		return nil, err
	}

	value, err := DecodePadded(slot)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return value, err
}

// Write stores value under key without framing.
func (c *Client) Write(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := c.host.WriteState(key, value); err != nil {
		return fmt.Errorf("failed to write state %q: %w", key, err)
	}
	return nil
}

// WriteWithPadding stores value in a freshly zeroed slot of totalSize bytes,
// so filler from an earlier, longer payload never survives.
func (c *Client) WriteWithPadding(key string, value []byte, totalSize int) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	slot, err := EncodePadded(value, totalSize)
	if err != nil {
		return err
	}
	if err := c.host.WriteState(key, slot); err != nil {
		return fmt.Errorf("failed to write state %q: %w", key, err)
	}
	return nil
}

// Push promotes the local entry for key to the global store.
func (c *Client) Push(key string) error {
	return c.keyCall("push", key, c.host.PushState)
}

// LockRead acquires a shared lock on key.
func (c *Client) LockRead(key string) error {
	return c.keyCall("read lock", key, c.host.LockStateRead)
}

// UnlockRead releases a shared lock on key.
func (c *Client) UnlockRead(key string) error {
	return c.keyCall("read unlock", key, c.host.UnlockStateRead)
}

// LockWrite acquires an exclusive lock on key.
func (c *Client) LockWrite(key string) error {
	return c.keyCall("write lock", key, c.host.LockStateWrite)
}

// UnlockWrite releases an exclusive lock on key.
func (c *Client) UnlockWrite(key string) error {
	return c.keyCall("write unlock", key, c.host.UnlockStateWrite)
}

func (c *Client) keyCall(op, key string, fn func(string) error) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := fn(key); err != nil {
		return fmt.Errorf("failed to %s state %q: %w", op, key, err)
	}
	return nil
}
