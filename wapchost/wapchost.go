//go:build tinygo || !wasm

package wapchost

import (
	"errors"
	"fmt"
	"sync"

	sdk "github.com/faasm/faasm-go-sdk"
	"github.com/faasm/faasm-go-sdk/host"
	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/kvstore"
	wapc "github.com/wapc/wapc-guest-tinygo"
	pb "google.golang.org/protobuf/proto"
)

const (
	capabilityName = "state"

	fnGet         = "get"
	fnSet         = "set"
	fnPush        = "push"
	fnLockRead    = "lock_read"
	fnUnlockRead  = "unlock_read"
	fnLockWrite   = "lock_write"
	fnUnlockWrite = "unlock_write"

	hostStatusOK      = int32(200)
	hostStatusMissing = int32(404)
)

var (
	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")
)

// HostCall defines the waPC host function signature used by Client.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Config controls how a Client interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig sdk.RuntimeConfig

	// HostCall overrides the waPC host function used for state operations.
	HostCall HostCall
}

// Client binds host.Host to waPC host calls.
//
// State operations are forwarded to the "state" capability. Input and output
// belong to the waPC invocation itself, so they are only available inside a
// handler produced by Wrap.
type Client struct {
	runtime  sdk.RuntimeConfig
	hostCall HostCall

	mu     sync.Mutex
	input  []byte
	output []byte
}

// Ensure Client satisfies the host.Host interface at compile time.
var _ host.Host = (*Client)(nil)

// New creates a waPC binding with namespace defaults and optional host-call override.
func New(config Config) (*Client, error) {
	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &Client{runtime: config.SDKConfig.WithDefaults(), hostCall: hostCall}, nil
}

// Wrap adapts fn into a waPC handler. The payload becomes the input seen by
// ReadInput and whatever fn writes through WriteOutput is returned.
func (c *Client) Wrap(fn func() error) func([]byte) ([]byte, error) {
	return func(payload []byte) ([]byte, error) {
		c.mu.Lock()
		c.input = payload
		c.output = nil
		c.mu.Unlock()

		if err := fn(); err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		return c.output, nil
	}
}

// ReadInput implements host.Host.
func (c *Client) ReadInput(buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(buf) == 0 {
		return len(c.input), nil
	}
	return copy(buf, c.input), nil
}

// WriteOutput implements host.Host.
func (c *Client) WriteOutput(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.output = append([]byte(nil), data...)
	return nil
}

// ReadState implements host.Host.
func (c *Client) ReadState(key string, buf []byte) (int, error) {
	b, err := pb.Marshal(&proto.KVStoreGet{Key: key})
	if err != nil {
		return 0, errors.Join(ErrMarshalRequest, err)
	}

	respBytes, err := c.hostCall(c.runtime.Namespace, capabilityName, fnGet, b)
	if err != nil {
		return 0, errors.Join(host.ErrHostCall, err)
	}

	var resp proto.KVStoreGetResponse
	if err := pb.Unmarshal(respBytes, &resp); err != nil {
		return 0, errors.Join(host.ErrHostResponseInvalid, ErrUnmarshalResponse, err)
	}

	switch err := validateStatus(resp.GetStatus()); {
	case errors.Is(err, errMissing):
		return 0, nil
	case err != nil:
		return 0, err
	}

	data := resp.GetData()
	if len(buf) == 0 {
		return len(data), nil
	}
	return copy(buf, data), nil
}

// WriteState implements host.Host.
func (c *Client) WriteState(key string, data []byte) error {
	b, err := pb.Marshal(&proto.KVStoreSet{Key: key, Data: data})
	if err != nil {
		return errors.Join(ErrMarshalRequest, err)
	}

	respBytes, err := c.hostCall(c.runtime.Namespace, capabilityName, fnSet, b)
	if err != nil {
		return errors.Join(host.ErrHostCall, err)
	}

	var resp proto.KVStoreSetResponse
	if err := pb.Unmarshal(respBytes, &resp); err != nil {
		return errors.Join(host.ErrHostResponseInvalid, ErrUnmarshalResponse, err)
	}

	if err := validateStatus(resp.GetStatus()); err != nil {
		if errors.Is(err, errMissing) {
			return errors.Join(host.ErrHostError, err)
		}
		return err
	}
	return nil
}

// PushState implements host.Host.
func (c *Client) PushState(key string) error { return c.keyCall(fnPush, key) }

// LockStateRead implements host.Host.
func (c *Client) LockStateRead(key string) error { return c.keyCall(fnLockRead, key) }

// UnlockStateRead implements host.Host.
func (c *Client) UnlockStateRead(key string) error { return c.keyCall(fnUnlockRead, key) }

// LockStateWrite implements host.Host.
func (c *Client) LockStateWrite(key string) error { return c.keyCall(fnLockWrite, key) }

// UnlockStateWrite implements host.Host.
func (c *Client) UnlockStateWrite(key string) error { return c.keyCall(fnUnlockWrite, key) }

// keyCall sends the raw key as payload; only transport failures are reported.
func (c *Client) keyCall(fn, key string) error {
	if _, err := c.hostCall(c.runtime.Namespace, capabilityName, fn, []byte(key)); err != nil {
		return errors.Join(host.ErrHostCall, err)
	}
	return nil
}

var errMissing = errors.New("key not found")

func validateStatus(status *sdkproto.Status) error {
	if status == nil {
		return host.ErrHostResponseInvalid
	}

	switch code := status.GetCode(); code {
	case 0, hostStatusOK:
		return nil
	case hostStatusMissing:
		return errMissing
	default:
		detail := fmt.Sprintf("host status %d", code)
		if msg := status.GetStatus(); msg != "" {
			detail = fmt.Sprintf("%s: %s", detail, msg)
		}
		return errors.Join(host.ErrHostError, errors.New(detail))
	}
}
