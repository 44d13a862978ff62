package invocation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/faasm/faasm-go-sdk/host"
)

// ErrInvalidOutput is returned when output text contains a NUL byte.
var ErrInvalidOutput = errors.New("output contains a NUL byte")

// Config controls how a Client interacts with the host.
type Config struct {
	// Host overrides the host binding. Defaults to host.Default().
	Host host.Host
}

// Client reads invocation input and writes invocation output.
type Client struct {
	host host.Host
}

// New creates an invocation client.
func New(config Config) (*Client, error) {
	h := config.Host
	if h == nil {
		h = host.Default()
	}
	return &Client{host: h}, nil
}

// GetInput returns the full invocation input.
func (c *Client) GetInput() ([]byte, error) {
	size, err := c.host.ReadInput(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to probe input size: %w", err)
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: input size %d", host.ErrHostResponseInvalid, size)
	}
	if size == 0 {
		return []byte{}, nil
	}

	input := make([]byte, size)
	n, err := c.host.ReadInput(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("%w: read %d of %d input bytes", host.ErrHostResponseInvalid, n, size)
	}
	return input, nil
}

// SetOutput writes text as the invocation output.
func (c *Client) SetOutput(text string) error {
	if strings.IndexByte(text, 0) >= 0 {
		return ErrInvalidOutput
	}
	return c.SetOutputBytes([]byte(text))
}

// SetOutputBytes writes raw bytes as the invocation output.
func (c *Client) SetOutputBytes(data []byte) error {
	if err := c.host.WriteOutput(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
