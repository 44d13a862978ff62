package host

import "errors"

var (
	// ErrHostCall indicates that a host invocation failed.
	ErrHostCall = errors.New("host call failed")

	// ErrHostResponseInvalid signals that the host returned an invalid or unexpected payload or size.
	ErrHostResponseInvalid = errors.New("host response is invalid or unexpected")

	// ErrHostError means the host completed the call but reported a failure status.
	ErrHostError = errors.New("host returned an error status")

	// ErrHostUnavailable is returned by the raw host bindings outside a WebAssembly build.
	ErrHostUnavailable = errors.New("host imports are unavailable on this platform")
)
