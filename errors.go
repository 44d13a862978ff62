package sdk

import "github.com/faasm/faasm-go-sdk/host"

// Host errors, shared by every host binding.
var (
	ErrHostCall            = host.ErrHostCall
	ErrHostResponseInvalid = host.ErrHostResponseInvalid
	ErrHostError           = host.ErrHostError
	ErrHostUnavailable     = host.ErrHostUnavailable
)
