//go:build tinygo || !wasm

package sdk_test

import (
	"strings"

	sdk "github.com/faasm/faasm-go-sdk"
	"github.com/faasm/faasm-go-sdk/invocation"
	"github.com/faasm/faasm-go-sdk/logging"
	"github.com/faasm/faasm-go-sdk/state"
	"github.com/faasm/faasm-go-sdk/wapchost"
)

// Example registers an uppercasing function with a waPC host. State calls
// are routed to the host's "state" capability.
func Example() {
	w, err := wapchost.New(wapchost.Config{})
	logging.Check(err)

	in, err := invocation.New(invocation.Config{Host: w})
	logging.Check(err)

	st, err := state.New(state.Config{Host: w})
	logging.Check(err)

	_, err = sdk.New(sdk.Config{
		Handler: w.Wrap(func() error {
			input, err := in.GetInput()
			if err != nil {
				return err
			}
			if err := st.Write("last", input); err != nil {
				return err
			}
			return in.SetOutput(strings.ToUpper(string(input)))
		}),
	})
	logging.Check(err)
}
