// Command faasm-run runs a Faasm guest function locally on wazero.
//
// Usage:
//
//	faasm-run <module.wasm> [--input s | --input-file f] [--verbose]
//
// The guest's standard streams are passed through and the invocation output
// is printed on stdout once the function returns.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero/sys"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.ExitCode()))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
