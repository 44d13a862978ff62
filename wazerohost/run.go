package wazerohost

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// RunConfig controls a single guest run.
type RunConfig struct {
	// Name is the guest module name and argv[0]. Defaults to "function".
	Name string

	// Stdout and Stderr receive the guest's WASI streams. Default to io.Discard.
	Stdout io.Writer
	Stderr io.Writer
}

// Run compiles wasm, links it against WASI and h, and runs its _start
// export to completion. A proc_exit with status 0 is a normal return; any
// other status is returned as a *sys.ExitError.
func Run(ctx context.Context, wasm []byte, h *Host, cfg RunConfig) error {
	if cfg.Name == "" {
		cfg.Name = "function"
	}
	if cfg.Stdout == nil {
		cfg.Stdout = io.Discard
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}

	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx) //nolint:errcheck

	wasi_snapshot_preview1.MustInstantiate(ctx, r)
	if _, err := h.Instantiate(ctx, r); err != nil {
		return err
	}

	code, err := r.CompileModule(ctx, wasm)
	if err != nil {
		return fmt.Errorf("failed to compile module: %w", err)
	}

	modCfg := wazero.NewModuleConfig().
		WithName(cfg.Name).
		WithArgs(cfg.Name).
		WithStdout(cfg.Stdout).
		WithStderr(cfg.Stderr)

	mod, err := r.InstantiateModule(ctx, code, modCfg)
	if err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
			return nil
		}
		return fmt.Errorf("failed to run module: %w", err)
	}
	return mod.Close(ctx)
}
