package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/faasm/faasm-go-sdk/wazerohost"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var errInputConflict = errors.New("--input and --input-file are mutually exclusive")

type options struct {
	input     string
	inputFile string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "faasm-run <module.wasm>",
		Short: "Run a Faasm guest function locally",
		Long: `faasm-run executes a WebAssembly function built against the Faasm
host interface. State lives in memory for the duration of the run.

Examples:
  # Pass input inline
  faasm-run counter.wasm --input hits

  # Read input from a file
  faasm-run echo.wasm --input-file request.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "invocation input")
	cmd.Flags().StringVarP(&opts.inputFile, "input-file", "f", "", "read invocation input from a file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log host activity to stderr")

	return cmd
}

func run(cmd *cobra.Command, path string, opts options) error {
	if opts.input != "" && opts.inputFile != "" {
		return errInputConflict
	}

	input := []byte(opts.input)
	if opts.inputFile != "" {
		b, err := os.ReadFile(opts.inputFile)
		if err != nil {
			return err
		}
		input = b
	}

	wasm, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.WarnLevel)
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	log := logger.WithField("module", name)
	log.WithField("input_bytes", len(input)).Debug("running function")

	h := wazerohost.New(wazerohost.Config{Input: input, Logger: logger})
	err = wazerohost.Run(cmd.Context(), wasm, h, wazerohost.RunConfig{
		Name:   name,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	out, ok := h.Output()
	if !ok {
		log.Debug("function returned without output")
		return nil
	}
	log.WithField("output_bytes", len(out)).Debug("function finished")

	_, err = cmd.OutOrStdout().Write(append(out, '\n'))
	return err
}
