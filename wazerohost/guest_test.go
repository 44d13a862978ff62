package wazerohost

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterWasm holds examples/counter compiled for wasip1, built once in TestMain.
var (
	counterWasm     []byte
	counterBuildErr error
)

func TestMain(m *testing.M) {
	code := func() int {
		dir, err := os.MkdirTemp("", "wazerohost")
		if err != nil {
			counterBuildErr = err
			return m.Run()
		}
		defer os.RemoveAll(dir)

		counterWasm, counterBuildErr = buildGuest(dir, "./examples/counter")
		return m.Run()
	}()
	os.Exit(code)
}

// buildGuest compiles the package at pkg, relative to the module root, for wasip1.
func buildGuest(dir, pkg string) ([]byte, error) {
	gobin, err := exec.LookPath("go")
	if err != nil {
		return nil, err
	}

	out := filepath.Join(dir, filepath.Base(pkg)+".wasm")
	cmd := exec.Command(gobin, "build", "-o", out, pkg)
	cmd.Dir = ".."
	cmd.Env = append(os.Environ(), "GOOS=wasip1", "GOARCH=wasm", "CGO_ENABLED=0")
	if b, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("go build %s: %w\n%s", pkg, err, b)
	}
	return os.ReadFile(out)
}

func TestCounterGuest(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available to build the guest")
	}
	require.NoError(t, counterBuildErr, "examples/counter must build for wasip1")

	ctx := context.Background()
	h, hook := newTestHost(t, Config{Input: []byte("hits")})

	var stdout bytes.Buffer
	require.NoError(t, Run(ctx, counterWasm, h, RunConfig{Name: "counter", Stdout: &stdout}))

	out, ok := h.Output()
	require.True(t, ok)
	assert.Equal(t, "1", string(out))
	assert.Contains(t, stdout.String(), `{"info":counter hits is now 1}`)

	want := make([]byte, 64)
	copy(want, []byte{0x01, 0x00, 0x00, 0x00, '1'})
	slot, ok := h.Global("hits")
	require.True(t, ok, "counter must be pushed to the global store")
	assert.Equal(t, want, slot)

	stdout.Reset()
	require.NoError(t, Run(ctx, counterWasm, h, RunConfig{Name: "counter", Stdout: &stdout}))

	out, _ = h.Output()
	assert.Equal(t, "2", string(out))
	assert.Contains(t, stdout.String(), `{"info":counter hits is now 2}`)

	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, "rejected guest call", e.Message, "unexpected rejected call: %v", e.Data)
	}
}

func TestCounterGuestFatal(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available to build the guest")
	}
	require.NoError(t, counterBuildErr, "examples/counter must build for wasip1")

	h := New(Config{})

	var stdout bytes.Buffer
	require.NoError(t, Run(context.Background(), counterWasm, h, RunConfig{Stdout: &stdout}),
		"a fatal line exits with status 0")
	assert.Contains(t, stdout.String(), `{"err":input must name a counter}`)

	_, ok := h.Output()
	assert.False(t, ok)
}
