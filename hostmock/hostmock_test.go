package hostmock

import (
	"bytes"
	"errors"
	"testing"
)

type TestCase struct {
	name       string
	cfg        Config
	payload    []byte
	namespace  string
	capability string
	function   string
	want       []byte
	wantErr    error
}

var ErrMockError = errors.New("Mock error")

func TestHostMock(t *testing.T) {
	tt := []TestCase{
		{
			name: "Happy path",
			cfg: Config{
				ExpectedNamespace:  "test",
				ExpectedCapability: "test",
				ExpectedFunction:   "test",
				PayloadValidator: func(_ []byte) error {
					return nil
				},
				Response: func() []byte {
					return []byte("test")
				},
			},
			namespace:  "test",
			capability: "test",
			function:   "test",
			payload:    []byte("test"),
			want:       []byte("test"),
		},
		{
			name: "Custom fail error",
			cfg: Config{
				ExpectedNamespace:  "test",
				ExpectedCapability: "test",
				ExpectedFunction:   "test",
				Error:              ErrMockError,
				Fail:               true,
				Response: func() []byte {
					return []byte("test")
				},
			},
			namespace:  "test",
			capability: "test",
			function:   "test",
			payload:    []byte("test"),
			wantErr:    ErrMockError,
		},
		{
			name: "Default fail error",
			cfg: Config{
				ExpectedNamespace:  "test",
				ExpectedCapability: "test",
				ExpectedFunction:   "test",
				Fail:               true,
			},
			namespace:  "test",
			capability: "test",
			function:   "test",
			payload:    []byte("whatever"),
			wantErr:    ErrOperationFailed,
		},
		{
			name: "Nil response returns nil",
			cfg: Config{
				ExpectedNamespace:  "test",
				ExpectedCapability: "test",
				ExpectedFunction:   "test",
			},
			namespace:  "test",
			capability: "test",
			function:   "test",
			payload:    []byte("ok"),
		},
		{
			name: "Invalid Payload Format",
			cfg: Config{
				PayloadValidator: func(payload []byte) error {
					if string(payload) != "valid" {
						return ErrMockError
					}
					return nil
				},
				Response: func() []byte {
					return []byte("test")
				},
			},
			namespace:  "test",
			capability: "test",
			function:   "test",
			payload:    []byte("invalid"),
			wantErr:    ErrMockError,
		},
		{
			name: "Blank expectations match anything",
			cfg: Config{
				Response: func() []byte {
					return []byte("any")
				},
			},
			namespace:  "faasm",
			capability: "state",
			function:   "push",
			payload:    []byte("k"),
			want:       []byte("any"),
		},
		{
			name: "Unexpected Namespace",
			cfg: Config{
				ExpectedNamespace:  "expected",
				ExpectedCapability: "test",
				ExpectedFunction:   "test",
			},
			namespace:  "test",
			capability: "test",
			function:   "test",
			payload:    []byte("test"),
			wantErr:    ErrUnexpectedNamespace,
		},
		{
			name: "Unexpected Capability",
			cfg: Config{
				ExpectedNamespace:  "test",
				ExpectedCapability: "expected",
				ExpectedFunction:   "test",
			},
			namespace:  "test",
			capability: "test",
			function:   "test",
			payload:    []byte("test"),
			wantErr:    ErrUnexpectedCapability,
		},
		{
			name: "Unexpected Function",
			cfg: Config{
				ExpectedNamespace:  "test",
				ExpectedCapability: "test",
				ExpectedFunction:   "expected",
			},
			namespace:  "test",
			capability: "test",
			function:   "test",
			payload:    []byte("test"),
			wantErr:    ErrUnexpectedFunction,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			mock, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("New Mock instance creation failed: %v", err)
			}

			got, err := mock.HostCall(tc.namespace, tc.capability, tc.function, tc.payload)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Mock call returned unexpected error: got %v, want %v", err, tc.wantErr)
			}

			if !bytes.Equal(got, tc.want) {
				t.Fatalf("Mock call returned unexpected response: got %v, want %v", got, tc.want)
			}

			calls := mock.Calls()
			if len(calls) != 1 {
				t.Fatalf("expected 1 recorded call, got %d", len(calls))
			}
			if calls[0].Function != tc.function || !bytes.Equal(calls[0].Payload, tc.payload) {
				t.Fatalf("recorded call mismatch: %+v", calls[0])
			}
		})
	}
}
