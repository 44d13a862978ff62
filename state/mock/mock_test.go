package mock_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/faasm/faasm-go-sdk/state"
	statemock "github.com/faasm/faasm-go-sdk/state/mock"
)

// InterfaceTestCase defines a test case for Store operations.
type InterfaceTestCase struct {
	Name           string
	Key            string
	Value          []byte
	TotalSize      int
	ExpectedErrors map[string]error
}

func TestStoreInterface(t *testing.T) {
	tt := []InterfaceTestCase{
		{
			Name:      "Valid Key/Value",
			Key:       "key1",
			Value:     []byte("boring"),
			TotalSize: 16,
			ExpectedErrors: map[string]error{
				"WRITE":        nil,
				"READ":         nil,
				"WRITE_PADDED": nil,
				"READ_PADDED":  nil,
			},
		},
		{
			Name:      "NUL Key",
			Key:       "a\x00b",
			Value:     []byte("less_boring"),
			TotalSize: 32,
			ExpectedErrors: map[string]error{
				"WRITE":        state.ErrInvalidKey,
				"READ":         state.ErrInvalidKey,
				"WRITE_PADDED": state.ErrInvalidKey,
				"READ_PADDED":  state.ErrInvalidKey,
			},
		},
		{
			Name:      "Slot Too Small",
			Key:       "key3",
			Value:     []byte("too long for slot"),
			TotalSize: 8,
			ExpectedErrors: map[string]error{
				"WRITE":        nil,
				"READ":         nil,
				"WRITE_PADDED": state.ErrSlotTooSmall,
				"READ_PADDED":  state.ErrSlotSizeMismatch,
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			m := statemock.New(statemock.Config{})

			t.Run("WRITE", func(t *testing.T) {
				if err := m.Write(tc.Key, tc.Value); !errors.Is(err, tc.ExpectedErrors["WRITE"]) {
					t.Fatalf("Expected error %v, got %v", tc.ExpectedErrors["WRITE"], err)
				}
			})

			t.Run("READ", func(t *testing.T) {
				value, err := m.Read(tc.Key)
				if !errors.Is(err, tc.ExpectedErrors["READ"]) {
					t.Fatalf("Expected error %v, got %v", tc.ExpectedErrors["READ"], err)
				}
				if err == nil && !bytes.Equal(value, tc.Value) {
					t.Fatalf("Expected value %q, got %q", tc.Value, value)
				}
			})

			t.Run("WRITE_PADDED", func(t *testing.T) {
				err := m.WriteWithPadding(tc.Key, tc.Value, tc.TotalSize)
				if !errors.Is(err, tc.ExpectedErrors["WRITE_PADDED"]) {
					t.Fatalf("Expected error %v, got %v", tc.ExpectedErrors["WRITE_PADDED"], err)
				}
			})

			t.Run("READ_PADDED", func(t *testing.T) {
				value, err := m.ReadWithPadding(tc.Key, tc.TotalSize)
				if !errors.Is(err, tc.ExpectedErrors["READ_PADDED"]) {
					t.Fatalf("Expected error %v, got %v", tc.ExpectedErrors["READ_PADDED"], err)
				}
				if err == nil && !bytes.Equal(value, tc.Value) {
					t.Fatalf("Expected value %q, got %q", tc.Value, value)
				}
			})
		})
	}
}

func TestOverrides(t *testing.T) {
	m := statemock.New(statemock.Config{Seed: map[string][]byte{"a": []byte("1")}})

	m.OnRead("a").ReturnValue([]byte("overridden"))
	m.OnWrite("bad").ReturnError(statemock.ErrExample)
	m.OnLockWrite("busy").ReturnError(statemock.ErrExample)

	if v, err := m.Read("a"); err != nil || string(v) != "overridden" {
		t.Fatalf("expected overridden read, got %q, %v", v, err)
	}
	if err := m.Write("bad", []byte("x")); !errors.Is(err, statemock.ErrExample) {
		t.Fatalf("expected ErrExample, got %v", err)
	}
	if _, err := m.Read("bad"); !errors.Is(err, state.ErrKeyNotFound) {
		t.Fatalf("rejected write must not be stored, got %v", err)
	}

	err := state.WithWriteLock(m, "busy", func() error {
		t.Fatalf("callback must not run when the lock is refused")
		return nil
	})
	if !errors.Is(err, statemock.ErrExample) {
		t.Fatalf("expected ErrExample, got %v", err)
	}
}

func TestLocksAndPush(t *testing.T) {
	m := statemock.New(statemock.Config{})

	err := state.WithWriteLock(m, "counter", func() error {
		if writer, _ := m.Held("counter"); !writer {
			t.Errorf("expected write lock inside callback")
		}
		if err := m.WriteWithPadding("counter", []byte("7"), 16); err != nil {
			return err
		}
		return m.Push("counter")
	})
	if err != nil {
		t.Fatalf("WithWriteLock returned error: %v", err)
	}
	if writer, _ := m.Held("counter"); writer {
		t.Fatalf("expected write lock released")
	}

	slot, ok := m.Pushed("counter")
	if !ok || len(slot) != 16 {
		t.Fatalf("expected pushed 16 byte slot, got %d bytes (present=%v)", len(slot), ok)
	}

	ops := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		ops = append(ops, c.Op)
	}
	want := []string{"LOCK_WRITE", "WRITE_PADDED", "PUSH", "UNLOCK_WRITE"}
	if len(ops) != len(want) {
		t.Fatalf("unexpected call log %v", ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("unexpected call log %v", ops)
		}
	}
}

func TestEmptyPaddedWriteReadsAbsent(t *testing.T) {
	m := statemock.New(statemock.Config{})

	if err := m.WriteWithPadding("k", nil, 8); err != nil {
		t.Fatalf("WriteWithPadding returned error: %v", err)
	}
	if _, err := m.ReadWithPadding("k", 8); !errors.Is(err, state.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}
