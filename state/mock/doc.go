/*
Package mock provides a mock implementation of the state.Store interface for testing Faasm functions.

This package implements an in-memory state store with configurable behaviors so you can test
code that depends on the state component without a host. Padded writes are stored with the same
slot layout the real client uses, so slot size mismatches surface exactly as they would in
production.

# Basic Usage

	import (
		"testing"

		"github.com/faasm/faasm-go-sdk/state/mock"
	)

	func TestSomething(t *testing.T) {
		m := mock.New(mock.Config{Seed: map[string][]byte{"a": []byte("1")}})
		v, err := m.Read("a")
		// assert v == "1" and err == nil
	}

# Overriding Behavior

	m.OnRead("missing").ReturnError(state.ErrKeyNotFound)
	m.OnWrite("bad").ReturnError(fmt.Errorf("reject write"))
	m.OnLockWrite("busy").ReturnError(mock.ErrExample)

# Inspecting Calls

	for _, c := range m.Calls {
		// c.Op, c.Key, c.Value, c.TotalSize
	}
*/
package mock
