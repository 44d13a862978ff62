//go:build tinygo || !wasm

/*
Package wapchost binds host.Host to waPC host calls for guests built with
TinyGo and hosted by a waPC runtime.

State reads and writes are encoded with the Tarmac kvstore protobuf messages
and sent to the "state" capability; push and lock calls carry the raw key.
Invocation input and output come from the waPC handler payload, see
Client.Wrap.

	st, _ := wapchost.New(wapchost.Config{})
	_, err := sdk.New(sdk.Config{Handler: st.Wrap(run)})
*/
package wapchost
