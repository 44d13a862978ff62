/*
Package host defines the import surface a Faasm guest consumes and the
bindings that satisfy it.

Host is the injected capability: every capability client (invocation, state)
talks to the execution host exclusively through it, so tests can substitute an
in-memory implementation such as hostmock.Host.

Faasm calls the raw functions exported by the host in the "env" module; it
only does real work in wasip1 and TinyGo WebAssembly builds and reports
ErrHostUnavailable elsewhere. The wapchost package carries the same operations
over waPC host calls.

Reads follow the probe convention: a call with a zero-capacity buffer returns
the total size available instead of copying anything.
*/
package host
