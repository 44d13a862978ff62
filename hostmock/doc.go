/*
Package hostmock provides friendly pretend hosts for Faasm guest code.

It's designed for SDK development and for tests of guest functions that want
to check exactly what reaches the host, without a real host running.

Two mocks live here:

  - Host is an in-memory host.Host. It keeps the invocation input and output,
    a local and a global state store, and per-key read/write locks, and it
    records every call so tests can count probes and fetches.
  - Mock is a waPC HostCall. It validates the namespace, capability and
    function of each call, runs an optional PayloadValidator, and returns a
    scripted Response or failure. Use it with wapchost.Client.

Quick start

	h := hostmock.NewHost(hostmock.HostConfig{Input: []byte("hello")})
	io, _ := invocation.New(invocation.Config{Host: h})
	in, _ := io.GetInput()
	// h.Count(hostmock.OpReadInput) == 2: one probe, one fetch

	m, _ := hostmock.New(hostmock.Config{
	  ExpectedNamespace:  "faasm",
	  ExpectedCapability: "state",
	  ExpectedFunction:   "push",
	})
	w, _ := wapchost.New(wapchost.Config{HostCall: m.HostCall})

Behavior

  - Host locks never block. A conflicting request returns ErrWouldBlock and
    releasing a lock that is not held returns ErrNotLocked.
  - HostConfig.Errors forces named operations to fail; ReportSize rewrites
    probe results to simulate a misbehaving host.
  - If Mock.Fail is true and Error is set, HostCall returns that error; with
    no Error it returns ErrOperationFailed.
  - Mock only enforces the Expected* values you set; blank fields match anything.
*/
package hostmock
