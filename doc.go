/*
Package sdk provides the core entry point and runtime configuration for
building Faasm WebAssembly functions in Go.

The package exposes New to register a waPC handler, a RuntimeConfig shared by
host transports that need a namespace, and aliases of the host package's
sentinel errors. New and RuntimeConfig are only built for TinyGo and native
targets; a wasip1 guest uses the host package directly. Capability clients live in their own
packages: invocation for input and output, state for the key/value store, and
logging for diagnostic lines.
*/
package sdk
