// Package wazerohost implements the Faasm host import surface for a wazero
// runtime, so guest functions built with this SDK can run locally.
//
// State lives in memory: writes go to the local store, PushState copies an
// entry to the global store, and reads of keys missing locally fall back to
// the global one. Read and write locks block the calling guest until granted.
package wazerohost
