/*
Package state provides a client for the Faasm key/value state store.

Entries live in a node-local store and can be promoted to the global store
with Push. Reads ask the host for the entry size with a zero-capacity read
before fetching, so the guest never allocates a buffer the host disagrees
with. A zero size means the key is absent, reported as ErrKeyNotFound.

Padded entries reserve a fixed slot so a later write can reuse it in place:

	[u32 little-endian length][payload][zero filler up to the slot size]

A slot whose length prefix is zero reads as absent. Slot size disagreements
are reported as ErrSlotSizeMismatch and ErrSlotTooSmall; they indicate a
programming error and should end the invocation rather than be retried.

Locks are plain acquire/release calls with no handle. WithWriteLock and
WithReadLock pair them for a callback so the release happens on every path.
*/
package state
