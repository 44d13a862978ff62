package state

import "errors"

var (
	// ErrInvalidKey is returned for keys containing a NUL byte or invalid UTF-8.
	ErrInvalidKey = errors.New("key is invalid")

	// ErrKeyNotFound reports an absent entry. It is not a failure of the store.
	ErrKeyNotFound = errors.New("key not found")

	// ErrSlotSizeMismatch is returned when a padded entry's stored size differs from the expected slot size.
	ErrSlotSizeMismatch = errors.New("stored size does not match padded slot size")

	// ErrSlotTooSmall is returned when a payload and its length prefix do not fit the slot.
	ErrSlotTooSmall = errors.New("padded slot is too small for payload")

	// ErrSlotTooLarge is returned when a slot cannot be described by the host's i32 lengths.
	ErrSlotTooLarge = errors.New("padded slot is too large")

	// ErrCorruptSlot is returned when a padded slot's length prefix points past its end.
	ErrCorruptSlot = errors.New("padded slot is corrupt")
)
