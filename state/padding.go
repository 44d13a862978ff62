package state

import (
	"encoding/binary"
	"fmt"
	"math"
)

// PaddingHeaderSize is the length of the little-endian u32 prefix of a padded slot.
const PaddingHeaderSize = 4

// EncodePadded lays value out in a zeroed slot of totalSize bytes.
func EncodePadded(value []byte, totalSize int) ([]byte, error) {
	if totalSize > math.MaxInt32 {
		return nil, fmt.Errorf("%w: slot of %d bytes", ErrSlotTooLarge, totalSize)
	}
	if totalSize < PaddingHeaderSize || len(value) > totalSize-PaddingHeaderSize {
		return nil, fmt.Errorf("%w: %d byte payload needs %d bytes, slot has %d",
			ErrSlotTooSmall, len(value), len(value)+PaddingHeaderSize, totalSize)
	}

	slot := make([]byte, totalSize)
	binary.LittleEndian.PutUint32(slot, uint32(len(value)))
	copy(slot[PaddingHeaderSize:], value)
	return slot, nil
}

// DecodePadded returns a copy of the payload held in slot.
// A zero length prefix yields ErrKeyNotFound.
func DecodePadded(slot []byte) ([]byte, error) {
	if len(slot) < PaddingHeaderSize {
		return nil, fmt.Errorf("%w: %d byte slot has no length prefix", ErrCorruptSlot, len(slot))
	}

	innerLen := binary.LittleEndian.Uint32(slot)
	if innerLen == 0 {
		return nil, ErrKeyNotFound
	}
	if uint64(innerLen) > uint64(len(slot)-PaddingHeaderSize) {
		return nil, fmt.Errorf("%w: length prefix %d exceeds %d byte slot", ErrCorruptSlot, innerLen, len(slot))
	}

	out := make([]byte, innerLen)
	copy(out, slot[PaddingHeaderSize:])
	return out, nil
}
