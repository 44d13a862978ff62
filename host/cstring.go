package host

import (
	"errors"
	"strings"
)

// ErrNulInKey is returned when a key cannot be passed as a NUL-terminated string.
var ErrNulInKey = errors.New("key contains a NUL byte")

// cString returns key as a NUL-terminated byte slice.
func cString(key string) ([]byte, error) {
	if strings.IndexByte(key, 0) >= 0 {
		return nil, ErrNulInKey
	}
	if _, err := length(len(key) + 1); err != nil {
		return nil, err
	}
	b := make([]byte, len(key)+1)
	copy(b, key)
	return b, nil
}
