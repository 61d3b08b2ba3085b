package watchlist

import "math/rand"

// DefaultIDLength is the length of generated watchlist identifiers.
const DefaultIDLength = 12

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID generates a random lowercase base-36 identifier of the default
// length. It is not cryptographically secure; collision probability across
// large populations is the caller's concern.
func NewID() string {
	return NewIDWithLength(DefaultIDLength)
}

// NewIDWithLength generates a random lowercase base-36 identifier of the
// given length. Non-positive lengths fall back to the default.
func NewIDWithLength(length int) string {
	if length <= 0 {
		length = DefaultIDLength
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
