package watchlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDLength(t *testing.T) {
	assert.Len(t, NewID(), DefaultIDLength)

	for _, n := range []int{1, 8, 12, 32} {
		assert.Len(t, NewIDWithLength(n), n)
	}

	// Non-positive lengths fall back to the default
	assert.Len(t, NewIDWithLength(0), DefaultIDLength)
	assert.Len(t, NewIDWithLength(-3), DefaultIDLength)
}

func TestNewIDAlphabet(t *testing.T) {
	id := NewIDWithLength(256)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(idAlphabet, r), "unexpected character %q", r)
	}
	assert.Equal(t, strings.ToLower(id), id)
}

func TestNewIDSuccessiveCallsDiffer(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id], "generated duplicate id %q", id)
		seen[id] = true
	}
}
