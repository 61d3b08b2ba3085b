package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Load("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Save("a", "one"))
	require.NoError(t, m.Save("b", "two"))
	require.NoError(t, m.Save("a", "replaced"))

	value, ok, err := m.Load("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "replaced", value)

	assert.Equal(t, 2, m.Len())
}
