package watchlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemTotals(t *testing.T) {
	items := []Item{
		{ID: "a", Price: 1000, Quantity: 1},
		{ID: "b", Price: 2000, Quantity: 3},
		{ID: "c", Price: 19.99, Quantity: 2},
	}

	got := ItemTotals(items)

	assert.Equal(t, 1000.0, got[0].ItemTotal)
	assert.Equal(t, 6000.0, got[1].ItemTotal)
	assert.InDelta(t, 39.98, got[2].ItemTotal, 1e-9)

	// Input is never mutated
	assert.Equal(t, 0.0, items[0].ItemTotal)
}

func TestItemTotalsOverwritesCallerValue(t *testing.T) {
	items := []Item{{ID: "a", Price: 100, Quantity: 2, ItemTotal: 999999}}

	got := ItemTotals(items)

	assert.Equal(t, 200.0, got[0].ItemTotal, "caller-supplied itemTotal is never authoritative")
}

func TestTotalItems(t *testing.T) {
	assert.Equal(t, 0, TotalItems(nil))
	assert.Equal(t, 0, TotalItems([]Item{}))
	assert.Equal(t, 6, TotalItems([]Item{
		{ID: "a", Quantity: 1},
		{ID: "b", Quantity: 5},
	}))
}

func TestTotalUniqueItems(t *testing.T) {
	assert.Equal(t, 0, TotalUniqueItems(nil))
	assert.Equal(t, 2, TotalUniqueItems([]Item{
		{ID: "a", Quantity: 4},
		{ID: "b", Quantity: 4},
	}))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty([]Item{}))
	assert.False(t, IsEmpty([]Item{{ID: "a"}}))
}
