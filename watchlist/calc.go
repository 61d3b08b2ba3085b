package watchlist

// Aggregate calculator: pure, deterministic functions deriving per-item and
// whole-watchlist totals. Inputs are assumed normalized by the reducer;
// in particular the calculator never defaults a missing quantity.

// ItemTotals returns a copy of items with each ItemTotal recomputed as
// price times quantity.
func ItemTotals(items []Item) []Item {
	out := cloneItems(items)
	for i := range out {
		out[i].ItemTotal = out[i].Price * float64(out[i].Quantity)
	}
	return out
}

// TotalItems returns the sum of quantities across items.
func TotalItems(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalUniqueItems returns the number of tracked items.
func TotalUniqueItems(items []Item) int {
	return len(items)
}

// IsEmpty reports whether no items are tracked.
func IsEmpty(items []Item) bool {
	return TotalUniqueItems(items) == 0
}
