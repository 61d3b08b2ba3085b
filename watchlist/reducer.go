package watchlist

import (
	"github.com/grovetools/watchlist/errors"
)

// Reduce applies one action to the current state and returns the resulting
// state. It is pure: the current state is never mutated, and the result is
// rebuilt from the canonical empty template merged with the current state so
// no stale or missing field survives a transition. An unrecognized action
// type is a programming error and fails with INVALID_ACTION; no partial
// state escapes.
func Reduce(current State, action Action) (State, error) {
	next := emptyState()
	next.ID = current.ID
	next.Items = cloneItems(current.Items)
	if current.Metadata != nil {
		next.Metadata = cloneMap(current.Metadata)
	}

	switch action.Type {
	case ActionSetItems:
		// Wholesale replacement, not a merge. Quantities left unset default
		// to 1 before storing.
		items := cloneItems(action.Items)
		for i := range items {
			if items[i].Quantity == 0 {
				items[i].Quantity = 1
			}
		}
		next.Items = items

	case ActionAddItem:
		// Blind append. Preventing duplicate ids is session policy, not
		// reducer policy.
		next.Items = append(next.Items, action.Item.clone())

	case ActionUpdateItem:
		// Field-level merge over the matching item. A missing id is a
		// silent no-op.
		for i := range next.Items {
			if next.Items[i].ID == action.ID {
				next.Items[i] = action.Patch.applyTo(next.Items[i])
				break
			}
		}

	case ActionRemoveItem:
		filtered := next.Items[:0]
		for _, item := range next.Items {
			if item.ID != action.ID {
				filtered = append(filtered, item)
			}
		}
		next.Items = filtered

	case ActionEmptyWatchlist:
		// Reverts to the canonical empty template wholesale. The current id
		// and metadata are deliberately discarded.
		next = emptyState()

	case ActionClearMetadata:
		next.Metadata = map[string]interface{}{}

	case ActionSetMetadata:
		next.Metadata = cloneMap(action.Metadata)

	case ActionUpdateMetadata:
		for k, v := range action.Metadata {
			next.Metadata[k] = v
		}

	default:
		return State{}, errors.InvalidAction(string(action.Type))
	}

	// Derived fields are recomputed on every successful transition and are
	// never settable through an action.
	next.Items = ItemTotals(next.Items)
	next.TotalItems = TotalItems(next.Items)
	next.TotalUniqueItems = TotalUniqueItems(next.Items)
	next.IsEmpty = IsEmpty(next.Items)

	return next, nil
}
