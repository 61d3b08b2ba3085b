package errors

import (
	"fmt"
)

// MissingID creates an error for an item added without an identifier
func MissingID() *WatchlistError {
	return New(ErrCodeMissingID, "item requires an id to be added to the watchlist")
}

// ItemNotFound creates an item not found error
func ItemNotFound(id string) *WatchlistError {
	return New(ErrCodeItemNotFound, fmt.Sprintf("item '%s' not found in watchlist", id)).
		WithDetail("id", id)
}

// InvalidAction creates an error for an unrecognized reducer action
func InvalidAction(actionType string) *WatchlistError {
	return New(ErrCodeInvalidAction, fmt.Sprintf("unhandled action type: %s", actionType)).
		WithDetail("action", actionType)
}

// StoreAccess wraps a storage adapter failure
func StoreAccess(op string, key string, err error) *WatchlistError {
	return Wrap(err, ErrCodeStoreAccess, fmt.Sprintf("store %s failed for key '%s'", op, key)).
		WithDetail("op", op).
		WithDetail("key", key)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *WatchlistError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *WatchlistError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// InvalidInput creates a generic invalid input error
func InvalidInput(reason string) *WatchlistError {
	return New(ErrCodeInvalidInput, reason)
}
