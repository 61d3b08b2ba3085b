package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/watchlist/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	// Check for specific error codes
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a watchlist.yml or pass --config.\n")
		return err

	case errors.ErrCodeItemNotFound:
		if wlErr, ok := err.(*errors.WatchlistError); ok {
			fmt.Fprintf(os.Stderr, "❌ Item '%s' is not in the watchlist\n", wlErr.Details["id"])
			fmt.Fprintf(os.Stderr, "Run 'wl list' to see tracked items.\n")
		}
		return err

	case errors.ErrCodeMissingID:
		fmt.Fprintf(os.Stderr, "❌ The item needs an id before it can be added\n")
		return err

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		return err

	default:
		// Generic error handling
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if wlErr, ok := err.(*errors.WatchlistError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", wlErr.ToJSON())
			}
		}
		return err
	}
}
