package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewEmptyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "empty",
		Short: "Reset the watchlist to its empty state",
		Long: `Resets the watchlist to the canonical empty state. Items, metadata, and
the current watchlist id are all discarded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmOrAbort(cmd, "Empty the watchlist?")
			if err != nil {
				return handleError(cmd, err)
			}
			if !ok {
				fmt.Println("Aborted")
				return nil
			}

			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := session.EmptyWatchlist(); err != nil {
				return handleError(cmd, err)
			}

			fmt.Println("Watchlist emptied")
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
