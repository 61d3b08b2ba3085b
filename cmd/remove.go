package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an item from the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := session.RemoveItem(args[0]); err != nil {
				return handleError(cmd, err)
			}

			fmt.Printf("Removed '%s'\n", args[0])
			return nil
		},
	}
}
