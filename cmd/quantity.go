package cmd

import (
	"fmt"
	"strconv"

	"github.com/grovetools/watchlist/errors"
	"github.com/spf13/cobra"
)

func NewQuantityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quantity <id> <n>",
		Short: "Set the tracked quantity of an item",
		Long: `Sets the tracked quantity of an item. A quantity of zero or less
removes the item from the watchlist entirely.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return handleError(cmd, errors.InvalidInput(fmt.Sprintf("quantity must be an integer, got '%s'", args[1])))
			}

			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := session.UpdateItemQuantity(args[0], quantity); err != nil {
				return handleError(cmd, err)
			}

			if stored, ok := session.GetItem(args[0]); ok {
				fmt.Printf("'%s' now at quantity %d (total %.2f)\n", stored.ID, stored.Quantity, stored.ItemTotal)
			} else {
				fmt.Printf("Removed '%s'\n", args[0])
			}
			return nil
		},
	}
}
