package cmd

import (
	"fmt"

	"github.com/grovetools/watchlist/watchlist"
	"github.com/spf13/cobra"
)

func NewAddCmd() *cobra.Command {
	var (
		price    float64
		quantity int
		fields   []string
	)

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add an item to the watchlist",
		Long: `Adds an item to the watchlist. Adding an id that is already tracked
accumulates the quantity onto the existing item instead of creating a
duplicate entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			extra, err := parseFieldArgs(fields)
			if err != nil {
				return handleError(cmd, err)
			}

			item := watchlist.Item{
				ID:     args[0],
				Price:  price,
				Fields: extra,
			}
			if err := session.AddItemWithQuantity(item, quantity); err != nil {
				return handleError(cmd, err)
			}

			if stored, ok := session.GetItem(args[0]); ok {
				fmt.Printf("Tracking '%s' (quantity %d, total %.2f)\n", stored.ID, stored.Quantity, stored.ItemTotal)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&price, "price", "p", 0, "Unit price of the item")
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Quantity to add")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Extra item field as key=value (repeatable)")

	return cmd
}
