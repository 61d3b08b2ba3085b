package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/grovetools/watchlist/cli"
	"github.com/grovetools/watchlist/errors"
	"github.com/grovetools/watchlist/watchlist"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the watchlist state",
		Long: `Shows the watchlist: items, derived totals, and metadata. With --filter,
items are narrowed by a boolean expression evaluated against each item,
e.g. --filter 'price > 1000 && quantity >= 2'. Available variables:
id, price, quantity, itemTotal, fields.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			state := session.State()

			if filter != "" {
				filtered, err := filterItems(state.Items, filter)
				if err != nil {
					return handleError(cmd, err)
				}
				return printItems(cmd, filtered)
			}

			return printState(cmd, state)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Boolean expression to narrow the item list")

	return cmd
}

// filterItems keeps the items for which the expression evaluates to true.
func filterItems(items []watchlist.Item, filter string) ([]watchlist.Item, error) {
	program, err := expr.Compile(filter, expr.AsBool())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid filter expression").
			WithDetail("filter", filter)
	}

	var kept []watchlist.Item
	for _, item := range items {
		env := map[string]interface{}{
			"id":        item.ID,
			"price":     item.Price,
			"quantity":  item.Quantity,
			"itemTotal": item.ItemTotal,
			"fields":    item.Fields,
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "filter expression failed").
				WithDetail("filter", filter).
				WithDetail("id", item.ID)
		}
		if keep, ok := result.(bool); ok && keep {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

func printItems(cmd *cobra.Command, items []watchlist.Item) error {
	if opts := cli.GetOptions(cmd); opts.JSONOutput {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := yaml.Marshal(items)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
