package cmd

import (
	"fmt"

	"github.com/grovetools/watchlist/watchlist"
	"github.com/spf13/cobra"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the persisted state layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := watchlist.GenerateSchema()
			if err != nil {
				return handleError(cmd, err)
			}

			fmt.Println(string(data))
			return nil
		},
	}
}
