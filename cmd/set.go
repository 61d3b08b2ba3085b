package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/watchlist/config"
	"github.com/grovetools/watchlist/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewSetCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the watchlist items wholesale from a YAML file",
		Long: `Replaces all tracked items with the list read from --file. The file is a
YAML sequence of items:

  - id: aapl
    price: 1000
  - id: msft
    price: 2000
    quantity: 2

This is a full replacement, not a merge.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return handleError(cmd, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read items file").
					WithDetail("path", file))
			}

			var items []config.ItemConfig
			if err := yaml.Unmarshal(data, &items); err != nil {
				return handleError(cmd, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to parse items file").
					WithDetail("path", file))
			}

			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := session.SetItems(seedItems(items)); err != nil {
				return handleError(cmd, err)
			}

			fmt.Printf("Watchlist now tracks %d item(s)\n", session.State().TotalUniqueItems)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with the replacement item list")
	cmd.MarkFlagRequired("file")

	return cmd
}
