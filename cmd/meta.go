package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/watchlist/cli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewMetaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Inspect and edit watchlist metadata",
	}

	cmd.AddCommand(newMetaShowCmd())
	cmd.AddCommand(newMetaSetCmd())
	cmd.AddCommand(newMetaUnsetCmd())
	cmd.AddCommand(newMetaClearCmd())

	return cmd
}

func newMetaShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the watchlist metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			metadata := session.State().Metadata
			if opts := cli.GetOptions(cmd); opts.JSONOutput {
				data, err := json.MarshalIndent(metadata, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			data, err := yaml.Marshal(metadata)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newMetaSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key=value>...",
		Short: "Merge key=value pairs into the metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseFieldArgs(args)
			if err != nil {
				return handleError(cmd, err)
			}

			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := session.UpdateMetadata(payload); err != nil {
				return handleError(cmd, err)
			}

			fmt.Printf("Updated %d metadata key(s)\n", len(payload))
			return nil
		},
	}
}

func newMetaUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>...",
		Short: "Remove keys from the metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			remaining := session.State().Metadata
			for _, key := range args {
				delete(remaining, key)
			}

			if err := session.SetMetadata(remaining); err != nil {
				return handleError(cmd, err)
			}

			fmt.Printf("Removed %d metadata key(s)\n", len(args))
			return nil
		},
	}
}

func newMetaClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all watchlist metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := session.ClearMetadata(); err != nil {
				return handleError(cmd, err)
			}

			fmt.Println("Metadata cleared")
			return nil
		},
	}
}
