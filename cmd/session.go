// Package cmd holds the wl CLI subcommands. Each command resolves a
// watchlist session from the merged configuration and the file store, runs
// one operation against it, and prints the result.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/watchlist/cli"
	"github.com/grovetools/watchlist/config"
	"github.com/grovetools/watchlist/errors"
	"github.com/grovetools/watchlist/store"
	"github.com/grovetools/watchlist/util/pathutil"
	"github.com/grovetools/watchlist/watchlist"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loadConfig resolves the effective configuration for a command: the
// explicit --config file when given, the merged hierarchy otherwise, and
// built-in defaults when no config file exists at all.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := cli.GetOptions(cmd)
	if opts.ConfigFile != "" {
		return config.Load(opts.ConfigFile)
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		if errors.Is(err, errors.ErrCodeConfigNotFound) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// openSession builds the session a command operates on, backed by the
// configured file store.
func openSession(cmd *cobra.Command) (*watchlist.Session, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	storePath, err := pathutil.Expand(cfg.Store.Path)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to resolve store path").
			WithDetail("path", cfg.Store.Path)
	}

	session := watchlist.NewSession(watchlist.Options{
		ID:           cfg.Watchlist.ID,
		IDLength:     cfg.Watchlist.IDLength,
		DefaultItems: seedItems(cfg.DefaultItems),
		Metadata:     cfg.Metadata,
		Store:        store.NewFile(storePath),
	})
	return session, cfg, nil
}

// seedItems converts configured default items into watchlist items.
func seedItems(items []config.ItemConfig) []watchlist.Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]watchlist.Item, len(items))
	for i, item := range items {
		out[i] = watchlist.Item{
			ID:       item.ID,
			Price:    item.Price,
			Quantity: item.Quantity,
			Fields:   item.Fields,
		}
	}
	return out
}

// printState renders a state snapshot as YAML, or JSON when --json is set.
func printState(cmd *cobra.Command, state watchlist.State) error {
	if opts := cli.GetOptions(cmd); opts.JSONOutput {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

// handleError routes an operation failure through the shared error handler.
func handleError(cmd *cobra.Command, err error) error {
	opts := cli.GetOptions(cmd)
	cli.NewErrorHandler(opts.Verbose).Handle(err)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return err
}

// parseFieldArgs parses repeated key=value arguments into a map, decoding
// values as YAML scalars so numbers and booleans keep their types.
func parseFieldArgs(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	fields := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, rawValue, err := splitKeyValue(pair)
		if err != nil {
			return nil, err
		}
		var value interface{}
		if err := yaml.Unmarshal([]byte(rawValue), &value); err != nil {
			value = rawValue
		}
		fields[key] = value
	}
	return fields, nil
}

func splitKeyValue(pair string) (string, string, error) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			if i == 0 {
				break
			}
			return pair[:i], pair[i+1:], nil
		}
	}
	return "", "", errors.InvalidInput(fmt.Sprintf("expected key=value, got '%s'", pair))
}

// confirmOrAbort asks for confirmation on destructive operations unless
// --yes was passed.
func confirmOrAbort(cmd *cobra.Command, prompt string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}

	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes", nil
}
