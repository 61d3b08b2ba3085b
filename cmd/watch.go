package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/watchlist/cli"
	"github.com/grovetools/watchlist/store"
	"github.com/grovetools/watchlist/util/pathutil"
	"github.com/grovetools/watchlist/watchlist"
	"github.com/spf13/cobra"
)

func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the persisted watchlist as it changes",
		Long: `Watches the store file and prints the watchlist state every time another
process writes it. Useful for following a watchlist that is being driven
from elsewhere. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			storePath, err := pathutil.Expand(cfg.Store.Path)
			if err != nil {
				return handleError(cmd, err)
			}
			key := watchlist.StoreKey(cfg.Watchlist.ID)
			logger := cli.GetLogger(cmd)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return handleError(cmd, err)
			}
			defer watcher.Close()

			// Watch the directory rather than the file: editors and the file
			// store both replace the file, which drops a file-level watch.
			dir := filepath.Dir(storePath)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return handleError(cmd, err)
			}
			if err := watcher.Add(dir); err != nil {
				return handleError(cmd, err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %s (key %q)\n", storePath, key)
			printPersisted(storePath, key)

			for {
				select {
				case <-ctx.Done():
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != filepath.Clean(storePath) {
						continue
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					printPersisted(storePath, key)

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.WithError(err).Warn("Watcher error")
				}
			}
		},
	}
}

// printPersisted reads the blob at key from the store file and prints a
// one-line summary of the state it holds.
func printPersisted(storePath, key string) {
	blob, ok, err := store.NewFile(storePath).Load(key)
	if err != nil || !ok {
		fmt.Printf("(no state persisted at %q yet)\n", key)
		return
	}

	var state watchlist.State
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		fmt.Printf("(unreadable state at %q)\n", key)
		return
	}

	fmt.Printf("watchlist %s: %d unique item(s), %d total, empty=%v\n",
		state.ID, state.TotalUniqueItems, state.TotalItems, state.IsEmpty)
	for _, item := range state.Items {
		fmt.Printf("  %-12s price=%.2f quantity=%d total=%.2f\n",
			item.ID, item.Price, item.Quantity, item.ItemTotal)
	}
}
