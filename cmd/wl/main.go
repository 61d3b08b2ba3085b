package main

import (
	"os"
	"runtime"

	"github.com/grovetools/watchlist/cli"
	"github.com/grovetools/watchlist/cmd"
	"github.com/grovetools/watchlist/version"
	"github.com/joho/godotenv"
)

func main() {
	// Load a local .env before anything reads the environment; config files
	// may reference ${VAR} values defined there.
	_ = godotenv.Load()

	rootCmd := cli.NewStandardCommand(
		"wl",
		"A persistent watchlist of tracked items",
	)

	info := version.GetInfo()
	rootCmd.Version = info.Version
	cli.SetVersionTemplate(rootCmd, cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: runtime.GOARCH,
	})

	rootCmd.AddCommand(cmd.NewAddCmd())
	rootCmd.AddCommand(cmd.NewRemoveCmd())
	rootCmd.AddCommand(cmd.NewQuantityCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewSetCmd())
	rootCmd.AddCommand(cmd.NewEmptyCmd())
	rootCmd.AddCommand(cmd.NewMetaCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewSchemaCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("wl", cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: runtime.GOARCH,
	}))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
