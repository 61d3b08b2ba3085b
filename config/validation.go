package config

import (
	"fmt"

	"github.com/grovetools/watchlist/errors"
)

const (
	// DefaultStorePath is where the file store lives unless configured otherwise.
	DefaultStorePath = ".watchlist/store.yml"

	// DefaultIDLength matches the identifier generator default.
	DefaultIDLength = 12
)

// applyDefaults fills in defaults for fields the user left unset.
func applyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Watchlist.IDLength == 0 {
		cfg.Watchlist.IDLength = DefaultIDLength
	}
}

// Validate checks a merged configuration for semantic problems.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ConfigInvalid("configuration is empty")
	}

	if cfg.Watchlist.IDLength < 0 {
		return errors.ConfigInvalid("watchlist.id_length must not be negative")
	}

	seen := make(map[string]bool, len(cfg.DefaultItems))
	for i, item := range cfg.DefaultItems {
		if item.ID == "" {
			return errors.ConfigInvalid(fmt.Sprintf("default_items[%d] is missing an id", i))
		}
		if seen[item.ID] {
			return errors.ConfigInvalid(fmt.Sprintf("default_items contains duplicate id '%s'", item.ID)).
				WithDetail("id", item.ID)
		}
		seen[item.ID] = true
		if item.Quantity < 0 {
			return errors.ConfigInvalid(fmt.Sprintf("default_items[%d] has a negative quantity", i)).
				WithDetail("id", item.ID)
		}
	}

	return nil
}

// Default returns a configuration with all defaults applied, for running
// without a project config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
