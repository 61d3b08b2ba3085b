package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config is the root watchlist.yml configuration.
type Config struct {
	// Version of the configuration format (e.g. "1.0").
	Version string `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`

	// Store configures the durable key-value store backing sessions.
	Store StoreConfig `yaml:"store,omitempty" toml:"store,omitempty" json:"store,omitempty"`

	// Watchlist configures the default session created by the CLI.
	Watchlist WatchlistConfig `yaml:"watchlist,omitempty" toml:"watchlist,omitempty" json:"watchlist,omitempty"`

	// DefaultItems seed a watchlist when no persisted state exists yet.
	DefaultItems []ItemConfig `yaml:"default_items,omitempty" toml:"default_items,omitempty" json:"default_items,omitempty"`

	// Metadata seeds the watchlist metadata when no persisted state exists yet.
	Metadata map[string]interface{} `yaml:"metadata,omitempty" toml:"metadata,omitempty" json:"metadata,omitempty"`

	// Extensions captures tool-specific configuration sections (e.g. "logging")
	// without requiring schema changes here.
	Extensions map[string]interface{} `yaml:",inline" json:"-"`
}

// StoreConfig configures the file-backed store.
type StoreConfig struct {
	// Path to the store file. Defaults to .watchlist/store.yml.
	Path string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
}

// WatchlistConfig configures session identity.
type WatchlistConfig struct {
	// ID pins the session to an explicit watchlist id. When empty a random
	// id is generated and the shared default store key is used.
	ID string `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty"`

	// IDLength is the length of generated watchlist ids.
	IDLength int `yaml:"id_length,omitempty" toml:"id_length,omitempty" json:"id_length,omitempty"`
}

// ItemConfig describes one seeded watchlist item.
type ItemConfig struct {
	ID       string                 `yaml:"id" toml:"id" json:"id"`
	Price    float64                `yaml:"price" toml:"price" json:"price"`
	Quantity int                    `yaml:"quantity,omitempty" toml:"quantity,omitempty" json:"quantity,omitempty"`
	Fields   map[string]interface{} `yaml:"fields,omitempty" toml:"fields,omitempty" json:"fields,omitempty"`
}

// UnmarshalExtension decodes a named extension section into a typed struct.
// This provides a type-safe way for tools to access their custom
// configuration sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
