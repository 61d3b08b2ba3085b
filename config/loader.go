package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/watchlist/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are the recognized project config file names, in lookup order.
var ConfigFileNames = []string{"watchlist.yml", "watchlist.yaml", "watchlist.toml"}

// OverrideFileName is merged on top of everything else when present.
const OverrideFileName = "watchlist.override.yml"

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads and parses a watchlist configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := parse(data, path)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadDefault finds and loads the configuration with hierarchical merging:
// 1. Global config (~/.config/watchlist/watchlist.yml) - base layer
// 2. Project config (watchlist.yml, found walking up from cwd) - overrides global
// 3. Local override (watchlist.override.yml) - overrides all
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory.
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, logrus.New())
}

// LoadFromWithLogger loads configuration with hierarchical merging and logging.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	// Find project config file first (it's required)
	projectPath, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	logger.WithField("path", projectPath).Debug("Loading project configuration")

	var finalConfig *Config

	// 1. Load global config if it exists (optional)
	globalPath := getXDGConfigPath()
	if globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			globalData, err := os.ReadFile(globalPath)
			if err == nil {
				if globalConfig, err := parse(globalData, globalPath); err == nil {
					finalConfig = globalConfig
				} else {
					logger.WithError(err).Warn("Failed to parse global configuration, continuing without it")
				}
			} else {
				logger.WithError(err).Warn("Failed to read global configuration, continuing without it")
			}
		}
	}

	// 2. Load and merge project config (required)
	projectData, err := os.ReadFile(projectPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read project config").
			WithDetail("path", projectPath)
	}

	projectConfig, err := parse(projectData, projectPath)
	if err != nil {
		return nil, err
	}

	if finalConfig == nil {
		finalConfig = projectConfig
	} else {
		finalConfig = mergeConfigs(finalConfig, projectConfig)
	}

	// 3. Merge local override on top, if present
	overridePath := filepath.Join(filepath.Dir(projectPath), OverrideFileName)
	if overrideData, err := os.ReadFile(overridePath); err == nil {
		logger.WithField("path", overridePath).Debug("Loading override configuration")
		if overrideConfig, err := parse(overrideData, overridePath); err == nil {
			finalConfig = mergeConfigs(finalConfig, overrideConfig)
		} else {
			logger.WithError(err).Warn("Failed to parse override configuration, continuing without it")
		}
	}

	applyDefaults(finalConfig)

	if err := Validate(finalConfig); err != nil {
		return nil, err
	}

	return finalConfig, nil
}

// FindConfigFile walks up from startDir looking for a project config file.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(filepath.Join(startDir, ConfigFileNames[0]))
		}
		dir = parent
	}
}

// parse decodes a config document, dispatching on the file extension.
// Environment variable references like ${HOME} are expanded first.
func parse(data []byte, path string) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if strings.HasSuffix(path, ".toml") {
		if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
				WithDetail("path", path)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
				WithDetail("path", path)
		}
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR} references with their environment values.
// Unset variables expand to an empty string.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

// getXDGConfigPath returns the path of the optional global config file.
func getXDGConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "watchlist", "watchlist.yml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "watchlist", "watchlist.yml")
}
