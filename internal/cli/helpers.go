package cli

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/cutter/internal/logger"
	"github.com/glorpus-work/cutter/pkg/config"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	LogFormat  *string
)

// loadConfig loads the configuration from --config or the default location
// and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return nil, fmt.Errorf("failed to get default config path")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags if provided
	if LogFormat != nil && *LogFormat != "" {
		cfg.Settings.OutputFormat = *LogFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes the config commands fail with ErrEmptyConfigPath.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// parseVars turns repeated key=value flags into a map.
func parseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid variable %q, expected key=value", pair)
		}
		vars[key] = value
	}
	return vars, nil
}
