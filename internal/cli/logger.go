package cli

import (
	"github.com/glorpus-work/cutter/internal/logger"
	"github.com/glorpus-work/cutter/pkg/config"
)

// InitLogging configures the process logger from the configuration file and
// the global flags. A configuration that cannot be loaded falls back to the
// flags alone so commands like `config init` keep working.
func InitLogging() {
	level := config.DefaultLogLevel
	format := logger.FormatText

	if cfg, err := loadConfig(); err == nil {
		level = cfg.Settings.LogLevel
		format = logger.OutputFormat(cfg.Settings.OutputFormat)
	} else {
		if Verbose != nil && *Verbose {
			level = "debug"
		}
		if LogFormat != nil && *LogFormat == string(logger.FormatJSON) {
			format = logger.FormatJSON
		}
		defer logger.Debug("Configuration not loaded for logging", logger.Fields{"error": err})
	}

	logger.InitLogger(level, format)
}
