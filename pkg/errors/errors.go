// Package errors holds the sentinel errors shared across cutter and the helpers
// used to add context to them. Errors coming straight from the operating system
// (for example *fs.PathError from the fsutil helpers) are never wrapped here so
// callers can keep matching them with errors.Is against fs.ErrNotExist and
// fs.ErrPermission.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileChmod   = fmt.Errorf("failed to set config file permissions")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config to YAML")

	// ErrConfigFileExists is returned by `config init` when a file is already present.
	ErrConfigFileExists = fmt.Errorf("configuration file already exists (use --force to overwrite)")

	ErrInvalidOutputFormat = fmt.Errorf("invalid output format")
	ErrInvalidLogLevel     = fmt.Errorf("invalid log level")
	ErrHookTimeoutNegative = fmt.Errorf("hook_timeout cannot be negative")
	ErrUnknownConfigKey    = fmt.Errorf("unknown configuration key")
	ErrInvalidBoolValue    = fmt.Errorf("invalid boolean value")

	// Path errors.
	ErrEmptyPath = fmt.Errorf("path cannot be empty")
	ErrCloneDir  = fmt.Errorf("failed to create clone directory")

	// Hook errors.
	ErrHookNameEmpty = fmt.Errorf("hook name cannot be empty")
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")

	// Template errors.
	ErrTemplateExists       = fmt.Errorf("template directory already exists (use --force to replace it)")
	ErrInvalidManifest      = fmt.Errorf("invalid template manifest")
	ErrIncompatibleTemplate = fmt.Errorf("template requires a different cutter version")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidOutputFormatWithDetails reports an unsupported output format.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: text, json", ErrInvalidOutputFormat, format)
}

// ErrInvalidLogLevelWithDetails reports an unsupported log level.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: error, warn, info, debug", ErrInvalidLogLevel, level)
}

// ErrUnknownConfigKeyWithName reports a key `config get/set` does not know about.
func ErrUnknownConfigKeyWithName(key string) error {
	return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
}
