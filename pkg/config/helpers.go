package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/cutter/pkg/errors"
)

// SetValue sets a configuration value by key
// Supported keys:
//   - log_level: string - Logging level (debug, info, warn, error)
//   - output_format: string - Output format (text, json)
//   - clone_dir: string - Where template archives are unpacked
//   - delete_project_on_failure: bool - Remove the project when a hook fails
//   - hook_timeout: duration - Upper bound for a hook run, e.g. 30s
//
// The resulting configuration is validated.
func (c *Config) SetValue(key, value string) error {
	updated := c.Settings
	switch key {
	case "log_level":
		updated.LogLevel = value
	case "output_format":
		updated.OutputFormat = value
	case "clone_dir":
		updated.CloneDir = value
	case "delete_project_on_failure":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidBoolValue, "%s: %s", key, value)
		}
		updated.DeleteProjectOnFailure = boolVal
	case "hook_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(err, "invalid duration for %s", key)
		}
		updated.HookTimeout = d
	default:
		return errors.ErrUnknownConfigKeyWithName(key)
	}

	if err := validateSettings(updated); err != nil {
		return err
	}
	c.Settings = updated
	return nil
}

// GetValue returns the value as a string and any error encountered.
func (c *Config) GetValue(key string) (string, error) {
	values := c.ToMap()
	value, ok := values[key]
	if !ok {
		return "", errors.ErrUnknownConfigKeyWithName(key)
	}
	return value, nil
}

// ToMap flattens the settings into yaml key -> string value.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		// Handle yaml tags with options (e.g., "clone_dir,omitempty")
		yamlKey := strings.Split(yamlTag, ",")[0]

		fieldValue := settingsValue.Field(i)
		var strValue string

		switch v := fieldValue.Interface().(type) {
		case time.Duration:
			strValue = v.String()
		case bool:
			strValue = strconv.FormatBool(v)
		case string:
			strValue = v
		default:
			strValue = fmt.Sprintf("%v", v)
		}

		result[yamlKey] = strValue
	}

	return result
}
