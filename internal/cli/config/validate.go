package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

var outputModes = []string{"auto", "text", "markdown", "md", "json"}

// Validate checks that every setting holds an accepted value.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(outputModes, strings.ToLower(c.OutputFormat)) {
		errs = append(errs, fmt.Errorf("output must be one of %s, got %q", strings.Join(outputModes, "|"), c.OutputFormat))
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is not a level", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.Parallel < 0 {
		errs = append(errs, fmt.Errorf("parallel must not be negative, got %d", c.Parallel))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}
	for _, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("watch.extensions entry %q must start with a dot", ext))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
