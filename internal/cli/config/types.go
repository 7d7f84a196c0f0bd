// Package config loads primordial CLI settings.
//
// Values are layered from built-in defaults, a primordial.yaml file,
// PRIMORDIAL_ environment variables and explicitly set flags, in increasing
// order of precedence.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	LogLevel     string      `koanf:"log_level"`
	LogFormat    string      `koanf:"log_format"`
	Color        bool        `koanf:"color"`
	SuitesDir    string      `koanf:"suites_dir"`
	Parallel     int         `koanf:"parallel"`
	Watch        WatchConfig `koanf:"watch"`
	REPL         REPLConfig  `koanf:"repl"`

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string `koanf:"-"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce   time.Duration `koanf:"debounce"`
	Extensions []string      `koanf:"extensions"`
}

// REPLConfig configures the interactive shell.
type REPLConfig struct {
	HistoryFile string `koanf:"history_file"`
	Prompt      string `koanf:"prompt"`
}

// Default configuration values.
const (
	DefaultOutput     = "auto" // TTY=text, otherwise markdown
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultSuitesDir  = "testdata"
	DefaultDebounce   = 100 * time.Millisecond
	DefaultExtension  = ".pm"
	DefaultPrompt     = "primordial> "
	DefaultHistory    = ".primordial_history"
	EnvPrefix         = "PRIMORDIAL_"
	defaultConfigName = "primordial"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Color:        true,
		SuitesDir:    DefaultSuitesDir,
		Watch: WatchConfig{
			Debounce:   DefaultDebounce,
			Extensions: []string{DefaultExtension},
		},
		REPL: REPLConfig{
			HistoryFile: DefaultHistory,
			Prompt:      DefaultPrompt,
		},
	}
}
