// Package config loads leaplisp settings.
//
// Values are layered, lowest precedence first: built-in defaults, the
// project file (leaplisp.yaml or leaplisp.yml), LEAPLISP_* environment
// variables, and finally command-line flags that were explicitly set.
package config

// Default configuration values.
const (
	DefaultPrompt      = "lisp> "
	DefaultHistoryFile = ".leaplisp/history"
	DefaultStateFile   = ".leaplisp/state.db"
	DefaultMaxDepth    = 10000
	DefaultLogLevel    = "info"
	DefaultOutput      = "text"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "leaplisp.yaml"
	ConfigFileNameAlt = "leaplisp.yml"
)

// Output formats accepted by the output key.
var OutputFormats = []string{"text", "json", "yaml"}

// LogLevels accepted by the log_level key.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all CLI configuration options.
type Config struct {
	Prompt       string   `koanf:"prompt"`
	HistoryFile  string   `koanf:"history_file"`
	StatePath    string   `koanf:"state_path"`
	Record       bool     `koanf:"record"` // persist evaluations to the state store
	MaxDepth     int      `koanf:"max_depth"`
	LogLevel     string   `koanf:"log_level"`
	OutputFormat string   `koanf:"output"`
	Prelude      []string `koanf:"prelude"` // files evaluated before user input
	Verbose      bool     `koanf:"verbose"`
	NoColor      bool     `koanf:"no_color"`

	// ProjectRoot is the directory relative paths were resolved against
	ProjectRoot string `koanf:"-"`
}

// Default returns a Config holding only the built-in defaults.
func Default() *Config {
	return &Config{
		Prompt:       DefaultPrompt,
		HistoryFile:  DefaultHistoryFile,
		StatePath:    DefaultStateFile,
		Record:       true,
		MaxDepth:     DefaultMaxDepth,
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
	}
}

func defaultsMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"prompt":       d.Prompt,
		"history_file": d.HistoryFile,
		"state_path":   d.StatePath,
		"record":       d.Record,
		"max_depth":    d.MaxDepth,
		"log_level":    d.LogLevel,
		"output":       d.OutputFormat,
		"prelude":      []string{},
		"verbose":      false,
		"no_color":     false,
	}
}
