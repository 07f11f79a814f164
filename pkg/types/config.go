// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Defaults applied when the configuration leaves a setting unset.
const (
	DefaultWorkers     = 1
	DefaultDestination = "converted"
	DefaultLogLevel    = "info"
)

// ConverterConfig holds the settings read from flags, environment and the
// optional config file.
type ConverterConfig struct {
	// DataDir is the root every input folder is resolved under
	// (default $XDG_DATA_HOME/schemconvert).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Workers bounds how many files of one job convert concurrently.
	// 1 converts sequentially.
	Workers int `json:"workers" yaml:"workers"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// Color enables styled terminal output.
	Color bool `json:"color" yaml:"color"`

	// Metrics records OpenTelemetry conversion metrics and logs them on exit.
	Metrics bool `json:"metrics" yaml:"metrics"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c ConverterConfig) WithDefaults() ConverterConfig {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}
