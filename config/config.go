// Package config loads mensura configuration through viper with the
// usual precedence: defaults < config file < MENSURA_* environment
// variables < command-line flags.
package config

// Config is the tool configuration. All fields have working defaults;
// a config file is never required.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Generate GenerateConfig `mapstructure:"generate"`
	Log      LogConfig      `mapstructure:"log"`
}

// CatalogConfig selects the metadata documents to generate from.
type CatalogConfig struct {
	// Paths lists metadata files merged into one catalog. Empty means
	// the embedded SI catalog.
	Paths []string `mapstructure:"paths"`
}

// GenerateConfig controls code emission.
type GenerateConfig struct {
	// Out is the directory generated files are written to.
	Out string `mapstructure:"out"`

	// Package is the package name of the generated files.
	Package string `mapstructure:"package"`

	// Watch regenerates whenever a catalog file changes.
	Watch bool `mapstructure:"watch"`

	// WatchDebounceMs coalesces rapid file events into one regeneration.
	WatchDebounceMs int `mapstructure:"watch_debounce_ms"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	JSON      bool `mapstructure:"json"`
	Verbosity int  `mapstructure:"verbosity"`
}
