package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	// Catalog defaults: no paths means the embedded SI catalog.
	v.SetDefault("catalog.paths", []string{})

	// Generation defaults
	v.SetDefault("generate.out", "quantities")
	v.SetDefault("generate.package", "quantities")
	v.SetDefault("generate.watch", false)
	v.SetDefault("generate.watch_debounce_ms", 500)

	// Logging defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}
