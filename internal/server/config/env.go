package config

import "github.com/kelseyhightower/envconfig"

// parseEnv overlays configuration from environment variables using the
// envconfig tags declared on Config. Variables that are not set leave the
// current values untouched, so env sits between the JSON file and flags in
// precedence.
func parseEnv(config *Config) {
	if err := envconfig.Process("", config); err != nil {
		panic(err)
	}
}
