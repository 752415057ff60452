package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any
// are invalid. Call after viper has loaded the configuration.
func ValidateConfig() error {
	var problems []string

	apiURL := viper.GetString("api.url")
	if apiURL == "" {
		problems = append(problems, "api.url must be set")
	} else if !strings.HasPrefix(apiURL, "http://") && !strings.HasPrefix(apiURL, "https://") {
		problems = append(problems, fmt.Sprintf("api.url must be an http(s) URL, got: %s", apiURL))
	}

	switch strings.ToLower(viper.GetString("store.type")) {
	case "", "sqlite", "sqlite3":
	case "postgres", "postgresql":
		if viper.GetString("store.dsn") == "" {
			problems = append(problems, "store.dsn is required for the postgres store")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported store.type: %s", viper.GetString("store.type")))
	}

	if viper.GetBool("metrics.enabled") && viper.GetString("metrics.addr") == "" {
		problems = append(problems, "metrics.addr must be set when metrics are enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
