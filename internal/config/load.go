package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("WALLETWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Set defaults
	viper.SetDefault("api.url", "http://localhost:3000")
	viper.SetDefault("store.type", "sqlite")
	viper.SetDefault("store.dsn", ".walletwatch.db")
	viper.SetDefault("blocklist.rollback_on_error", false)
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.addr", ":2112")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")

	// Honor a plain API_URL when WALLETWATCH_API_URL is not set
	if os.Getenv("WALLETWATCH_API_URL") == "" && os.Getenv("API_URL") != "" {
		viper.SetDefault("api.url", os.Getenv("API_URL"))
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
