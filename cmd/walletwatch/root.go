package main

import (
	"fmt"
	"os"

	"walletwatch/internal/config"
	"walletwatch/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "walletwatch",
	Short: "walletwatch: client for the wallet-monitoring dashboard",
	Long: `walletwatch is the command-line client for the wallet-monitoring
dashboard backend. It manages your session and keeps a local copy of the
blocked-address list in sync with the server.`,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'walletwatch --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("api-url", "http://localhost:3000", "Dashboard API base URL (overrides config and WALLETWATCH_API_URL)")

	bindFlags(rootCmd.PersistentFlags())
}

func bindFlags(flags *pflag.FlagSet) {
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("api.url", flags.Lookup("api-url"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Load(cfgFile)
	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))

	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}
