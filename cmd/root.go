package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/christosgalano/kqlctl/cmd/version"
	"github.com/christosgalano/kqlctl/internal/utils/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kqlctl",
	Short: "Configuration-driven KQL query runner",
	Long: `kqlctl executes KQL query files from a folder against an Azure Log
Analytics workspace. A .kql-config.yaml file controls which queries run and
how each result is formatted, filtered, and delivered.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: .kql-config.yaml in folder, then repository root)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug|info|warn|error)")

	// Bind flags to viper
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(version.NewCommand())
}

// initConfig reads in ENV variables and initializes the logger. An
// explicit --log-level flag wins over KQLCTL_LOG_LEVEL, which wins over
// the default.
func initConfig() {
	viper.SetEnvPrefix("KQLCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if err := logger.Init(viper.GetString("log-level")); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
}
