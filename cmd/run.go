package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/christosgalano/kqlctl/internal/config"
	"github.com/christosgalano/kqlctl/internal/discovery"
	"github.com/christosgalano/kqlctl/internal/engine"
	"github.com/christosgalano/kqlctl/internal/executor"
	"github.com/christosgalano/kqlctl/internal/model"
	"github.com/christosgalano/kqlctl/internal/utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	folder      string
	workspaceID string
	schemaFile  string
	timeout     time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute KQL queries from a folder",
	Long: `Execute KQL queries from a folder against a Log Analytics workspace.

By default, all .kql files in the folder are executed with JSON output to
stdout. If a .kql-config.yaml file is found, query-specific output settings
are applied.

Examples:
  # Run every query in a folder
  kqlctl run -f queries -w 00000000-0000-0000-0000-000000000000

  # Run with an explicit config and schema
  kqlctl run -f queries -w <workspace> -c custom-config.yaml -s schema.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if info, err := os.Stat(folder); err != nil || !info.IsDir() {
			return fmt.Errorf("folder %s does not exist", folder)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		files, err := discovery.Discover(folder, cfg)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			logger.Info("No KQL files found in the specified folder")
			return nil
		}

		logger.Info("Found KQL files to execute", zap.Int("count", len(files)))

		exec := executor.New(engine.NewAzureCLI(timeout))
		summary := exec.Run(context.Background(), folder, files, workspaceID, cfg)
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d queries failed", summary.Failed, summary.Failed+summary.Succeeded)
		}
		return nil
	},
}

// loadConfig resolves and loads the run configuration. Without a config
// file every discovered query runs with the default console output.
func loadConfig() (*model.Config, error) {
	configPath := cfgFile
	if configPath == "" {
		if found, ok := config.FindConfigFile(folder); ok {
			configPath = found
		}
	}

	if configPath == "" {
		logger.Info("No config file found, using default JSON output for all queries")
		cfg := model.NewConfig("", nil)
		return &cfg, nil
	}

	logger.Info("Using config file", zap.String("file", configPath))
	return config.Load(configPath, schemaFile)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&folder, "folder", "f", "", "path to the folder containing KQL files")
	runCmd.Flags().StringVarP(&workspaceID, "workspace-id", "w", "", "Azure Log Analytics workspace ID")
	runCmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "path to the schema file (default: kql-config-schema.json in repository root)")
	runCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "per-invocation engine timeout (0 to disable)")
	runCmd.MarkFlagRequired("folder")
	runCmd.MarkFlagRequired("workspace-id")
}
