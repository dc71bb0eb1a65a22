package cmd

import (
	"fmt"

	"github.com/christosgalano/kqlctl/internal/config"
	"github.com/christosgalano/kqlctl/internal/validator"
	"github.com/spf13/cobra"
)

var (
	validateFolder string
	validateSchema string
)

var validateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a KQL run configuration file",
	Long: `Validate a .kql-config.yaml file before running queries.

This command checks for configuration problems including:
- YAML structure and schema conformance
- Unknown output formats or compression types
- Missing referenced query files
- Duplicate query entries
- Destination files shared across output specs

Examples:
  # Validate an explicit config file
  kqlctl validate .kql-config.yaml

  # Locate and validate the config for a folder
  kqlctl validate -f queries`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if len(args) > 0 {
			configPath = args[0]
		}
		if configPath == "" {
			if found, ok := config.FindConfigFile(validateFolder); ok {
				configPath = found
			}
		}
		if configPath == "" {
			return fmt.Errorf("no config file found, pass one explicitly or use --folder")
		}

		cfg, err := config.Load(configPath, validateSchema)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		result := validator.NewValidator(cfg).Validate()
		fmt.Println(result.Format())

		if !result.Valid {
			return fmt.Errorf("configuration validation failed with %d error(s)", len(result.Errors))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFolder, "folder", "f", ".", "folder whose config file should be located")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "path to the schema file (default: kql-config-schema.json in repository root)")
}
