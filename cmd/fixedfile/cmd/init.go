/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerkit/fixedfile/pkg/config"
	"github.com/ledgerkit/fixedfile/pkg/schema"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a fixedfile configuration",
	Long: `Write a starter configuration and schema file.

This command will:
- Create the config directory
- Write a default config file
- Write the builtin banking schema as a starting schema file

The schema file can then be edited to describe your own record layout.

Examples:
  fixedfile init
  fixedfile init --config ./fixedfile.yaml --schema ./schema.yaml`,
	// The root hook loads the schema file, which init is about to create.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		schemaPath, _ := cmd.Flags().GetString("schema")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if schemaPath == "" {
			schemaPath = config.GetDefaultSchemaPath()
		}

		if err := initializeConfig(configPath, schemaPath, force); err != nil {
			return err
		}
		cmd.Printf("Config written to %s\n", configPath)
		cmd.Printf("Schema written to %s\n", schemaPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config")
}

// initializeConfig writes the default config and the builtin schema. It
// refuses to clobber an existing config unless forced.
func initializeConfig(configPath, schemaPath string, force bool) error {
	if config.ConfigExists(configPath) && !force {
		return fmt.Errorf("config already exists at %s, use --force to overwrite", configPath)
	}

	cfg := config.DefaultConfig()
	cfg.SchemaPath = schemaPath
	if err := config.SaveConfig(cfg, configPath); err != nil {
		return err
	}
	return schema.Save(schema.Banking(), schemaPath)
}
