/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerkit/fixedfile/pkg/config"
	"github.com/ledgerkit/fixedfile/pkg/schema"
	"github.com/ledgerkit/fixedfile/pkg/store"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fixedfile",
	Short: "fixedfile - fixed-width flat file editor",
	Long: `fixedfile reads and edits fixed-width flat files: records of fixed
byte-offset fields grouped by record type (HEADER, TRANSACTION, FOOTER).

Edits preserve exact column alignment and are written atomically, so a
failure never corrupts the file on disk.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		s, err := resolveSchema(cmd, cfg)
		if err != nil {
			return err
		}
		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		ctx = context.WithValue(ctx, schemaKey, s)
		cmd.SetContext(ctx)
		return nil
	},
}

type contextKey string

const (
	schemaKey contextKey = "schema"
	configKey contextKey = "config"
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("schema", "", "Path to a YAML schema file (builtin banking layout when omitted)")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file")
}

// resolveConfig loads the config file: the --config flag when given, the
// default path when one exists there, built-in defaults otherwise.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadConfig(path)
	}
	if def := config.GetDefaultConfigPath(); config.ConfigExists(def) {
		return config.LoadConfig(def)
	}
	return config.DefaultConfig(), nil
}

// resolveSchema picks the schema: the --schema flag wins, then the config
// file's schema_path, then the builtin banking layout.
func resolveSchema(cmd *cobra.Command, cfg *config.Config) (*schema.Schema, error) {
	path, _ := cmd.Flags().GetString("schema")
	if path == "" {
		path = cfg.SchemaPath
	}
	if path == "" {
		return schema.Banking(), nil
	}
	return schema.Load(path)
}

// fileStore builds the store for a file argument from the context's schema
// and config.
func fileStore(cmd *cobra.Command, path string) *store.FileStore {
	s, _ := cmd.Context().Value(schemaKey).(*schema.Schema)
	cfg, _ := cmd.Context().Value(configKey).(*config.Config)
	terminator := ""
	if cfg != nil {
		terminator = cfg.Terminator
	}
	return store.NewFileStore(store.FileStoreConfig{
		Path:       path,
		Schema:     s,
		Terminator: terminator,
	})
}
