package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ledgerkit/fixedfile/pkg/api"
	"github.com/ledgerkit/fixedfile/pkg/config"
)

var (
	servePort   int
	serveBind   string
	serveAPIKey string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve get/set/add for one file over HTTP",
	Long: `Start a REST API bound to one fixed-width file.

Routes under /api/v1 mirror the CLI verbs: read a field, overwrite a field,
append a transaction. Prometheus metrics are exposed on /metrics. When an
API key is configured, requests must carry it in the X-API-Key header.

Example:
  fixedfile serve statements.txt --port 8080`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := cmd.Context().Value(configKey).(*config.Config)
		if cfg == nil {
			cfg = config.DefaultConfig()
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.API.Port
		}
		if !cmd.Flags().Changed("bind") {
			serveBind = cfg.API.Bind
		}
		if !cmd.Flags().Changed("api-key") {
			serveAPIKey = cfg.API.APIKey
		}

		return api.StartServer(fileStore(cmd, args[0]), api.ServerConfig{
			Port:   servePort,
			Bind:   serveBind,
			APIKey: serveAPIKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveBind, "bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "API key required in the X-API-Key header (empty disables auth)")
}
