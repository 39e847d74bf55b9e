/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/sifdb/pkg/api"
	"github.com/ssargent/sifdb/pkg/query"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the SifDB REST API server.

Tables come from the config file; records are accepted and returned as
JSON fields and stored through the schema codec.

Examples:
  sif serve
  sif serve --port=9200 --api-key=mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}
		apiKey, _ := cmd.Flags().GetString("api-key")
		if apiKey == "" {
			apiKey = cfg.Security.ClientAPIKey
		}

		logger, err := buildLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		s, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		engine := query.NewSelectEngine(s, logger)
		return api.StartServer(s, engine, api.ServerConfig{
			Port:   cfg.Port,
			APIKey: apiKey,
		}, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().String("api-key", "", "Client API key (overrides config)")
}
