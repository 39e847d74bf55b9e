/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/sifdb/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize SifDB configuration",
	Long: `Create a SifDB configuration file with generated security keys.

Tables are declared in the config file; edit it after init to add them:

  tables:
    - name: users
      table_id: 1
      schema_version: 1
      columns:
        - {name: id, type: int64, key: true, index: 0}
        - {name: name, type: string, index: 1}

Example:
  sif init --data-dir=./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		path := configPath
		if path == "" {
			path = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(path) && !force {
			cmd.Printf("Config already exists at %s (use --force to overwrite)\n", path)
			return nil
		}

		cfg, err := config.BootstrapConfig(path, dataDir)
		if err != nil {
			return err
		}

		cmd.Printf("Config written to %s\n", path)
		cmd.Printf("Client API key: %s\n", cfg.Security.ClientAPIKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("data-dir", "./data", "Data directory for the store")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config")
}
