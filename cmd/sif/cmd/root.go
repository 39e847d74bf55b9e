/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/sifdb/pkg/config"
	"github.com/ssargent/sifdb/pkg/store"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sif",
	Short: "SifDB - Schema-driven record store",
	Long: `SifDB is a schema-driven record store: tables declare typed columns,
records are stored as self-describing key/value byte pairs, and reads can
project individual columns without decoding whole rows.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default is ~/.config/sif/config.yaml)")
}

// loadConfig resolves and loads the active configuration
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config (run 'sif init' first): %w", err)
	}
	return cfg, nil
}

// openStore opens the table store and registers every configured table
func openStore(cfg *config.Config, logger *zap.Logger) (*store.TableStore, error) {
	s, err := store.Open(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", cfg.DataDir, err)
	}
	if err := cfg.RegisterTables(s); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// buildLogger builds a zap logger honoring the configured level
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}
