package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <table> <json-fields>",
	Short: "Store a record",
	Long: `Store a record in a table. Fields are given as a JSON object keyed by
column name; key columns are required, other columns default to NULL.

Example:
  sif put users '{"id": 1, "name": "alice", "score": 9.5}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]

		var fields map[string]any
		if err := json.Unmarshal([]byte(args[1]), &fields); err != nil {
			return fmt.Errorf("invalid record JSON: %w", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := openStore(cfg, zap.NewNop())
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.PutFields(table, fields); err != nil {
			return err
		}
		cmd.Printf("Stored record in %s\n", table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
