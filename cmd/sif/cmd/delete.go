package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/sifdb/pkg/codec"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <table> <json-key>",
	Short: "Delete a record by key",
	Long: `Delete one record by its key columns, given as a JSON object.

Example:
  sif delete users '{"id": 1}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]

		var key map[string]any
		if err := json.Unmarshal([]byte(args[1]), &key); err != nil {
			return fmt.Errorf("invalid key JSON: %w", err)
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

		t, err := s.Table(table)
		if err != nil {
			return err
		}
		keyRecord, err := codec.RecordFromMap(t.Columns(), key)
		if err != nil {
			return err
		}
		if err := s.Delete(table, keyRecord); err != nil {
			return err
		}
		cmd.Printf("Deleted record from %s\n", table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
