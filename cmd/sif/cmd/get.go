package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/sifdb/pkg/codec"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <table> <json-key>",
	Short: "Fetch a record by key",
	Long: `Fetch one record by its key columns, given as a JSON object.

Example:
  sif get users '{"id": 1}'`,
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
		record, err := s.Get(table, keyRecord)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(codec.RecordToMap(t.Columns(), record), "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
