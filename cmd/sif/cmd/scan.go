package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/sifdb/pkg/codec"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <table>",
	Short: "Scan a table's records",
	Long: `Scan a table in key order, printing one JSON object per record.
With --columns only the named columns are decoded; everything else is
skipped at the byte level.

Examples:
  sif scan users
  sif scan users --columns name,score --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		columns, _ := cmd.Flags().GetStringSlice("columns")
		limit, _ := cmd.Flags().GetInt("limit")

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

		var scanColumns []string
		if len(columns) > 0 {
			scanColumns = columns
		}
		iter, err := s.Scan(table, scanColumns)
		if err != nil {
			return err
		}
		defer iter.Close()

		n := 0
		for iter.Next() {
			if limit > 0 && n >= limit {
				break
			}
			var row map[string]any
			if scanColumns != nil {
				row = make(map[string]any, len(scanColumns))
				for i, name := range scanColumns {
					row[name] = iter.Record()[i]
				}
			} else {
				row = codec.RecordToMap(t.Columns(), iter.Record())
			}
			out, err := json.Marshal(row)
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			n++
		}
		return iter.Err()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringSlice("columns", nil, "Columns to decode (default all)")
	scanCmd.Flags().Int("limit", 0, "Maximum records to print (0 = unlimited)")
}
