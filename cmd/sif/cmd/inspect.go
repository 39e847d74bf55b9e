package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/sifdb/pkg/codec"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <hex-key>",
	Short: "Inspect a raw storage key",
	Long: `Inspect a raw storage key given as hex: report its codec version tag
without decoding the columns. Useful when checking what layout version a
foreign or migrated key was written under.

Example:
  sif inspect 7200000000000000012a...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("invalid hex key: %w", err)
		}

		version, err := codec.PeekCodecVersion(key)
		if err != nil {
			return fmt.Errorf("read codec version: %w", err)
		}

		cmd.Printf("key bytes:     %d\n", len(key))
		cmd.Printf("codec version: %d\n", version)
		if version > codec.CodecVersion {
			cmd.Printf("note: newer than this build supports (%d); decoding would be rejected\n", codec.CodecVersion)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
