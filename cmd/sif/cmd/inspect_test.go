package cmd

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/sifdb/pkg/codec"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestInspectCommand(t *testing.T) {
	schemas := []codec.ColumnSchema{
		codec.MustColumn(codec.Int64, "id", 0, true),
	}
	enc, err := codec.NewRecordEncoder(1, schemas, 42)
	require.NoError(t, err)
	key, _, err := enc.Encode([]any{int64(7)})
	require.NoError(t, err)

	out, err := runCommand(t, "inspect", hex.EncodeToString(key))
	require.NoError(t, err)
	assert.Contains(t, out, "codec version: 1")
}

func TestInspectCommand_BadInput(t *testing.T) {
	_, err := runCommand(t, "inspect", "not-hex")
	assert.Error(t, err)

	_, err = runCommand(t, "inspect", "")
	assert.Error(t, err)
}
