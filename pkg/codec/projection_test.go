package codec

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeColumns_MatchesFullDecode(t *testing.T) {
	enc, dec := newTestCodec(t, 1, allKindsSchemas())
	record := allKindsRecord()
	key, value, err := enc.Encode(record)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	full, err := dec.Decode(key, value)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	tests := []struct {
		name    string
		columns []int
	}{
		{"single key column", []int{0}},
		{"single value column", []int{5}},
		{"last column only", []int{11}},
		{"ascending subset", []int{1, 3, 6, 10}},
		{"descending order remaps output", []int{11, 7, 2, 0}},
		{"every column shuffled", []int{5, 0, 11, 3, 8, 1, 9, 2, 10, 4, 7, 6}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dec.DecodeColumns(key, value, tc.columns)
			if err != nil {
				t.Fatalf("DecodeColumns(%v): %v", tc.columns, err)
			}
			want := make([]any, len(tc.columns))
			for i, pos := range tc.columns {
				want[i] = full[pos]
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("DecodeColumns(%v) = %v, want %v", tc.columns, got, want)
			}
		})
	}
}

// TestDecodeColumns_EarlyTermination corrupts bytes after the last
// requested column; a projected decode must never reach them.
func TestDecodeColumns_EarlyTermination(t *testing.T) {
	enc, dec := newTestCodec(t, 1, allKindsSchemas())
	key, value, err := enc.Encode(allKindsRecord())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Columns 2 and 3 are the first two value columns; truncating the
	// value bytes right after them leaves everything the projection needs.
	// value = [4B version][tag+bool][tag+int32] ...
	truncated := value[:4+2+5]
	got, err := dec.DecodeColumns(key, truncated, []int{3, 2})
	if err != nil {
		t.Fatalf("DecodeColumns on truncated value: %v", err)
	}
	want := []any{int32(-30), true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeColumns_MissingTrailingColumns(t *testing.T) {
	// Bytes written under schema v1 (two columns), decoded by a v2 decoder
	// with a third column projected: the absent column is nil.
	v1 := []ColumnSchema{
		MustColumn(Int64, "id", 0, true),
		MustColumn(String, "name", 1, false),
	}
	enc, err := NewRecordEncoder(1, v1, testTableID)
	if err != nil {
		t.Fatalf("NewRecordEncoder: %v", err)
	}
	key, value, err := enc.Encode([]any{int64(3), "x"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	v2 := []ColumnSchema{
		MustColumn(Int64, "id", 0, true),
		MustColumn(String, "name", 1, false),
		MustColumn(Int32, "rank", 2, false),
	}
	dec, err := NewRecordDecoder(2, v2, testTableID)
	if err != nil {
		t.Fatalf("NewRecordDecoder: %v", err)
	}

	got, err := dec.DecodeColumns(key, value, []int{2, 0})
	if err != nil {
		t.Fatalf("DecodeColumns: %v", err)
	}
	want := []any{nil, int64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeColumns_Tombstones(t *testing.T) {
	schemas := []ColumnSchema{
		MustColumn(Int64, "id", 0, true),
		Dropped,
		MustColumn(String, "name", 2, false),
	}
	enc, dec := newTestCodec(t, 2, schemas)
	key, value, err := enc.Encode([]any{int64(8), nil, "frank"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Positions count tombstone slots, so "name" is still position 2.
	got, err := dec.DecodeColumns(key, value, []int{2, 1})
	if err != nil {
		t.Fatalf("DecodeColumns: %v", err)
	}
	want := []any{"frank", nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeColumns_InvalidProjections(t *testing.T) {
	enc, dec := newTestCodec(t, 1, []ColumnSchema{
		MustColumn(Int64, "id", 0, true),
		MustColumn(String, "name", 1, false),
	})
	key, value, err := enc.Encode([]any{int64(1), "y"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for _, columns := range [][]int{
		{-1},
		{2},
		{0, 0},
		{1, 0, 1},
	} {
		if _, err := dec.DecodeColumns(key, value, columns); !errors.Is(err, ErrInvalidProjection) {
			t.Errorf("DecodeColumns(%v) = %v, want ErrInvalidProjection", columns, err)
		}
	}

	// An empty projection is valid and decodes nothing.
	got, err := dec.DecodeColumns(key, value, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("empty projection = %v, %v", got, err)
	}
}

func TestDecodeColumns_Rejections(t *testing.T) {
	enc, dec := newTestCodec(t, 1, []ColumnSchema{
		MustColumn(Int64, "id", 0, true),
	})
	key, value, err := enc.Encode([]any{int64(1)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	badKey := append([]byte(nil), key...)
	badKey[len(badKey)-1] = CodecVersion + 1
	if _, err := dec.DecodeColumns(badKey, value, []int{0}); !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}
