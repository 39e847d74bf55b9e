package store

import (
	"github.com/ssargent/sifdb/pkg/codec"
)

// TableConfig describes one table hosted by a TableStore: its identity on
// disk and the schema list its records encode against.
type TableConfig struct {
	Name          string               // Table name used by callers
	TableID       int64                // Embedded in every key; unique per store
	SchemaVersion int                  // Current schema generation
	Columns       []codec.ColumnSchema // Wire-order schema list, tombstones included
}

// RecordIterator provides streaming access to decoded records. Next
// advances to the next record; Record and Key are valid until the next
// call to Next. Err reports the first decode or storage error, after
// which Next returns false.
type RecordIterator interface {
	Next() bool
	Record() []any
	Key() []byte
	Err() error
	Close() error
}

// Errors
var (
	ErrKeyNotFound   = &StoreError{"key not found"}
	ErrTableNotFound = &StoreError{"table not found"}
	ErrTableExists   = &StoreError{"table already exists"}
	ErrStoreClosed   = &StoreError{"store is closed"}
)

// StoreError represents a table store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
