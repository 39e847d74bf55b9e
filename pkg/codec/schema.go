package codec

import (
	"encoding/binary"
	"fmt"
)

// ColumnSchema describes one column of a table: where its bytes live (key
// or value portion), its physical type, and the output slot its decoded
// value is written to. The twelve concrete column types in this package
// carry the byte-level decode/encode/skip logic; ColumnSchema itself is
// the generic handle the dispatch tables cast from.
type ColumnSchema interface {
	Kind() Kind
	Name() string
	IsKey() bool
	Index() int

	// bind fixes the byte order used by this column's wire ops. Called
	// once by FormatSchema before the schema list is used for codec work.
	bind(order binary.ByteOrder)
}

// Dropped is the tombstone for a schema slot whose column was removed in
// a later table generation. Tombstones keep their position in the schema
// list so that positions of surviving columns stay stable, but they own
// no bytes: the codec never moves a cursor for them.
var Dropped ColumnSchema = droppedColumn{}

type droppedColumn struct{}

func (droppedColumn) Kind() Kind              { return numKinds }
func (droppedColumn) Name() string            { return "<dropped>" }
func (droppedColumn) IsKey() bool             { return false }
func (droppedColumn) Index() int              { return -1 }
func (droppedColumn) bind(_ binary.ByteOrder) {}

func isDropped(s ColumnSchema) bool {
	return s == nil || s == Dropped
}

// columnBase carries the fields every concrete column shares.
type columnBase struct {
	name  string
	key   bool
	index int
	order binary.ByteOrder
}

func (b *columnBase) Name() string { return b.name }
func (b *columnBase) IsKey() bool  { return b.key }
func (b *columnBase) Index() int   { return b.index }

func (b *columnBase) bind(order binary.ByteOrder) {
	b.order = order
}

// The wire helpers below apply the column's bound byte order to payload
// bytes. Header fields (table id, schema version) go through the Buf's
// own endian ops instead; FormatSchema and the codec constructors bind
// the same order to both.

func (b *columnBase) readUint32(buf *Buf) (uint32, error) {
	raw, err := buf.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return b.order.Uint32(raw), nil
}

func (b *columnBase) readUint64(buf *Buf) (uint64, error) {
	raw, err := buf.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return b.order.Uint64(raw), nil
}

func (b *columnBase) putUint32(buf *Buf, v uint32) {
	var scratch [4]byte
	b.order.PutUint32(scratch[:], v)
	buf.PutBytes(scratch[:])
}

func (b *columnBase) putUint64(buf *Buf, v uint64) {
	var scratch [8]byte
	b.order.PutUint64(scratch[:], v)
	buf.PutBytes(scratch[:])
}

// NewColumn creates the concrete column for kind. index is the output
// slot the column decodes into; key selects the key or value portion.
func NewColumn(kind Kind, name string, index int, key bool) (ColumnSchema, error) {
	base := columnBase{name: name, key: key, index: index, order: binary.NativeEndian}
	switch kind {
	case Bool:
		return &BoolColumn{base}, nil
	case Int32:
		return &Int32Column{base}, nil
	case Float32:
		return &Float32Column{base}, nil
	case Int64:
		return &Int64Column{base}, nil
	case Float64:
		return &Float64Column{base}, nil
	case String:
		return &StringColumn{base}, nil
	case BoolList:
		return &BoolListColumn{base}, nil
	case Int32List:
		return &Int32ListColumn{base}, nil
	case Float32List:
		return &Float32ListColumn{base}, nil
	case Int64List:
		return &Int64ListColumn{base}, nil
	case Float64List:
		return &Float64ListColumn{base}, nil
	case StringList:
		return &StringListColumn{base}, nil
	default:
		return nil, fmt.Errorf("unknown column kind %d", kind)
	}
}

// MustColumn is NewColumn for schemas built from literals, typically in
// tests and examples.
func MustColumn(kind Kind, name string, index int, key bool) ColumnSchema {
	col, err := NewColumn(kind, name, index, key)
	if err != nil {
		panic(err)
	}
	return col
}

// FormatSchema normalizes a schema list for codec use: it binds the byte
// order to every active column and validates that kinds are in dispatch
// range and output indexes are unique and within [0, len(schemas)).
// The list's iteration order is the wire order of the encoded bytes and
// is never changed here.
//
// A schema list must be formatted exactly once before it is shared by
// encoders and decoders, and must not be mutated afterwards.
func FormatSchema(schemas []ColumnSchema, order binary.ByteOrder) error {
	seen := make(map[int]string, len(schemas))
	for pos, col := range schemas {
		if isDropped(col) {
			continue
		}
		if !col.Kind().valid() {
			return fmt.Errorf("column %q (position %d): invalid kind %d", col.Name(), pos, col.Kind())
		}
		if col.Index() < 0 || col.Index() >= len(schemas) {
			return fmt.Errorf("column %q (position %d): output index %d out of range", col.Name(), pos, col.Index())
		}
		if prev, dup := seen[col.Index()]; dup {
			return fmt.Errorf("columns %q and %q share output index %d", prev, col.Name(), col.Index())
		}
		seen[col.Index()] = col.Name()
		col.bind(order)
	}
	return nil
}
