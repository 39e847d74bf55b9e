package codec

import (
	"encoding/binary"
	"fmt"
)

// Key and value layout constants. A key is
//
//	[1B namespace][8B table id][key columns][3B reserved][1B codec version]
//
// and a value is
//
//	[4B schema version][value columns]
//
// Column bytes appear in schema-list order in both portions.
const (
	// CodecVersion is the key-layout version this package reads and
	// writes. Keys tagged with a newer version are rejected rather than
	// misparsed.
	CodecVersion byte = 1

	// DefaultNamespace is the namespace tag written at the head of every
	// key. The decoder skips the namespace byte without inspecting it.
	DefaultNamespace byte = 'r'

	namespaceLen    = 1
	tableIDLen      = 8
	reservedTailLen = 3
	versionTagLen   = 1

	// minKeyLen is the smallest well-formed key: header and trailer with
	// zero key columns.
	minKeyLen = namespaceLen + tableIDLen + reservedTailLen + versionTagLen
)

// RecordDecoder turns a stored key/value byte pair back into a record,
// honoring the schema list it was constructed with. It is immutable after
// construction and safe for concurrent use: every decode call works on
// call-local cursors and a fresh output record.
type RecordDecoder struct {
	schemaVersion int32
	tableID       int64
	codecVersion  byte
	order         binary.ByteOrder
	schemas       []ColumnSchema
}

// NewRecordDecoder creates a decoder bound to a schema list in host byte
// order. The schema list is shared, not copied, and must not be mutated
// for the decoder's lifetime; schema evolution means constructing a new
// decoder, never rebinding this one.
func NewRecordDecoder(schemaVersion int, schemas []ColumnSchema, tableID int64) (*RecordDecoder, error) {
	return NewRecordDecoderWithOrder(schemaVersion, schemas, tableID, binary.NativeEndian)
}

// NewRecordDecoderWithOrder is NewRecordDecoder with an explicit byte
// order, for decoding data produced on a foreign-endian host.
func NewRecordDecoderWithOrder(schemaVersion int, schemas []ColumnSchema, tableID int64, order binary.ByteOrder) (*RecordDecoder, error) {
	if err := FormatSchema(schemas, order); err != nil {
		return nil, fmt.Errorf("format schema: %w", err)
	}
	return &RecordDecoder{
		schemaVersion: int32(schemaVersion),
		tableID:       tableID,
		codecVersion:  CodecVersion,
		order:         order,
		schemas:       schemas,
	}, nil
}

// checkPrefix skips the namespace byte and verifies the embedded table
// id. A mismatch means the record was routed to the wrong decoder.
func (d *RecordDecoder) checkPrefix(b *Buf) error {
	if err := b.Skip(namespaceLen); err != nil {
		return err
	}
	id, err := b.ReadLong()
	if err != nil {
		return err
	}
	if id != d.tableID {
		return ErrWrongTable
	}
	return nil
}

// checkReverseTag validates the trailing codec-version byte and consumes
// the reserved tail, so column reads stop short of the trailer.
func (d *RecordDecoder) checkReverseTag(b *Buf) error {
	tag, err := b.ReverseReadByte()
	if err != nil {
		return err
	}
	if tag > d.codecVersion {
		return ErrBadCodecVersion
	}
	return b.ReverseSkip(reservedTailLen)
}

// checkSchemaVersion accepts any stored version at or below ours: older
// writers produced fewer or compatible columns.
func (d *RecordDecoder) checkSchemaVersion(b *Buf) error {
	v, err := b.ReadInt()
	if err != nil {
		return err
	}
	if v > d.schemaVersion {
		return ErrBadSchemaVersion
	}
	return nil
}

// Decode decodes a full record. The returned slice has one entry per
// schema slot; each active column's value lands at its output index, nil
// marks NULL or a column missing from an older row, and tombstone slots
// are left untouched (nil).
func (d *RecordDecoder) Decode(key, value []byte) ([]any, error) {
	keyBuf := NewBuf(key, d.order)
	valueBuf := NewBuf(value, d.order)
	if err := d.checkPrefix(keyBuf); err != nil {
		return nil, err
	}
	if err := d.checkReverseTag(keyBuf); err != nil {
		return nil, err
	}
	if err := d.checkSchemaVersion(valueBuf); err != nil {
		return nil, err
	}

	record := make([]any, len(d.schemas))
	for _, col := range d.schemas {
		if isDropped(col) {
			continue
		}
		if err := decodeOrSkip(col, keyBuf, valueBuf, record, col.Index(), false); err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name(), err)
		}
	}
	return record, nil
}

// DecodeKeyOnly decodes only the key-portion columns; the value bytes are
// not needed, so the schema-version check is skipped. Key columns land at
// their schema-list position, not their output index, which keeps them
// correlatable with table columns when no value bytes exist to decode the
// rest of the record.
func (d *RecordDecoder) DecodeKeyOnly(key []byte) ([]any, error) {
	keyBuf := NewBuf(key, d.order)
	if err := d.checkPrefix(keyBuf); err != nil {
		return nil, err
	}
	if err := d.checkReverseTag(keyBuf); err != nil {
		return nil, err
	}

	record := make([]any, len(d.schemas))
	for pos, col := range d.schemas {
		if isDropped(col) || !col.IsKey() {
			continue
		}
		if err := decodeOrSkip(col, keyBuf, keyBuf, record, pos, false); err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name(), err)
		}
	}
	return record, nil
}

// DecodeColumns decodes only the requested schema positions. The output
// slice has len(columns) entries and columns[i] decodes into slot i.
// Columns outside the projection are skipped without materializing, and
// the walk stops as soon as every request is satisfied. A projected
// tombstone position yields nil.
func (d *RecordDecoder) DecodeColumns(key, value []byte, columns []int) ([]any, error) {
	keyBuf := NewBuf(key, d.order)
	valueBuf := NewBuf(value, d.order)
	if err := d.checkPrefix(keyBuf); err != nil {
		return nil, err
	}
	if err := d.checkReverseTag(keyBuf); err != nil {
		return nil, err
	}
	if err := d.checkSchemaVersion(valueBuf); err != nil {
		return nil, err
	}

	plan, err := newProjection(columns, len(d.schemas))
	if err != nil {
		return nil, err
	}

	record := make([]any, len(columns))
	next := 0 // next unmet request in the sorted plan
	pos := 0  // schema-list position; tombstones count
	for _, col := range d.schemas {
		if next == len(plan) {
			break
		}
		if isDropped(col) {
			if plan[next].schemaPos == pos {
				record[plan[next].outSlot] = nil
				next++
			}
			pos++
			continue
		}
		skip := true
		index := 0
		if plan[next].schemaPos == pos {
			index = plan[next].outSlot
			skip = false
			next++
		}
		pos++
		if err := decodeOrSkip(col, keyBuf, valueBuf, record, index, skip); err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name(), err)
		}
	}
	return record, nil
}

// PeekCodecVersion returns the trailing codec-version byte of a key
// without any header validation, for callers that pick a decoder based on
// layout version.
func PeekCodecVersion(key []byte) (byte, error) {
	return NewBuf(key, binary.NativeEndian).PeekReverseByte()
}
