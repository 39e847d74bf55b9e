package codec

import (
	"encoding/binary"
	"fmt"
)

// RecordEncoder is the writer side of the codec: it lays out a record's
// key and value bytes exactly as RecordDecoder expects to find them.
// Immutable after construction and safe for concurrent use.
type RecordEncoder struct {
	schemaVersion int32
	tableID       int64
	codecVersion  byte
	namespace     byte
	order         binary.ByteOrder
	schemas       []ColumnSchema
}

// NewRecordEncoder creates an encoder bound to a schema list in host byte
// order.
func NewRecordEncoder(schemaVersion int, schemas []ColumnSchema, tableID int64) (*RecordEncoder, error) {
	return NewRecordEncoderWithOrder(schemaVersion, schemas, tableID, binary.NativeEndian)
}

// NewRecordEncoderWithOrder is NewRecordEncoder with an explicit byte
// order.
func NewRecordEncoderWithOrder(schemaVersion int, schemas []ColumnSchema, tableID int64, order binary.ByteOrder) (*RecordEncoder, error) {
	if err := FormatSchema(schemas, order); err != nil {
		return nil, fmt.Errorf("format schema: %w", err)
	}
	return &RecordEncoder{
		schemaVersion: int32(schemaVersion),
		tableID:       tableID,
		codecVersion:  CodecVersion,
		namespace:     DefaultNamespace,
		order:         order,
		schemas:       schemas,
	}, nil
}

// Encode serializes a record into its key and value byte strings. The
// record must have one entry per schema slot, each value at its column's
// output index; nil encodes a NULL value column and is rejected for key
// columns. Tombstone slots contribute no bytes.
func (e *RecordEncoder) Encode(record []any) (key, value []byte, err error) {
	if len(record) != len(e.schemas) {
		return nil, nil, fmt.Errorf("record has %d slots, schema has %d", len(record), len(e.schemas))
	}

	keyBuf := NewWriteBuf(e.order)
	valueBuf := NewWriteBuf(e.order)
	keyBuf.PutByte(e.namespace)
	keyBuf.PutLong(e.tableID)
	valueBuf.PutInt(e.schemaVersion)

	for _, col := range e.schemas {
		if isDropped(col) {
			continue
		}
		if err := encodeColumn(col, keyBuf, valueBuf, record, col.Index()); err != nil {
			return nil, nil, err
		}
	}

	keyBuf.PutBytes(make([]byte, reservedTailLen))
	keyBuf.PutByte(e.codecVersion)
	return keyBuf.Bytes(), valueBuf.Bytes(), nil
}

// EncodeKey serializes only the key portion, for point lookups. The
// record layout matches Encode; value columns may be nil.
func (e *RecordEncoder) EncodeKey(record []any) ([]byte, error) {
	if len(record) != len(e.schemas) {
		return nil, fmt.Errorf("record has %d slots, schema has %d", len(record), len(e.schemas))
	}

	keyBuf := NewWriteBuf(e.order)
	valueBuf := NewWriteBuf(e.order)
	keyBuf.PutByte(e.namespace)
	keyBuf.PutLong(e.tableID)

	for _, col := range e.schemas {
		if isDropped(col) || !col.IsKey() {
			continue
		}
		if err := encodeColumn(col, keyBuf, valueBuf, record, col.Index()); err != nil {
			return nil, err
		}
	}

	keyBuf.PutBytes(make([]byte, reservedTailLen))
	keyBuf.PutByte(e.codecVersion)
	return keyBuf.Bytes(), nil
}

// KeyPrefix returns the namespace and table id bytes shared by every key
// this encoder produces, for bounding range scans.
func (e *RecordEncoder) KeyPrefix() []byte {
	b := NewWriteBuf(e.order)
	b.PutByte(e.namespace)
	b.PutLong(e.tableID)
	return b.Bytes()
}
