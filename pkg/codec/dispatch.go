package codec

import "fmt"

// The dispatch tables map a column's kind ordinal straight to its typed
// decode-or-skip and encode routines. The ordinal is computed once from
// the schema and used as an array index, so no per-call type resolution
// happens beyond the single concrete-type assertion inside each entry.

type decodeOrSkipFunc func(col ColumnSchema, keyBuf, valueBuf *Buf, record []any, index int, skip bool) error

type encodeFunc func(col ColumnSchema, keyBuf, valueBuf *Buf, record []any, index int) error

var decodeOrSkipFuncs = [numKinds]decodeOrSkipFunc{
	Bool:        castAndDecodeOrSkip[bool, *BoolColumn](),
	Int32:       castAndDecodeOrSkip[int32, *Int32Column](),
	Float32:     castAndDecodeOrSkip[float32, *Float32Column](),
	Int64:       castAndDecodeOrSkip[int64, *Int64Column](),
	Float64:     castAndDecodeOrSkip[float64, *Float64Column](),
	String:      castAndDecodeOrSkip[string, *StringColumn](),
	BoolList:    castAndDecodeOrSkip[[]bool, *BoolListColumn](),
	Int32List:   castAndDecodeOrSkip[[]int32, *Int32ListColumn](),
	Float32List: castAndDecodeOrSkip[[]float32, *Float32ListColumn](),
	Int64List:   castAndDecodeOrSkip[[]int64, *Int64ListColumn](),
	Float64List: castAndDecodeOrSkip[[]float64, *Float64ListColumn](),
	StringList:  castAndDecodeOrSkip[[]string, *StringListColumn](),
}

var encodeFuncs = [numKinds]encodeFunc{
	Bool:        castAndEncode[bool, *BoolColumn](),
	Int32:       castAndEncode[int32, *Int32Column](),
	Float32:     castAndEncode[float32, *Float32Column](),
	Int64:       castAndEncode[int64, *Int64Column](),
	Float64:     castAndEncode[float64, *Float64Column](),
	String:      castAndEncode[string, *StringColumn](),
	BoolList:    castAndEncode[[]bool, *BoolListColumn](),
	Int32List:   castAndEncode[[]int32, *Int32ListColumn](),
	Float32List: castAndEncode[[]float32, *Float32ListColumn](),
	Int64List:   castAndEncode[[]int64, *Int64ListColumn](),
	Float64List: castAndEncode[[]float64, *Float64ListColumn](),
	StringList:  castAndEncode[[]string, *StringListColumn](),
}

// A column whose kind is outside the tables is a construction-time defect
// that FormatSchema rejects, so the ordinal index cannot go out of range
// at decode time.

type decodingColumn[T any] interface {
	ColumnSchema
	decodeKey(*Buf) (T, error)
	decodeValue(*Buf) (T, bool, error)
	skipKey(*Buf) error
	skipValue(*Buf) error
}

type encodingColumn[T any] interface {
	ColumnSchema
	encodeKey(*Buf, T) error
	encodeValue(*Buf, T, bool) error
}

// castAndDecodeOrSkip builds the dispatch entry for one concrete column
// type: assert the concrete type, then decode or skip per the contract.
// A value-portion column whose cursor is already at end decodes to the
// absent marker (nil); key columns are always present in the key bytes.
func castAndDecodeOrSkip[T any, C decodingColumn[T]]() decodeOrSkipFunc {
	return func(col ColumnSchema, keyBuf, valueBuf *Buf, record []any, index int, skip bool) error {
		c := col.(C)
		if skip {
			if c.IsKey() {
				return c.skipKey(keyBuf)
			}
			if !valueBuf.IsEnd() {
				return c.skipValue(valueBuf)
			}
			return nil
		}
		if c.IsKey() {
			v, err := c.decodeKey(keyBuf)
			if err != nil {
				return err
			}
			record[index] = v
			return nil
		}
		if valueBuf.IsEnd() {
			record[index] = nil
			return nil
		}
		v, present, err := c.decodeValue(valueBuf)
		if err != nil {
			return err
		}
		if !present {
			record[index] = nil
			return nil
		}
		record[index] = v
		return nil
	}
}

// castAndEncode builds the encode entry for one concrete column type.
// Key columns reject nil values; value columns encode nil as NULL.
func castAndEncode[T any, C encodingColumn[T]]() encodeFunc {
	return func(col ColumnSchema, keyBuf, valueBuf *Buf, record []any, index int) error {
		c := col.(C)
		raw := record[index]
		if c.IsKey() {
			v, ok := raw.(T)
			if !ok {
				if raw == nil {
					return fmt.Errorf("key column %q: value is nil", c.Name())
				}
				return fmt.Errorf("key column %q: want %s, got %T", c.Name(), c.Kind(), raw)
			}
			return c.encodeKey(keyBuf, v)
		}
		if raw == nil {
			var zero T
			return c.encodeValue(valueBuf, zero, false)
		}
		v, ok := raw.(T)
		if !ok {
			return fmt.Errorf("column %q: want %s, got %T", c.Name(), c.Kind(), raw)
		}
		return c.encodeValue(valueBuf, v, true)
	}
}

// decodeOrSkip dispatches one schema slot through the decode table.
func decodeOrSkip(col ColumnSchema, keyBuf, valueBuf *Buf, record []any, index int, skip bool) error {
	return decodeOrSkipFuncs[col.Kind()](col, keyBuf, valueBuf, record, index, skip)
}

// encodeColumn dispatches one schema slot through the encode table.
func encodeColumn(col ColumnSchema, keyBuf, valueBuf *Buf, record []any, index int) error {
	return encodeFuncs[col.Kind()](col, keyBuf, valueBuf, record, index)
}
