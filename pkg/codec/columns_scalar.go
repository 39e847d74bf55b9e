package codec

import "math"

// Value-portion payloads carry a one-byte null tag ahead of the data so a
// stored row can hold an explicit NULL. Key payloads are written bare:
// key columns must always be present.
const (
	nullTag    byte = 0
	presentTag byte = 1
)

func readValueTag(b *Buf) (present bool, err error) {
	tag, err := b.ReadByte()
	if err != nil {
		return false, err
	}
	return tag == presentTag, nil
}

// BoolColumn stores a bool as a single byte.
type BoolColumn struct{ columnBase }

func (c *BoolColumn) Kind() Kind { return Bool }

func (c *BoolColumn) decodeKey(b *Buf) (bool, error) {
	v, err := b.ReadByte()
	return v != 0, err
}

func (c *BoolColumn) decodeValue(b *Buf) (bool, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return false, false, err
	}
	v, err := b.ReadByte()
	if err != nil {
		return false, false, err
	}
	return v != 0, true, nil
}

func (c *BoolColumn) skipKey(b *Buf) error { return b.Skip(1) }

func (c *BoolColumn) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return b.Skip(1)
}

func (c *BoolColumn) encodeKey(b *Buf, v bool) error {
	b.PutByte(boolByte(v))
	return nil
}

func (c *BoolColumn) encodeValue(b *Buf, v bool, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	b.PutByte(boolByte(v))
	return nil
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// Int32Column stores an int32 as 4 bytes in the bound byte order.
type Int32Column struct{ columnBase }

func (c *Int32Column) Kind() Kind { return Int32 }

func (c *Int32Column) decodeKey(b *Buf) (int32, error) {
	v, err := c.readUint32(b)
	return int32(v), err
}

func (c *Int32Column) decodeValue(b *Buf) (int32, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return 0, false, err
	}
	v, err := c.readUint32(b)
	if err != nil {
		return 0, false, err
	}
	return int32(v), true, nil
}

func (c *Int32Column) skipKey(b *Buf) error { return b.Skip(4) }

func (c *Int32Column) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return b.Skip(4)
}

func (c *Int32Column) encodeKey(b *Buf, v int32) error {
	c.putUint32(b, uint32(v))
	return nil
}

func (c *Int32Column) encodeValue(b *Buf, v int32, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putUint32(b, uint32(v))
	return nil
}

// Float32Column stores a float32 as its IEEE-754 bits in 4 bytes.
type Float32Column struct{ columnBase }

func (c *Float32Column) Kind() Kind { return Float32 }

func (c *Float32Column) decodeKey(b *Buf) (float32, error) {
	v, err := c.readUint32(b)
	return math.Float32frombits(v), err
}

func (c *Float32Column) decodeValue(b *Buf) (float32, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return 0, false, err
	}
	v, err := c.readUint32(b)
	if err != nil {
		return 0, false, err
	}
	return math.Float32frombits(v), true, nil
}

func (c *Float32Column) skipKey(b *Buf) error { return b.Skip(4) }

func (c *Float32Column) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return b.Skip(4)
}

func (c *Float32Column) encodeKey(b *Buf, v float32) error {
	c.putUint32(b, math.Float32bits(v))
	return nil
}

func (c *Float32Column) encodeValue(b *Buf, v float32, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putUint32(b, math.Float32bits(v))
	return nil
}

// Int64Column stores an int64 as 8 bytes in the bound byte order.
type Int64Column struct{ columnBase }

func (c *Int64Column) Kind() Kind { return Int64 }

func (c *Int64Column) decodeKey(b *Buf) (int64, error) {
	v, err := c.readUint64(b)
	return int64(v), err
}

func (c *Int64Column) decodeValue(b *Buf) (int64, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return 0, false, err
	}
	v, err := c.readUint64(b)
	if err != nil {
		return 0, false, err
	}
	return int64(v), true, nil
}

func (c *Int64Column) skipKey(b *Buf) error { return b.Skip(8) }

func (c *Int64Column) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return b.Skip(8)
}

func (c *Int64Column) encodeKey(b *Buf, v int64) error {
	c.putUint64(b, uint64(v))
	return nil
}

func (c *Int64Column) encodeValue(b *Buf, v int64, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putUint64(b, uint64(v))
	return nil
}

// Float64Column stores a float64 as its IEEE-754 bits in 8 bytes.
type Float64Column struct{ columnBase }

func (c *Float64Column) Kind() Kind { return Float64 }

func (c *Float64Column) decodeKey(b *Buf) (float64, error) {
	v, err := c.readUint64(b)
	return math.Float64frombits(v), err
}

func (c *Float64Column) decodeValue(b *Buf) (float64, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return 0, false, err
	}
	v, err := c.readUint64(b)
	if err != nil {
		return 0, false, err
	}
	return math.Float64frombits(v), true, nil
}

func (c *Float64Column) skipKey(b *Buf) error { return b.Skip(8) }

func (c *Float64Column) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return b.Skip(8)
}

func (c *Float64Column) encodeKey(b *Buf, v float64) error {
	c.putUint64(b, math.Float64bits(v))
	return nil
}

func (c *Float64Column) encodeValue(b *Buf, v float64, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putUint64(b, math.Float64bits(v))
	return nil
}
