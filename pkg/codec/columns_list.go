package codec

import "math"

// List columns store a 4-byte element count followed by the elements in
// their scalar encodings. Skipping a fixed-width list only parses the
// count; skipping a string list walks the per-element lengths.

// boundedCap limits slice preallocation to what the remaining bytes
// could actually hold, so a corrupt count cannot force a huge alloc.
func (b *Buf) boundedCap(n uint32, elemWidth int) int {
	limit := b.Remaining() / elemWidth
	if int64(n) < int64(limit) {
		return int(n)
	}
	return limit
}

func (b *columnBase) skipFixedList(buf *Buf, elemWidth int) error {
	n, err := b.readUint32(buf)
	if err != nil {
		return err
	}
	return buf.Skip(int(int64(n) * int64(elemWidth)))
}

// BoolListColumn stores []bool as a count plus one byte per element.
type BoolListColumn struct{ columnBase }

func (c *BoolListColumn) Kind() Kind { return BoolList }

func (c *BoolListColumn) readList(b *Buf) ([]bool, error) {
	n, err := c.readUint32(b)
	if err != nil {
		return nil, err
	}
	out := make([]bool, 0, b.boundedCap(n, 1))
	for i := uint32(0); i < n; i++ {
		v, err := b.ReadByte()
		if err != nil {
			return nil, err
		}
		out = append(out, v != 0)
	}
	return out, nil
}

func (c *BoolListColumn) putList(b *Buf, v []bool) {
	c.putUint32(b, uint32(len(v)))
	for _, e := range v {
		b.PutByte(boolByte(e))
	}
}

func (c *BoolListColumn) decodeKey(b *Buf) ([]bool, error) { return c.readList(b) }

func (c *BoolListColumn) decodeValue(b *Buf) ([]bool, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return nil, false, err
	}
	v, err := c.readList(b)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *BoolListColumn) skipKey(b *Buf) error { return c.skipFixedList(b, 1) }

func (c *BoolListColumn) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return c.skipFixedList(b, 1)
}

func (c *BoolListColumn) encodeKey(b *Buf, v []bool) error {
	c.putList(b, v)
	return nil
}

func (c *BoolListColumn) encodeValue(b *Buf, v []bool, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putList(b, v)
	return nil
}

// Int32ListColumn stores []int32 as a count plus 4 bytes per element.
type Int32ListColumn struct{ columnBase }

func (c *Int32ListColumn) Kind() Kind { return Int32List }

func (c *Int32ListColumn) readList(b *Buf) ([]int32, error) {
	n, err := c.readUint32(b)
	if err != nil {
		return nil, err
	}
	out := make([]int32, 0, b.boundedCap(n, 4))
	for i := uint32(0); i < n; i++ {
		v, err := c.readUint32(b)
		if err != nil {
			return nil, err
		}
		out = append(out, int32(v))
	}
	return out, nil
}

func (c *Int32ListColumn) putList(b *Buf, v []int32) {
	c.putUint32(b, uint32(len(v)))
	for _, e := range v {
		c.putUint32(b, uint32(e))
	}
}

func (c *Int32ListColumn) decodeKey(b *Buf) ([]int32, error) { return c.readList(b) }

func (c *Int32ListColumn) decodeValue(b *Buf) ([]int32, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return nil, false, err
	}
	v, err := c.readList(b)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *Int32ListColumn) skipKey(b *Buf) error { return c.skipFixedList(b, 4) }

func (c *Int32ListColumn) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return c.skipFixedList(b, 4)
}

func (c *Int32ListColumn) encodeKey(b *Buf, v []int32) error {
	c.putList(b, v)
	return nil
}

func (c *Int32ListColumn) encodeValue(b *Buf, v []int32, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putList(b, v)
	return nil
}

// Float32ListColumn stores []float32 as a count plus 4 bytes per element.
type Float32ListColumn struct{ columnBase }

func (c *Float32ListColumn) Kind() Kind { return Float32List }

func (c *Float32ListColumn) readList(b *Buf) ([]float32, error) {
	n, err := c.readUint32(b)
	if err != nil {
		return nil, err
	}
	out := make([]float32, 0, b.boundedCap(n, 4))
	for i := uint32(0); i < n; i++ {
		v, err := c.readUint32(b)
		if err != nil {
			return nil, err
		}
		out = append(out, math.Float32frombits(v))
	}
	return out, nil
}

func (c *Float32ListColumn) putList(b *Buf, v []float32) {
	c.putUint32(b, uint32(len(v)))
	for _, e := range v {
		c.putUint32(b, math.Float32bits(e))
	}
}

func (c *Float32ListColumn) decodeKey(b *Buf) ([]float32, error) { return c.readList(b) }

func (c *Float32ListColumn) decodeValue(b *Buf) ([]float32, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return nil, false, err
	}
	v, err := c.readList(b)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *Float32ListColumn) skipKey(b *Buf) error { return c.skipFixedList(b, 4) }

func (c *Float32ListColumn) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return c.skipFixedList(b, 4)
}

func (c *Float32ListColumn) encodeKey(b *Buf, v []float32) error {
	c.putList(b, v)
	return nil
}

func (c *Float32ListColumn) encodeValue(b *Buf, v []float32, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putList(b, v)
	return nil
}

// Int64ListColumn stores []int64 as a count plus 8 bytes per element.
type Int64ListColumn struct{ columnBase }

func (c *Int64ListColumn) Kind() Kind { return Int64List }

func (c *Int64ListColumn) readList(b *Buf) ([]int64, error) {
	n, err := c.readUint32(b)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, b.boundedCap(n, 8))
	for i := uint32(0); i < n; i++ {
		v, err := c.readUint64(b)
		if err != nil {
			return nil, err
		}
		out = append(out, int64(v))
	}
	return out, nil
}

func (c *Int64ListColumn) putList(b *Buf, v []int64) {
	c.putUint32(b, uint32(len(v)))
	for _, e := range v {
		c.putUint64(b, uint64(e))
	}
}

func (c *Int64ListColumn) decodeKey(b *Buf) ([]int64, error) { return c.readList(b) }

func (c *Int64ListColumn) decodeValue(b *Buf) ([]int64, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return nil, false, err
	}
	v, err := c.readList(b)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *Int64ListColumn) skipKey(b *Buf) error { return c.skipFixedList(b, 8) }

func (c *Int64ListColumn) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return c.skipFixedList(b, 8)
}

func (c *Int64ListColumn) encodeKey(b *Buf, v []int64) error {
	c.putList(b, v)
	return nil
}

func (c *Int64ListColumn) encodeValue(b *Buf, v []int64, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putList(b, v)
	return nil
}

// Float64ListColumn stores []float64 as a count plus 8 bytes per element.
type Float64ListColumn struct{ columnBase }

func (c *Float64ListColumn) Kind() Kind { return Float64List }

func (c *Float64ListColumn) readList(b *Buf) ([]float64, error) {
	n, err := c.readUint32(b)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, b.boundedCap(n, 8))
	for i := uint32(0); i < n; i++ {
		v, err := c.readUint64(b)
		if err != nil {
			return nil, err
		}
		out = append(out, math.Float64frombits(v))
	}
	return out, nil
}

func (c *Float64ListColumn) putList(b *Buf, v []float64) {
	c.putUint32(b, uint32(len(v)))
	for _, e := range v {
		c.putUint64(b, math.Float64bits(e))
	}
}

func (c *Float64ListColumn) decodeKey(b *Buf) ([]float64, error) { return c.readList(b) }

func (c *Float64ListColumn) decodeValue(b *Buf) ([]float64, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return nil, false, err
	}
	v, err := c.readList(b)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *Float64ListColumn) skipKey(b *Buf) error { return c.skipFixedList(b, 8) }

func (c *Float64ListColumn) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return c.skipFixedList(b, 8)
}

func (c *Float64ListColumn) encodeKey(b *Buf, v []float64) error {
	c.putList(b, v)
	return nil
}

func (c *Float64ListColumn) encodeValue(b *Buf, v []float64, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putList(b, v)
	return nil
}

// StringListColumn stores []string as a count plus length-prefixed
// elements.
type StringListColumn struct{ columnBase }

func (c *StringListColumn) Kind() Kind { return StringList }

func (c *StringListColumn) readList(b *Buf) ([]string, error) {
	n, err := c.readUint32(b)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, b.boundedCap(n, 4))
	for i := uint32(0); i < n; i++ {
		v, err := c.readString(b)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *StringListColumn) skipList(b *Buf) error {
	n, err := c.readUint32(b)
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		if err := c.skipString(b); err != nil {
			return err
		}
	}
	return nil
}

func (c *StringListColumn) putList(b *Buf, v []string) {
	c.putUint32(b, uint32(len(v)))
	for _, e := range v {
		c.putString(b, e)
	}
}

func (c *StringListColumn) decodeKey(b *Buf) ([]string, error) { return c.readList(b) }

func (c *StringListColumn) decodeValue(b *Buf) ([]string, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return nil, false, err
	}
	v, err := c.readList(b)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *StringListColumn) skipKey(b *Buf) error { return c.skipList(b) }

func (c *StringListColumn) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return c.skipList(b)
}

func (c *StringListColumn) encodeKey(b *Buf, v []string) error {
	c.putList(b, v)
	return nil
}

func (c *StringListColumn) encodeValue(b *Buf, v []string, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putList(b, v)
	return nil
}
