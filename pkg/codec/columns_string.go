package codec

// StringColumn stores a string as a 4-byte length followed by the raw
// bytes. Variable-length skips parse just the length, never the data.
type StringColumn struct{ columnBase }

func (c *StringColumn) Kind() Kind { return String }

func (c *StringColumn) decodeKey(b *Buf) (string, error) {
	return c.readString(b)
}

func (c *StringColumn) decodeValue(b *Buf) (string, bool, error) {
	present, err := readValueTag(b)
	if err != nil || !present {
		return "", false, err
	}
	v, err := c.readString(b)
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *StringColumn) skipKey(b *Buf) error {
	return c.skipString(b)
}

func (c *StringColumn) skipValue(b *Buf) error {
	present, err := readValueTag(b)
	if err != nil || !present {
		return err
	}
	return c.skipString(b)
}

func (c *StringColumn) encodeKey(b *Buf, v string) error {
	c.putString(b, v)
	return nil
}

func (c *StringColumn) encodeValue(b *Buf, v string, present bool) error {
	if !present {
		b.PutByte(nullTag)
		return nil
	}
	b.PutByte(presentTag)
	c.putString(b, v)
	return nil
}

// String wire helpers live on columnBase so StringListColumn shares them.

func (b *columnBase) readString(buf *Buf) (string, error) {
	n, err := b.readUint32(buf)
	if err != nil {
		return "", err
	}
	raw, err := buf.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (b *columnBase) skipString(buf *Buf) error {
	n, err := b.readUint32(buf)
	if err != nil {
		return err
	}
	return buf.Skip(int(n))
}

func (b *columnBase) putString(buf *Buf, v string) {
	b.putUint32(buf, uint32(len(v)))
	buf.PutBytes([]byte(v))
}
