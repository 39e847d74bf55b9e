package codec

import (
	"encoding/binary"
	"math"
)

// Buf is an endian-aware cursor over a byte sequence. Forward reads
// consume from the head; reverse reads consume from the tail and shrink
// the logical end, so IsEnd reports when the forward position has met the
// unconsumed tail. A Buf is also used in write mode, where Put* methods
// append to a growable buffer.
type Buf struct {
	data  []byte
	pos   int
	end   int
	order binary.ByteOrder
}

// NewBuf creates a read cursor over data. The data is borrowed, not
// copied, and must not be mutated while the Buf is in use.
func NewBuf(data []byte, order binary.ByteOrder) *Buf {
	return &Buf{data: data, end: len(data), order: order}
}

// NewWriteBuf creates an empty buffer for encoding.
func NewWriteBuf(order binary.ByteOrder) *Buf {
	return &Buf{order: order}
}

// IsEnd reports whether the forward position has consumed everything up
// to the unconsumed tail.
func (b *Buf) IsEnd() bool {
	return b.pos >= b.end
}

// Remaining returns the number of unread bytes between the forward
// position and the unconsumed tail.
func (b *Buf) Remaining() int {
	return b.end - b.pos
}

// Bytes returns the written bytes of a write-mode Buf.
func (b *Buf) Bytes() []byte {
	return b.data
}

func (b *Buf) ReadByte() (byte, error) {
	if b.pos+1 > b.end {
		return 0, ErrShortBuffer
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

func (b *Buf) ReadUint32() (uint32, error) {
	if b.pos+4 > b.end {
		return 0, ErrShortBuffer
	}
	v := b.order.Uint32(b.data[b.pos:])
	b.pos += 4
	return v, nil
}

func (b *Buf) ReadUint64() (uint64, error) {
	if b.pos+8 > b.end {
		return 0, ErrShortBuffer
	}
	v := b.order.Uint64(b.data[b.pos:])
	b.pos += 8
	return v, nil
}

// ReadInt reads a 4-byte signed integer.
func (b *Buf) ReadInt() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadLong reads an 8-byte signed integer.
func (b *Buf) ReadLong() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

func (b *Buf) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()
	return math.Float32frombits(v), err
}

func (b *Buf) ReadFloat64() (float64, error) {
	v, err := b.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBytes reads n bytes. The returned slice aliases the underlying
// data; callers that retain it must copy.
func (b *Buf) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.pos+n > b.end {
		return nil, ErrShortBuffer
	}
	v := b.data[b.pos : b.pos+n]
	b.pos += n
	return v, nil
}

// Skip advances the forward position by n bytes.
func (b *Buf) Skip(n int) error {
	if n < 0 || b.pos+n > b.end {
		return ErrShortBuffer
	}
	b.pos += n
	return nil
}

// ReverseReadByte consumes and returns the last unconsumed byte.
func (b *Buf) ReverseReadByte() (byte, error) {
	if b.end-1 < b.pos {
		return 0, ErrShortBuffer
	}
	b.end--
	return b.data[b.end], nil
}

// ReverseSkip consumes n bytes from the tail.
func (b *Buf) ReverseSkip(n int) error {
	if n < 0 || b.end-n < b.pos {
		return ErrShortBuffer
	}
	b.end -= n
	return nil
}

// PeekReverseByte returns the last unconsumed byte without consuming it.
func (b *Buf) PeekReverseByte() (byte, error) {
	if b.end-1 < b.pos {
		return 0, ErrShortBuffer
	}
	return b.data[b.end-1], nil
}

func (b *Buf) PutByte(v byte) {
	b.data = append(b.data, v)
}

func (b *Buf) PutBytes(v []byte) {
	b.data = append(b.data, v...)
}

func (b *Buf) PutUint32(v uint32) {
	var scratch [4]byte
	b.order.PutUint32(scratch[:], v)
	b.data = append(b.data, scratch[:]...)
}

func (b *Buf) PutUint64(v uint64) {
	var scratch [8]byte
	b.order.PutUint64(scratch[:], v)
	b.data = append(b.data, scratch[:]...)
}

func (b *Buf) PutInt(v int32) {
	b.PutUint32(uint32(v))
}

func (b *Buf) PutLong(v int64) {
	b.PutUint64(uint64(v))
}

func (b *Buf) PutFloat32(v float32) {
	b.PutUint32(math.Float32bits(v))
}

func (b *Buf) PutFloat64(v float64) {
	b.PutUint64(math.Float64bits(v))
}
