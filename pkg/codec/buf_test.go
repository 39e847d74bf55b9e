package codec

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestBuf_ForwardReads(t *testing.T) {
	w := NewWriteBuf(binary.LittleEndian)
	w.PutByte(0xAB)
	w.PutInt(-7)
	w.PutLong(1 << 40)
	w.PutFloat32(1.5)
	w.PutFloat64(-2.25)
	w.PutBytes([]byte("abc"))

	b := NewBuf(w.Bytes(), binary.LittleEndian)

	if v, err := b.ReadByte(); err != nil || v != 0xAB {
		t.Fatalf("ReadByte = %v, %v", v, err)
	}
	if v, err := b.ReadInt(); err != nil || v != -7 {
		t.Fatalf("ReadInt = %v, %v", v, err)
	}
	if v, err := b.ReadLong(); err != nil || v != 1<<40 {
		t.Fatalf("ReadLong = %v, %v", v, err)
	}
	if v, err := b.ReadFloat32(); err != nil || v != 1.5 {
		t.Fatalf("ReadFloat32 = %v, %v", v, err)
	}
	if v, err := b.ReadFloat64(); err != nil || v != -2.25 {
		t.Fatalf("ReadFloat64 = %v, %v", v, err)
	}
	raw, err := b.ReadBytes(3)
	if err != nil || string(raw) != "abc" {
		t.Fatalf("ReadBytes = %q, %v", raw, err)
	}
	if !b.IsEnd() {
		t.Fatal("expected IsEnd after reading everything")
	}
	if _, err := b.ReadByte(); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("read past end = %v, want ErrShortBuffer", err)
	}
}

func TestBuf_ReverseReads(t *testing.T) {
	b := NewBuf([]byte{1, 2, 3, 4, 5}, binary.LittleEndian)

	if v, err := b.PeekReverseByte(); err != nil || v != 5 {
		t.Fatalf("PeekReverseByte = %v, %v", v, err)
	}
	if v, err := b.ReverseReadByte(); err != nil || v != 5 {
		t.Fatalf("ReverseReadByte = %v, %v", v, err)
	}
	if err := b.ReverseSkip(2); err != nil {
		t.Fatalf("ReverseSkip: %v", err)
	}
	// Tail consumption shrinks the logical end seen by forward reads.
	if got := b.Remaining(); got != 2 {
		t.Fatalf("Remaining = %d, want 2", got)
	}
	if v, err := b.ReadByte(); err != nil || v != 1 {
		t.Fatalf("ReadByte = %v, %v", v, err)
	}
	if v, err := b.ReverseReadByte(); err != nil || v != 2 {
		t.Fatalf("ReverseReadByte = %v, %v", v, err)
	}
	if !b.IsEnd() {
		t.Fatal("expected IsEnd once head met tail")
	}
	if err := b.ReverseSkip(1); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("ReverseSkip past head = %v, want ErrShortBuffer", err)
	}
}

func TestBuf_ByteOrder(t *testing.T) {
	w := NewWriteBuf(binary.BigEndian)
	w.PutInt(0x01020304)
	raw := w.Bytes()
	if raw[0] != 0x01 || raw[3] != 0x04 {
		t.Fatalf("big-endian write produced % X", raw)
	}

	b := NewBuf(raw, binary.BigEndian)
	if v, err := b.ReadInt(); err != nil || v != 0x01020304 {
		t.Fatalf("ReadInt = %#x, %v", v, err)
	}
}

func TestBuf_SkipBounds(t *testing.T) {
	b := NewBuf([]byte{1, 2, 3}, binary.LittleEndian)
	if err := b.Skip(2); err != nil {
		t.Fatalf("Skip(2): %v", err)
	}
	if err := b.Skip(2); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("Skip past end = %v, want ErrShortBuffer", err)
	}
	if err := b.Skip(-1); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("negative Skip = %v, want ErrShortBuffer", err)
	}
}
