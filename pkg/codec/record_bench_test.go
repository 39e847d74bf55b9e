package codec

import (
	"testing"
)

func benchCodec(b *testing.B) (*RecordEncoder, *RecordDecoder, []byte, []byte) {
	b.Helper()
	schemas := allKindsSchemas()
	enc, err := NewRecordEncoder(1, schemas, testTableID)
	if err != nil {
		b.Fatalf("NewRecordEncoder: %v", err)
	}
	dec, err := NewRecordDecoder(1, schemas, testTableID)
	if err != nil {
		b.Fatalf("NewRecordDecoder: %v", err)
	}
	key, value, err := enc.Encode(allKindsRecord())
	if err != nil {
		b.Fatalf("Encode: %v", err)
	}
	return enc, dec, key, value
}

func BenchmarkEncode(b *testing.B) {
	enc, _, _, _ := benchCodec(b)
	record := allKindsRecord()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := enc.Encode(record); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	_, dec, key, value := benchCodec(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dec.Decode(key, value); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeKeyOnly(b *testing.B) {
	_, dec, key, _ := benchCodec(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dec.DecodeKeyOnly(key); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDecodeColumns measures the skip path: two early columns out
// of twelve, so most of the record is skipped rather than materialized.
func BenchmarkDecodeColumns(b *testing.B) {
	_, dec, key, value := benchCodec(b)
	columns := []int{0, 3}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dec.DecodeColumns(key, value, columns); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeColumnsFull(b *testing.B) {
	_, dec, key, value := benchCodec(b)
	columns := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dec.DecodeColumns(key, value, columns); err != nil {
			b.Fatal(err)
		}
	}
}
