// Package codec implements SifDB's schema-driven record format: the
// translation between a storage-engine key/value byte pair and an ordered
// sequence of typed, possibly-NULL column values.
//
// # Layout
//
// Every stored row is a key byte string and a value byte string:
//
//	key:   [namespace(1)][table id(8)][key columns...][reserved(3)][codec version(1)]
//	value: [schema version(4)][value columns...]
//
// Column bytes appear in schema-list order. Scalars are fixed width in
// the configured byte order; strings carry a 4-byte length prefix; lists
// carry a 4-byte element count. Value-portion columns are preceded by a
// one-byte null tag so rows can store explicit NULLs; key columns are
// always present.
//
// # Versioning
//
// Two versions gate every decode. The trailing codec-version byte of the
// key names the physical layout; keys tagged newer than CodecVersion are
// rejected rather than misparsed. The leading schema version of the value
// names the column set; a decoder at schema version S reads anything
// written at version <= S, and value columns missing from an older row
// decode to nil instead of failing. Both rejections unwrap to ErrRejected.
//
// # Decoding
//
// RecordDecoder walks the schema list in wire order and dispatches each
// column through a fixed table indexed by the column's type ordinal, so
// per-column type resolution is a single array lookup. Projected decodes
// (DecodeColumns) skip unrequested columns using type-specific skips that
// parse only what is needed to find the next column, and stop early once
// every requested column is materialized.
//
// # Schema evolution
//
// Dropped columns stay in the schema list as Dropped tombstones so the
// positions of surviving columns never move. Adding a column appends it
// to the list under a bumped schema version.
//
// # Concurrency
//
// Encoders and decoders are immutable after construction and safe for
// concurrent use; each call works on caller-owned bytes and a fresh
// output record. The bound schema list must not be mutated while any
// codec instance references it.
package codec
