package codec

import "errors"

// Errors
var (
	// ErrRejected is the umbrella rejection outcome: the record's header
	// does not belong to this decoder. The wrapped errors below narrow it
	// to the specific header check that failed.
	ErrRejected = errors.New("record rejected")

	// ErrWrongTable means the table id embedded in the key does not match
	// the decoder's configured table id.
	ErrWrongTable = &RejectionError{"table id mismatch"}

	// ErrBadCodecVersion means the trailing codec-version byte of the key
	// names a layout newer than this decoder understands.
	ErrBadCodecVersion = &RejectionError{"codec version not supported"}

	// ErrBadSchemaVersion means the leading schema-version of the value
	// was written by a newer schema than this decoder's.
	ErrBadSchemaVersion = &RejectionError{"schema version not supported"}

	// ErrShortBuffer means a read ran past the available bytes. This is a
	// malformed-bytes defect, not a rejection: the bytes do not match the
	// schema they claim to be encoded under.
	ErrShortBuffer = errors.New("read past end of buffer")

	// ErrInvalidProjection means a projected decode was asked for
	// out-of-range or duplicate schema positions.
	ErrInvalidProjection = errors.New("invalid projection")
)

// RejectionError is a header-check failure. It unwraps to ErrRejected so
// callers that do not care which check failed can test the umbrella.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return "record rejected: " + e.Reason
}

func (e *RejectionError) Unwrap() error {
	return ErrRejected
}
