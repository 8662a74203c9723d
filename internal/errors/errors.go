// Package errors defines the typed error taxonomy for the kdb+ IPC codec
// and connection layer: framing, deserialization, compression, and
// transport/handshake failures, plus API misuse against K values.
//
// Every type here carries enough context to act on (what operation failed,
// the offending value, the underlying cause); the types that wrap an
// underlying cause (DeserializationError, NetworkError,
// ConnectionClosedError) implement Unwrap so errors.Is/errors.As compose
// across package boundaries.
package errors

import (
	"fmt"
)

// FramingError represents a failure to parse or validate an IPC frame
// header: an out-of-range length, an invalid compressed/message_type
// field under strict validation, or a frame exceeding max_message_size.
type FramingError struct {
	// Kind is one of "InvalidMessageSize", "InvalidHeaderField", "MessageTooLarge".
	Kind string

	// Details describes the specific violation (e.g. "length 4 below minimum header size 8").
	Details string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("framing error: %s: %s", e.Kind, e.Details)
}

// DeserializationError represents a failure while decoding the wire
// representation of a K value.
type DeserializationError struct {
	// Kind is one of "InsufficientData", "InvalidType", "ListTooLarge",
	// "SizeOverflow", "MaxDepthExceeded", "MissingNullTerminator",
	// "InvalidUtf8", "InvalidDateTime", "DeserializationError".
	Kind string

	// Needed/Available are populated for InsufficientData.
	Needed    int
	Available int

	// Code is populated for InvalidType.
	Code int8

	// Size/Max are populated for ListTooLarge.
	Size int
	Max  int

	// Depth/MaxDepth are populated for MaxDepthExceeded.
	Depth    int
	MaxDepth int

	// Detail is a free-form message, used by the generic DeserializationError kind.
	Detail string

	Err error
}

func (e *DeserializationError) Error() string {
	switch e.Kind {
	case "InsufficientData":
		return fmt.Sprintf("deserialize: insufficient data: need %d bytes, have %d", e.Needed, e.Available)
	case "InvalidType":
		return fmt.Sprintf("deserialize: invalid type code %d", e.Code)
	case "ListTooLarge":
		return fmt.Sprintf("deserialize: list size %d exceeds maximum %d", e.Size, e.Max)
	case "SizeOverflow":
		return "deserialize: size computation overflowed"
	case "MaxDepthExceeded":
		return fmt.Sprintf("deserialize: recursion depth %d exceeds maximum %d", e.Depth, e.MaxDepth)
	case "MissingNullTerminator":
		return "deserialize: symbol missing null terminator"
	case "InvalidUtf8":
		return "deserialize: invalid UTF-8 in string payload"
	case "InvalidDateTime":
		return "deserialize: invalid date/time value"
	default:
		if e.Err != nil {
			return fmt.Sprintf("deserialize: %s: %v", e.Detail, e.Err)
		}
		return fmt.Sprintf("deserialize: %s", e.Detail)
	}
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// CompressionError represents a failure in the LZ compressor/decompressor,
// including compression-bomb rejection.
type CompressionError struct {
	// Kind is one of "InvalidCompressedData", "DecompressedSizeExceedsLimit".
	Kind string

	// Claimed/Limit are populated for DecompressedSizeExceedsLimit.
	Claimed int
	Limit   int

	Details string
}

func (e *CompressionError) Error() string {
	switch e.Kind {
	case "DecompressedSizeExceedsLimit":
		return fmt.Sprintf("compression: claimed decompressed size %d exceeds limit %d", e.Claimed, e.Limit)
	default:
		if e.Details != "" {
			return fmt.Sprintf("compression: invalid compressed data: %s", e.Details)
		}
		return "compression: invalid compressed data"
	}
}

// NetworkError represents transport-level failures: socket creation,
// dialing, binding, or I/O.
type NetworkError struct {
	Operation string
	Err       error
	Details   string
}

func (e *NetworkError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("network error during %s: %v (%s)", e.Operation, e.Err, e.Details)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthenticationError represents a failed handshake: malformed credential
// line, unknown user, or password hash mismatch.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// ConnectionClosedError represents an orderly or peer-initiated close of
// the underlying stream, observed by a blocked Recv.
type ConnectionClosedError struct {
	Err error
}

func (e *ConnectionClosedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connection closed: %v", e.Err)
	}
	return "connection closed"
}

func (e *ConnectionClosedError) Unwrap() error {
	return e.Err
}

// UsageError represents API misuse against a K value: a missing column,
// an out-of-bounds index, or an operation unsupported for the value's type.
type UsageError struct {
	// Kind is one of "NoSuchColumn", "IndexOutOfBounds", "InvalidOperation".
	Kind string

	Column string

	Len   int
	Index int

	Op    string
	QType int8
}

func (e *UsageError) Error() string {
	switch e.Kind {
	case "NoSuchColumn":
		return fmt.Sprintf("no such column: %q", e.Column)
	case "IndexOutOfBounds":
		return fmt.Sprintf("index %d out of bounds for length %d", e.Index, e.Len)
	default:
		return fmt.Sprintf("invalid operation %q for type %d", e.Op, e.QType)
	}
}
