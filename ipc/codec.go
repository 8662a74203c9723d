package ipc

import (
	"github.com/yshing/kdb-codec/internal/compress"
	kerr "github.com/yshing/kdb-codec/internal/errors"
	"github.com/yshing/kdb-codec/internal/wire"
	"github.com/yshing/kdb-codec/kdb"
)

// CompressionThreshold is the total frame size, in bytes (8-byte header
// included), above which Auto and Always compression modes attempt
// compression at all. Below this size compression overhead never pays
// off.
const CompressionThreshold = 2000

// CompressionMode controls whether Encode attempts to LZ-compress a
// message payload.
type CompressionMode int

const (
	// CompressionAuto compresses when the frame exceeds
	// CompressionThreshold and the connection is not local (loopback).
	CompressionAuto CompressionMode = iota
	// CompressionAlways compresses whenever the frame exceeds
	// CompressionThreshold, regardless of locality.
	CompressionAlways
	// CompressionNever never compresses.
	CompressionNever
)

// ValidationMode controls how strictly Decode checks header fields
// before trusting them.
type ValidationMode int

const (
	// ValidationStrict rejects a header whose Compressed byte is not 0/1
	// or whose MessageType byte is not Async/Sync/Reply.
	ValidationStrict ValidationMode = iota
	// ValidationLenient accepts any byte value in those fields.
	ValidationLenient
)

// Message is a decoded IPC frame payload: a message type and a K value.
type Message struct {
	MessageType byte
	Value       *kdb.K
}

// Codec encodes and decodes kdb+ IPC frames over a single logical
// connection. Encode and Decode only read the Codec's settings; the
// setters are not synchronized and must not run concurrently with them.
type Codec struct {
	isLocal         bool
	compressionMode CompressionMode
	validationMode  ValidationMode

	maxListSize          int
	maxRecursionDepth    int
	maxMessageSize       int
	maxDecompressedSize  int
}

// NewCodec constructs a Codec with default options: CompressionAuto,
// ValidationStrict, and the resource bounds in wire.DefaultLimits plus
// a 256 MiB max message size and a 512 MiB max decompressed size.
func NewCodec(isLocal bool) *Codec {
	return &Codec{
		isLocal:             isLocal,
		compressionMode:     CompressionAuto,
		validationMode:      ValidationStrict,
		maxListSize:         wire.DefaultLimits.MaxListSize,
		maxRecursionDepth:   wire.DefaultLimits.MaxRecursionDepth,
		maxMessageSize:      256 << 20,
		maxDecompressedSize: 512 << 20,
	}
}

// WithOptions constructs a Codec with explicit compression and
// validation modes.
func WithOptions(isLocal bool, compressionMode CompressionMode, validationMode ValidationMode) *Codec {
	c := NewCodec(isLocal)
	c.compressionMode = compressionMode
	c.validationMode = validationMode
	return c
}

// CodecBuilder assembles a Codec via chained calls, mirroring the fluent
// construction style used elsewhere for optional configuration.
type CodecBuilder struct {
	c *Codec
}

// Builder starts a CodecBuilder seeded with NewCodec(isLocal)'s defaults.
func Builder(isLocal bool) *CodecBuilder {
	return &CodecBuilder{c: NewCodec(isLocal)}
}

func (b *CodecBuilder) CompressionMode(m CompressionMode) *CodecBuilder {
	b.c.compressionMode = m
	return b
}

func (b *CodecBuilder) ValidationMode(m ValidationMode) *CodecBuilder {
	b.c.validationMode = m
	return b
}

func (b *CodecBuilder) MaxListSize(n int) *CodecBuilder {
	b.c.maxListSize = n
	return b
}

func (b *CodecBuilder) MaxRecursionDepth(n int) *CodecBuilder {
	b.c.maxRecursionDepth = n
	return b
}

func (b *CodecBuilder) MaxMessageSize(n int) *CodecBuilder {
	b.c.maxMessageSize = n
	return b
}

func (b *CodecBuilder) MaxDecompressedSize(n int) *CodecBuilder {
	b.c.maxDecompressedSize = n
	return b
}

func (b *CodecBuilder) Build() *Codec {
	return b.c
}

// CompressionMode returns c's current compression mode.
func (c *Codec) CompressionMode() CompressionMode { return c.compressionMode }

// SetCompressionMode updates c's compression mode.
func (c *Codec) SetCompressionMode(m CompressionMode) { c.compressionMode = m }

// ValidationMode returns c's current validation mode.
func (c *Codec) ValidationMode() ValidationMode { return c.validationMode }

// SetValidationMode updates c's validation mode.
func (c *Codec) SetValidationMode(m ValidationMode) { c.validationMode = m }

// WithMaxListSize sets the maximum element count Decode accepts for any
// single list before allocating it, returning c for chaining.
func (c *Codec) WithMaxListSize(n int) *Codec {
	c.maxListSize = n
	return c
}

// WithMaxRecursionDepth sets the maximum nesting depth Decode accepts
// for compound lists/dictionaries/tables, returning c for chaining.
func (c *Codec) WithMaxRecursionDepth(n int) *Codec {
	c.maxRecursionDepth = n
	return c
}

// WithMaxMessageSize sets the maximum total frame size, in bytes, Encode
// and Decode accept, returning c for chaining.
func (c *Codec) WithMaxMessageSize(n int) *Codec {
	c.maxMessageSize = n
	return c
}

// WithMaxDecompressedSize sets the maximum decompressed payload size
// Decode accepts before allocating it, returning c for chaining.
func (c *Codec) WithMaxDecompressedSize(n int) *Codec {
	c.maxDecompressedSize = n
	return c
}

// Encode renders msg as a complete IPC frame: an 8-byte header followed
// by the (possibly compressed) serialized payload.
func (c *Codec) Encode(msg Message, encoding byte) ([]byte, error) {
	payload := wire.Serialize(msg.Value, encoding)
	messageLength := HeaderSize + len(payload)

	// The threshold is expressed in terms of the total frame size
	// (including the 8-byte header), so the payload-only comparison
	// subtracts HeaderSize from it.
	shouldCompress := false
	switch c.compressionMode {
	case CompressionNever:
		shouldCompress = false
	case CompressionAlways:
		shouldCompress = len(payload) > CompressionThreshold-HeaderSize
	case CompressionAuto:
		shouldCompress = len(payload) > CompressionThreshold-HeaderSize && !c.isLocal
	}

	if c.maxMessageSize > 0 && messageLength > c.maxMessageSize {
		return nil, &kerr.FramingError{Kind: "MessageTooLarge", Details: "encoded message exceeds configured maximum"}
	}

	if shouldCompress {
		raw := make([]byte, HeaderSize+len(payload))
		header := MessageHeader{Encoding: encoding, MessageType: msg.MessageType, Compressed: 0, Length: uint32(messageLength)}
		copy(raw, header.ToBytes())
		copy(raw[HeaderSize:], payload)

		ok, compressed := compress.Compress(raw, encoding)
		if ok {
			return compressed, nil
		}
		// Compression didn't help; raw already carries the correct
		// header and length, so it is the frame as-is.
		return raw, nil
	}

	header := MessageHeader{Encoding: encoding, MessageType: msg.MessageType, Compressed: 0, Length: uint32(messageLength)}
	frame := make([]byte, 0, messageLength)
	frame = append(frame, header.ToBytes()...)
	frame = append(frame, payload...)
	return frame, nil
}

// Decode attempts to parse one complete IPC frame from the front of buf.
// It returns (nil, 0, nil) if buf does not yet contain a full frame —
// the caller should read more bytes and retry, matching a streaming
// transport's partial-read behavior. consumed is the number of bytes of
// buf belonging to the parsed frame, for the caller to advance past.
func (c *Codec) Decode(buf []byte) (msg *Message, consumed int, err error) {
	if len(buf) < HeaderSize {
		return nil, 0, nil
	}

	var header MessageHeader
	if err := header.FromBytes(buf); err != nil {
		return nil, 0, err
	}

	if c.validationMode == ValidationStrict {
		if header.Compressed != 0 && header.Compressed != 1 {
			return nil, 0, &kerr.FramingError{Kind: "InvalidHeaderField", Details: "compressed flag must be 0 or 1"}
		}
		if header.MessageType != Async && header.MessageType != Sync && header.MessageType != Reply {
			return nil, 0, &kerr.FramingError{Kind: "InvalidHeaderField", Details: "message_type must be 0, 1, or 2"}
		}
	}

	if header.Length < HeaderSize {
		return nil, 0, &kerr.FramingError{Kind: "InvalidMessageSize", Details: "declared length below header size"}
	}
	if c.maxMessageSize > 0 && int(header.Length) > c.maxMessageSize {
		return nil, 0, &kerr.FramingError{Kind: "InvalidMessageSize", Details: "declared length exceeds configured maximum"}
	}

	if len(buf) < int(header.Length) {
		return nil, 0, nil
	}

	payload := buf[HeaderSize:header.Length]

	if header.Compressed == 1 {
		payload, err = compress.Decompress(payload, header.Encoding, c.maxDecompressedSize)
		if err != nil {
			return nil, 0, err
		}
	}

	limits := wire.Limits{MaxListSize: c.maxListSize, MaxRecursionDepth: c.maxRecursionDepth}
	value, _, err := wire.Deserialize(payload, 0, header.Encoding, limits)
	if err != nil {
		return nil, 0, err
	}

	return &Message{MessageType: header.MessageType, Value: value}, int(header.Length), nil
}
