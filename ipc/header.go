// Package ipc implements the 8-byte kdb+ IPC message framing around a
// wire-encoded K value: the header, the optional LZ compression, and
// the streaming encode/decode contract used by package conn.
package ipc

import (
	kerr "github.com/yshing/kdb-codec/internal/errors"
)

// HeaderSize is the fixed size, in bytes, of an IPC message header.
const HeaderSize = 8

// Message types, carried in the header's message_type byte.
const (
	Async byte = 0
	Sync  byte = 1
	Reply byte = 2
)

// MessageHeader is the 8-byte preamble of every kdb+ IPC message.
type MessageHeader struct {
	// Encoding is 0 for big-endian, 1 for little-endian. It governs how
	// every multi-byte field in this header and in the payload that
	// follows it is to be read, including Length itself.
	Encoding byte

	// MessageType is one of Async, Sync, Reply.
	MessageType byte

	// Compressed is 1 if the payload is LZ-compressed, 0 otherwise.
	Compressed byte

	// reserved is the header's unused 4th byte; always written as 0.
	reserved byte

	// Length is the total message length in bytes, including this
	// 8-byte header.
	Length uint32
}

// FromBytes parses a MessageHeader from the first HeaderSize bytes of buf.
func (h *MessageHeader) FromBytes(buf []byte) error {
	if len(buf) < HeaderSize {
		return &kerr.FramingError{Kind: "InvalidMessageSize", Details: "buffer shorter than header size"}
	}
	h.Encoding = buf[0]
	h.MessageType = buf[1]
	h.Compressed = buf[2]
	h.reserved = buf[3]
	if h.Encoding == 0 {
		h.Length = uint32(buf[4])<<24 | uint32(buf[5])<<16 | uint32(buf[6])<<8 | uint32(buf[7])
	} else {
		h.Length = uint32(buf[4]) | uint32(buf[5])<<8 | uint32(buf[6])<<16 | uint32(buf[7])<<24
	}
	return nil
}

// ToBytes renders h as its 8-byte wire form.
func (h *MessageHeader) ToBytes() []byte {
	buf := make([]byte, HeaderSize)
	buf[0] = h.Encoding
	buf[1] = h.MessageType
	buf[2] = h.Compressed
	buf[3] = 0
	if h.Encoding == 0 {
		buf[4] = byte(h.Length >> 24)
		buf[5] = byte(h.Length >> 16)
		buf[6] = byte(h.Length >> 8)
		buf[7] = byte(h.Length)
	} else {
		buf[4] = byte(h.Length)
		buf[5] = byte(h.Length >> 8)
		buf[6] = byte(h.Length >> 16)
		buf[7] = byte(h.Length >> 24)
	}
	return buf
}
