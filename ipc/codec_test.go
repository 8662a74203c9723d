package ipc

import (
	"testing"

	"github.com/yshing/kdb-codec/kdb"
)

func TestEncodeDecode_Uncompressed_RoundTrips(t *testing.T) {
	c := NewCodec(true)
	msg := Message{MessageType: Sync, Value: kdb.NewSymbolList([]string{"a", "b", "c"})}

	frame, err := c.Encode(msg, 1)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var header MessageHeader
	if err := header.FromBytes(frame); err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	if header.Compressed != 0 {
		t.Errorf("Compressed = %d, want 0", header.Compressed)
	}
	if int(header.Length) != len(frame) {
		t.Errorf("Length = %d, want %d", header.Length, len(frame))
	}

	decoded, consumed, err := c.Decode(frame)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if consumed != len(frame) {
		t.Errorf("consumed = %d, want %d", consumed, len(frame))
	}
	syms, err := decoded.Value.Symbols()
	if err != nil || len(syms) != 3 {
		t.Errorf("Symbols() = %v, %v, want 3 symbols", syms, err)
	}
}

func TestEncodeDecode_CompressesLargeRemotePayload(t *testing.T) {
	c := WithOptions(false, CompressionAuto, ValidationStrict)
	big := make([]int64, 5000)
	msg := Message{MessageType: Sync, Value: kdb.NewLongList(big)}

	frame, err := c.Encode(msg, 1)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var header MessageHeader
	header.FromBytes(frame)
	if header.Compressed != 1 {
		t.Errorf("Compressed = %d, want 1 for large remote payload", header.Compressed)
	}

	decoded, _, err := c.Decode(frame)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	longs, _ := decoded.Value.Longs()
	if len(longs) != 5000 {
		t.Errorf("Longs() len = %d, want 5000", len(longs))
	}
}

func TestEncode_AutoModeSkipsCompressionWhenLocal(t *testing.T) {
	c := NewCodec(true)
	big := make([]int64, 5000)
	msg := Message{MessageType: Sync, Value: kdb.NewLongList(big)}

	frame, err := c.Encode(msg, 1)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var header MessageHeader
	header.FromBytes(frame)
	if header.Compressed != 0 {
		t.Errorf("Compressed = %d, want 0 when isLocal and mode is Auto", header.Compressed)
	}
}

func TestEncode_NeverModeNeverCompresses(t *testing.T) {
	c := WithOptions(false, CompressionNever, ValidationStrict)
	big := make([]int64, 5000)
	msg := Message{MessageType: Sync, Value: kdb.NewLongList(big)}

	frame, err := c.Encode(msg, 1)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var header MessageHeader
	header.FromBytes(frame)
	if header.Compressed != 0 {
		t.Errorf("Compressed = %d, want 0 under CompressionNever", header.Compressed)
	}
}

func TestDecode_IncompleteFrame_ReturnsNilWithNoError(t *testing.T) {
	c := NewCodec(true)
	msg, consumed, err := c.Decode([]byte{1, 1, 0, 0, 0})
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil for partial header", err)
	}
	if msg != nil || consumed != 0 {
		t.Errorf("Decode() = %v, %d, want nil, 0", msg, consumed)
	}
}

func TestDecode_PartialBody_ReturnsNilWithNoError(t *testing.T) {
	c := NewCodec(true)
	frame, _ := c.Encode(Message{MessageType: Sync, Value: kdb.NewSymbol("aapl")}, 1)
	msg, consumed, err := c.Decode(frame[:len(frame)-1])
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil for partial body", err)
	}
	if msg != nil || consumed != 0 {
		t.Errorf("Decode() = %v, %d, want nil, 0 for incomplete frame", msg, consumed)
	}
}

func TestDecode_StrictValidation_RejectsInvalidMessageType(t *testing.T) {
	c := NewCodec(true)
	frame, _ := c.Encode(Message{MessageType: Sync, Value: kdb.NewBool(true)}, 1)
	frame[1] = 7 // invalid message_type
	_, _, err := c.Decode(frame)
	if err == nil {
		t.Fatal("Decode() error = nil, want InvalidHeaderField under strict validation")
	}
}

func TestDecode_LenientValidation_AcceptsAnyMessageType(t *testing.T) {
	c := WithOptions(true, CompressionNever, ValidationLenient)
	frame, _ := c.Encode(Message{MessageType: Sync, Value: kdb.NewBool(true)}, 1)
	frame[1] = 7
	_, _, err := c.Decode(frame)
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil under lenient validation", err)
	}
}

func TestCodecBuilder_ComposesOptions(t *testing.T) {
	c := Builder(false).
		CompressionMode(CompressionAlways).
		ValidationMode(ValidationLenient).
		MaxListSize(1000).
		Build()
	if c.CompressionMode() != CompressionAlways {
		t.Errorf("CompressionMode() = %v, want CompressionAlways", c.CompressionMode())
	}
	if c.ValidationMode() != ValidationLenient {
		t.Errorf("ValidationMode() = %v, want ValidationLenient", c.ValidationMode())
	}
}

func TestEncode_SmallMessageNeverCompressesUnderAlways(t *testing.T) {
	c := WithOptions(false, CompressionAlways, ValidationStrict)
	frame, err := c.Encode(Message{MessageType: Sync, Value: kdb.NewBool(true)}, 1)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var header MessageHeader
	header.FromBytes(frame)
	if header.Compressed != 0 {
		t.Errorf("Compressed = %d, want 0 for a message below the compression threshold", header.Compressed)
	}
}
