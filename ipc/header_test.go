package ipc

import "testing"

func TestMessageHeader_RoundTrip(t *testing.T) {
	h := MessageHeader{Encoding: 1, MessageType: Sync, Compressed: 0, Length: 42}
	buf := h.ToBytes()
	if len(buf) != HeaderSize {
		t.Fatalf("ToBytes() len = %d, want %d", len(buf), HeaderSize)
	}

	var got MessageHeader
	if err := got.FromBytes(buf); err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	if got != h {
		t.Errorf("FromBytes() = %+v, want %+v", got, h)
	}
}

func TestMessageHeader_BigEndianLength(t *testing.T) {
	h := MessageHeader{Encoding: 0, MessageType: Reply, Compressed: 1, Length: 0x01020304}
	buf := h.ToBytes()
	if buf[4] != 0x01 || buf[5] != 0x02 || buf[6] != 0x03 || buf[7] != 0x04 {
		t.Errorf("big-endian length bytes = %v, want [1 2 3 4]", buf[4:8])
	}

	var got MessageHeader
	got.FromBytes(buf)
	if got.Length != h.Length {
		t.Errorf("Length = %d, want %d", got.Length, h.Length)
	}
}

func TestMessageHeader_FromBytes_TooShort(t *testing.T) {
	var h MessageHeader
	if err := h.FromBytes([]byte{1, 2, 3}); err == nil {
		t.Fatal("FromBytes() error = nil, want InvalidMessageSize error")
	}
}
