package compress

import (
	"bytes"
	"testing"
)

func rawMessage(payload []byte) []byte {
	raw := make([]byte, 8+len(payload))
	raw[0] = 1 // little-endian
	raw[1] = 1 // synchronous
	copy(raw[8:], payload)
	return raw
}

func TestCompress_HighlyCompressibleData(t *testing.T) {
	payload := make([]byte, 20000)
	raw := rawMessage(payload)

	ok, compressed := Compress(raw, 1)
	if !ok {
		t.Fatalf("Compress() ok = false, want true for highly repetitive data")
	}
	if len(compressed) >= len(raw)/2 {
		t.Errorf("compressed size %d not less than half of %d", len(compressed), len(raw))
	}
	if compressed[2] != 1 {
		t.Errorf("compressed flag byte = %d, want 1", compressed[2])
	}

	decompressed, err := Decompress(compressed[8:], 1, 0)
	if err != nil {
		t.Fatalf("Decompress() error: %v", err)
	}
	if !bytes.Equal(decompressed, raw[8:]) {
		t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(decompressed), len(raw[8:]))
	}
}

func TestCompress_IncompressibleDataFallsBack(t *testing.T) {
	payload := make([]byte, 5000)
	for i := range payload {
		payload[i] = byte((i*31 + 7) % 256)
	}
	raw := rawMessage(payload)

	ok, result := Compress(raw, 1)
	if ok {
		t.Fatalf("Compress() ok = true, want false for pseudo-random data")
	}
	if !bytes.Equal(result, raw) {
		t.Errorf("Compress() on fallback should return raw unchanged")
	}
}

func TestDecompress_RejectsClaimedSizeBelowHeader(t *testing.T) {
	bad := []byte{0, 0, 0, 0} // claims size 0, below the 8-byte minimum
	_, err := Decompress(bad, 1, 0)
	if err == nil {
		t.Fatalf("Decompress() error = nil, want error for undersized claim")
	}
}

func TestDecompress_RejectsCompressionBomb(t *testing.T) {
	payload := make([]byte, 20000)
	raw := rawMessage(payload)
	ok, compressed := Compress(raw, 1)
	if !ok {
		t.Fatalf("setup: Compress() ok = false")
	}

	_, err := Decompress(compressed[8:], 1, 100)
	if err == nil {
		t.Fatalf("Decompress() error = nil, want DecompressedSizeExceedsLimit")
	}
}

func TestCompress_BigEndianRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 10000)
	raw := rawMessage(payload)
	raw[0] = 0 // big-endian

	ok, compressed := Compress(raw, 0)
	if !ok {
		t.Fatalf("Compress() ok = false, want true")
	}
	decompressed, err := Decompress(compressed[8:], 0, 0)
	if err != nil {
		t.Fatalf("Decompress() error: %v", err)
	}
	if !bytes.Equal(decompressed, raw[8:]) {
		t.Errorf("big-endian round trip mismatch")
	}
}
