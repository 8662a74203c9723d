package compress

import kerr "github.com/yshing/kdb-codec/internal/errors"

// Decompress reverses Compress. compressed is the payload with the outer
// 8-byte IPC header already stripped: a 4-byte original-size field
// (including that stripped header) followed by the compressed body.
//
// maxDecompressedSize bounds the claimed original size before any
// allocation happens, rejecting a compression bomb (a tiny wire payload
// that claims to expand to gigabytes) with a CompressionError rather than
// allocating. Pass 0 to disable the bound.
func Decompress(compressed []byte, encoding byte, maxDecompressedSize int) ([]byte, error) {
	if len(compressed) < 4 {
		return nil, &kerr.CompressionError{Kind: "InvalidCompressedData", Details: "missing uncompressed-size header"}
	}

	sizeWithHeader := int(getUint32(compressed[0:4], encoding))
	if sizeWithHeader < 8 {
		return nil, &kerr.CompressionError{Kind: "InvalidCompressedData", Details: "claimed size below minimum header size"}
	}
	size := sizeWithHeader - 8

	if maxDecompressedSize > 0 && size > maxDecompressedSize {
		return nil, &kerr.CompressionError{Kind: "DecompressedSizeExceedsLimit", Claimed: size, Limit: maxDecompressedSize}
	}

	decompressed := make([]byte, size)

	s := 0
	p := s
	i := 0
	d := 4
	var f int
	var aa [256]int32
	n := 0

	for s < len(decompressed) {
		if i == 0 {
			if d >= len(compressed) {
				return nil, &kerr.CompressionError{Kind: "InvalidCompressedData", Details: "truncated control byte"}
			}
			f = int(compressed[d])
			d++
			i = 1
		}
		if f&i != 0 {
			if d >= len(compressed) {
				return nil, &kerr.CompressionError{Kind: "InvalidCompressedData", Details: "truncated back-reference"}
			}
			r := int(aa[compressed[d]])
			d++
			if r+1 >= len(decompressed) || s+1 >= len(decompressed) {
				return nil, &kerr.CompressionError{Kind: "InvalidCompressedData", Details: "back-reference out of range"}
			}
			decompressed[s] = decompressed[r]
			s++
			r++
			decompressed[s] = decompressed[r]
			s++
			r++
			if d >= len(compressed) {
				return nil, &kerr.CompressionError{Kind: "InvalidCompressedData", Details: "truncated run length"}
			}
			n = int(compressed[d])
			d++
			if s+n > len(decompressed) || r+n > len(decompressed) {
				return nil, &kerr.CompressionError{Kind: "InvalidCompressedData", Details: "copy run exceeds decompressed size"}
			}
			for m := 0; m < n; m++ {
				decompressed[s+m] = decompressed[r+m]
			}
		} else {
			if d >= len(compressed) {
				return nil, &kerr.CompressionError{Kind: "InvalidCompressedData", Details: "truncated literal byte"}
			}
			decompressed[s] = compressed[d]
			s++
			d++
		}
		for p < s-1 {
			aa[decompressed[p]^decompressed[p+1]] = int32(p)
			p++
		}
		if f&i != 0 {
			s += n
			p = s
		}
		i *= 2
		if i == 256 {
			i = 0
		}
	}
	return decompressed, nil
}
