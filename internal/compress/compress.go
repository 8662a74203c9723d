// Package compress implements the kdb+ IPC compression algorithm, the
// same byte-for-byte scheme used by the q functions -18!/-19!: a 256-entry
// hash-of-consecutive-byte-xor back-reference table over the raw message
// bytes (header included), encoded as an alternating run of literal bytes
// and (hash, run-length) back-reference pairs.
package compress

// Compress attempts kdb+ IPC compression of raw (an 8-byte placeholder
// header followed by the serialized payload). It returns (true,
// compressed) when the compressed form is smaller than half of raw's
// length, in which case compressed carries its own corrected 8-byte
// header (bytes 4:8, the total-length field) plus a 4-byte original-size
// field at bytes 8:12, followed by the compressed body. When compression
// does not save enough space, it returns (false, raw) unchanged.
//
// encoding selects the endianness used for the two length fields: 0 for
// big-endian, 1 for little-endian, matching the IPC header's own
// encoding byte.
func Compress(raw []byte, encoding byte) (bool, []byte) {
	var i, f byte
	var h0, h int
	var g bool

	compressed := make([]byte, len(raw)/2)

	c := 12
	d := c
	e := len(compressed)
	p := 0
	var q, r int
	s0 := 0

	s := 8
	t := len(raw)
	var a [256]int32

	copy(compressed[0:4], raw[0:4])
	compressed[2] = 1

	putUint32(compressed[8:12], uint32(t), encoding)

	for s < t {
		if i == 0 {
			if d > e-17 {
				return false, raw
			}
			i = 1
			compressed[c] = f
			c = d
			d++
			f = 0
		}
		g = s > t-3
		if !g {
			h = int(raw[s] ^ raw[s+1])
			p = int(a[h])
			g = p == 0 || raw[s] != raw[p]
		}
		if s0 > 0 {
			a[h0] = int32(s0)
			s0 = 0
		}
		if g {
			h0 = h
			s0 = s
			compressed[d] = raw[s]
			d++
			s++
		} else {
			a[h] = int32(s)
			f |= i
			p += 2
			s += 2
			r = s
			if s+255 > t {
				q = t
			} else {
				q = s + 255
			}
			for s < q && raw[p] == raw[s] {
				s++
				if s < q {
					p++
				}
			}
			compressed[d] = byte(h)
			d++
			compressed[d] = byte(s - r)
			d++
		}
		i *= 2
	}
	compressed[c] = f

	putUint32(compressed[4:8], uint32(d), encoding)
	return true, compressed[:d]
}

func putUint32(dst []byte, v uint32, encoding byte) {
	if encoding == 0 {
		dst[0] = byte(v >> 24)
		dst[1] = byte(v >> 16)
		dst[2] = byte(v >> 8)
		dst[3] = byte(v)
	} else {
		dst[0] = byte(v)
		dst[1] = byte(v >> 8)
		dst[2] = byte(v >> 16)
		dst[3] = byte(v >> 24)
	}
}

func getUint32(src []byte, encoding byte) uint32 {
	if encoding == 0 {
		return uint32(src[0])<<24 | uint32(src[1])<<16 | uint32(src[2])<<8 | uint32(src[3])
	}
	return uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
}
