// Package wire implements the q IPC serialization format for kdb.K
// values: the byte-exact encoding used by q's -8!/-9! (without the outer
// IPC message header, which belongs to package ipc).
package wire

import "encoding/binary"

// NativeEncoding is this process's endianness byte: 0 for big-endian, 1
// for little-endian, matching the IPC encoding byte convention.
var NativeEncoding = nativeEncoding()

func nativeEncoding() byte {
	probe := [2]byte{0x01, 0x00}
	if binary.NativeEndian.Uint16(probe[:]) == 1 {
		return 1
	}
	return 0
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

func putInt16(dst []byte, v int16, encoding byte) { putUint32Helper16(dst, uint16(v), encoding) }

func putUint32Helper16(dst []byte, v uint16, encoding byte) {
	if encoding == 0 {
		dst[0] = byte(v >> 8)
		dst[1] = byte(v)
	} else {
		dst[0] = byte(v)
		dst[1] = byte(v >> 8)
	}
}

func getInt16(src []byte, encoding byte) int16 {
	if encoding == 0 {
		return int16(uint16(src[0])<<8 | uint16(src[1]))
	}
	return int16(uint16(src[0]) | uint16(src[1])<<8)
}

func putInt32(dst []byte, v int32, encoding byte) { putUint32(dst, uint32(v), encoding) }
func getInt32(src []byte, encoding byte) int32     { return int32(getUint32(src, encoding)) }

func putUint64(dst []byte, v uint64, encoding byte) {
	if encoding == 0 {
		for i := 0; i < 8; i++ {
			dst[i] = byte(v >> (56 - 8*i))
		}
	} else {
		for i := 0; i < 8; i++ {
			dst[i] = byte(v >> (8 * i))
		}
	}
}

func getUint64(src []byte, encoding byte) uint64 {
	var v uint64
	if encoding == 0 {
		for i := 0; i < 8; i++ {
			v |= uint64(src[i]) << (56 - 8*i)
		}
	} else {
		for i := 0; i < 8; i++ {
			v |= uint64(src[i]) << (8 * i)
		}
	}
	return v
}

func putInt64(dst []byte, v int64, encoding byte) { putUint64(dst, uint64(v), encoding) }
func getInt64(src []byte, encoding byte) int64     { return int64(getUint64(src, encoding)) }
