package wire

import (
	"math"

	"github.com/yshing/kdb-codec/kdb"
)

// Serialize encodes k in q IPC wire format (equivalent to q's -8!),
// without the outer IPC message header.
func Serialize(k *kdb.K, encoding byte) []byte {
	stream := make([]byte, 0, 64)
	return appendValue(stream, k, encoding)
}

func appendValue(stream []byte, k *kdb.K, encoding byte) []byte {
	switch k.Type() {
	case kdb.BOOL:
		v, _ := k.Bool()
		b := byte(0)
		if v {
			b = 1
		}
		return append(stream, byte(k.Type()), b)
	case kdb.BYTE:
		v, _ := k.Byte()
		return append(stream, byte(k.Type()), v)
	case kdb.CHAR:
		v, _ := k.Char()
		return append(stream, byte(k.Type()), v)
	case kdb.GUID:
		v, _ := k.GUID()
		stream = append(stream, byte(k.Type()))
		return append(stream, v[:]...)
	case kdb.SHORT:
		v, _ := k.Short()
		stream = append(stream, byte(k.Type()))
		var b [2]byte
		putInt16(b[:], v, encoding)
		return append(stream, b[:]...)
	case kdb.INT, kdb.MONTH, kdb.DATE, kdb.MINUTE, kdb.SECOND, kdb.TIME:
		v, _ := k.Int()
		stream = append(stream, byte(k.Type()))
		var b [4]byte
		putInt32(b[:], v, encoding)
		return append(stream, b[:]...)
	case kdb.LONG, kdb.TIMESTAMP, kdb.TIMESPAN:
		v, _ := k.Long()
		stream = append(stream, byte(k.Type()))
		var b [8]byte
		putInt64(b[:], v, encoding)
		return append(stream, b[:]...)
	case kdb.REAL:
		v, _ := k.Real()
		stream = append(stream, byte(k.Type()))
		var b [4]byte
		putInt32(b[:], int32(float32bits(v)), encoding)
		return append(stream, b[:]...)
	case kdb.FLOAT, kdb.DATETIME:
		v, _ := k.Float()
		stream = append(stream, byte(k.Type()))
		var b [8]byte
		putInt64(b[:], int64(float64bits(v)), encoding)
		return append(stream, b[:]...)
	case kdb.SYMBOL:
		v, _ := k.Symbol()
		stream = append(stream, byte(k.Type()))
		stream = append(stream, []byte(v)...)
		return append(stream, 0x00)
	case kdb.ERROR:
		v, _ := k.ErrorMessage()
		stream = append(stream, byte(k.Type()))
		stream = append(stream, []byte(v)...)
		return append(stream, 0x00)
	case kdb.UNARY_PRIMITIVE:
		payload, _ := k.OpaquePayload()
		stream = append(stream, byte(kdb.UNARY_PRIMITIVE))
		if len(payload) == 0 {
			return append(stream, 0x00)
		}
		return append(stream, payload...)
	case kdb.BINARY_PRIMITIVE, kdb.PROJECTION, kdb.COMPOSITION, kdb.EACH,
		kdb.OVER, kdb.SCAN, kdb.EACH_PRIOR, kdb.EACH_LEFT, kdb.EACH_RIGHT,
		kdb.FOREIGN:
		payload, _ := k.OpaquePayload()
		stream = append(stream, byte(k.Type()))
		return append(stream, payload...)
	case kdb.LAMBDA:
		return appendLambda(stream, k, encoding)
	case kdb.BOOL_LIST:
		return appendBoolList(stream, k, encoding)
	case kdb.BYTE_LIST:
		return appendByteList(stream, k, encoding)
	case kdb.GUID_LIST:
		return appendGUIDList(stream, k, encoding)
	case kdb.SHORT_LIST:
		return appendShortList(stream, k, encoding)
	case kdb.INT_LIST, kdb.MONTH_LIST, kdb.DATE_LIST, kdb.MINUTE_LIST,
		kdb.SECOND_LIST, kdb.TIME_LIST:
		return appendIntList(stream, k, encoding)
	case kdb.LONG_LIST, kdb.TIMESTAMP_LIST, kdb.TIMESPAN_LIST:
		return appendLongList(stream, k, encoding)
	case kdb.REAL_LIST:
		return appendRealList(stream, k, encoding)
	case kdb.FLOAT_LIST, kdb.DATETIME_LIST:
		return appendFloatList(stream, k, encoding)
	case kdb.STRING:
		return appendString(stream, k, encoding)
	case kdb.SYMBOL_LIST:
		return appendSymbolList(stream, k, encoding)
	case kdb.COMPOUND_LIST:
		return appendCompoundList(stream, k, encoding)
	case kdb.TABLE:
		return appendTable(stream, k, encoding)
	case kdb.DICTIONARY, kdb.SORTED_DICTIONARY:
		return appendDictionary(stream, k, encoding)
	default:
		// Unknown/unsupported type: emit just the type byte so the stream
		// stays byte-accounted rather than silently dropping data.
		return append(stream, byte(k.Type()))
	}
}

func appendLambda(stream []byte, k *kdb.K, encoding byte) []byte {
	context, body, _ := k.Lambda()
	stream = append(stream, byte(kdb.LAMBDA))
	stream = append(stream, []byte(context)...)
	stream = append(stream, 0x00)
	stream = append(stream, byte(kdb.STRING), byte(kdb.AttrNone))
	var lenBytes [4]byte
	putUint32(lenBytes[:], uint32(len(body)), encoding)
	stream = append(stream, lenBytes[:]...)
	return append(stream, []byte(body)...)
}

func appendListHeader(stream []byte, qtype int8, attr kdb.Attribute, size int, encoding byte) []byte {
	stream = append(stream, byte(qtype), byte(attr))
	var lenBytes [4]byte
	putUint32(lenBytes[:], uint32(size), encoding)
	return append(stream, lenBytes[:]...)
}

func appendBoolList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.Bools()
	stream = appendListHeader(stream, kdb.BOOL_LIST, k.Attr(), len(v), encoding)
	for _, b := range v {
		if b {
			stream = append(stream, 1)
		} else {
			stream = append(stream, 0)
		}
	}
	return stream
}

func appendByteList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.Bytes()
	stream = appendListHeader(stream, kdb.BYTE_LIST, k.Attr(), len(v), encoding)
	return append(stream, v...)
}

func appendGUIDList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.GUIDs()
	stream = appendListHeader(stream, kdb.GUID_LIST, k.Attr(), len(v), encoding)
	for _, g := range v {
		stream = append(stream, g[:]...)
	}
	return stream
}

func appendShortList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.Shorts()
	stream = appendListHeader(stream, kdb.SHORT_LIST, k.Attr(), len(v), encoding)
	var b [2]byte
	for _, e := range v {
		putInt16(b[:], e, encoding)
		stream = append(stream, b[:]...)
	}
	return stream
}

func appendIntList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.Ints()
	stream = appendListHeader(stream, k.Type(), k.Attr(), len(v), encoding)
	var b [4]byte
	for _, e := range v {
		putInt32(b[:], e, encoding)
		stream = append(stream, b[:]...)
	}
	return stream
}

func appendLongList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.Longs()
	stream = appendListHeader(stream, k.Type(), k.Attr(), len(v), encoding)
	var b [8]byte
	for _, e := range v {
		putInt64(b[:], e, encoding)
		stream = append(stream, b[:]...)
	}
	return stream
}

func appendRealList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.Reals()
	stream = appendListHeader(stream, kdb.REAL_LIST, k.Attr(), len(v), encoding)
	var b [4]byte
	for _, e := range v {
		putInt32(b[:], int32(float32bits(e)), encoding)
		stream = append(stream, b[:]...)
	}
	return stream
}

func appendFloatList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.Floats()
	stream = appendListHeader(stream, k.Type(), k.Attr(), len(v), encoding)
	var b [8]byte
	for _, e := range v {
		putInt64(b[:], int64(float64bits(e)), encoding)
		stream = append(stream, b[:]...)
	}
	return stream
}

func appendString(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.AsString()
	stream = appendListHeader(stream, kdb.STRING, k.Attr(), len(v), encoding)
	return append(stream, []byte(v)...)
}

func appendSymbolList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.Symbols()
	stream = appendListHeader(stream, kdb.SYMBOL_LIST, k.Attr(), len(v), encoding)
	for _, s := range v {
		stream = append(stream, []byte(s)...)
		stream = append(stream, 0x00)
	}
	return stream
}

func appendCompoundList(stream []byte, k *kdb.K, encoding byte) []byte {
	v, _ := k.Items()
	stream = appendListHeader(stream, kdb.COMPOUND_LIST, k.Attr(), len(v), encoding)
	for _, item := range v {
		stream = appendValue(stream, item, encoding)
	}
	return stream
}

func appendDictionary(stream []byte, k *kdb.K, encoding byte) []byte {
	stream = append(stream, byte(k.Type()))
	keys, _ := k.Keys()
	values, _ := k.Values()
	stream = appendValue(stream, keys, encoding)
	return appendValue(stream, values, encoding)
}

func appendTable(stream []byte, k *kdb.K, encoding byte) []byte {
	stream = append(stream, byte(kdb.TABLE), byte(k.Attr()), byte(kdb.DICTIONARY))
	keys, _ := k.Keys()
	values, _ := k.Values()
	stream = appendSymbolList(stream, keys, encoding)
	return appendCompoundList(stream, values, encoding)
}

func float32bits(f float32) uint32 {
	return math.Float32bits(f)
}

func float64bits(f float64) uint64 {
	return math.Float64bits(f)
}
