package wire

import (
	"math"
	"unicode/utf8"

	kerr "github.com/yshing/kdb-codec/internal/errors"
	"github.com/yshing/kdb-codec/kdb"
)

// Limits bounds a single Deserialize call against oversized or
// maliciously crafted input. A zero field disables that particular bound.
type Limits struct {
	MaxListSize       int
	MaxRecursionDepth int
}

// DefaultLimits matches the defaults used when a Limits value isn't
// supplied explicitly: generous enough for any legitimate kdb+ payload,
// tight enough to reject multi-gigabyte claimed list sizes before
// allocating.
var DefaultLimits = Limits{MaxListSize: 100_000_000, MaxRecursionDepth: 100}

// Deserialize decodes one K value from bytes starting at cursor, in q
// IPC wire format (the inverse of Serialize). It returns the decoded
// value and the cursor position immediately after it.
func Deserialize(data []byte, cursor int, encoding byte, limits Limits) (*kdb.K, int, error) {
	return deserializeValue(data, cursor, encoding, limits, 0)
}

func need(data []byte, cursor, n int) error {
	if cursor+n > len(data) {
		return &kerr.DeserializationError{Kind: "InsufficientData", Needed: n, Available: len(data) - cursor}
	}
	return nil
}

func deserializeValue(data []byte, cursor int, encoding byte, limits Limits, depth int) (*kdb.K, int, error) {
	if limits.MaxRecursionDepth > 0 && depth > limits.MaxRecursionDepth {
		return nil, cursor, &kerr.DeserializationError{Kind: "MaxDepthExceeded", Depth: depth, MaxDepth: limits.MaxRecursionDepth}
	}
	if err := need(data, cursor, 1); err != nil {
		return nil, cursor, err
	}
	qtype := int8(data[cursor])
	cursor++

	switch qtype {
	case kdb.BOOL:
		if err := need(data, cursor, 1); err != nil {
			return nil, cursor, err
		}
		v := data[cursor] != 0
		return kdb.NewBool(v), cursor + 1, nil
	case kdb.BYTE:
		if err := need(data, cursor, 1); err != nil {
			return nil, cursor, err
		}
		return kdb.NewByte(data[cursor]), cursor + 1, nil
	case kdb.CHAR:
		if err := need(data, cursor, 1); err != nil {
			return nil, cursor, err
		}
		return kdb.NewChar(data[cursor]), cursor + 1, nil
	case kdb.GUID:
		if err := need(data, cursor, 16); err != nil {
			return nil, cursor, err
		}
		var g [16]byte
		copy(g[:], data[cursor:cursor+16])
		return kdb.NewGUID(g), cursor + 16, nil
	case kdb.SHORT:
		if err := need(data, cursor, 2); err != nil {
			return nil, cursor, err
		}
		return kdb.NewShort(getInt16(data[cursor:], encoding)), cursor + 2, nil
	case kdb.INT:
		v, next, err := readInt32(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewInt(v), next, nil
	case kdb.MONTH:
		v, next, err := readInt32(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewMonth(v), next, nil
	case kdb.DATE:
		v, next, err := readInt32(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewDate(v), next, nil
	case kdb.MINUTE:
		v, next, err := readInt32(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewMinute(v), next, nil
	case kdb.SECOND:
		v, next, err := readInt32(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewSecond(v), next, nil
	case kdb.TIME:
		v, next, err := readInt32(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewTime(v), next, nil
	case kdb.LONG:
		v, next, err := readInt64(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewLong(v), next, nil
	case kdb.TIMESTAMP:
		v, next, err := readInt64(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewTimestamp(v), next, nil
	case kdb.TIMESPAN:
		v, next, err := readInt64(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewTimespan(v), next, nil
	case kdb.REAL:
		if err := need(data, cursor, 4); err != nil {
			return nil, cursor, err
		}
		bits := uint32(getInt32(data[cursor:], encoding))
		return kdb.NewReal(math.Float32frombits(bits)), cursor + 4, nil
	case kdb.FLOAT:
		v, next, err := readFloat64(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewFloat(v), next, nil
	case kdb.DATETIME:
		v, next, err := readFloat64(data, cursor, encoding)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewDatetime(v), next, nil
	case kdb.SYMBOL:
		s, next, err := readNullTerminated(data, cursor)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewSymbol(s), next, nil
	case kdb.ERROR:
		s, next, err := readNullTerminated(data, cursor)
		if err != nil {
			return nil, cursor, err
		}
		return kdb.NewError(s), next, nil
	case kdb.UNARY_PRIMITIVE:
		return deserializeUnaryPrimitiveOrNull(data, cursor)
	case kdb.BINARY_PRIMITIVE:
		return deserializeSingleByteOpaque(data, cursor, kdb.BINARY_PRIMITIVE)
	case kdb.PROJECTION:
		return deserializeCountedOpaque(data, cursor, encoding, limits, depth, kdb.PROJECTION)
	case kdb.COMPOSITION:
		return deserializeCountedOrFixedArityOpaque(data, cursor, encoding, limits, depth, kdb.COMPOSITION, 2)
	case kdb.FOREIGN:
		return deserializeCountedOrFixedArityOpaque(data, cursor, encoding, limits, depth, kdb.FOREIGN, 3)
	case kdb.EACH, kdb.EACH_PRIOR, kdb.EACH_LEFT:
		return deserializeSingleInnerOpaque(data, cursor, encoding, limits, depth, qtype)
	case kdb.OVER:
		return deserializeSingleInnerOpaque(data, cursor, encoding, limits, depth, kdb.OVER)
	case kdb.SCAN:
		return deserializeMarkerThenInnerOpaque(data, cursor, encoding, limits, depth, kdb.SCAN)
	case kdb.EACH_RIGHT:
		return deserializeMarkerThenInnerOpaque(data, cursor, encoding, limits, depth, kdb.EACH_RIGHT)
	case kdb.LAMBDA:
		return deserializeLambda(data, cursor, encoding, limits, depth)
	case kdb.BOOL_LIST:
		return deserializeBoolList(data, cursor, encoding, limits)
	case kdb.BYTE_LIST:
		return deserializeByteList(data, cursor, encoding, limits)
	case kdb.GUID_LIST:
		return deserializeGUIDList(data, cursor, encoding, limits)
	case kdb.SHORT_LIST:
		return deserializeShortList(data, cursor, encoding, limits)
	case kdb.INT_LIST:
		return deserializeIntList(data, cursor, encoding, limits, kdb.INT_LIST, kdb.NewIntList)
	case kdb.MONTH_LIST:
		return deserializeIntList(data, cursor, encoding, limits, kdb.MONTH_LIST, kdb.NewMonthList)
	case kdb.DATE_LIST:
		return deserializeIntList(data, cursor, encoding, limits, kdb.DATE_LIST, kdb.NewDateList)
	case kdb.MINUTE_LIST:
		return deserializeIntList(data, cursor, encoding, limits, kdb.MINUTE_LIST, kdb.NewMinuteList)
	case kdb.SECOND_LIST:
		return deserializeIntList(data, cursor, encoding, limits, kdb.SECOND_LIST, kdb.NewSecondList)
	case kdb.TIME_LIST:
		return deserializeIntList(data, cursor, encoding, limits, kdb.TIME_LIST, kdb.NewTimeList)
	case kdb.LONG_LIST:
		return deserializeLongList(data, cursor, encoding, limits, kdb.LONG_LIST, kdb.NewLongList)
	case kdb.TIMESTAMP_LIST:
		return deserializeLongList(data, cursor, encoding, limits, kdb.TIMESTAMP_LIST, kdb.NewTimestampList)
	case kdb.TIMESPAN_LIST:
		return deserializeLongList(data, cursor, encoding, limits, kdb.TIMESPAN_LIST, kdb.NewTimespanList)
	case kdb.REAL_LIST:
		return deserializeRealList(data, cursor, encoding, limits)
	case kdb.FLOAT_LIST:
		return deserializeFloatList(data, cursor, encoding, limits, kdb.FLOAT_LIST, kdb.NewFloatList)
	case kdb.DATETIME_LIST:
		return deserializeFloatList(data, cursor, encoding, limits, kdb.DATETIME_LIST, kdb.NewDatetimeList)
	case kdb.STRING:
		return deserializeString(data, cursor, encoding, limits)
	case kdb.SYMBOL_LIST:
		return deserializeSymbolList(data, cursor, encoding, limits)
	case kdb.COMPOUND_LIST:
		return deserializeCompoundList(data, cursor, encoding, limits, depth)
	case kdb.TABLE:
		return deserializeTable(data, cursor, encoding, limits, depth)
	case kdb.DICTIONARY:
		return deserializeDictionary(data, cursor, encoding, limits, depth, false)
	case kdb.SORTED_DICTIONARY:
		return deserializeDictionary(data, cursor, encoding, limits, depth, true)
	default:
		return nil, cursor, &kerr.DeserializationError{Kind: "InvalidType", Code: qtype}
	}
}

func readInt32(data []byte, cursor int, encoding byte) (int32, int, error) {
	if err := need(data, cursor, 4); err != nil {
		return 0, cursor, err
	}
	return getInt32(data[cursor:], encoding), cursor + 4, nil
}

func readInt64(data []byte, cursor int, encoding byte) (int64, int, error) {
	if err := need(data, cursor, 8); err != nil {
		return 0, cursor, err
	}
	return getInt64(data[cursor:], encoding), cursor + 8, nil
}

func readFloat64(data []byte, cursor int, encoding byte) (float64, int, error) {
	if err := need(data, cursor, 8); err != nil {
		return 0, cursor, err
	}
	bits := uint64(getInt64(data[cursor:], encoding))
	return math.Float64frombits(bits), cursor + 8, nil
}

func readNullTerminated(data []byte, cursor int) (string, int, error) {
	for i := cursor; i < len(data); i++ {
		if data[i] == 0 {
			raw := data[cursor:i]
			if !utf8.Valid(raw) {
				return "", cursor, &kerr.DeserializationError{Kind: "InvalidUtf8"}
			}
			return string(raw), i + 1, nil
		}
	}
	return "", cursor, &kerr.DeserializationError{Kind: "MissingNullTerminator"}
}

// readNullTerminatedLossy behaves like readNullTerminated but never
// rejects malformed bytes: they are kept in the returned string
// unchanged. Used only for the lambda context string, which the
// source protocol decodes without validation.
func readNullTerminatedLossy(data []byte, cursor int) (string, int, error) {
	for i := cursor; i < len(data); i++ {
		if data[i] == 0 {
			return string(data[cursor:i]), i + 1, nil
		}
	}
	return "", cursor, &kerr.DeserializationError{Kind: "MissingNullTerminator"}
}

// getAttributeAndSize reads the 1-byte attribute and 4-byte element
// count that precede every typed-vector payload, rejecting an oversized
// claimed size before any allocation happens.
func getAttributeAndSize(data []byte, cursor int, encoding byte, limits Limits) (kdb.Attribute, int, int, error) {
	if err := need(data, cursor, 5); err != nil {
		return 0, 0, cursor, err
	}
	attr := kdb.Attribute(data[cursor])
	size := int(getUint32(data[cursor+1:], encoding))
	cursor += 5
	if size < 0 {
		return 0, 0, cursor, &kerr.DeserializationError{Kind: "SizeOverflow"}
	}
	if limits.MaxListSize > 0 && size > limits.MaxListSize {
		return 0, 0, cursor, &kerr.DeserializationError{Kind: "ListTooLarge", Size: size, Max: limits.MaxListSize}
	}
	return attr, size, cursor, nil
}

func deserializeBoolList(data []byte, cursor int, encoding byte, limits Limits) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	if err := need(data, cursor, size); err != nil {
		return nil, cursor, err
	}
	v := make([]bool, size)
	for i := 0; i < size; i++ {
		v[i] = data[cursor+i] != 0
	}
	return kdb.NewBoolList(v).WithAttr(attr), cursor + size, nil
}

func deserializeByteList(data []byte, cursor int, encoding byte, limits Limits) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	if err := need(data, cursor, size); err != nil {
		return nil, cursor, err
	}
	v := append([]byte(nil), data[cursor:cursor+size]...)
	return kdb.NewByteList(v).WithAttr(attr), cursor + size, nil
}

func deserializeGUIDList(data []byte, cursor int, encoding byte, limits Limits) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	if err := need(data, cursor, size*16); err != nil {
		return nil, cursor, err
	}
	v := make([][16]byte, size)
	for i := 0; i < size; i++ {
		copy(v[i][:], data[cursor+i*16:cursor+i*16+16])
	}
	return kdb.NewGUIDList(v).WithAttr(attr), cursor + size*16, nil
}

func deserializeShortList(data []byte, cursor int, encoding byte, limits Limits) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	if err := need(data, cursor, size*2); err != nil {
		return nil, cursor, err
	}
	v := make([]int16, size)
	for i := 0; i < size; i++ {
		v[i] = getInt16(data[cursor+i*2:], encoding)
	}
	return kdb.NewShortList(v).WithAttr(attr), cursor + size*2, nil
}

func deserializeIntList(data []byte, cursor int, encoding byte, limits Limits, qtype int8, ctor func([]int32) *kdb.K) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	if err := need(data, cursor, size*4); err != nil {
		return nil, cursor, err
	}
	v := make([]int32, size)
	for i := 0; i < size; i++ {
		v[i] = getInt32(data[cursor+i*4:], encoding)
	}
	return ctor(v).WithAttr(attr), cursor + size*4, nil
}

func deserializeLongList(data []byte, cursor int, encoding byte, limits Limits, qtype int8, ctor func([]int64) *kdb.K) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	if err := need(data, cursor, size*8); err != nil {
		return nil, cursor, err
	}
	v := make([]int64, size)
	for i := 0; i < size; i++ {
		v[i] = getInt64(data[cursor+i*8:], encoding)
	}
	return ctor(v).WithAttr(attr), cursor + size*8, nil
}

func deserializeRealList(data []byte, cursor int, encoding byte, limits Limits) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	if err := need(data, cursor, size*4); err != nil {
		return nil, cursor, err
	}
	v := make([]float32, size)
	for i := 0; i < size; i++ {
		bits := uint32(getInt32(data[cursor+i*4:], encoding))
		v[i] = math.Float32frombits(bits)
	}
	return kdb.NewRealList(v).WithAttr(attr), cursor + size*4, nil
}

func deserializeFloatList(data []byte, cursor int, encoding byte, limits Limits, qtype int8, ctor func([]float64) *kdb.K) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	if err := need(data, cursor, size*8); err != nil {
		return nil, cursor, err
	}
	v := make([]float64, size)
	for i := 0; i < size; i++ {
		bits := uint64(getInt64(data[cursor+i*8:], encoding))
		v[i] = math.Float64frombits(bits)
	}
	return ctor(v).WithAttr(attr), cursor + size*8, nil
}

func deserializeString(data []byte, cursor int, encoding byte, limits Limits) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	if err := need(data, cursor, size); err != nil {
		return nil, cursor, err
	}
	raw := data[cursor : cursor+size]
	if !utf8.Valid(raw) {
		return nil, cursor, &kerr.DeserializationError{Kind: "InvalidUtf8"}
	}
	return kdb.NewString(string(raw)).WithAttr(attr), cursor + size, nil
}

func deserializeSymbolList(data []byte, cursor int, encoding byte, limits Limits) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	v := make([]string, 0, min(size, 4096))
	for i := 0; i < size; i++ {
		s, next, err := readNullTerminated(data, cursor)
		if err != nil {
			return nil, cursor, err
		}
		cursor = next
		v = append(v, s)
	}
	return kdb.NewSymbolList(v).WithAttr(attr), cursor, nil
}

func deserializeCompoundList(data []byte, cursor int, encoding byte, limits Limits, depth int) (*kdb.K, int, error) {
	attr, size, cursor, err := getAttributeAndSize(data, cursor, encoding, limits)
	if err != nil {
		return nil, cursor, err
	}
	items := make([]*kdb.K, 0, min(size, 4096))
	for i := 0; i < size; i++ {
		item, next, err := deserializeValue(data, cursor, encoding, limits, depth+1)
		if err != nil {
			return nil, cursor, err
		}
		cursor = next
		items = append(items, item)
	}
	return kdb.NewCompoundList(items).WithAttr(attr), cursor, nil
}

func deserializeDictionary(data []byte, cursor int, encoding byte, limits Limits, depth int, sorted bool) (*kdb.K, int, error) {
	keys, cursor, err := deserializeValue(data, cursor, encoding, limits, depth+1)
	if err != nil {
		return nil, cursor, err
	}
	values, cursor, err := deserializeValue(data, cursor, encoding, limits, depth+1)
	if err != nil {
		return nil, cursor, err
	}
	if sorted {
		return kdb.NewKeyedTable(keys, values), cursor, nil
	}
	return kdb.NewDictionary(keys, values), cursor, nil
}

// deserializeTable reads the attribute byte and a dict_qtype byte (99 or
// 127). The dict_qtype byte's value is skipped, not branched on, matching
// the source protocol's own behavior: the keys and values that follow
// are always decoded the same way regardless of which marker byte is
// present.
func deserializeTable(data []byte, cursor int, encoding byte, limits Limits, depth int) (*kdb.K, int, error) {
	if err := need(data, cursor, 2); err != nil {
		return nil, cursor, err
	}
	attr := kdb.Attribute(data[cursor])
	cursor += 2 // skip attribute byte and dict_qtype marker byte

	keys, cursor, err := deserializeValue(data, cursor, encoding, limits, depth+1)
	if err != nil {
		return nil, cursor, err
	}
	values, cursor, err := deserializeValue(data, cursor, encoding, limits, depth+1)
	if err != nil {
		return nil, cursor, err
	}
	return kdb.NewTableFromParts(keys, values).WithAttr(attr), cursor, nil
}

func deserializeLambda(data []byte, cursor int, encoding byte, limits Limits, depth int) (*kdb.K, int, error) {
	context, cursor, err := readNullTerminatedLossy(data, cursor)
	if err != nil {
		return nil, cursor, err
	}
	bodyK, cursor, err := deserializeValue(data, cursor, encoding, limits, depth+1)
	if err != nil {
		return nil, cursor, err
	}
	body, err := bodyK.AsString()
	if err != nil {
		return nil, cursor, &kerr.DeserializationError{Kind: "DeserializationError", Detail: "lambda body is not a string", Err: err}
	}
	return kdb.NewLambda(context, body), cursor, nil
}

// deserializeUnaryPrimitiveOrNull decodes a UNARY_PRIMITIVE payload: a
// single id byte, where id 0 is the generic null (::) and any other
// value is an opaque single-byte primitive reference.
func deserializeUnaryPrimitiveOrNull(data []byte, cursor int) (*kdb.K, int, error) {
	if err := need(data, cursor, 1); err != nil {
		return nil, cursor, err
	}
	id := data[cursor]
	cursor++
	if id == 0 {
		return kdb.NewNull(), cursor, nil
	}
	return kdb.NewOpaque(kdb.UNARY_PRIMITIVE, []byte{id}), cursor, nil
}

func deserializeSingleByteOpaque(data []byte, cursor int, qtype int8) (*kdb.K, int, error) {
	if err := need(data, cursor, 1); err != nil {
		return nil, cursor, err
	}
	return kdb.NewOpaque(qtype, data[cursor:cursor+1]), cursor + 1, nil
}

// deserializeCountedOpaque decodes a 4-byte element count N followed by N
// serialized objects, preserving the exact decoded byte span as the
// resulting value's opaque payload. Used for PROJECTION.
func deserializeCountedOpaque(data []byte, cursor int, encoding byte, limits Limits, depth int, qtype int8) (*kdb.K, int, error) {
	start := cursor
	count, next, err := readInt32(data, cursor, encoding)
	if err != nil {
		return nil, cursor, err
	}
	cursor = next
	for i := int32(0); i < count; i++ {
		_, next, err := deserializeValue(data, cursor, encoding, limits, depth+1)
		if err != nil {
			return nil, cursor, err
		}
		cursor = next
	}
	return kdb.NewOpaque(qtype, data[start:cursor]), cursor, nil
}

// deserializeCountedOrFixedArityOpaque tries the counted form first (a
// leading 4-byte count that plausibly matches the remaining data); if
// that doesn't look right it falls back to decoding exactly
// fallbackArity serialized objects with no leading count. Used for
// COMPOSITION (arity 2) and FOREIGN (arity 3).
func deserializeCountedOrFixedArityOpaque(data []byte, cursor int, encoding byte, limits Limits, depth int, qtype int8, fallbackArity int) (*kdb.K, int, error) {
	start := cursor
	if count, after, err := readInt32(data, cursor, encoding); err == nil && count >= 0 && count <= 64 {
		ok := true
		probe := after
		for i := int32(0); i < count; i++ {
			_, n, err := deserializeValue(data, probe, encoding, limits, depth+1)
			if err != nil {
				ok = false
				break
			}
			probe = n
		}
		if ok {
			return kdb.NewOpaque(qtype, data[start:probe]), probe, nil
		}
	}

	cursor = start
	for i := 0; i < fallbackArity; i++ {
		_, next, err := deserializeValue(data, cursor, encoding, limits, depth+1)
		if err != nil {
			return nil, cursor, err
		}
		cursor = next
	}
	return kdb.NewOpaque(qtype, data[start:cursor]), cursor, nil
}

// deserializeSingleInnerOpaque decodes one inner serialized object with
// no leading count or marker. Used for EACH, EACH_PRIOR, EACH_LEFT, OVER.
func deserializeSingleInnerOpaque(data []byte, cursor int, encoding byte, limits Limits, depth int, qtype int8) (*kdb.K, int, error) {
	start := cursor
	_, next, err := deserializeValue(data, cursor, encoding, limits, depth+1)
	if err != nil {
		return nil, cursor, err
	}
	return kdb.NewOpaque(qtype, data[start:next]), next, nil
}

// deserializeMarkerThenInnerOpaque decodes a 1-byte adverb marker
// followed by one inner serialized object. Used for SCAN, EACH_RIGHT.
func deserializeMarkerThenInnerOpaque(data []byte, cursor int, encoding byte, limits Limits, depth int, qtype int8) (*kdb.K, int, error) {
	start := cursor
	if err := need(data, cursor, 1); err != nil {
		return nil, cursor, err
	}
	cursor++
	_, next, err := deserializeValue(data, cursor, encoding, limits, depth+1)
	if err != nil {
		return nil, cursor, err
	}
	return kdb.NewOpaque(qtype, data[start:next]), next, nil
}
