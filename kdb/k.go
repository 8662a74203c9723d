package kdb

// K is the tagged-union value type of the q language: every value that
// can cross the kdb+ IPC wire — atoms, typed vectors, the heterogeneous
// compound list, dictionaries, tables, keyed tables, lambdas, and the
// opaque function-ish variants — is represented as a K.
//
// The zero value is not a valid K; always obtain one from a New*
// constructor. Fields are unexported so the invariants documented on
// the type model cannot be violated from outside this package.
type K struct {
	qtype int8
	attr  Attribute
	value any
}

// Type returns the K value's wire type code.
func (k *K) Type() int8 {
	return k.qtype
}

// Attr returns the K value's list/table attribute hint.
func (k *K) Attr() Attribute {
	return k.attr
}

// dict is the shared representation backing DICTIONARY, TABLE, and
// SORTED_DICTIONARY/keyed-table values: exactly two K values, keys and
// values. A table's keys is always a symbol list and its values is
// always a compound list of equal-length columns; a keyed table's keys
// and values are themselves tables.
type dict struct {
	keys   *K
	values *K
}

// lambda is the (context, body) pair backing a LAMBDA value.
type lambda struct {
	context string
	body    string
}

// opaque carries the preserved byte span of a function-ish variant
// (101-112) exactly as consumed during decoding, so the serializer can
// re-emit it byte-for-byte without interpreting it.
type opaque struct {
	payload []byte
}

// Clone returns a deep copy of k.
func (k *K) Clone() *K {
	if k == nil {
		return nil
	}
	switch v := k.value.(type) {
	case []bool:
		return &K{k.qtype, k.attr, append([]bool(nil), v...)}
	case []byte:
		return &K{k.qtype, k.attr, append([]byte(nil), v...)}
	case []int16:
		return &K{k.qtype, k.attr, append([]int16(nil), v...)}
	case []int32:
		return &K{k.qtype, k.attr, append([]int32(nil), v...)}
	case []int64:
		return &K{k.qtype, k.attr, append([]int64(nil), v...)}
	case []float32:
		return &K{k.qtype, k.attr, append([]float32(nil), v...)}
	case []float64:
		return &K{k.qtype, k.attr, append([]float64(nil), v...)}
	case [][16]byte:
		return &K{k.qtype, k.attr, append([][16]byte(nil), v...)}
	case []string:
		return &K{k.qtype, k.attr, append([]string(nil), v...)}
	case []*K:
		cp := make([]*K, len(v))
		for i, c := range v {
			cp[i] = c.Clone()
		}
		return &K{k.qtype, k.attr, cp}
	case dict:
		return &K{k.qtype, k.attr, dict{v.keys.Clone(), v.values.Clone()}}
	case opaque:
		return &K{k.qtype, k.attr, opaque{append([]byte(nil), v.payload...)}}
	default:
		// scalar value types are copied by value automatically
		return &K{k.qtype, k.attr, k.value}
	}
}
