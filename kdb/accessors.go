package kdb

import (
	"time"

	kerr "github.com/yshing/kdb-codec/internal/errors"
)

func invalidOp(op string, qtype int8) error {
	return &kerr.UsageError{Kind: "InvalidOperation", Op: op, QType: qtype}
}

// Bool returns the atom's boolean value.
func (k *K) Bool() (bool, error) {
	if v, ok := k.value.(bool); ok {
		return v, nil
	}
	return false, invalidOp("Bool", k.qtype)
}

// Byte returns the atom's byte value.
func (k *K) Byte() (byte, error) {
	if v, ok := k.value.(byte); ok {
		return v, nil
	}
	return 0, invalidOp("Byte", k.qtype)
}

// Short returns the atom's int16 value.
func (k *K) Short() (int16, error) {
	if v, ok := k.value.(int16); ok {
		return v, nil
	}
	return 0, invalidOp("Short", k.qtype)
}

// Int returns the atom's int32 value. Also used for month/date/minute/
// second/time atoms, which share the int32 wire representation.
func (k *K) Int() (int32, error) {
	if v, ok := k.value.(int32); ok {
		return v, nil
	}
	return 0, invalidOp("Int", k.qtype)
}

// Long returns the atom's int64 value. Also used for timestamp/timespan
// atoms, which share the int64 wire representation.
func (k *K) Long() (int64, error) {
	if v, ok := k.value.(int64); ok {
		return v, nil
	}
	return 0, invalidOp("Long", k.qtype)
}

// Real returns the atom's float32 value.
func (k *K) Real() (float32, error) {
	if v, ok := k.value.(float32); ok {
		return v, nil
	}
	return 0, invalidOp("Real", k.qtype)
}

// Float returns the atom's float64 value. Also used for datetime atoms.
func (k *K) Float() (float64, error) {
	if v, ok := k.value.(float64); ok {
		return v, nil
	}
	return 0, invalidOp("Float", k.qtype)
}

// Char returns the atom's byte value.
func (k *K) Char() (byte, error) {
	if v, ok := k.value.(byte); ok {
		return v, nil
	}
	return 0, invalidOp("Char", k.qtype)
}

// GUID returns the atom's 16-byte value.
func (k *K) GUID() ([16]byte, error) {
	if v, ok := k.value.([16]byte); ok {
		return v, nil
	}
	return [16]byte{}, invalidOp("GUID", k.qtype)
}

// Symbol returns the atom's string value.
func (k *K) Symbol() (string, error) {
	if v, ok := k.value.(string); ok && k.qtype == SYMBOL {
		return v, nil
	}
	return "", invalidOp("Symbol", k.qtype)
}

// ErrorMessage returns an ERROR value's message.
func (k *K) ErrorMessage() (string, error) {
	if v, ok := k.value.(string); ok && k.qtype == ERROR {
		return v, nil
	}
	return "", invalidOp("ErrorMessage", k.qtype)
}

// Time converts a temporal atom (timestamp, month, date, or datetime)
// into a Go time.Time. See DESIGN.md for the Go-range clamping decision.
func (k *K) Time() (time.Time, error) {
	switch k.qtype {
	case TIMESTAMP:
		v, _ := k.Long()
		return timestampToTime(v), nil
	case MONTH:
		v, _ := k.Int()
		return monthToTime(v), nil
	case DATE:
		v, _ := k.Int()
		return dateToTime(v), nil
	case DATETIME:
		v, _ := k.Float()
		return datetimeToTime(v), nil
	default:
		return time.Time{}, invalidOp("Time", k.qtype)
	}
}

// Duration converts a temporal atom (timespan, minute, second, or time)
// into a Go time.Duration.
func (k *K) Duration() (time.Duration, error) {
	switch k.qtype {
	case TIMESPAN:
		v, _ := k.Long()
		return timespanToDuration(v), nil
	case MINUTE:
		v, _ := k.Int()
		return minuteToDuration(v), nil
	case SECOND:
		v, _ := k.Int()
		return secondToDuration(v), nil
	case TIME:
		v, _ := k.Int()
		return timeToDuration(v), nil
	default:
		return 0, invalidOp("Duration", k.qtype)
	}
}

// Bools, Bytes, Shorts, Ints, Longs, Reals, Floats, GUIDs, Symbols
// return the backing slice of a typed vector. The slice is returned by
// reference (not copied); callers that intend to mutate should Clone
// first.

func (k *K) Bools() ([]bool, error) {
	if v, ok := k.value.([]bool); ok {
		return v, nil
	}
	return nil, invalidOp("Bools", k.qtype)
}

func (k *K) Bytes() ([]byte, error) {
	if v, ok := k.value.([]byte); ok {
		return v, nil
	}
	return nil, invalidOp("Bytes", k.qtype)
}

func (k *K) Shorts() ([]int16, error) {
	if v, ok := k.value.([]int16); ok {
		return v, nil
	}
	return nil, invalidOp("Shorts", k.qtype)
}

func (k *K) Ints() ([]int32, error) {
	if v, ok := k.value.([]int32); ok {
		return v, nil
	}
	return nil, invalidOp("Ints", k.qtype)
}

func (k *K) Longs() ([]int64, error) {
	if v, ok := k.value.([]int64); ok {
		return v, nil
	}
	return nil, invalidOp("Longs", k.qtype)
}

func (k *K) Reals() ([]float32, error) {
	if v, ok := k.value.([]float32); ok {
		return v, nil
	}
	return nil, invalidOp("Reals", k.qtype)
}

func (k *K) Floats() ([]float64, error) {
	if v, ok := k.value.([]float64); ok {
		return v, nil
	}
	return nil, invalidOp("Floats", k.qtype)
}

func (k *K) GUIDs() ([][16]byte, error) {
	if v, ok := k.value.([][16]byte); ok {
		return v, nil
	}
	return nil, invalidOp("GUIDs", k.qtype)
}

func (k *K) Symbols() ([]string, error) {
	if v, ok := k.value.([]string); ok {
		return v, nil
	}
	return nil, invalidOp("Symbols", k.qtype)
}

// AsString returns a STRING (char list) value as a Go string.
func (k *K) AsString() (string, error) {
	if v, ok := k.value.([]byte); ok && k.qtype == STRING {
		return string(v), nil
	}
	return "", invalidOp("AsString", k.qtype)
}

// Items returns a compound list's child values.
func (k *K) Items() ([]*K, error) {
	if v, ok := k.value.([]*K); ok {
		return v, nil
	}
	return nil, invalidOp("Items", k.qtype)
}

// Lambda returns a LAMBDA value's context and body.
func (k *K) Lambda() (context string, body string, err error) {
	if v, ok := k.value.(lambda); ok {
		return v.context, v.body, nil
	}
	return "", "", invalidOp("Lambda", k.qtype)
}

// OpaquePayload returns a function-ish opaque variant's preserved byte
// payload, exactly as consumed during decoding.
func (k *K) OpaquePayload() ([]byte, error) {
	if v, ok := k.value.(opaque); ok {
		return v.payload, nil
	}
	return nil, invalidOp("OpaquePayload", k.qtype)
}

// IsNull reports whether this is the generic null `(::)`.
func (k *K) IsNull() bool {
	if k.qtype != UNARY_PRIMITIVE {
		return false
	}
	v, ok := k.value.(opaque)
	return ok && len(v.payload) == 1 && v.payload[0] == 0
}

// Keys returns a dictionary's (or table's, or keyed table's) keys element.
func (k *K) Keys() (*K, error) {
	if v, ok := k.value.(dict); ok {
		return v.keys, nil
	}
	return nil, invalidOp("Keys", k.qtype)
}

// Values returns a dictionary's (or table's, or keyed table's) values element.
func (k *K) Values() (*K, error) {
	if v, ok := k.value.(dict); ok {
		return v.values, nil
	}
	return nil, invalidOp("Values", k.qtype)
}

// Column returns a table's named column, or a NoSuchColumn error.
func (k *K) Column(name string) (*K, error) {
	if k.qtype != TABLE {
		return nil, invalidOp("Column", k.qtype)
	}
	d := k.value.(dict)
	names, _ := d.keys.Symbols()
	cols, _ := d.values.Items()
	for i, n := range names {
		if n == name {
			return cols[i], nil
		}
	}
	return nil, &kerr.UsageError{Kind: "NoSuchColumn", Column: name}
}

// SetColumn replaces a table's named column in place, or returns a
// NoSuchColumn error if the column does not exist.
func (k *K) SetColumn(name string, col *K) error {
	if k.qtype != TABLE {
		return invalidOp("SetColumn", k.qtype)
	}
	d := k.value.(dict)
	names, _ := d.keys.Symbols()
	cols, _ := d.values.Items()
	for i, n := range names {
		if n == name {
			cols[i] = col
			return nil
		}
	}
	return &kerr.UsageError{Kind: "NoSuchColumn", Column: name}
}

// Find looks up a value in a dictionary by key, returning a
// NoSuchColumn error when the key is absent. Supported key list types:
// symbol, long, int, float.
func (k *K) Find(key *K) (*K, error) {
	if k.qtype != DICTIONARY && k.qtype != SORTED_DICTIONARY {
		return nil, invalidOp("Find", k.qtype)
	}
	d := k.value.(dict)
	idx, err := findKeyIndex(d.keys, key)
	if err != nil {
		return nil, err
	}
	items, err := d.values.Items()
	if err == nil {
		if idx < 0 || idx >= len(items) {
			return nil, &kerr.UsageError{Kind: "IndexOutOfBounds", Index: idx, Len: len(items)}
		}
		return items[idx], nil
	}
	// values may itself be a typed vector (e.g. a dict of sym->long)
	if IsList(d.values.qtype) {
		if idx < 0 || idx >= d.values.Len() {
			return nil, &kerr.UsageError{Kind: "IndexOutOfBounds", Index: idx, Len: d.values.Len()}
		}
		return elementAt(d.values, idx), nil
	}
	return d.values.Index(idx)
}

func findKeyIndex(keys, target *K) (int, error) {
	switch keys.qtype {
	case SYMBOL_LIST:
		sym, err := target.Symbol()
		if err != nil {
			return 0, err
		}
		list, _ := keys.Symbols()
		for i, s := range list {
			if s == sym {
				return i, nil
			}
		}
	case LONG_LIST:
		v, err := target.Long()
		if err != nil {
			return 0, err
		}
		list, _ := keys.Longs()
		for i, s := range list {
			if s == v {
				return i, nil
			}
		}
	case INT_LIST:
		v, err := target.Int()
		if err != nil {
			return 0, err
		}
		list, _ := keys.Ints()
		for i, s := range list {
			if s == v {
				return i, nil
			}
		}
	case FLOAT_LIST:
		v, err := target.Float()
		if err != nil {
			return 0, err
		}
		list, _ := keys.Floats()
		for i, s := range list {
			if s == v {
				return i, nil
			}
		}
	default:
		return 0, invalidOp("Find", keys.qtype)
	}
	return 0, &kerr.UsageError{Kind: "NoSuchColumn", Column: "<key>"}
}

// Index returns the i'th element of a compound list, or the keys/values
// element of a dictionary when i is 0/1.
func (k *K) Index(i int) (*K, error) {
	switch k.qtype {
	case DICTIONARY, SORTED_DICTIONARY, TABLE:
		d := k.value.(dict)
		switch i {
		case 0:
			return d.keys, nil
		case 1:
			return d.values, nil
		default:
			return nil, &kerr.UsageError{Kind: "IndexOutOfBounds", Index: i, Len: 2}
		}
	case COMPOUND_LIST:
		items := k.value.([]*K)
		if i < 0 || i >= len(items) {
			return nil, &kerr.UsageError{Kind: "IndexOutOfBounds", Index: i, Len: len(items)}
		}
		return items[i], nil
	default:
		return nil, invalidOp("Index", k.qtype)
	}
}

// Len returns the number of elements in a vector, compound list, or
// dictionary/table (for the latter two, always 2: keys and values).
func (k *K) Len() int {
	switch v := k.value.(type) {
	case []bool:
		return len(v)
	case []byte:
		if k.qtype == STRING {
			return len(v)
		}
		return len(v)
	case []int16:
		return len(v)
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	case [][16]byte:
		return len(v)
	case []string:
		return len(v)
	case []*K:
		return len(v)
	case dict:
		return 2
	default:
		return 0
	}
}
