package kdb

import "time"

// Scalar atom constructors. Each wraps a native Go value with its qtype tag.

func NewBool(v bool) *K   { return &K{BOOL, AttrNone, v} }
func NewByte(v byte) *K   { return &K{BYTE, AttrNone, v} }
func NewShort(v int16) *K { return &K{SHORT, AttrNone, v} }
func NewInt(v int32) *K   { return &K{INT, AttrNone, v} }
func NewLong(v int64) *K  { return &K{LONG, AttrNone, v} }
func NewReal(v float32) *K { return &K{REAL, AttrNone, v} }
func NewFloat(v float64) *K { return &K{FLOAT, AttrNone, v} }
func NewChar(v byte) *K   { return &K{CHAR, AttrNone, v} }
func NewGUID(v [16]byte) *K { return &K{GUID, AttrNone, v} }
func NewSymbol(v string) *K { return &K{SYMBOL, AttrNone, v} }
func NewError(msg string) *K { return &K{ERROR, AttrNone, msg} }

// NewNull constructs the generic q null `(::)`: historically type 101
// (UNARY_PRIMITIVE) with id byte 0.
func NewNull() *K {
	return &K{UNARY_PRIMITIVE, AttrNone, opaque{[]byte{0}}}
}

// Temporal atom constructors. Each stores the raw q-epoch offset; see
// the corresponding Time()/Duration() accessor for the derived
// time.Time/time.Duration conversion.

func NewTimestamp(nanos int64) *K { return &K{TIMESTAMP, AttrNone, nanos} }
func NewMonth(months int32) *K    { return &K{MONTH, AttrNone, months} }
func NewDate(days int32) *K       { return &K{DATE, AttrNone, days} }
func NewDatetime(days float64) *K { return &K{DATETIME, AttrNone, days} }
func NewTimespan(nanos int64) *K  { return &K{TIMESPAN, AttrNone, nanos} }
func NewMinute(minutes int32) *K  { return &K{MINUTE, AttrNone, minutes} }
func NewSecond(seconds int32) *K  { return &K{SECOND, AttrNone, seconds} }
func NewTime(millis int32) *K     { return &K{TIME, AttrNone, millis} }

// NewTimestampFromTime builds a TIMESTAMP atom from a Go time.Time.
func NewTimestampFromTime(t time.Time) *K {
	return NewTimestamp(timeToTimestamp(t))
}

// Typed vector constructors.

func NewBoolList(v []bool) *K       { return &K{BOOL_LIST, AttrNone, v} }
func NewByteList(v []byte) *K       { return &K{BYTE_LIST, AttrNone, v} }
func NewShortList(v []int16) *K     { return &K{SHORT_LIST, AttrNone, v} }
func NewIntList(v []int32) *K       { return &K{INT_LIST, AttrNone, v} }
func NewLongList(v []int64) *K      { return &K{LONG_LIST, AttrNone, v} }
func NewRealList(v []float32) *K    { return &K{REAL_LIST, AttrNone, v} }
func NewFloatList(v []float64) *K   { return &K{FLOAT_LIST, AttrNone, v} }
func NewGUIDList(v [][16]byte) *K   { return &K{GUID_LIST, AttrNone, v} }
func NewSymbolList(v []string) *K   { return &K{SYMBOL_LIST, AttrNone, v} }
func NewString(v string) *K         { return &K{STRING, AttrNone, []byte(v)} }

func NewTimestampList(v []int64) *K { return &K{TIMESTAMP_LIST, AttrNone, v} }
func NewMonthList(v []int32) *K     { return &K{MONTH_LIST, AttrNone, v} }
func NewDateList(v []int32) *K      { return &K{DATE_LIST, AttrNone, v} }
func NewDatetimeList(v []float64) *K { return &K{DATETIME_LIST, AttrNone, v} }
func NewTimespanList(v []int64) *K  { return &K{TIMESPAN_LIST, AttrNone, v} }
func NewMinuteList(v []int32) *K    { return &K{MINUTE_LIST, AttrNone, v} }
func NewSecondList(v []int32) *K    { return &K{SECOND_LIST, AttrNone, v} }
func NewTimeList(v []int32) *K      { return &K{TIME_LIST, AttrNone, v} }

// WithAttr returns a copy of k with its list/table attribute set to a.
// Only meaningful for list-like and table values; it is harmless but
// pointless on atoms.
func (k *K) WithAttr(a Attribute) *K {
	cp := *k
	cp.attr = a
	return &cp
}

// NewCompoundList constructs a heterogeneous ordered list of K values.
func NewCompoundList(items []*K) *K {
	return &K{COMPOUND_LIST, AttrNone, items}
}

// NewDictionary constructs a plain dictionary from equal-length keys and
// values lists. The qtype is always DICTIONARY; use NewTable/
// NewKeyedTable for the specialized wire shapes.
func NewDictionary(keys, values *K) *K {
	return &K{DICTIONARY, AttrNone, dict{keys, values}}
}

// NewTable constructs a table: a dictionary whose keys is a symbol list
// of column names and whose values is a compound list of equal-length
// columns.
func NewTable(columns []string, values []*K) *K {
	return &K{TABLE, AttrNone, dict{NewSymbolList(columns), NewCompoundList(values)}}
}

// NewTableFromParts constructs a table directly from its wire-decoded
// keys (a symbol list of column names) and values (a compound list of
// equal-length columns), without requiring the caller to already hold Go
// slices of each. Used by the deserializer, which decodes keys/values
// generically before knowing their concrete shape.
func NewTableFromParts(keys, values *K) *K {
	return &K{TABLE, AttrNone, dict{keys, values}}
}

// NewKeyedTable constructs a keyed table / sorted dictionary (wire type
// 127): a dictionary whose two elements are themselves tables with the
// same row count.
func NewKeyedTable(keyTable, valueTable *K) *K {
	return &K{SORTED_DICTIONARY, AttrNone, dict{keyTable, valueTable}}
}

// NewLambda constructs a lambda value: a context string and a q source
// snippet body.
func NewLambda(context, body string) *K {
	return &K{LAMBDA, AttrNone, lambda{context, body}}
}

// NewOpaque constructs a function-ish opaque variant of the given qtype,
// carrying a preserved byte payload. Used internally by the deserializer
// to guarantee byte-exact round trips; exported so other packages in
// this module (internal/wire) can build round-trip-safe values without
// reaching into kdb's internals.
func NewOpaque(qtype int8, payload []byte) *K {
	return &K{qtype, AttrNone, opaque{append([]byte(nil), payload...)}}
}
