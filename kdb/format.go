package kdb

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders k in canonical q textual notation. This is a diagnostic
// format only: it is never parsed back, and it makes no attempt to match
// q's column-alignment rules for table display, only its atom/list/
// dictionary literal syntax.
func (k *K) String() string {
	var b strings.Builder
	k.writeTo(&b)
	return b.String()
}

func (k *K) writeTo(b *strings.Builder) {
	switch k.qtype {
	case ERROR:
		b.WriteString("'")
		b.WriteString(k.value.(string))
	case BOOL:
		if k.value.(bool) {
			b.WriteString("1b")
		} else {
			b.WriteString("0b")
		}
	case BYTE:
		fmt.Fprintf(b, "0x%02x", k.value.(byte))
	case SHORT:
		v := k.value.(int16)
		writeIntSentinel(b, int64(v), IsNullShort(v), v == NinfShort, v == InfShort)
		b.WriteString("h")
	case INT:
		v := k.value.(int32)
		writeIntSentinel(b, int64(v), IsNullInt(v), v == NinfInt, v == InfInt)
		b.WriteString("i")
	case LONG:
		v := k.value.(int64)
		writeIntSentinel(b, v, IsNullLong(v), v == NinfLong, v == InfLong)
	case REAL:
		v := k.value.(float32)
		writeFloatSentinel(b, float64(v))
		b.WriteString("e")
	case FLOAT:
		writeFloatSentinel(b, k.value.(float64))
	case CHAR:
		fmt.Fprintf(b, "\"%c\"", k.value.(byte))
	case GUID:
		v := k.value.([16]byte)
		fmt.Fprintf(b, "%x-%x-%x-%x-%x", v[0:4], v[4:6], v[6:8], v[8:10], v[10:16])
	case SYMBOL:
		b.WriteString("`")
		b.WriteString(k.value.(string))
	case TIMESTAMP:
		fmt.Fprintf(b, "%dn", k.value.(int64))
	case MONTH:
		fmt.Fprintf(b, "%dm", k.value.(int32))
	case DATE:
		fmt.Fprintf(b, "%dd", k.value.(int32))
	case DATETIME:
		fmt.Fprintf(b, "%gz", k.value.(float64))
	case TIMESPAN:
		fmt.Fprintf(b, "%dn", k.value.(int64))
	case MINUTE:
		fmt.Fprintf(b, "%du", k.value.(int32))
	case SECOND:
		fmt.Fprintf(b, "%dv", k.value.(int32))
	case TIME:
		fmt.Fprintf(b, "%dt", k.value.(int32))
	case STRING:
		fmt.Fprintf(b, "%q", string(k.value.([]byte)))
	case BOOL_LIST, BYTE_LIST, SHORT_LIST, INT_LIST, LONG_LIST, REAL_LIST,
		FLOAT_LIST, GUID_LIST, SYMBOL_LIST, TIMESTAMP_LIST, MONTH_LIST,
		DATE_LIST, DATETIME_LIST, TIMESPAN_LIST, MINUTE_LIST, SECOND_LIST,
		TIME_LIST:
		k.writeVector(b)
	case COMPOUND_LIST:
		items := k.value.([]*K)
		b.WriteString("(")
		for i, it := range items {
			if i > 0 {
				b.WriteString(";")
			}
			it.writeTo(b)
		}
		b.WriteString(")")
	case DICTIONARY, SORTED_DICTIONARY:
		d := k.value.(dict)
		d.keys.writeTo(b)
		b.WriteString("!")
		d.values.writeTo(b)
	case TABLE:
		d := k.value.(dict)
		names, _ := d.keys.Symbols()
		cols, _ := d.values.Items()
		b.WriteString("+(")
		b.WriteString(strings.Join(quoteSymbols(names), ";"))
		b.WriteString(")!(")
		for i, c := range cols {
			if i > 0 {
				b.WriteString(";")
			}
			c.writeTo(b)
		}
		b.WriteString(")")
	case LAMBDA:
		l := k.value.(lambda)
		b.WriteString(l.body)
	default:
		n := 0
		if o, ok := k.value.(opaque); ok {
			n = len(o.payload)
		}
		fmt.Fprintf(b, "<opaque type %d, %d bytes>", k.qtype, n)
	}
}

func (k *K) writeVector(b *strings.Builder) {
	n := k.Len()
	b.WriteString("(")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(";")
		}
		elementAt(k, i).writeTo(b)
	}
	b.WriteString(")")
}

// elementAt wraps the i'th element of a typed vector in a fresh atom K so
// it can reuse writeTo's atom-rendering switch.
func elementAt(k *K, i int) *K {
	switch v := k.value.(type) {
	case []bool:
		return NewBool(v[i])
	case []byte:
		return NewByte(v[i])
	case []int16:
		return NewShort(v[i])
	case []int32:
		switch k.qtype {
		case MONTH_LIST:
			return &K{MONTH, AttrNone, v[i]}
		case DATE_LIST:
			return &K{DATE, AttrNone, v[i]}
		case MINUTE_LIST:
			return &K{MINUTE, AttrNone, v[i]}
		case SECOND_LIST:
			return &K{SECOND, AttrNone, v[i]}
		case TIME_LIST:
			return &K{TIME, AttrNone, v[i]}
		default:
			return NewInt(v[i])
		}
	case []int64:
		switch k.qtype {
		case TIMESTAMP_LIST:
			return &K{TIMESTAMP, AttrNone, v[i]}
		case TIMESPAN_LIST:
			return &K{TIMESPAN, AttrNone, v[i]}
		default:
			return NewLong(v[i])
		}
	case []float32:
		return NewReal(v[i])
	case []float64:
		switch k.qtype {
		case DATETIME_LIST:
			return &K{DATETIME, AttrNone, v[i]}
		default:
			return NewFloat(v[i])
		}
	case [][16]byte:
		return NewGUID(v[i])
	case []string:
		return NewSymbol(v[i])
	default:
		return NewNull()
	}
}

func quoteSymbols(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "`" + n
	}
	return out
}

func writeIntSentinel(b *strings.Builder, v int64, isNull, isNinf, isInf bool) {
	switch {
	case isNull:
		b.WriteString("0N")
	case isNinf:
		b.WriteString("-0W")
	case isInf:
		b.WriteString("0W")
	default:
		b.WriteString(strconv.FormatInt(v, 10))
	}
}

func writeFloatSentinel(b *strings.Builder, v float64) {
	switch {
	case IsNullFloat(v):
		b.WriteString("0n")
	case v == NinfFloat:
		b.WriteString("-0w")
	case v == InfFloat:
		b.WriteString("0w")
	default:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}
