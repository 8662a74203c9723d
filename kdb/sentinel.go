package kdb

import "math"

// Null, infinity, and negative-infinity sentinels for the numeric atom
// types, ported verbatim from the upstream qnull/qinf/qninf constant
// tables. Temporal types reuse their underlying numeric representation's
// sentinel (a q timestamp is an i64 nanosecond offset, so its null is
// exactly the long null, and so on).
const (
	NullShort int16 = math.MinInt16
	InfShort  int16 = math.MaxInt16
	NinfShort int16 = math.MinInt16 + 1

	NullInt int32 = math.MinInt32
	InfInt  int32 = math.MaxInt32
	NinfInt int32 = math.MinInt32 + 1

	NullLong int64 = math.MinInt64
	InfLong  int64 = math.MaxInt64
	NinfLong int64 = math.MinInt64 + 1

	NullChar byte = ' '
)

// NullReal, InfReal, and NinfReal mirror the float32 sentinels; they are
// vars (not consts) because Go forbids NaN/Inf literals in const
// expressions.
var (
	NullReal = float32(math.NaN())
	InfReal  = float32(math.Inf(1))
	NinfReal = float32(math.Inf(-1))

	NullFloat = math.NaN()
	InfFloat  = math.Inf(1)
	NinfFloat = math.Inf(-1)
)

// NullGUID is the all-zero 16-byte GUID null.
var NullGUID = [16]byte{}

// NullSymbol is the empty-string symbol null.
const NullSymbol = ""

// IsNullShort, IsNullInt, IsNullLong, IsNullFloat report whether v is the
// null sentinel for its type. IsNullFloat must use a NaN-aware comparison.
func IsNullShort(v int16) bool { return v == NullShort }
func IsNullInt(v int32) bool   { return v == NullInt }
func IsNullLong(v int64) bool  { return v == NullLong }
func IsNullFloat(v float64) bool {
	return v != v // NaN is the only float value unequal to itself
}
func IsNullReal(v float32) bool {
	return v != v
}
