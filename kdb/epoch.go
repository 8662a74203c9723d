package kdb

import "time"

// q epoch conversion constants, ported from the upstream conversions
// module. All temporal K values store an offset from the q epoch
// (2000-01-01T00:00:00 UTC) on the wire; these constants convert that
// offset to/from a Go time.Time or time.Duration for diagnostic and
// application use. They have no effect on the wire representation
// itself, which always stays the raw integer/float offset.
const (
	oneDayNanos      int64 = 86400000000000
	oneDayMillis     int64 = 86400000
	kdbMonthOffset   int32 = 360
	kdbDayOffset     int32 = 10957
	kdbTimestampOffsetNanos int64 = 946684800000000000
)

// QEpoch is 2000-01-01T00:00:00 UTC, the origin of every q temporal offset.
var QEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// timestampToTime converts a q timestamp (nanoseconds since QEpoch) to a
// Go time.Time. Null and negative-infinity offsets return the zero
// time.Time{} rather than reproducing chrono::NaiveDate's specific
// thresholds from the upstream source (see DESIGN.md: Open Question
// resolution); every other offset, +infinity included, is added to
// QEpoch as is.
func timestampToTime(nanos int64) time.Time {
	if IsNullLong(nanos) || nanos == NinfLong {
		return time.Time{}
	}
	return QEpoch.Add(time.Duration(nanos))
}

// monthToTime converts a q month offset (months since 2000-01) to a Go
// time.Time at the first of that month, UTC.
func monthToTime(months int32) time.Time {
	if IsNullInt(months) || months == NinfInt {
		return time.Time{}
	}
	return time.Date(2000+int(months)/12, time.Month(1+int(months)%12), 1, 0, 0, 0, 0, time.UTC)
}

// dateToTime converts a q date offset (days since 2000-01-01) to a Go time.Time.
func dateToTime(days int32) time.Time {
	if IsNullInt(days) || days == NinfInt {
		return time.Time{}
	}
	return QEpoch.AddDate(0, 0, int(days))
}

// datetimeToTime converts a q datetime offset (fractional days since
// 2000-01-01, millisecond granularity) to a Go time.Time.
func datetimeToTime(days float64) time.Time {
	if IsNullFloat(days) {
		return time.Time{}
	}
	millis := int64(float64(oneDayMillis) * (days + float64(kdbDayOffset)))
	return time.UnixMilli(millis).UTC()
}

// timespanToDuration converts a q timespan offset (nanoseconds) to a Go
// time.Duration.
func timespanToDuration(nanos int64) time.Duration {
	return time.Duration(nanos)
}

// minuteToDuration, secondToDuration, and timeToDuration convert their
// respective q unit offsets to a Go time.Duration.
func minuteToDuration(minutes int32) time.Duration {
	return time.Duration(minutes) * time.Minute
}

func secondToDuration(seconds int32) time.Duration {
	return time.Duration(seconds) * time.Second
}

func timeToDuration(millis int32) time.Duration {
	return time.Duration(millis) * time.Millisecond
}

// timeToTimestamp converts a Go time.Time back into a q timestamp offset
// (nanoseconds since QEpoch), the inverse of timestampToTime.
func timeToTimestamp(t time.Time) int64 {
	return int64(t.Sub(QEpoch))
}
