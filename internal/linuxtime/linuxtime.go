// Package linuxtime converts between time.Time/time.Duration and the
// time_t (signed Unix-seconds) values the EventHeader wire format and its
// FieldFormatTime formatter use.
package linuxtime

import (
	"math"
	"time"
)

// FromDurationAfter1970 returns the time_t for a duration measured forward
// from 1970-01-01T00:00:00Z, given as whole seconds plus a sub-second
// nanosecond remainder (the same split time.Time.Sub and Rust's
// Duration::as_secs/subsec_nanos expose). Fractional seconds are truncated
// toward zero, matching a duration that is never negative. secs beyond
// math.MaxInt64 saturates to math.MaxInt64 rather than wrapping.
func FromDurationAfter1970(secs uint64, subsecNanos uint32) int64 {
	if secs > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(secs)
}

// FromDurationBefore1970 returns the time_t for a duration measured
// backward from 1970-01-01T00:00:00Z. Any nonzero sub-second remainder
// rounds the result one second further from zero, so the overall rounding
// is always toward negative infinity: 0.001s before 1970 is -1, not 0.
// secs beyond math.MaxInt64 saturates to math.MinInt64.
func FromDurationBefore1970(secs uint64, subsecNanos uint32) int64 {
	if secs > math.MaxInt64 {
		return math.MinInt64
	}
	whole := int64(secs)
	if subsecNanos != 0 {
		return -whole - 1
	}
	return -whole
}

// unixEpoch is 1970-01-01T00:00:00Z, used by UnixSeconds to split a
// time.Time into the same (direction, secs, subsecNanos) shape the
// FromDuration* functions take.
var unixEpoch = time.Unix(0, 0).UTC()

// UnixSeconds converts t to the time_t an EventHeader FieldFormatTime field
// should carry, applying the same round-toward-negative-infinity and
// saturation rules as FromDurationAfter1970/FromDurationBefore1970.
func UnixSeconds(t time.Time) int64 {
	d := t.Sub(unixEpoch)
	if d >= 0 {
		return FromDurationAfter1970(uint64(d/time.Second), uint32(d%time.Second))
	}
	d = -d
	return FromDurationBefore1970(uint64(d/time.Second), uint32(d%time.Second))
}
