// Package safecast implements functions to safely cast types to avoid panics
package safecast

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cast"
)

// Int64ToUint64 safely converts an int64 to uint64 using cast and checks for overflow
func Int64ToUint64(value int64) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %d is negative, cannot convert to uint64", value)
	}

	return cast.ToUint64E(value)
}

// Uint64ToInt safely converts a uint64 to int using cast and checks for overflow
func Uint64ToInt(value uint64) (int, error) {
	if value > math.MaxInt {
		return 0, fmt.Errorf("value %d exceeds int range", value)
	}

	return cast.ToIntE(value)
}

// IntToUint64 safely converts an int to uint64 using cast and checks for overflow
func IntToUint64(value int) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %d is negative, cannot convert to uint64", value)
	}

	return cast.ToUint64E(value)
}

// DurationToSeconds converts a duration to whole seconds that fit in a uint32. Fractions of a
// second are truncated.
func DurationToSeconds(d time.Duration) (uint32, error) {
	seconds := int64(d / time.Second)
	if seconds < 0 || seconds > math.MaxUint32 {
		return 0, fmt.Errorf("duration %s exceeds uint32 seconds range", d)
	}

	return cast.ToUint32E(seconds)
}
