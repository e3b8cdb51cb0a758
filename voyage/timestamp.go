package voyage

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// The log encodes time as a day count from the spreadsheet epoch plus a
// fractional day, split across two columns.
var epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ErrInvalidTimestamp is used when a record's day ordinal or day fraction is
// out of range.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// EventTime reconstructs the absolute UTC instant from a split day-ordinal /
// day-fraction encoding. The fraction is rounded to whole seconds so that
// interval arithmetic downstream stays exact.
func EventTime(dayOrdinal int, dayFraction float64) (time.Time, error) {
	if dayOrdinal < 0 {
		return time.Time{}, fmt.Errorf("%w: day ordinal %d is negative", ErrInvalidTimestamp, dayOrdinal)
	}
	if dayFraction < 0 || dayFraction >= 1 {
		return time.Time{}, fmt.Errorf("%w: day fraction %v outside [0,1)", ErrInvalidTimestamp, dayFraction)
	}
	seconds := int(math.Round(dayFraction * 86400))
	return epoch.AddDate(0, 0, dayOrdinal).Add(time.Duration(seconds) * time.Second), nil
}
