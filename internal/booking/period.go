// Package booking holds the rental period and pricing calculations shared by
// the quote, cart and booking services. Everything here is a pure function
// over its arguments; callers inject the clock where "now" matters.
package booking

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat is returned when a pickup/dropoff clock string cannot
// be parsed as HH:MM with hour in [0,23] and minute in [0,59].
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// DayBucket is the pricing tier a calendar day falls into. The split is a
// business rule: Monday through Thursday price as weekdays, Friday through
// Sunday price as weekend days.
type DayBucket int

const (
	BucketWeekday DayBucket = iota
	BucketWeekend
)

// ClassifyDay maps a weekday to its pricing bucket. Friday counts as weekend.
func ClassifyDay(d time.Weekday) DayBucket {
	if d >= time.Monday && d <= time.Thursday {
		return BucketWeekday
	}
	return BucketWeekend
}

// DurationBreakdown describes a rental span decomposed into whole days plus a
// fractional remainder, with each full day classified into a pricing bucket.
type DurationBreakdown struct {
	TotalHours           float64 `json:"total_hours"`
	WholeDays            int     `json:"whole_days"`
	ExtraHours           float64 `json:"extra_hours"`
	WeekdayCount         int     `json:"weekday_count"`
	WeekendCount         int     `json:"weekend_count"`
	TrailingDayIsWeekend bool    `json:"trailing_day_is_weekend"`
	Label                string  `json:"label"`
}

// CombineDateTime merges a calendar date with an HH:MM clock string into a
// single instant in the date's location. Seconds and sub-seconds are zeroed.
func CombineDateTime(date time.Time, clock string) (time.Time, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

// ComputeBookingPeriod combines the pickup and dropoff date/time pairs and
// decomposes the resulting span. A malformed clock string is the only error;
// a dropoff at or before the pickup is not an error and yields the zero
// breakdown. Callers must treat a zero-duration result as invalid input, not
// as a free rental.
func ComputeBookingPeriod(pickupDate time.Time, pickupTime string, dropoffDate time.Time, dropoffTime string) (DurationBreakdown, error) {
	pickup, err := CombineDateTime(pickupDate, pickupTime)
	if err != nil {
		return DurationBreakdown{}, err
	}
	dropoff, err := CombineDateTime(dropoffDate, dropoffTime)
	if err != nil {
		return DurationBreakdown{}, err
	}
	return DecomposePeriod(pickup, dropoff), nil
}

// DecomposePeriod breaks the span between two instants into whole days plus
// remainder hours and classifies each full day starting at the pickup day.
// When a partial day remains, the day immediately after the last full day
// decides TrailingDayIsWeekend. Non-positive spans degrade to the zero
// breakdown instead of failing.
func DecomposePeriod(pickup, dropoff time.Time) DurationBreakdown {
	totalHours := dropoff.Sub(pickup).Hours()
	if totalHours <= 0 {
		return DurationBreakdown{Label: "0 days 0 hours"}
	}

	b := DurationBreakdown{TotalHours: totalHours}
	b.WholeDays = int(totalHours / 24)
	b.ExtraHours = totalHours - float64(b.WholeDays)*24

	for i := 0; i < b.WholeDays; i++ {
		day := pickup.AddDate(0, 0, i)
		if ClassifyDay(day.Weekday()) == BucketWeekday {
			b.WeekdayCount++
		} else {
			b.WeekendCount++
		}
	}

	if b.ExtraHours > 0 {
		trailing := pickup.AddDate(0, 0, b.WholeDays)
		b.TrailingDayIsWeekend = ClassifyDay(trailing.Weekday()) == BucketWeekend
		// Any partial hour bills as a full hour, so the label may read
		// "0 days 24 hours" for a span just under one day.
		b.Label = fmt.Sprintf("%d days %d hours", b.WholeDays, int(math.Ceil(b.ExtraHours)))
	} else {
		b.Label = fmt.Sprintf("%d days", b.WholeDays)
	}

	return b
}

// IsZero reports whether the breakdown is the degenerate zero-duration
// result produced for a dropoff at or before the pickup.
func (b DurationBreakdown) IsZero() bool {
	return b.TotalHours == 0
}
