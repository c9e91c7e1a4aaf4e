package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-15 is a Monday.
func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestCombineDateTime(t *testing.T) {
	t.Run("Valid clock", func(t *testing.T) {
		got, err := CombineDateTime(day(15), "09:30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), got)
	})

	t.Run("Truncates seconds from the date", func(t *testing.T) {
		noisy := time.Date(2024, 1, 15, 17, 45, 33, 123456, time.UTC)
		got, err := CombineDateTime(noisy, "07:05")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 7, 5, 0, 0, time.UTC), got)
	})

	t.Run("Malformed input", func(t *testing.T) {
		for _, clock := range []string{"0900", "9", "ab:cd", "12:xx", "", "12:30:00"} {
			_, err := CombineDateTime(day(15), clock)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat, "clock %q", clock)
		}
	})

	t.Run("Out of range", func(t *testing.T) {
		for _, clock := range []string{"24:00", "-1:30", "12:60", "12:-5"} {
			_, err := CombineDateTime(day(15), clock)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat, "clock %q", clock)
		}
	})
}

func TestClassifyDay(t *testing.T) {
	assert.Equal(t, BucketWeekday, ClassifyDay(time.Monday))
	assert.Equal(t, BucketWeekday, ClassifyDay(time.Tuesday))
	assert.Equal(t, BucketWeekday, ClassifyDay(time.Wednesday))
	assert.Equal(t, BucketWeekday, ClassifyDay(time.Thursday))
	assert.Equal(t, BucketWeekend, ClassifyDay(time.Friday))
	assert.Equal(t, BucketWeekend, ClassifyDay(time.Saturday))
	assert.Equal(t, BucketWeekend, ClassifyDay(time.Sunday))
}

func TestComputeBookingPeriod(t *testing.T) {
	t.Run("Monday to Wednesday, two weekdays", func(t *testing.T) {
		b, err := ComputeBookingPeriod(day(15), "09:00", day(17), "09:00")
		require.NoError(t, err)
		assert.Equal(t, 48.0, b.TotalHours)
		assert.Equal(t, 2, b.WholeDays)
		assert.Equal(t, 0.0, b.ExtraHours)
		assert.Equal(t, 2, b.WeekdayCount)
		assert.Equal(t, 0, b.WeekendCount)
		assert.False(t, b.TrailingDayIsWeekend)
		assert.Equal(t, "2 days", b.Label)
	})

	t.Run("Thursday to Saturday crosses into the weekend", func(t *testing.T) {
		// Thu Jan 18 counts as a weekday, Fri Jan 19 as weekend.
		b, err := ComputeBookingPeriod(day(18), "09:00", day(20), "09:00")
		require.NoError(t, err)
		assert.Equal(t, 2, b.WholeDays)
		assert.Equal(t, 1, b.WeekdayCount)
		assert.Equal(t, 1, b.WeekendCount)
		assert.Equal(t, "2 days", b.Label)
	})

	t.Run("Friday pickup with a 22 hour remainder", func(t *testing.T) {
		// Fri Jan 19 10:00 to Fri Jan 26 08:00 = 166h = 6 days + 22h.
		b, err := ComputeBookingPeriod(day(19), "10:00", day(26), "08:00")
		require.NoError(t, err)
		assert.Equal(t, 6, b.WholeDays)
		assert.Equal(t, 22.0, b.ExtraHours)
		assert.Equal(t, 3, b.WeekdayCount)      // Mon, Tue, Wed
		assert.Equal(t, 3, b.WeekendCount)      // Fri, Sat, Sun
		assert.False(t, b.TrailingDayIsWeekend) // Thu Jan 25
		assert.Equal(t, "6 days 22 hours", b.Label)
	})

	t.Run("Trailing partial day on a weekend", func(t *testing.T) {
		// Wed Jan 17 10:00 to Fri Jan 19 12:00 = 2 days + 2h, trailing Fri.
		b, err := ComputeBookingPeriod(day(17), "10:00", day(19), "12:00")
		require.NoError(t, err)
		assert.Equal(t, 2, b.WholeDays)
		assert.Equal(t, 2.0, b.ExtraHours)
		assert.True(t, b.TrailingDayIsWeekend)
		assert.Equal(t, "2 days 2 hours", b.Label)
	})

	t.Run("Identical instants degrade to zero", func(t *testing.T) {
		b, err := ComputeBookingPeriod(day(15), "09:00", day(15), "09:00")
		require.NoError(t, err)
		assert.Equal(t, DurationBreakdown{Label: "0 days 0 hours"}, b)
		assert.True(t, b.IsZero())
	})

	t.Run("Dropoff before pickup degrades to zero", func(t *testing.T) {
		b, err := ComputeBookingPeriod(day(20), "09:00", day(15), "09:00")
		require.NoError(t, err)
		assert.Equal(t, DurationBreakdown{Label: "0 days 0 hours"}, b)
	})

	t.Run("Exactly 24 hours", func(t *testing.T) {
		b, err := ComputeBookingPeriod(day(15), "09:00", day(16), "09:00")
		require.NoError(t, err)
		assert.Equal(t, 1, b.WholeDays)
		assert.Equal(t, 0.0, b.ExtraHours)
		assert.Equal(t, "1 days", b.Label)
	})

	t.Run("23h59m rounds the label up to 24 hours", func(t *testing.T) {
		b, err := ComputeBookingPeriod(day(15), "09:00", day(16), "08:59")
		require.NoError(t, err)
		assert.Equal(t, 0, b.WholeDays)
		assert.InDelta(t, 23.9833, b.ExtraHours, 0.001)
		assert.Equal(t, "0 days 24 hours", b.Label)
	})

	t.Run("Bad clock surfaces the parse error", func(t *testing.T) {
		_, err := ComputeBookingPeriod(day(15), "9am", day(16), "09:00")
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
		_, err = ComputeBookingPeriod(day(15), "09:00", day(16), "25:00")
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})

	t.Run("Pure function, identical inputs identical outputs", func(t *testing.T) {
		a, err := ComputeBookingPeriod(day(18), "10:15", day(23), "18:45")
		require.NoError(t, err)
		b, err := ComputeBookingPeriod(day(18), "10:15", day(23), "18:45")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestDecomposePeriod_Invariants(t *testing.T) {
	// Every valid span must satisfy: weekday + weekend == whole days and
	// 0 <= extra < 24.
	spans := []struct {
		pickup, dropoff time.Time
	}{
		{day(15).Add(9 * time.Hour), day(16).Add(9 * time.Hour)},
		{day(15).Add(9 * time.Hour), day(22).Add(13 * time.Hour)},
		{day(19).Add(22 * time.Hour), day(20).Add(1 * time.Hour)},
		{day(1).Add(8 * time.Hour), day(31).Add(19*time.Hour + 30*time.Minute)},
		{day(15), day(15).Add(30 * time.Minute)},
	}
	for _, s := range spans {
		b := DecomposePeriod(s.pickup, s.dropoff)
		assert.Equal(t, b.WholeDays, b.WeekdayCount+b.WeekendCount)
		assert.GreaterOrEqual(t, b.ExtraHours, 0.0)
		assert.Less(t, b.ExtraHours, 24.0)
		assert.Equal(t, b.WholeDays, int(b.TotalHours/24))
	}
}
