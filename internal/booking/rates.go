package booking

import "time"

// RateSchedule is the pair of per-day rates attached to a motorcycle. Rates
// are whole currency units, immutable per item per query.
type RateSchedule struct {
	WeekdayRate int `json:"weekday_rate"`
	WeekendRate int `json:"weekend_rate"`
}

// Quote is the cost breakdown for a rental period under a rate schedule.
type Quote struct {
	WeekdayDays    int `json:"weekday_days"`
	WeekendDays    int `json:"weekend_days"`
	WeekdayCost    int `json:"weekday_cost"`
	WeekendCost    int `json:"weekend_cost"`
	PartialDayCost int `json:"partial_day_cost"`
	Total          int `json:"total"`
}

// SelectDailyRate returns the rate applicable on the given date. Catalog
// listings pass the current date here; the booking quote walks the period's
// days itself via QuoteForPeriod.
func SelectDailyRate(rs RateSchedule, at time.Time) int {
	if ClassifyDay(at.Weekday()) == BucketWeekday {
		return rs.WeekdayRate
	}
	return rs.WeekendRate
}

// QuoteForPeriod prices a decomposed rental period: every full day at its
// bucket's rate, and a trailing partial day billed as one full day at the
// trailing day's rate. A zero breakdown quotes zero.
func QuoteForPeriod(b DurationBreakdown, rs RateSchedule) Quote {
	q := Quote{
		WeekdayDays: b.WeekdayCount,
		WeekendDays: b.WeekendCount,
		WeekdayCost: b.WeekdayCount * rs.WeekdayRate,
		WeekendCost: b.WeekendCount * rs.WeekendRate,
	}
	if b.ExtraHours > 0 {
		if b.TrailingDayIsWeekend {
			q.PartialDayCost = rs.WeekendRate
		} else {
			q.PartialDayCost = rs.WeekdayRate
		}
	}
	q.Total = q.WeekdayCost + q.WeekendCost + q.PartialDayCost
	return q
}
