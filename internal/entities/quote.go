package entities

import "torqrides/internal/booking"

type QuoteResponse struct {
	MotorcycleID int                       `json:"motorcycle_id"`
	Period       booking.DurationBreakdown `json:"period"`
	Rates        booking.RateSchedule      `json:"rates"`
	Quote        booking.Quote             `json:"quote"`
	// TodayRate is the catalog display rate for the current date, not the
	// rate applied to the booking period.
	TodayRate int `json:"today_rate"`
}
