package entities

import (
	"time"

	"torqrides/internal/booking"
)

type CartItemResponse struct {
	ID             int                       `json:"id"`
	MotorcycleID   int                       `json:"motorcycle_id"`
	MotorcycleName string                    `json:"motorcycle_name"`
	PickupTime     time.Time                 `json:"pickup_time"`
	DropoffTime    time.Time                 `json:"dropoff_time"`
	Quantity       int                       `json:"quantity"`
	Period         booking.DurationBreakdown `json:"period"`
	Quote          booking.Quote             `json:"quote"`
	LineTotal      int                       `json:"line_total"`
}

type CartResponse struct {
	SessionKey string             `json:"session_key"`
	Items      []CartItemResponse `json:"items"`
	CouponCode string             `json:"coupon_code,omitempty"`
	PercentOff int                `json:"percent_off,omitempty"`
	Subtotal   int                `json:"subtotal"`
	Discount   int                `json:"discount"`
	Total      int                `json:"total"`
}
