package entities

import (
	"time"

	"torqrides/internal/booking"
)

type BookingResponse struct {
	Code            string                    `json:"code"`
	CustomerName    string                    `json:"customer_name"`
	CustomerEmail   string                    `json:"customer_email"`
	CustomerPhone   string                    `json:"customer_phone"`
	MotorcycleID    int                       `json:"motorcycle_id"`
	MotorcycleName  string                    `json:"motorcycle_name,omitempty"`
	PickupTime      time.Time                 `json:"pickup_time"`
	DropoffTime     time.Time                 `json:"dropoff_time"`
	Status          string                    `json:"status"`
	PaymentMethodID int                       `json:"payment_method_id"`
	PaymentStatus   string                    `json:"payment_status,omitempty"`
	QuotedTotal     int                       `json:"quoted_total"`
	AmountPaid      int                       `json:"amount_paid"`
	Period          booking.DurationBreakdown `json:"period"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

type StripeSessionResponse struct {
	Code      string `json:"code"`
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}
