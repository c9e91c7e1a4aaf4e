package entities

import "time"

type AvailabilityResponse struct {
	MotorcycleID       int       `json:"motorcycle_id"`
	RequestedStartTime time.Time `json:"requested_start_time"`
	RequestedEndTime   time.Time `json:"requested_end_time"`
	TotalStock         int       `json:"total_stock"`
	BookedUnits        int       `json:"booked_units"`
	AvailableUnits     int       `json:"available_units"`
	IsAvailable        bool      `json:"is_available"`
	Message            string    `json:"message,omitempty"`
}
