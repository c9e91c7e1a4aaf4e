package entities

type MotorcycleResponse struct {
	ID          int    `json:"id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Category    string `json:"category"`
	WeekdayRate int    `json:"weekday_rate"`
	WeekendRate int    `json:"weekend_rate"`
	// DisplayRate is today's per-day listing price, weekday or weekend
	// depending on the current date.
	DisplayRate int    `json:"display_rate"`
	TotalStock  int    `json:"total_stock"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}
