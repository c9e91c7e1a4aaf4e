package api

// Quote & availability
type QuoteRequest struct {
	MotorcycleID int    `json:"motorcycle_id"`
	PickupDate   string `json:"pickup_date"` // 2006-01-02
	PickupTime   string `json:"pickup_time"` // HH:MM
	DropoffDate  string `json:"dropoff_date"`
	DropoffTime  string `json:"dropoff_time"`
}

type AvailabilityRequest struct {
	MotorcycleID int    `json:"motorcycle_id"`
	PickupDate   string `json:"pickup_date"`
	PickupTime   string `json:"pickup_time"`
	DropoffDate  string `json:"dropoff_date"`
	DropoffTime  string `json:"dropoff_time"`
}

// Booking
type UpdateBookingRequest struct {
	PickupDate  string `json:"pickup_date"`
	PickupTime  string `json:"pickup_time"`
	DropoffDate string `json:"dropoff_date"`
	DropoffTime string `json:"dropoff_time"`
}

// Cart
type AddCartItemRequest struct {
	MotorcycleID int    `json:"motorcycle_id"`
	PickupDate   string `json:"pickup_date"`
	PickupTime   string `json:"pickup_time"`
	DropoffDate  string `json:"dropoff_date"`
	DropoffTime  string `json:"dropoff_time"`
	Quantity     int    `json:"quantity"`
}

type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// Admin catalog
type MotorcycleRequest struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	Category    string `json:"category"`
	WeekdayRate int    `json:"weekday_rate"`
	WeekendRate int    `json:"weekend_rate"`
	TotalStock  int    `json:"total_stock"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

type StockUpdateRequest struct {
	TotalStock int `json:"total_stock"`
}

type CreateCouponRequest struct {
	Code       string `json:"code"`
	PercentOff int    `json:"percent_off"`
	ExpiresAt  string `json:"expires_at"` // RFC 3339
}
