package entities

type BookingRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	MotorcycleID    int    `json:"motorcycle_id"`
	PickupDate      string `json:"pickup_date"` // 2006-01-02
	PickupTime      string `json:"pickup_time"` // HH:MM
	DropoffDate     string `json:"dropoff_date"`
	DropoffTime     string `json:"dropoff_time"`
	PaymentMethodID int    `json:"payment_method_id"`
	CouponCode      string `json:"coupon_code,omitempty"`
}
