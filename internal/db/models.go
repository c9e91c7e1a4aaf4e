package db

import "time"

type Motorcycle struct {
	ID          int
	Make        string
	Model       string
	Category    string
	WeekdayRate int
	WeekendRate int
	TotalStock  int
	ImageURL    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Booking struct {
	ID              int
	Code            string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	MotorcycleID    int
	PickupTime      time.Time
	DropoffTime     time.Time
	Status          string
	PaymentMethodID int
	QuotedTotal     int
	AmountPaid      int
	StripeSessionID string
	PaymentStatus   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Cart struct {
	ID         int
	SessionKey string
	CouponCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CartItem struct {
	ID           int
	CartID       int
	MotorcycleID int
	PickupTime   time.Time
	DropoffTime  time.Time
	Quantity     int
	CreatedAt    time.Time
}

type Coupon struct {
	ID         int
	Code       string
	PercentOff int
	ExpiresAt  time.Time
	Active     bool
	CreatedAt  time.Time
}

type AdminUser struct {
	ID           int
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
