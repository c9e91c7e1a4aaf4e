package entities

import "time"

type CouponResponse struct {
	Code       string    `json:"code"`
	PercentOff int       `json:"percent_off"`
	ExpiresAt  time.Time `json:"expires_at"`
	Active     bool      `json:"active"`
}
