package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"torqrides/internal/booking"
	"torqrides/internal/db"
	"torqrides/internal/entities"
	httperr "torqrides/internal/errors"
	"torqrides/internal/repository"
)

type CartService struct {
	Repo       *repository.CartRepository
	MotoRepo   *repository.MotorcycleRepository
	CouponRepo *repository.CouponRepository
	Bookings   *BookingService
}

func NewCartService(repo *repository.CartRepository, motoRepo *repository.MotorcycleRepository,
	couponRepo *repository.CouponRepository, bookings *BookingService) *CartService {
	return &CartService{Repo: repo, MotoRepo: motoRepo, CouponRepo: couponRepo, Bookings: bookings}
}

// GetCart rebuilds the cart's totals from scratch. Clients keep their own
// optimistic copy of the cart; this response is the authoritative resync
// point, so every line is re-quoted at current rates and the coupon is
// re-validated on every read.
func (s *CartService) GetCart(sessionKey string) (*entities.CartResponse, error) {
	cart, err := s.Repo.GetOrCreateCart(sessionKey)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	resp := &entities.CartResponse{SessionKey: sessionKey, Items: []entities.CartItemResponse{}}
	for _, it := range items {
		moto, err := s.MotoRepo.GetMotorcycleByID(it.MotorcycleID)
		if err != nil {
			log.Printf("Cart %s references missing motorcycle %d, skipping line: %v", sessionKey, it.MotorcycleID, err)
			continue
		}
		rates := booking.RateSchedule{WeekdayRate: moto.WeekdayRate, WeekendRate: moto.WeekendRate}
		period := booking.DecomposePeriod(it.PickupTime, it.DropoffTime)
		quote := booking.QuoteForPeriod(period, rates)
		line := entities.CartItemResponse{
			ID:             it.ID,
			MotorcycleID:   it.MotorcycleID,
			MotorcycleName: moto.Make + " " + moto.Model,
			PickupTime:     it.PickupTime,
			DropoffTime:    it.DropoffTime,
			Quantity:       it.Quantity,
			Period:         period,
			Quote:          quote,
			LineTotal:      quote.Total * it.Quantity,
		}
		resp.Items = append(resp.Items, line)
		resp.Subtotal += line.LineTotal
	}

	if cart.CouponCode != "" {
		coupon, err := s.CouponRepo.GetActiveCoupon(cart.CouponCode)
		switch {
		case err == nil:
			resp.CouponCode = coupon.Code
			resp.PercentOff = coupon.PercentOff
		case errors.Is(err, repository.ErrCouponNotFound):
			// Coupon expired since it was applied; drop it silently so the
			// next read shows undiscounted totals.
			if err := s.Repo.SetCoupon(cart.ID, ""); err != nil {
				log.Printf("Failed to clear expired coupon from cart %s: %v", sessionKey, err)
			}
		default:
			return nil, err
		}
	}

	resp.Discount = DiscountAmount(resp.Subtotal, resp.PercentOff)
	resp.Total = resp.Subtotal - resp.Discount
	return resp, nil
}

// AddItem validates the period and availability before the line enters the
// cart. A zero-duration period is invalid input, not a free rental.
func (s *CartService) AddItem(sessionKey string, motorcycleID int, pickup, dropoff time.Time, quantity int) (*entities.CartResponse, error) {
	if quantity < 1 {
		quantity = 1
	}
	period := booking.DecomposePeriod(pickup, dropoff)
	if period.IsZero() {
		return nil, httperr.ErrBadRequest("dropoff must be after pickup")
	}

	availability, err := s.Bookings.CheckAvailability(motorcycleID, pickup, dropoff)
	if err != nil {
		return nil, err
	}
	if availability.AvailableUnits < quantity {
		return nil, httperr.ErrConflict(fmt.Sprintf("only %d unit(s) of motorcycle %d available for the requested period", availability.AvailableUnits, motorcycleID))
	}

	cart, err := s.Repo.GetOrCreateCart(sessionKey)
	if err != nil {
		return nil, err
	}
	item := &db.CartItem{
		CartID:       cart.ID,
		MotorcycleID: motorcycleID,
		PickupTime:   pickup.UTC(),
		DropoffTime:  dropoff.UTC(),
		Quantity:     quantity,
	}
	if err := s.Repo.AddItem(item); err != nil {
		return nil, err
	}
	return s.GetCart(sessionKey)
}

func (s *CartService) RemoveItem(sessionKey string, itemID int) (*entities.CartResponse, error) {
	cart, err := s.Repo.GetOrCreateCart(sessionKey)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RemoveItem(cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.GetCart(sessionKey)
}

func (s *CartService) ApplyCoupon(sessionKey, code string) (*entities.CartResponse, error) {
	coupon, err := s.CouponRepo.GetActiveCoupon(code)
	if err != nil {
		return nil, err
	}
	cart, err := s.Repo.GetOrCreateCart(sessionKey)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetCoupon(cart.ID, coupon.Code); err != nil {
		return nil, err
	}
	return s.GetCart(sessionKey)
}

func (s *CartService) RemoveCoupon(sessionKey string) (*entities.CartResponse, error) {
	cart, err := s.Repo.GetOrCreateCart(sessionKey)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetCoupon(cart.ID, ""); err != nil {
		return nil, err
	}
	return s.GetCart(sessionKey)
}

// DiscountAmount computes the coupon discount on a subtotal, truncating
// toward zero so the customer is never over-discounted by rounding.
func DiscountAmount(subtotal, percentOff int) int {
	if subtotal <= 0 || percentOff <= 0 {
		return 0
	}
	if percentOff > 100 {
		percentOff = 100
	}
	return subtotal * percentOff / 100
}
