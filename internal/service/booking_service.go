package service

import (
	"fmt"
	"log"
	"time"

	"torqrides/internal/booking"
	"torqrides/internal/db"
	"torqrides/internal/entities"
	httperr "torqrides/internal/errors"
	"torqrides/internal/queue"
	"torqrides/internal/repository"
)

const (
	statusPending   = "pending"
	statusActive    = "active"
	statusCompleted = "completed"
	statusCancelled = "cancelled"

	paymentSucceeded = "succeeded"
	paymentRefunded  = "refunded"

	paymentOnPickup = 1
	paymentOnline   = 2

	dateLayout = "2006-01-02"
)

type BookingService struct {
	stripeService *StripeService
	senderService *SenderService
	events        *queue.Publisher
	Repo          *repository.BookingRepository
	MotoRepo      *repository.MotorcycleRepository
	CouponRepo    *repository.CouponRepository
}

func NewBookingService(repo *repository.BookingRepository, motoRepo *repository.MotorcycleRepository,
	couponRepo *repository.CouponRepository, stripeService *StripeService, senderService *SenderService,
	events *queue.Publisher) *BookingService {
	return &BookingService{
		stripeService: stripeService,
		senderService: senderService,
		events:        events,
		Repo:          repo,
		MotoRepo:      motoRepo,
		CouponRepo:    couponRepo,
	}
}

// QuotePeriod computes the duration breakdown and cost for a motorcycle over
// the requested period. The listing display rate uses the server clock, not
// the booking dates.
func (s *BookingService) QuotePeriod(motorcycleID int, pickupDate, pickupTime, dropoffDate, dropoffTime string, now time.Time) (*entities.QuoteResponse, error) {
	moto, err := s.MotoRepo.GetMotorcycleByID(motorcycleID)
	if err != nil {
		return nil, err
	}

	pd, err := time.Parse(dateLayout, pickupDate)
	if err != nil {
		return nil, fmt.Errorf("invalid pickup_date: %w", err)
	}
	dd, err := time.Parse(dateLayout, dropoffDate)
	if err != nil {
		return nil, fmt.Errorf("invalid dropoff_date: %w", err)
	}

	period, err := booking.ComputeBookingPeriod(pd, pickupTime, dd, dropoffTime)
	if err != nil {
		return nil, err
	}

	rates := booking.RateSchedule{WeekdayRate: moto.WeekdayRate, WeekendRate: moto.WeekendRate}
	return &entities.QuoteResponse{
		MotorcycleID: moto.ID,
		Period:       period,
		Rates:        rates,
		Quote:        booking.QuoteForPeriod(period, rates),
		TodayRate:    booking.SelectDailyRate(rates, now),
	}, nil
}

// CheckAvailability compares overlapping non-cancelled bookings against the
// motorcycle's stock for the requested period.
func (s *BookingService) CheckAvailability(motorcycleID int, pickup, dropoff time.Time) (*entities.AvailabilityResponse, error) {
	return s.checkAvailability(motorcycleID, pickup, dropoff, "")
}

// checkAvailability optionally leaves one booking out of the overlap count.
// A booking being moved must not count its own current window against the
// stock it already holds.
func (s *BookingService) checkAvailability(motorcycleID int, pickup, dropoff time.Time, excludeCode string) (*entities.AvailabilityResponse, error) {
	moto, err := s.MotoRepo.GetMotorcycleByID(motorcycleID)
	if err != nil {
		return nil, err
	}

	resp := &entities.AvailabilityResponse{
		MotorcycleID:       motorcycleID,
		RequestedStartTime: pickup,
		RequestedEndTime:   dropoff,
		TotalStock:         moto.TotalStock,
	}

	if !dropoff.After(pickup) {
		resp.Message = "dropoff must be after pickup"
		return resp, nil
	}

	var booked int
	if excludeCode != "" {
		booked, err = s.Repo.CountOverlappingExcluding(motorcycleID, pickup, dropoff, excludeCode)
	} else {
		booked, err = s.Repo.CountOverlapping(motorcycleID, pickup, dropoff)
	}
	if err != nil {
		log.Printf("Error counting overlapping bookings: %v", err)
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}

	resp.BookedUnits = booked
	resp.AvailableUnits = moto.TotalStock - booked
	if resp.AvailableUnits < 0 {
		resp.AvailableUnits = 0
	}
	resp.IsAvailable = resp.AvailableUnits > 0
	return resp, nil
}

// CreateBooking validates the period, quotes it, reserves stock optimistically
// and opens a Stripe Checkout session. The booking stays pending until the
// webhook confirms payment.
func (s *BookingService) CreateBooking(req *entities.BookingRequest) (*entities.StripeSessionResponse, error) {
	pd, err := time.Parse(dateLayout, req.PickupDate)
	if err != nil {
		return nil, fmt.Errorf("invalid pickup_date: %w", err)
	}
	dd, err := time.Parse(dateLayout, req.DropoffDate)
	if err != nil {
		return nil, fmt.Errorf("invalid dropoff_date: %w", err)
	}

	pickup, err := booking.CombineDateTime(pd, req.PickupTime)
	if err != nil {
		return nil, err
	}
	dropoff, err := booking.CombineDateTime(dd, req.DropoffTime)
	if err != nil {
		return nil, err
	}

	period := booking.DecomposePeriod(pickup, dropoff)
	// The calculator degrades invalid ranges to a zero breakdown; a zero
	// period here means bad input, never a free rental.
	if period.IsZero() {
		return nil, httperr.ErrBadRequest("dropoff must be after pickup")
	}

	moto, err := s.MotoRepo.GetMotorcycleByID(req.MotorcycleID)
	if err != nil {
		return nil, err
	}

	availability, err := s.CheckAvailability(req.MotorcycleID, pickup, dropoff)
	if err != nil {
		return nil, err
	}
	if !availability.IsAvailable {
		return nil, httperr.ErrConflict(fmt.Sprintf("motorcycle %d is not available for the requested period", req.MotorcycleID))
	}

	rates := booking.RateSchedule{WeekdayRate: moto.WeekdayRate, WeekendRate: moto.WeekendRate}
	total := booking.QuoteForPeriod(period, rates).Total

	if req.CouponCode != "" {
		coupon, err := s.CouponRepo.GetActiveCoupon(req.CouponCode)
		if err != nil {
			return nil, err
		}
		total -= DiscountAmount(total, coupon.PercentOff)
	}

	code := fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)
	b := &db.Booking{
		Code:            code,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		MotorcycleID:    req.MotorcycleID,
		PickupTime:      pickup.UTC(),
		DropoffTime:     dropoff.UTC(),
		Status:          statusPending,
		PaymentMethodID: req.PaymentMethodID,
		QuotedTotal:     total,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	sessionURL, err := s.handlePaymentIntent(req, b)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.CreateBooking(b); err != nil {
		log.Printf("Error creating booking in repository: %v", err)
		return nil, err
	}

	s.events.PublishBookingStatus(b.Code, statusPending)

	return &entities.StripeSessionResponse{
		Code:      code,
		URL:       sessionURL,
		SessionID: b.StripeSessionID,
	}, nil
}

func (s *BookingService) GetBookingByCode(code, email string) (*entities.BookingResponse, error) {
	b, err := s.Repo.GetBookingByCode(code, email)
	if err != nil {
		return nil, err
	}
	return s.toBookingResponse(b), nil
}

// UpdateBookingPeriod moves a booking to a new period after re-checking
// availability and re-quoting at the motorcycle's current rates.
func (s *BookingService) UpdateBookingPeriod(code string, pickup, dropoff time.Time) (*entities.BookingResponse, error) {
	b, err := s.Repo.GetBookingByCodeOnly(code)
	if err != nil {
		return nil, err
	}
	if b.Status != statusPending && b.Status != statusActive {
		return nil, httperr.ErrConflict(fmt.Sprintf("booking '%s' can no longer be modified", code))
	}

	period := booking.DecomposePeriod(pickup, dropoff)
	if period.IsZero() {
		return nil, httperr.ErrBadRequest("dropoff must be after pickup")
	}

	availability, err := s.checkAvailability(b.MotorcycleID, pickup, dropoff, b.Code)
	if err != nil {
		return nil, err
	}
	if !availability.IsAvailable {
		return nil, httperr.ErrConflict(fmt.Sprintf("motorcycle %d is not available for the requested period", b.MotorcycleID))
	}

	moto, err := s.MotoRepo.GetMotorcycleByID(b.MotorcycleID)
	if err != nil {
		return nil, err
	}
	rates := booking.RateSchedule{WeekdayRate: moto.WeekdayRate, WeekendRate: moto.WeekendRate}
	total := booking.QuoteForPeriod(period, rates).Total

	if err := s.Repo.UpdateBookingPeriod(code, pickup.UTC(), dropoff.UTC(), total); err != nil {
		return nil, err
	}

	b.PickupTime = pickup.UTC()
	b.DropoffTime = dropoff.UTC()
	b.QuotedTotal = total
	return s.toBookingResponse(b), nil
}

// CancelBooking refunds the payment and marks the booking cancelled. Bookings
// can only be cancelled more than 12 hours before pickup.
func (s *BookingService) CancelBooking(code string) error {
	b, err := s.Repo.GetBookingByCodeOnly(code)
	if err != nil {
		return err
	}
	if b.Status == statusCancelled {
		return httperr.ErrConflict(fmt.Sprintf("booking '%s' is already cancelled", code))
	}

	if b.PickupTime.Sub(time.Now().UTC()) < 12*time.Hour {
		log.Printf("Booking %s cancellation rejected: less than 12 hours before pickup", code)
		return httperr.ErrConflict("bookings can only be cancelled more than 12 hours before the pickup time")
	}

	if b.StripeSessionID != "" && b.PaymentStatus == paymentSucceeded {
		if err := s.stripeService.RefundPaymentBySessionID(b.StripeSessionID); err != nil {
			return err
		}
	}

	if _, err := s.Repo.CancelBooking(code); err != nil {
		return err
	}

	s.events.PublishBookingStatus(code, statusCancelled)

	resp := s.toBookingResponse(b)
	resp.Status = statusCancelled
	s.senderService.SendBookingSMS(*resp)
	s.senderService.SendBookingEmail(*resp)
	return nil
}

func (s *BookingService) GetBookingBySessionID(sessionID string) (*entities.BookingResponse, error) {
	b, err := s.Repo.GetBookingByStripeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	return s.toBookingResponse(b), nil
}

func (s *BookingService) UpdateStatusAndPaymentBySessionID(sessionID, status, paymentStatus string) error {
	if err := s.Repo.UpdateStatusAndPaymentBySessionID(sessionID, status, paymentStatus); err != nil {
		return err
	}
	if b, err := s.Repo.GetBookingByStripeSessionID(sessionID); err == nil {
		s.events.PublishBookingStatus(b.Code, status)
	}
	return nil
}

func (s *BookingService) handlePaymentIntent(req *entities.BookingRequest, b *db.Booking) (string, error) {
	var amount int64
	switch req.PaymentMethodID {
	case paymentOnline:
		amount = int64(b.QuotedTotal) * 100
	case paymentOnPickup:
		// 30% deposit up front, balance collected at the counter.
		amount = int64(float64(b.QuotedTotal) * 0.3 * 100)
	default:
		return "", httperr.ErrBadRequest(fmt.Sprintf("unsupported payment method %d", req.PaymentMethodID))
	}

	description := fmt.Sprintf("Torq Rides booking %s", b.Code)
	sessionURL, sessionID, err := s.stripeService.CreateCheckoutSession(amount, "inr", description, req.CustomerEmail)
	if err != nil {
		return "", err
	}

	b.StripeSessionID = sessionID
	b.PaymentStatus = statusPending
	return sessionURL, nil
}

func (s *BookingService) toBookingResponse(b *db.Booking) *entities.BookingResponse {
	resp := &entities.BookingResponse{
		Code:            b.Code,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		MotorcycleID:    b.MotorcycleID,
		PickupTime:      b.PickupTime,
		DropoffTime:     b.DropoffTime,
		Status:          b.Status,
		PaymentMethodID: b.PaymentMethodID,
		PaymentStatus:   b.PaymentStatus,
		QuotedTotal:     b.QuotedTotal,
		AmountPaid:      b.AmountPaid,
		Period:          booking.DecomposePeriod(b.PickupTime, b.DropoffTime),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if moto, err := s.MotoRepo.GetMotorcycleByID(b.MotorcycleID); err == nil {
		resp.MotorcycleName = moto.Make + " " + moto.Model
	}
	return resp
}
