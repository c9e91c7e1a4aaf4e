package service

import (
	"fmt"
	"log"
	"time"

	"torqrides/internal/repository"
)

type JobService struct {
	Repo       *repository.JobRepository
	CartRepo   *repository.CartRepository
	CouponRepo *repository.CouponRepository
}

func NewJobService(repo *repository.JobRepository, cartRepo *repository.CartRepository, couponRepo *repository.CouponRepository) *JobService {
	return &JobService{Repo: repo, CartRepo: cartRepo, CouponRepo: couponRepo}
}

// CompleteFinishedBookings finds active bookings past their dropoff time and
// marks them completed.
func (s *JobService) CompleteFinishedBookings() error {
	log.Println("Cron Job: Checking for bookings to mark as 'completed'...")

	bookingIDs, err := s.Repo.GetActiveBookingIDsPastDropoff()
	if err != nil {
		return fmt.Errorf("cron job: failed to get active bookings past dropoff time: %w", err)
	}

	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No active bookings found past their dropoff time.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'. IDs: %v", len(bookingIDs), bookingIDs)

	if err := s.Repo.UpdateBookingStatuses(bookingIDs, statusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d bookings to 'completed'.", len(bookingIDs))
	return nil
}

// DeleteAbandonedCheckouts deletes pending bookings created before the given
// time. These never completed payment.
func (s *JobService) DeleteAbandonedCheckouts(before time.Time) (int64, error) {
	return s.Repo.DeletePendingBookingsOlderThan(before)
}

// DeleteStaleCarts removes carts untouched since the given time.
func (s *JobService) DeleteStaleCarts(before time.Time) (int64, error) {
	return s.CartRepo.DeleteCartsUpdatedBefore(before)
}

// ExpireCoupons deactivates coupons whose expiry has passed.
func (s *JobService) ExpireCoupons() error {
	n, err := s.CouponRepo.DeactivateExpiredCoupons()
	if err != nil {
		return fmt.Errorf("cron job: failed to deactivate expired coupons: %w", err)
	}
	if n > 0 {
		log.Printf("Cron Job: Deactivated %d expired coupons.", n)
	}
	return nil
}
