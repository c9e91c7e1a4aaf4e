package service

import (
	"fmt"

	"torqrides/internal/booking"
	"torqrides/internal/entities"
	"torqrides/internal/repository"
)

type AdminService struct {
	BookingRepo *repository.BookingRepository
	JobRepo     *repository.JobRepository
	MotoRepo    *repository.MotorcycleRepository
}

func NewAdminService(bookingRepo *repository.BookingRepository, jobRepo *repository.JobRepository, motoRepo *repository.MotorcycleRepository) *AdminService {
	return &AdminService{BookingRepo: bookingRepo, JobRepo: jobRepo, MotoRepo: motoRepo}
}

func (s *AdminService) ListBookings(date, status string, motorcycleID, limit, offset int) (*entities.BookingsList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	bookings, total, err := s.BookingRepo.ListBookings(date, status, motorcycleID, limit, offset)
	if err != nil {
		return nil, err
	}

	list := &entities.BookingsList{Total: total, Limit: limit, Offset: offset, Bookings: []entities.BookingResponse{}}
	for _, b := range bookings {
		resp := entities.BookingResponse{
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
		list.Bookings = append(list.Bookings, resp)
	}
	return list, nil
}

func (s *AdminService) UpdateBookingStatus(id int, status string) error {
	switch status {
	case statusPending, statusActive, statusCompleted, statusCancelled:
	default:
		return fmt.Errorf("unknown booking status '%s'", status)
	}
	return s.JobRepo.UpdateBookingStatuses([]int{id}, status)
}

func (s *AdminService) DeleteBookingByID(id int) error {
	return s.BookingRepo.DeleteBookingByID(id)
}
