package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"torqrides/internal/booking"
	"torqrides/internal/entities"
	"torqrides/internal/service"

	"github.com/gorilla/mux"
)

type UserBookingHandler struct {
	Service *service.BookingService
}

func NewUserBookingHandler(svc *service.BookingService) *UserBookingHandler {
	return &UserBookingHandler{Service: svc}
}

// parsePeriod turns the date + clock string pairs used throughout the public
// API into a pair of instants.
func parsePeriod(pickupDate, pickupTime, dropoffDate, dropoffTime string) (time.Time, time.Time, error) {
	pd, err := time.Parse("2006-01-02", pickupDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pickup_date: %w", err)
	}
	dd, err := time.Parse("2006-01-02", dropoffDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid dropoff_date: %w", err)
	}
	pickup, err := booking.CombineDateTime(pd, pickupTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	dropoff, err := booking.CombineDateTime(dd, dropoffTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return pickup, dropoff, nil
}

func (h *UserBookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	quote, err := h.Service.QuotePeriod(req.MotorcycleID, req.PickupDate, req.PickupTime, req.DropoffDate, req.DropoffTime, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

func (h *UserBookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	pickup, dropoff, err := parsePeriod(req.PickupDate, req.PickupTime, req.DropoffDate, req.DropoffTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	availability, err := h.Service.CheckAvailability(req.MotorcycleID, pickup, dropoff)
	if err != nil {
		http.Error(w, "Error checking availability", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(availability)
}

func (h *UserBookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	session, err := h.Service.CreateBooking(&req)
	if err != nil {
		writeServiceError(w, err, http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

func (h *UserBookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email required", http.StatusBadRequest)
		return
	}
	res, err := h.Service.GetBookingByCode(code, email)
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *UserBookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	pickup, dropoff, err := parsePeriod(req.PickupDate, req.PickupTime, req.DropoffDate, req.DropoffTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := h.Service.UpdateBookingPeriod(code, pickup, dropoff)
	if err != nil {
		writeServiceError(w, err, http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *UserBookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Service.CancelBooking(code); err != nil {
		writeServiceError(w, err, http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Booking cancelled"})
}
