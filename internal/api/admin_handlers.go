package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"torqrides/internal/db"
	"torqrides/internal/service"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Service   *service.AdminService
	MotoSvc   *service.MotorcycleService
	CouponSvc *service.CouponService
}

func NewAdminHandler(svc *service.AdminService, motoSvc *service.MotorcycleService, couponSvc *service.CouponService) *AdminHandler {
	return &AdminHandler{Service: svc, MotoSvc: motoSvc, CouponSvc: couponSvc}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	motorcycleID, _ := strconv.Atoi(q.Get("motorcycle_id"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	list, err := h.Service.ListBookings(q.Get("date"), q.Get("status"), motorcycleID, limit, offset)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateBookingStatus(id, req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Booking updated"})
}

func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteBookingByID(id); err != nil {
		http.Error(w, "Could not delete booking", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Booking deleted"})
}

func (h *AdminHandler) CreateMotorcycle(w http.ResponseWriter, r *http.Request) {
	var req MotorcycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	m := motorcycleFromRequest(req)
	if err := h.MotoSvc.CreateMotorcycle(m); err != nil {
		http.Error(w, "Could not create motorcycle", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"id": m.ID, "message": "Motorcycle created"})
}

func (h *AdminHandler) UpdateMotorcycle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req MotorcycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	m := motorcycleFromRequest(req)
	m.ID = id
	if err := h.MotoSvc.UpdateMotorcycle(m); err != nil {
		http.Error(w, "Could not update motorcycle", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Motorcycle updated"})
}

func (h *AdminHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req StockUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.MotoSvc.UpdateStock(id, req.TotalStock); err != nil {
		http.Error(w, "Could not update stock", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Stock updated"})
}

func (h *AdminHandler) DeleteMotorcycle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.MotoSvc.DeleteMotorcycle(id); err != nil {
		http.Error(w, "Could not delete motorcycle", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Motorcycle deleted"})
}

func (h *AdminHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.CouponSvc.ListCoupons()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(coupons)
}

func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		http.Error(w, "Invalid expires_at, expected RFC 3339", http.StatusBadRequest)
		return
	}
	coupon, err := h.CouponSvc.CreateCoupon(req.Code, req.PercentOff, expiresAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(coupon)
}

func (h *AdminHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.CouponSvc.DeactivateCoupon(code); err != nil {
		http.Error(w, "Coupon not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Coupon deactivated"})
}

func motorcycleFromRequest(req MotorcycleRequest) *db.Motorcycle {
	return &db.Motorcycle{
		Make:        req.Make,
		Model:       req.Model,
		Category:    req.Category,
		WeekdayRate: req.WeekdayRate,
		WeekendRate: req.WeekendRate,
		TotalStock:  req.TotalStock,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
}
