package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"torqrides/internal/service"

	"github.com/gorilla/mux"
)

type CartHandler struct {
	Service *service.CartService
}

func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{Service: svc}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	cart, err := h.Service.GetCart(key)
	if err != nil {
		http.Error(w, "Could not load cart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	pickup, dropoff, err := parsePeriod(req.PickupDate, req.PickupTime, req.DropoffDate, req.DropoffTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cart, err := h.Service.AddItem(key, req.MotorcycleID, pickup, dropoff, req.Quantity)
	if err != nil {
		writeServiceError(w, err, http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	itemID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	cart, err := h.Service.RemoveItem(key, itemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart)
}

func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req ApplyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	cart, err := h.Service.ApplyCoupon(key, req.Code)
	if err != nil {
		http.Error(w, "Invalid or expired coupon", http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart)
}

func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	cart, err := h.Service.RemoveCoupon(key)
	if err != nil {
		http.Error(w, "Could not remove coupon", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cart)
}
