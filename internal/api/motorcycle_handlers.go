package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"torqrides/internal/service"

	"github.com/gorilla/mux"
)

type MotorcycleHandler struct {
	Service *service.MotorcycleService
}

func NewMotorcycleHandler(svc *service.MotorcycleService) *MotorcycleHandler {
	return &MotorcycleHandler{Service: svc}
}

func (h *MotorcycleHandler) ListMotorcycles(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	motorcycles, err := h.Service.ListMotorcycles(category, time.Now())
	if err != nil {
		http.Error(w, "Could not list motorcycles", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(motorcycles)
}

func (h *MotorcycleHandler) GetMotorcycle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	moto, err := h.Service.GetMotorcycle(id, time.Now())
	if err != nil {
		http.Error(w, "Motorcycle not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(moto)
}
