package countdown

import (
	"encoding/json"
	"net/http"
	"time"
)

type Handler struct {
	service *Service
}

type CountdownDTO struct {
	Target   time.Time `json:"target"`
	Arrived  bool      `json:"arrived"`
	TimeLeft *TimeLeft `json:"timeLeft,omitempty"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetCountdown(w http.ResponseWriter, r *http.Request) {
	left, arrived := h.service.TimeLeft()
	dto := CountdownDTO{
		Target:  h.service.Target(),
		Arrived: arrived,
	}
	if !arrived {
		dto.TimeLeft = &left
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
