package http

import (
	"net/http"

	"rentcar-backend/internal/domain"
)

type quoteRequest struct {
	StartDate domain.Date `json:"start_date"`
	EndDate   domain.Date `json:"end_date"`
	DailyRate int64       `json:"daily_rate"`
	CarID     int64       `json:"car_id"`
}

// Quote prices a prospective rental. The rate comes from the request or,
// when omitted, from the car's current daily rate.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.DailyRate == 0 && req.CarID > 0 {
		car, err := h.svc.Cars.GetCar(r.Context(), req.CarID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		req.DailyRate = car.DailyRate
	}
	quote, err := h.svc.Rentals.QuoteRental(req.StartDate, req.EndDate, req.DailyRate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) Penalty(w http.ResponseWriter, r *http.Request) {
	scheduled, err := queryDate(r, "end_date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if scheduled.IsZero() {
		writeError(w, r, domain.NewValidationError("end_date", "is required"))
		return
	}
	on, err := queryDate(r, "on")
	if err != nil {
		writeError(w, r, err)
		return
	}
	penalty, err := h.svc.Rentals.LatePenalty(scheduled, on)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, penalty)
}
