package http

import (
	"net/http"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/service"
)

func (h *Handler) ListRentals(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	rentals, err := h.svc.Rentals.ListRentals(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *Handler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var input service.CreateRentalInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.svc.Rentals.CreateRental(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *Handler) NextInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.svc.Rentals.NextInvoiceNumber(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"invoice": invoice})
}

func (h *Handler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.svc.Rentals.ListOverdue(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overdue)
}

func (h *Handler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.svc.Rentals.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// PreviewReturn shows what completing the rental would charge, as of
// the "on" query date or today.
func (h *Handler) PreviewReturn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	on, err := queryDate(r, "on")
	if err != nil {
		writeError(w, r, err)
		return
	}
	settlement, err := h.svc.Rentals.PreviewReturn(r.Context(), id, on)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}

type completeRequest struct {
	ReturnedOn domain.Date `json:"returned_on"`
}

// CompleteRental processes a return. Without a returned_on date the
// return is processed as of today in the business timezone.
func (h *Handler) CompleteRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req completeRequest
	if _, err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var settlement *service.Settlement
	if req.ReturnedOn.IsZero() {
		settlement, err = h.svc.Rentals.CompleteRental(r.Context(), id)
	} else {
		settlement, err = h.svc.Rentals.CompleteRentalOn(r.Context(), id, req.ReturnedOn)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}
