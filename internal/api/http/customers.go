package http

import (
	"net/http"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/service"
)

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.Customers.ListCustomers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var input service.CustomerInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.svc.Customers.CreateCustomer(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *Handler) NextCustomerCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.svc.Customers.NextCustomerCode(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.svc.Customers.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var input service.CustomerInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.svc.Customers.UpdateCustomer(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

type statusRequest struct {
	Status domain.CustomerStatus `json:"status"`
}

func (h *Handler) SetCustomerStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.svc.Customers.SetCustomerStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}
