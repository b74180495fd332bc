package http

import (
	"errors"
	"net/http"
	"slices"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/service"
)

func (h *Handler) ListCars(w http.ResponseWriter, r *http.Request) {
	status := domain.CarStatus(r.URL.Query().Get("status"))
	cars, err := h.svc.Cars.ListCars(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *Handler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var input service.CarInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.svc.Cars.CreateCar(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *Handler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.svc.Cars.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *Handler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var input service.CarInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.svc.Cars.UpdateCar(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

// UploadCarImage accepts a multipart form with the photo in the "image"
// field.
func (h *Handler) UploadCarImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "file_too_large", "image exceeds the upload limit")
			return
		}
		writeError(w, r, domain.NewValidationError("image", "expected a multipart form"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, domain.NewValidationError("image", "is required"))
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); !slices.Contains(h.opts.AllowedImageTypes, ct) {
		writeError(w, r, domain.NewValidationError("image", "content type "+ct+" is not allowed"))
		return
	}

	car, err := h.svc.Cars.UploadCarImage(r.Context(), id, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}
