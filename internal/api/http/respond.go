package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/logger"
	"rentcar-backend/internal/security"
	"rentcar-backend/internal/service"

	"github.com/gorilla/mux"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code     string `json:"code"`
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	RentalID int64  `json:"rental_id,omitempty"`
	CarID    int64  `json:"car_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Error: message})
}

// writeError maps a service error onto an HTTP status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

func classify(err error) (int, errorBody) {
	var (
		validation *domain.ValidationError
		partial    *domain.PartialFailureError
		pre        *domain.PreconditionError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, errorBody{Code: "validation_error", Error: validation.Error(), Field: validation.Field}
	case errors.As(err, &partial):
		// Store details stay in the log; operators only need the ids.
		return http.StatusInternalServerError, errorBody{
			Code:     "partial_failure",
			Error:    partial.Op + " was only partially applied; car and rental status need reconciliation",
			RentalID: partial.RentalID,
			CarID:    partial.CarID,
		}
	case errors.As(err, &pre):
		if errors.Is(err, domain.ErrNotFound) {
			return http.StatusNotFound, errorBody{Code: "not_found", Error: pre.Reason}
		}
		return http.StatusConflict, errorBody{Code: "precondition_failed", Error: pre.Reason}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorBody{Code: "not_found", Error: "record not found"}
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, errorBody{Code: "duplicate", Error: "record already exists"}
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorBody{Code: "invalid_credentials", Error: err.Error()}
	case errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		return http.StatusUnauthorized, errorBody{Code: "unauthorized", Error: err.Error()}
	case domain.IsStore(err):
		return http.StatusServiceUnavailable, errorBody{Code: "store_unavailable", Error: "data store is unavailable, try again"}
	default:
		return http.StatusInternalServerError, errorBody{Code: "internal", Error: "internal server error"}
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("", "request body is required")
		}
		return domain.NewValidationError("", "malformed JSON body: "+err.Error())
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be
// empty. It reports whether a body was present.
func decodeOptionalJSON(r *http.Request, v any) (bool, error) {
	if r.Body == nil {
		return false, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return false, domain.NewValidationError("", "unreadable request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return false, domain.NewValidationError("", "malformed JSON body: "+err.Error())
	}
	return true, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter. A missing
// parameter yields the zero Date.
func queryDate(r *http.Request, name string) (domain.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, domain.NewValidationError(name, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}
