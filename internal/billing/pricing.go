package billing

import (
	"rentcar-backend/internal/domain"
)

// Quote is the priced duration of a rental.
type Quote struct {
	DurationDays int   `json:"duration_days"`
	DailyRate    int64 `json:"daily_rate"`
	TotalCharge  int64 `json:"total_charge"`
}

// RentalDays returns the billable days between start and the scheduled
// return date. Any range shorter than a day, including an inverted one, is
// billed as one day.
func RentalDays(start, end domain.Date) int {
	days := start.DaysUntil(end)
	if days < 1 {
		return 1
	}
	return days
}

// PriceRental computes duration and total for a date range at a daily rate
// in rupiah. It does not look at the wall clock.
func PriceRental(start, end domain.Date, dailyRate int64) (Quote, error) {
	if start.IsZero() {
		return Quote{}, domain.NewValidationError("start_date", "is required")
	}
	if end.IsZero() {
		return Quote{}, domain.NewValidationError("end_date", "is required")
	}
	if dailyRate <= 0 {
		return Quote{}, domain.NewValidationError("daily_rate", "must be greater than zero")
	}

	days := RentalDays(start, end)
	total, err := multiply("end_date", days, dailyRate)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		DurationDays: days,
		DailyRate:    dailyRate,
		TotalCharge:  total,
	}, nil
}

// ValidateRange checks a requested rental range. The scheduled return must
// be strictly after the start unless sameDayAllowed is set, in which case a
// same-day rental (billed as one day) is accepted.
func ValidateRange(start, end domain.Date, sameDayAllowed bool) error {
	if end.Before(start) {
		return domain.NewValidationError("end_date", "must not be before start_date")
	}
	if !sameDayAllowed && !end.After(start) {
		return domain.NewValidationError("end_date", "must be after start_date")
	}
	return nil
}
