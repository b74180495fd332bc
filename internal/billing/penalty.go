package billing

import (
	"math"

	"rentcar-backend/internal/domain"
)

// DefaultLateFeePerDay is the flat late fee in rupiah charged for each day a
// car comes back after its scheduled return date.
const DefaultLateFeePerDay int64 = 50000

type Penalty struct {
	DaysLate int   `json:"days_late"`
	Amount   int64 `json:"amount"`
}

// LatePenalty computes the late fee for a return processed on processedOn.
// Early and on-time returns cost nothing. There is no upper cap; a fee that
// does not fit in int64 is rejected as a ValidationError.
func LatePenalty(scheduled, processedOn domain.Date, feePerDay int64) (Penalty, error) {
	days := scheduled.DaysUntil(processedOn)
	if days <= 0 {
		return Penalty{}, nil
	}
	amount, err := multiply("returned_on", days, feePerDay)
	if err != nil {
		return Penalty{}, err
	}
	return Penalty{DaysLate: days, Amount: amount}, nil
}

// Settle builds the settlement for returning rental on processedOn.
func Settle(rental *domain.Rental, processedOn domain.Date, feePerDay int64) (domain.ReturnSettlement, error) {
	p, err := LatePenalty(rental.EndDate, processedOn, feePerDay)
	if err != nil {
		return domain.ReturnSettlement{}, err
	}
	if p.Amount > math.MaxInt64-rental.TotalCharge {
		return domain.ReturnSettlement{}, domain.NewValidationError("returned_on", "total due is out of range")
	}
	return domain.ReturnSettlement{
		ReturnedOn: processedOn,
		DaysLate:   p.DaysLate,
		Penalty:    p.Amount,
		TotalDue:   rental.TotalCharge + p.Amount,
	}, nil
}

// multiply returns days*perDay for non-negative operands, or a
// ValidationError on field when the product overflows.
func multiply(field string, days int, perDay int64) (int64, error) {
	if days > 0 && perDay > math.MaxInt64/int64(days) {
		return 0, domain.NewValidationError(field, "amount is out of range")
	}
	return int64(days) * perDay, nil
}
