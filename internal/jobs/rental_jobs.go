package jobs

import (
	"context"

	"rentcar-backend/internal/logger"
)

// ReportOverdueRentals logs every ongoing rental past its return date
// with the late fee accrued so far. Statuses are left untouched; a rental
// stays ongoing until the car is returned.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", jr.reportOverdueRentals)
}

func (jr *JobRunner) reportOverdueRentals(ctx context.Context) error {
	overdue, err := jr.services.Rental.ListOverdue(ctx)
	if err != nil {
		return err
	}

	var accrued int64
	for _, o := range overdue {
		accrued += o.AccruedPenalty
		logger.Warn("Rental overdue",
			"rental_id", o.Rental.ID,
			"invoice", o.Rental.Invoice,
			"customer_id", o.Rental.CustomerID,
			"car_id", o.Rental.CarID,
			"end_date", o.Rental.EndDate.String(),
			"days_late", o.DaysLate,
			"accrued_penalty", o.AccruedPenalty)
	}

	logger.Info("Overdue rental report", "count", len(overdue), "accrued_penalty", accrued)
	return nil
}
