package jobs

import (
	"context"

	"rentcar-backend/internal/logger"
)

// LogDashboardSnapshot records the dashboard counters so the daily
// figures survive in the logs.
func (jr *JobRunner) LogDashboardSnapshot() {
	jr.runWithRecovery("LogDashboardSnapshot", jr.logDashboardSnapshot)
}

func (jr *JobRunner) logDashboardSnapshot(ctx context.Context) error {
	stats, err := jr.services.Dashboard.GetStats(ctx)
	if err != nil {
		return err
	}
	logger.Info("Dashboard snapshot",
		"total_cars", stats.TotalCars,
		"available_cars", stats.AvailableCars,
		"rented_cars", stats.RentedCars,
		"ongoing_rentals", stats.OngoingRentals,
		"completed_rentals", stats.CompletedRentals,
		"revenue", stats.Revenue,
		"penalty_revenue", stats.PenaltyRevenue)
	return nil
}
