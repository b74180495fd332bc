package postgres

import (
	"context"
	"database/sql"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	s := &domain.DashboardStats{}
	carQuery := `SELECT count(*),
	                    count(*) FILTER (WHERE status = 'available'),
	                    count(*) FILTER (WHERE status = 'rented')
	             FROM cars`
	if err := r.db.QueryRowContext(ctx, carQuery).Scan(&s.TotalCars, &s.AvailableCars, &s.RentedCars); err != nil {
		return nil, mapError("car stats", err)
	}

	rentalQuery := `SELECT count(*) FILTER (WHERE status = 'ongoing'),
	                       count(*) FILTER (WHERE status = 'completed'),
	                       COALESCE(sum(total_charge), 0),
	                       COALESCE(sum(penalty) FILTER (WHERE status = 'completed'), 0)
	                FROM rentals`
	err := r.db.QueryRowContext(ctx, rentalQuery).Scan(&s.OngoingRentals, &s.CompletedRentals, &s.Revenue, &s.PenaltyRevenue)
	if err != nil {
		return nil, mapError("rental stats", err)
	}
	return s, nil
}
