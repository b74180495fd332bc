package supabase

import (
	"context"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"

	supa "github.com/supabase-community/supabase-go"
)

type statsRepository struct {
	client *supa.Client
}

func NewStatsRepository(client *supa.Client) repository.StatsRepository {
	return &statsRepository{client: client}
}

// DashboardStats aggregates client side; PostgREST exposes no
// aggregate functions by default.
func (r *statsRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	data, err := execute(ctx, r.client.From(tableCars).Select("status", "", false))
	if err != nil {
		return nil, mapError("car stats", err)
	}
	var cars []struct {
		Status domain.CarStatus `json:"status"`
	}
	if err := decode("car stats", data, &cars); err != nil {
		return nil, err
	}

	data, err = execute(ctx, r.client.From(tableRentals).Select("status,total_charge,penalty", "", false))
	if err != nil {
		return nil, mapError("rental stats", err)
	}
	var rentals []struct {
		Status      domain.RentalStatus `json:"status"`
		TotalCharge int64               `json:"total_charge"`
		Penalty     int64               `json:"penalty"`
	}
	if err := decode("rental stats", data, &rentals); err != nil {
		return nil, err
	}

	s := &domain.DashboardStats{TotalCars: len(cars)}
	for _, c := range cars {
		switch c.Status {
		case domain.CarStatusAvailable:
			s.AvailableCars++
		case domain.CarStatusRented:
			s.RentedCars++
		}
	}
	for _, rt := range rentals {
		s.Revenue += rt.TotalCharge
		switch rt.Status {
		case domain.RentalStatusOngoing:
			s.OngoingRentals++
		case domain.RentalStatusCompleted:
			s.CompletedRentals++
			s.PenaltyRevenue += rt.Penalty
		}
	}
	return s, nil
}
