package supabase

import (
	"context"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

type rentalRepository struct {
	client *supa.Client
}

func NewRentalRepository(client *supa.Client) repository.RentalRepository {
	return &rentalRepository{client: client}
}

type rentalInsert struct {
	Invoice           string              `json:"invoice"`
	CustomerID        int64               `json:"customer_id"`
	CarID             int64               `json:"car_id"`
	StartDate         domain.Date         `json:"start_date"`
	EndDate           domain.Date         `json:"end_date"`
	DurationDays      int                 `json:"duration_days"`
	DailyRateSnapshot int64               `json:"daily_rate_snapshot"`
	TotalCharge       int64               `json:"total_charge"`
	Status            domain.RentalStatus `json:"status"`
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	row := rentalInsert{
		Invoice:           rt.Invoice,
		CustomerID:        rt.CustomerID,
		CarID:             rt.CarID,
		StartDate:         rt.StartDate,
		EndDate:           rt.EndDate,
		DurationDays:      rt.DurationDays,
		DailyRateSnapshot: rt.DailyRateSnapshot,
		TotalCharge:       rt.TotalCharge,
		Status:            rt.Status,
	}
	data, err := execute(ctx, r.client.From(tableRentals).
		Insert(row, false, "", returnRepresentation, ""))
	if err != nil {
		return mapError("create rental", err)
	}
	var created []domain.Rental
	if err := decode("create rental", data, &created); err != nil {
		return err
	}
	if len(created) == 0 {
		return notFound("create rental")
	}
	rt.ID = created[0].ID
	rt.CreatedAt = created[0].CreatedAt
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	rentals, err := r.query(ctx, "get rental", r.client.From(tableRentals).
		Select("*", "", false).
		Eq("id", idString(id)))
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, notFound("get rental")
	}
	return &rentals[0], nil
}

func (r *rentalRepository) GetByInvoice(ctx context.Context, invoice string) (*domain.Rental, error) {
	rentals, err := r.query(ctx, "get rental by invoice", r.client.From(tableRentals).
		Select("*", "", false).
		Eq("invoice", invoice))
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, notFound("get rental by invoice")
	}
	return &rentals[0], nil
}

func (r *rentalRepository) List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := r.client.From(tableRentals).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if status != "" {
		query = query.Eq("status", string(status))
	}
	return r.query(ctx, "list rentals", query)
}

func (r *rentalRepository) ListInvoices(ctx context.Context, prefix string) ([]string, error) {
	data, err := execute(ctx, r.client.From(tableRentals).
		Select("invoice", "", false).
		Like("invoice", prefix+"*"))
	if err != nil {
		return nil, mapError("list invoices", err)
	}
	var rows []struct {
		Invoice string `json:"invoice"`
	}
	if err := decode("list invoices", data, &rows); err != nil {
		return nil, err
	}
	invoices := make([]string, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, row.Invoice)
	}
	return invoices, nil
}

func (r *rentalRepository) Complete(ctx context.Context, id int64, s domain.ReturnSettlement) (int64, error) {
	changes := map[string]interface{}{
		"status":      domain.RentalStatusCompleted,
		"returned_on": s.ReturnedOn,
		"days_late":   s.DaysLate,
		"penalty":     s.Penalty,
		"total_due":   s.TotalDue,
	}
	data, err := execute(ctx, r.client.From(tableRentals).
		Update(changes, returnRepresentation, "").
		Eq("id", idString(id)).
		Eq("status", string(domain.RentalStatusOngoing)))
	if err != nil {
		return 0, mapError("complete rental", err)
	}
	return affected("complete rental", data)
}

func (r *rentalRepository) ListOverdue(ctx context.Context, asOf domain.Date) ([]domain.Rental, error) {
	return r.query(ctx, "list overdue rentals", r.client.From(tableRentals).
		Select("*", "", false).
		Eq("status", string(domain.RentalStatusOngoing)).
		Lt("end_date", asOf.String()).
		Order("end_date", &postgrest.OrderOpts{Ascending: true}))
}

func (r *rentalRepository) query(ctx context.Context, op string, q executor) ([]domain.Rental, error) {
	data, err := execute(ctx, q)
	if err != nil {
		return nil, mapError(op, err)
	}
	var rentals []domain.Rental
	if err := decode(op, data, &rentals); err != nil {
		return nil, err
	}
	return rentals, nil
}
