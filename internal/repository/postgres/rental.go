package postgres

import (
	"context"
	"database/sql"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, invoice, customer_id, car_id, start_date, end_date, duration_days, daily_rate_snapshot,
	total_charge, status, returned_on, days_late, penalty, total_due, created_at`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (invoice, customer_id, car_id, start_date, end_date, duration_days, daily_rate_snapshot, total_charge, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, rt.Invoice, rt.CustomerID, rt.CarID, rt.StartDate, rt.EndDate,
		rt.DurationDays, rt.DailyRateSnapshot, rt.TotalCharge, rt.Status).Scan(&rt.ID, &rt.CreatedAt)
	return mapError("create rental", err)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("get rental", err)
	}
	return rt, nil
}

func (r *rentalRepository) GetByInvoice(ctx context.Context, invoice string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE invoice = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, invoice))
	if err != nil {
		return nil, mapError("get rental by invoice", err)
	}
	return rt, nil
}

func (r *rentalRepository) List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	return r.query(ctx, "list rentals", query, args...)
}

func (r *rentalRepository) ListInvoices(ctx context.Context, prefix string) ([]string, error) {
	return listStrings(ctx, r.db, "list invoices",
		`SELECT invoice FROM rentals WHERE invoice LIKE $1`, prefix+"%")
}

func (r *rentalRepository) Complete(ctx context.Context, id int64, s domain.ReturnSettlement) (int64, error) {
	query := `UPDATE rentals SET status = $1, returned_on = $2, days_late = $3, penalty = $4, total_due = $5
	          WHERE id = $6 AND status = $7`
	res, err := r.db.ExecContext(ctx, query, domain.RentalStatusCompleted, s.ReturnedOn, s.DaysLate, s.Penalty, s.TotalDue,
		id, domain.RentalStatusOngoing)
	if err != nil {
		return 0, mapError("complete rental", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError("complete rental", err)
	}
	return n, nil
}

func (r *rentalRepository) ListOverdue(ctx context.Context, asOf domain.Date) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 AND end_date < $2 ORDER BY end_date, id`
	return r.query(ctx, "list overdue rentals", query, domain.RentalStatusOngoing, asOf)
}

func (r *rentalRepository) query(ctx context.Context, op, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		rentals = append(rentals, *rt)
	}
	return rentals, mapError(op, rows.Err())
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var returned domain.Date
	err := row.Scan(&rt.ID, &rt.Invoice, &rt.CustomerID, &rt.CarID, &rt.StartDate, &rt.EndDate, &rt.DurationDays,
		&rt.DailyRateSnapshot, &rt.TotalCharge, &rt.Status, &returned, &rt.DaysLate, &rt.Penalty, &rt.TotalDue, &rt.CreatedAt)
	if err != nil {
		return nil, err
	}
	if !returned.IsZero() {
		rt.ReturnedOn = &returned
	}
	return rt, nil
}
