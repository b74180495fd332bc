package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// NewStore wires every PostgreSQL repository over one connection pool.
func NewStore(db *sql.DB) *repository.Store {
	return &repository.Store{
		CustomerRepository: NewCustomerRepository(db),
		CarRepository:      NewCarRepository(db),
		RentalRepository:   NewRentalRepository(db),
		AdminRepository:    NewAdminRepository(db),
		StatsRepository:    NewStatsRepository(db),
	}
}

// mapError translates driver errors into the repository sentinels.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%s: %s: %w", op, pqErr.Constraint, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// requireRow turns a zero-row update into ErrNotFound.
func requireRow(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
