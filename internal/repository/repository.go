package repository

import (
	"context"

	"rentcar-backend/internal/domain"
)

// Implementations return domain.ErrNotFound for missing rows and
// domain.ErrDuplicate for unique-key violations, both wrapped with %w.

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	// Update writes name, NIK and phone. Code and status are untouched.
	Update(ctx context.Context, customer *domain.Customer) error
	SetStatus(ctx context.Context, id int64, status domain.CustomerStatus) error
	List(ctx context.Context) ([]domain.Customer, error)
	ListCodes(ctx context.Context, prefix string) ([]string, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	// Update writes the descriptive fields and daily rate. Status is
	// never written through this path.
	Update(ctx context.Context, car *domain.Car) error
	SetImageURL(ctx context.Context, id int64, url string) error
	// List returns all cars when status is empty.
	List(ctx context.Context, status domain.CarStatus) ([]domain.Car, error)
	// TransitionStatus moves the car from one status to another only if it
	// currently has the from status, and reports the affected row count.
	TransitionStatus(ctx context.Context, id int64, from, to domain.CarStatus) (int64, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	GetByInvoice(ctx context.Context, invoice string) (*domain.Rental, error)
	// List returns all rentals, newest first, when status is empty.
	List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListInvoices(ctx context.Context, prefix string) ([]string, error)
	// Complete moves an ongoing rental to completed and persists the
	// settlement. It reports the affected row count.
	Complete(ctx context.Context, id int64, settlement domain.ReturnSettlement) (int64, error)
	// ListOverdue returns ongoing rentals whose end date is before asOf.
	ListOverdue(ctx context.Context, asOf domain.Date) ([]domain.Rental, error)
}

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type StatsRepository interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// Store groups every repository a backend provides.
type Store struct {
	CustomerRepository
	CarRepository
	RentalRepository
	AdminRepository
	StatsRepository
}
