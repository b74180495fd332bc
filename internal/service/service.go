package service

import (
	"context"
	"io"
	"time"

	"rentcar-backend/internal/billing"
	"rentcar-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type DashboardService interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, input CustomerInput) (*domain.Customer, error)
	SetCustomerStatus(ctx context.Context, id int64, status domain.CustomerStatus) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	NextCustomerCode(ctx context.Context) (string, error)
}

type CarService interface {
	CreateCar(ctx context.Context, input CarInput) (*domain.Car, error)
	UpdateCar(ctx context.Context, id int64, input CarInput) (*domain.Car, error)
	GetCar(ctx context.Context, id int64) (*domain.Car, error)
	ListCars(ctx context.Context, status domain.CarStatus) ([]domain.Car, error)
	UploadCarImage(ctx context.Context, id int64, image io.Reader) (*domain.Car, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error)
	// CompleteRental settles the return as of today in the business
	// timezone.
	CompleteRental(ctx context.Context, rentalID int64) (*Settlement, error)
	CompleteRentalOn(ctx context.Context, rentalID int64, processedOn domain.Date) (*Settlement, error)
	// PreviewReturn computes the settlement without writing anything.
	PreviewReturn(ctx context.Context, rentalID int64, on domain.Date) (*Settlement, error)
	GetRental(ctx context.Context, id int64) (*domain.Rental, error)
	ListRentals(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListOverdue(ctx context.Context) ([]OverdueRental, error)
	NextInvoiceNumber(ctx context.Context) (string, error)
	QuoteRental(start, end domain.Date, dailyRate int64) (billing.Quote, error)
	LatePenalty(scheduled, on domain.Date) (billing.Penalty, error)
	Today() domain.Date
}

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     *domain.Admin `json:"admin"`
}

type CustomerInput struct {
	NIK   string `json:"nik"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type CarInput struct {
	Name         string `json:"name"`
	PlateNumber  string `json:"plate"`
	Seats        int    `json:"seats"`
	Transmission string `json:"transmission"`
	Fuel         string `json:"fuel"`
	DailyRate    int64  `json:"daily_rate"`
}

type CreateRentalInput struct {
	CustomerID int64       `json:"customer_id"`
	CarID      int64       `json:"car_id"`
	StartDate  domain.Date `json:"start_date"`
	EndDate    domain.Date `json:"end_date"`
}

// Settlement is what the return screen shows after a car comes back.
type Settlement struct {
	Rental   *domain.Rental `json:"rental"`
	DaysLate int            `json:"days_late"`
	Penalty  int64          `json:"penalty"`
	TotalDue int64          `json:"total_due"`
}

// OverdueRental is an ongoing rental past its scheduled return date.
type OverdueRental struct {
	Rental         domain.Rental `json:"rental"`
	DaysLate       int           `json:"days_late"`
	AccruedPenalty int64         `json:"accrued_penalty"`
}
