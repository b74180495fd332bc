package http

import (
	"context"
	"io"

	"rentcar-backend/internal/billing"
	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

// MockDashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

// MockCustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, input service.CustomerInput) (*domain.Customer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, id int64, input service.CustomerInput) (*domain.Customer, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) SetCustomerStatus(ctx context.Context, id int64, status domain.CustomerStatus) (*domain.Customer, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerService) NextCustomerCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockCarService
type MockCarService struct {
	mock.Mock
}

func (m *MockCarService) CreateCar(ctx context.Context, input service.CarInput) (*domain.Car, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarService) UpdateCar(ctx context.Context, id int64, input service.CarInput) (*domain.Car, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarService) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarService) ListCars(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarService) UploadCarImage(ctx context.Context, id int64, image io.Reader) (*domain.Car, error) {
	args := m.Called(ctx, id, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) CreateRental(ctx context.Context, input service.CreateRentalInput) (*domain.Rental, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) CompleteRental(ctx context.Context, rentalID int64) (*service.Settlement, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Settlement), args.Error(1)
}
func (m *MockRentalService) CompleteRentalOn(ctx context.Context, rentalID int64, processedOn domain.Date) (*service.Settlement, error) {
	args := m.Called(ctx, rentalID, processedOn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Settlement), args.Error(1)
}
func (m *MockRentalService) PreviewReturn(ctx context.Context, rentalID int64, on domain.Date) (*service.Settlement, error) {
	args := m.Called(ctx, rentalID, on)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Settlement), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListOverdue(ctx context.Context) ([]service.OverdueRental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.OverdueRental), args.Error(1)
}
func (m *MockRentalService) NextInvoiceNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockRentalService) QuoteRental(start, end domain.Date, dailyRate int64) (billing.Quote, error) {
	args := m.Called(start, end, dailyRate)
	return args.Get(0).(billing.Quote), args.Error(1)
}
func (m *MockRentalService) LatePenalty(scheduled, on domain.Date) (billing.Penalty, error) {
	args := m.Called(scheduled, on)
	return args.Get(0).(billing.Penalty), args.Error(1)
}
func (m *MockRentalService) Today() domain.Date {
	args := m.Called()
	return args.Get(0).(domain.Date)
}
