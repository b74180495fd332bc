package service

import (
	"context"
	"io"
	"time"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) SetStatus(ctx context.Context, id int64, status domain.CustomerStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, c *domain.Car) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, c *domain.Car) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCarRepo) SetImageURL(ctx context.Context, id int64, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}
func (m *MockCarRepo) List(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) TransitionStatus(ctx context.Context, id int64, from, to domain.CarStatus) (int64, error) {
	args := m.Called(ctx, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByInvoice(ctx context.Context, invoice string) (*domain.Rental, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListInvoices(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockRentalRepo) Complete(ctx context.Context, id int64, s domain.ReturnSettlement) (int64, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, asOf domain.Date) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockAdminRepo
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

// MockStatsRepo
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveFile(ctx context.Context, key, contentType string, reader io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, reader)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(adminID int64, email, name string) (string, time.Time, error) {
	args := m.Called(adminID, email, name)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.AdminClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.AdminClaims), args.Error(1)
}

// fastPolicy keeps retry tests quick.
var fastPolicy = CallPolicy{Timeout: time.Second, ReadRetries: 2, RetryDelay: time.Millisecond}
