package service

import (
	"context"
	"errors"
	"strings"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/logger"
	"rentcar-backend/internal/repository"
	"rentcar-backend/internal/sequence"
)

// maxCodeAttempts bounds how often a colliding customer code is
// regenerated before giving up.
const maxCodeAttempts = 3

type customerService struct {
	customerRepo repository.CustomerRepository
	policy       CallPolicy
}

func NewCustomerService(customerRepo repository.CustomerRepository, policy CallPolicy) CustomerService {
	return &customerService{customerRepo: customerRepo, policy: policy}
}

func (input CustomerInput) normalize() (CustomerInput, error) {
	input.NIK = strings.TrimSpace(input.NIK)
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	switch {
	case input.NIK == "":
		return input, domain.NewValidationError("nik", "is required")
	case input.Name == "":
		return input, domain.NewValidationError("name", "is required")
	case input.Phone == "":
		return input, domain.NewValidationError("phone", "is required")
	}
	return input, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	logger.EnterMethod("customerService.CreateCustomer")

	input, err := input.normalize()
	if err != nil {
		logger.ExitMethodWithError("customerService.CreateCustomer", err)
		return nil, err
	}

	customer := &domain.Customer{
		NIK:    input.NIK,
		Name:   input.Name,
		Phone:  input.Phone,
		Status: domain.CustomerStatusActive,
	}
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		customer.Code, err = s.NextCustomerCode(ctx)
		if err != nil {
			break
		}
		err = exec(ctx, s.policy, "create customer", func(ctx context.Context) error {
			return s.customerRepo.Create(ctx, customer)
		})
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
		logger.Warn("Customer code collision, regenerating", "code", customer.Code, "attempt", attempt)
	}
	if err != nil {
		logger.ExitMethodWithError("customerService.CreateCustomer", err)
		return nil, err
	}

	logger.ExitMethod("customerService.CreateCustomer", "customerID", customer.ID, "code", customer.Code)
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id int64, input CustomerInput) (*domain.Customer, error) {
	logger.EnterMethod("customerService.UpdateCustomer", "customerID", id)

	input, err := input.normalize()
	if err != nil {
		logger.ExitMethodWithError("customerService.UpdateCustomer", err)
		return nil, err
	}
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("customerService.UpdateCustomer", err)
		return nil, err
	}

	customer.NIK = input.NIK
	customer.Name = input.Name
	customer.Phone = input.Phone
	if err := exec(ctx, s.policy, "update customer", func(ctx context.Context) error {
		return s.customerRepo.Update(ctx, customer)
	}); err != nil {
		logger.ExitMethodWithError("customerService.UpdateCustomer", err)
		return nil, err
	}

	logger.ExitMethod("customerService.UpdateCustomer", "customerID", id)
	return customer, nil
}

func (s *customerService) SetCustomerStatus(ctx context.Context, id int64, status domain.CustomerStatus) (*domain.Customer, error) {
	logger.EnterMethod("customerService.SetCustomerStatus", "customerID", id, "status", status)

	if !status.Valid() {
		err := domain.NewValidationError("status", "must be active or inactive")
		logger.ExitMethodWithError("customerService.SetCustomerStatus", err)
		return nil, err
	}
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("customerService.SetCustomerStatus", err)
		return nil, err
	}
	if err := exec(ctx, s.policy, "set customer status", func(ctx context.Context) error {
		return s.customerRepo.SetStatus(ctx, id, status)
	}); err != nil {
		logger.ExitMethodWithError("customerService.SetCustomerStatus", err)
		return nil, err
	}
	customer.Status = status

	logger.ExitMethod("customerService.SetCustomerStatus", "customerID", id)
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return read(ctx, s.policy, "get customer", func(ctx context.Context) (*domain.Customer, error) {
		return s.customerRepo.GetByID(ctx, id)
	})
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return read(ctx, s.policy, "list customers", func(ctx context.Context) ([]domain.Customer, error) {
		return s.customerRepo.List(ctx)
	})
}

func (s *customerService) NextCustomerCode(ctx context.Context) (string, error) {
	codes, err := read(ctx, s.policy, "list customer codes", func(ctx context.Context) ([]string, error) {
		return s.customerRepo.ListCodes(ctx, sequence.CustomerPrefix)
	})
	if err != nil {
		return "", err
	}
	return sequence.NextCustomerCode(codes), nil
}
