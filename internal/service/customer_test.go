package service

import (
	"context"
	"errors"
	"testing"

	"rentcar-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		svc := NewCustomerService(repo, fastPolicy)

		repo.On("ListCodes", mock.Anything, "CST").Return([]string{"CST009", "CST010"}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
			return c.Code == "CST011" && c.Status == domain.CustomerStatusActive && c.Name == "Siti"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Customer).ID = 5
		}).Return(nil)

		c, err := svc.CreateCustomer(ctx, CustomerInput{NIK: " 3171 ", Name: "Siti", Phone: "0812"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), c.ID)
		assert.Equal(t, "3171", c.NIK)
		repo.AssertExpectations(t)
	})

	t.Run("FirstCustomer", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		svc := NewCustomerService(repo, fastPolicy)
		repo.On("ListCodes", mock.Anything, "CST").Return([]string{}, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		c, err := svc.CreateCustomer(ctx, CustomerInput{NIK: "1", Name: "Andi", Phone: "0813"})
		require.NoError(t, err)
		assert.Equal(t, "CST001", c.Code)
	})

	t.Run("CodeCollision", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		svc := NewCustomerService(repo, fastPolicy)
		repo.On("ListCodes", mock.Anything, "CST").Return([]string{"CST001"}, nil).Once()
		repo.On("ListCodes", mock.Anything, "CST").Return([]string{"CST001", "CST002"}, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		c, err := svc.CreateCustomer(ctx, CustomerInput{NIK: "1", Name: "Andi", Phone: "0813"})
		require.NoError(t, err)
		assert.Equal(t, "CST003", c.Code)
	})

	t.Run("CodeLookupFails", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		svc := NewCustomerService(repo, fastPolicy)
		repo.On("ListCodes", mock.Anything, "CST").Return(nil, errors.New("unavailable"))

		_, err := svc.CreateCustomer(ctx, CustomerInput{NIK: "1", Name: "Andi", Phone: "0813"})
		assert.True(t, domain.IsStore(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingPhone", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		svc := NewCustomerService(repo, fastPolicy)

		_, err := svc.CreateCustomer(ctx, CustomerInput{NIK: "1", Name: "Andi", Phone: "  "})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "phone", ve.Field)
		repo.AssertNotCalled(t, "ListCodes", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	repo := new(MockCustomerRepo)
	svc := NewCustomerService(repo, fastPolicy)
	existing := &domain.Customer{ID: 3, Code: "CST003", NIK: "1", Name: "Old", Phone: "0", Status: domain.CustomerStatusInactive}
	repo.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	c, err := svc.UpdateCustomer(context.Background(), 3, CustomerInput{NIK: "2", Name: "New", Phone: "0811"})
	require.NoError(t, err)
	assert.Equal(t, "New", c.Name)
	assert.Equal(t, "CST003", c.Code)
	assert.Equal(t, domain.CustomerStatusInactive, c.Status)
}

func TestCustomerService_SetCustomerStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Deactivate", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		svc := NewCustomerService(repo, fastPolicy)
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Customer{ID: 3, Status: domain.CustomerStatusActive}, nil)
		repo.On("SetStatus", mock.Anything, int64(3), domain.CustomerStatusInactive).Return(nil)

		c, err := svc.SetCustomerStatus(ctx, 3, domain.CustomerStatusInactive)
		require.NoError(t, err)
		assert.Equal(t, domain.CustomerStatusInactive, c.Status)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		svc := NewCustomerService(repo, fastPolicy)

		_, err := svc.SetCustomerStatus(ctx, 3, "banned")
		assert.True(t, domain.IsValidation(err))
		repo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockCustomerRepo)
		svc := NewCustomerService(repo, fastPolicy)
		repo.On("GetByID", mock.Anything, int64(9)).Return(nil, domain.ErrNotFound)

		_, err := svc.SetCustomerStatus(ctx, 9, domain.CustomerStatusActive)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
