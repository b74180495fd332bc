package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"rentcar-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		c := &domain.Customer{Code: "CST001", NIK: "3201", Name: "Budi", Phone: "0812", Status: domain.CustomerStatusActive}
		now := time.Now()
		mock.ExpectQuery("INSERT INTO customers").
			WithArgs("CST001", "3201", "Budi", "0812", domain.CustomerStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))

		require.NoError(t, repo.Create(ctx, c))
		assert.Equal(t, int64(7), c.ID)
		assert.Equal(t, now, c.CreatedAt)
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		c := &domain.Customer{Code: "CST001", NIK: "3201", Name: "Budi", Phone: "0812", Status: domain.CustomerStatusActive}
		mock.ExpectQuery("INSERT INTO customers").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "customers_code_key"})

		err := repo.Create(ctx, c)
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "code", "nik", "name", "phone", "status", "created_at"}).
			AddRow(1, "CST001", "3201", "Budi", "0812", "inactive", time.Now())
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnRows(rows)

		c, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "CST001", c.Code)
		assert.Equal(t, domain.CustomerStatusInactive, c.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DriverError", func(t *testing.T) {
		boom := errors.New("connection reset")
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
			WithArgs(int64(3)).
			WillReturnError(boom)

		_, err := repo.GetByID(ctx, 3)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCustomerRepository(db)
	ctx := context.Background()

	c := &domain.Customer{ID: 4, NIK: "3202", Name: "Siti", Phone: "0813"}
	mock.ExpectExec("UPDATE customers SET nik").
		WithArgs("3202", "Siti", "0813", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(ctx, c))

	mock.ExpectExec("UPDATE customers SET status").
		WithArgs(domain.CustomerStatusInactive, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.SetStatus(ctx, 99, domain.CustomerStatusInactive)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_ListCodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCustomerRepository(db)

	mock.ExpectQuery("SELECT code FROM customers WHERE code LIKE").
		WithArgs("CST%").
		WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("CST009").AddRow("CST010"))

	codes, err := repo.ListCodes(context.Background(), "CST")
	require.NoError(t, err)
	assert.Equal(t, []string{"CST009", "CST010"}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
