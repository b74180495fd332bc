package postgres

import (
	"context"
	"database/sql"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, code, nik, name, phone, status, created_at`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (code, nik, name, phone, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, c.Code, c.NIK, c.Name, c.Phone, c.Status).Scan(&c.ID, &c.CreatedAt)
	return mapError("create customer", err)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("get customer", err)
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET nik = $1, name = $2, phone = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, c.NIK, c.Name, c.Phone, c.ID)
	if err != nil {
		return mapError("update customer", err)
	}
	return requireRow("update customer", res)
}

func (r *customerRepository) SetStatus(ctx context.Context, id int64, status domain.CustomerStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE customers SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return mapError("set customer status", err)
	}
	return requireRow("set customer status", res)
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY length(code), code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list customers", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, mapError("list customers", err)
		}
		customers = append(customers, *c)
	}
	return customers, mapError("list customers", rows.Err())
}

func (r *customerRepository) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	return listStrings(ctx, r.db, "list customer codes",
		`SELECT code FROM customers WHERE code LIKE $1`, prefix+"%")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	c := &domain.Customer{}
	if err := row.Scan(&c.ID, &c.Code, &c.NIK, &c.Name, &c.Phone, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func listStrings(ctx context.Context, db *sql.DB, op, query string, args ...interface{}) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, mapError(op, err)
		}
		out = append(out, s)
	}
	return out, mapError(op, rows.Err())
}
