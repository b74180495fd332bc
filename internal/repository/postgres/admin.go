package postgres

import (
	"context"
	"database/sql"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"
)

type adminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	a := &domain.Admin{}
	query := `SELECT id, email, name, password_hash, created_at FROM admins WHERE lower(email) = lower($1)`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, mapError("get admin", err)
	}
	return a, nil
}
