package supabase

import (
	"context"
	"strings"
	"time"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"

	supa "github.com/supabase-community/supabase-go"
)

type adminRepository struct {
	client *supa.Client
}

func NewAdminRepository(client *supa.Client) repository.AdminRepository {
	return &adminRepository{client: client}
}

// adminRow carries the password hash, which domain.Admin never
// serializes.
type adminRow struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	data, err := execute(ctx, r.client.From(tableAdmins).
		Select("*", "", false).
		Ilike("email", strings.TrimSpace(email)))
	if err != nil {
		return nil, mapError("get admin", err)
	}
	var rows []adminRow
	if err := decode("get admin", data, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("get admin")
	}
	row := rows[0]
	return &domain.Admin{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}, nil
}
