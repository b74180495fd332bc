package supabase

import (
	"cmp"
	"context"
	"slices"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

type customerRepository struct {
	client *supa.Client
}

func NewCustomerRepository(client *supa.Client) repository.CustomerRepository {
	return &customerRepository{client: client}
}

type customerInsert struct {
	Code   string                `json:"code"`
	NIK    string                `json:"nik"`
	Name   string                `json:"name"`
	Phone  string                `json:"phone"`
	Status domain.CustomerStatus `json:"status"`
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	row := customerInsert{Code: c.Code, NIK: c.NIK, Name: c.Name, Phone: c.Phone, Status: c.Status}
	data, err := execute(ctx, r.client.From(tableCustomers).
		Insert(row, false, "", returnRepresentation, ""))
	if err != nil {
		return mapError("create customer", err)
	}
	var created []domain.Customer
	if err := decode("create customer", data, &created); err != nil {
		return err
	}
	if len(created) == 0 {
		return notFound("create customer")
	}
	c.ID = created[0].ID
	c.CreatedAt = created[0].CreatedAt
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	data, err := execute(ctx, r.client.From(tableCustomers).
		Select("*", "", false).
		Eq("id", idString(id)))
	if err != nil {
		return nil, mapError("get customer", err)
	}
	var customers []domain.Customer
	if err := decode("get customer", data, &customers); err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, notFound("get customer")
	}
	return &customers[0], nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	changes := map[string]interface{}{"nik": c.NIK, "name": c.Name, "phone": c.Phone}
	return r.update(ctx, "update customer", c.ID, changes)
}

func (r *customerRepository) SetStatus(ctx context.Context, id int64, status domain.CustomerStatus) error {
	return r.update(ctx, "set customer status", id, map[string]interface{}{"status": status})
}

func (r *customerRepository) update(ctx context.Context, op string, id int64, changes map[string]interface{}) error {
	data, err := execute(ctx, r.client.From(tableCustomers).
		Update(changes, returnRepresentation, "").
		Eq("id", idString(id)))
	if err != nil {
		return mapError(op, err)
	}
	n, err := affected(op, data)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(op)
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	data, err := execute(ctx, r.client.From(tableCustomers).
		Select("*", "", false).
		Order("code", &postgrest.OrderOpts{Ascending: true}))
	if err != nil {
		return nil, mapError("list customers", err)
	}
	var customers []domain.Customer
	if err := decode("list customers", data, &customers); err != nil {
		return nil, err
	}
	// PostgREST cannot order by length(code); match the postgres
	// ordering so CST1000 follows CST999.
	slices.SortStableFunc(customers, func(a, b domain.Customer) int {
		return compareCodes(a.Code, b.Code)
	})
	return customers, nil
}

// compareCodes orders codes with equal prefixes by their numeric suffix,
// the same as ORDER BY length(code), code.
func compareCodes(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func (r *customerRepository) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	data, err := execute(ctx, r.client.From(tableCustomers).
		Select("code", "", false).
		Like("code", prefix+"*"))
	if err != nil {
		return nil, mapError("list customer codes", err)
	}
	var rows []struct {
		Code string `json:"code"`
	}
	if err := decode("list customer codes", data, &rows); err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, row.Code)
	}
	return codes, nil
}
