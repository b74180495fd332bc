package supabase

import (
	"context"
	"time"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

type carRepository struct {
	client *supa.Client
}

func NewCarRepository(client *supa.Client) repository.CarRepository {
	return &carRepository{client: client}
}

// carRow mirrors the cars table; the API field names differ from the
// column names.
type carRow struct {
	ID           int64            `json:"id,omitempty"`
	Name         string           `json:"name"`
	PlateNumber  string           `json:"plate_number"`
	Seats        int              `json:"seats"`
	Transmission string           `json:"transmission"`
	Fuel         string           `json:"fuel"`
	DailyRate    int64            `json:"daily_rate"`
	Status       domain.CarStatus `json:"status"`
	ImageURL     string           `json:"image_url"`
	CreatedAt    *time.Time       `json:"created_at,omitempty"`
}

func toCarRow(c *domain.Car) carRow {
	return carRow{
		Name:         c.Name,
		PlateNumber:  c.PlateNumber,
		Seats:        c.Seats,
		Transmission: c.Transmission,
		Fuel:         c.Fuel,
		DailyRate:    c.DailyRate,
		Status:       c.Status,
		ImageURL:     c.ImageURL,
	}
}

func (row carRow) toDomain() domain.Car {
	c := domain.Car{
		ID:           row.ID,
		Name:         row.Name,
		PlateNumber:  row.PlateNumber,
		Seats:        row.Seats,
		Transmission: row.Transmission,
		Fuel:         row.Fuel,
		DailyRate:    row.DailyRate,
		Status:       row.Status,
		ImageURL:     row.ImageURL,
	}
	if row.CreatedAt != nil {
		c.CreatedAt = *row.CreatedAt
	}
	return c
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	data, err := execute(ctx, r.client.From(tableCars).
		Insert(toCarRow(c), false, "", returnRepresentation, ""))
	if err != nil {
		return mapError("create car", err)
	}
	var created []carRow
	if err := decode("create car", data, &created); err != nil {
		return err
	}
	if len(created) == 0 {
		return notFound("create car")
	}
	*c = created[0].toDomain()
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	data, err := execute(ctx, r.client.From(tableCars).
		Select("*", "", false).
		Eq("id", idString(id)))
	if err != nil {
		return nil, mapError("get car", err)
	}
	var rows []carRow
	if err := decode("get car", data, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("get car")
	}
	car := rows[0].toDomain()
	return &car, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	changes := map[string]interface{}{
		"name":         c.Name,
		"plate_number": c.PlateNumber,
		"seats":        c.Seats,
		"transmission": c.Transmission,
		"fuel":         c.Fuel,
		"daily_rate":   c.DailyRate,
	}
	return r.update(ctx, "update car", c.ID, changes)
}

func (r *carRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	return r.update(ctx, "set car image", id, map[string]interface{}{"image_url": url})
}

func (r *carRepository) update(ctx context.Context, op string, id int64, changes map[string]interface{}) error {
	data, err := execute(ctx, r.client.From(tableCars).
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

func (r *carRepository) List(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	query := r.client.From(tableCars).
		Select("*", "", false).
		Order("id", &postgrest.OrderOpts{Ascending: true})
	if status != "" {
		query = query.Eq("status", string(status))
	}
	data, err := execute(ctx, query)
	if err != nil {
		return nil, mapError("list cars", err)
	}
	var rows []carRow
	if err := decode("list cars", data, &rows); err != nil {
		return nil, err
	}
	cars := make([]domain.Car, 0, len(rows))
	for _, row := range rows {
		cars = append(cars, row.toDomain())
	}
	return cars, nil
}

func (r *carRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.CarStatus) (int64, error) {
	data, err := execute(ctx, r.client.From(tableCars).
		Update(map[string]interface{}{"status": to}, returnRepresentation, "").
		Eq("id", idString(id)).
		Eq("status", string(from)))
	if err != nil {
		return 0, mapError("transition car status", err)
	}
	return affected("transition car status", data)
}
