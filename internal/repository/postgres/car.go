package postgres

import (
	"context"
	"database/sql"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, name, plate_number, seats, transmission, fuel, daily_rate, status, image_url, created_at`

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (name, plate_number, seats, transmission, fuel, daily_rate, status, image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.PlateNumber, c.Seats, c.Transmission, c.Fuel, c.DailyRate, c.Status, c.ImageURL).
		Scan(&c.ID, &c.CreatedAt)
	return mapError("create car", err)
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	c, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("get car", err)
	}
	return c, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET name = $1, plate_number = $2, seats = $3, transmission = $4, fuel = $5, daily_rate = $6
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.PlateNumber, c.Seats, c.Transmission, c.Fuel, c.DailyRate, c.ID)
	if err != nil {
		return mapError("update car", err)
	}
	return requireRow("update car", res)
}

func (r *carRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cars SET image_url = $1 WHERE id = $2`, url, id)
	if err != nil {
		return mapError("set car image", err)
	}
	return requireRow("set car image", res)
}

func (r *carRepository) List(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list cars", err)
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, mapError("list cars", err)
		}
		cars = append(cars, *c)
	}
	return cars, mapError("list cars", rows.Err())
}

func (r *carRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.CarStatus) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE cars SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return 0, mapError("transition car status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError("transition car status", err)
	}
	return n, nil
}

func scanCar(row rowScanner) (*domain.Car, error) {
	c := &domain.Car{}
	err := row.Scan(&c.ID, &c.Name, &c.PlateNumber, &c.Seats, &c.Transmission, &c.Fuel, &c.DailyRate, &c.Status, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
