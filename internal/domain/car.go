package domain

import "time"

type CarStatus string

const (
	CarStatusAvailable CarStatus = "available"
	CarStatusRented    CarStatus = "rented"
)

func (s CarStatus) Valid() bool {
	return s == CarStatusAvailable || s == CarStatusRented
}

// Car is a rentable vehicle. Status is only ever changed by the rental
// lifecycle, never by car edits.
type Car struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"` // brand + model
	PlateNumber  string    `json:"plate"`
	Seats        int       `json:"seats"`
	Transmission string    `json:"transmission"`
	Fuel         string    `json:"fuel"`
	DailyRate    int64     `json:"daily_rate"` // rupiah
	Status       CarStatus `json:"status"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}
