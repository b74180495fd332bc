package domain

import "time"

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

func (s CustomerStatus) Valid() bool {
	return s == CustomerStatusActive || s == CustomerStatusInactive
}

type Customer struct {
	ID        int64          `json:"id"`
	Code      string         `json:"code"` // CST###, assigned once at creation
	NIK       string         `json:"nik"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Status    CustomerStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}
