package domain

import "time"

type RentalStatus string

const (
	RentalStatusOngoing   RentalStatus = "ongoing"
	RentalStatusCompleted RentalStatus = "completed"
)

func (s RentalStatus) Valid() bool {
	return s == RentalStatusOngoing || s == RentalStatusCompleted
}

type Rental struct {
	ID         int64  `json:"id"`
	Invoice    string `json:"invoice"` // INV-YYYYMMDD-####
	CustomerID int64  `json:"customer_id"`
	CarID      int64  `json:"car_id"`
	StartDate  Date   `json:"start_date"`
	EndDate    Date   `json:"end_date"` // scheduled return
	// Snapshot taken at creation. Later price edits on the car never change
	// an existing rental.
	DurationDays      int          `json:"duration_days"`
	DailyRateSnapshot int64        `json:"daily_rate_snapshot"`
	TotalCharge       int64        `json:"total_charge"`
	Status            RentalStatus `json:"status"`
	// Settlement, filled when the rental is completed.
	ReturnedOn *Date     `json:"returned_on,omitempty"`
	DaysLate   int       `json:"days_late"`
	Penalty    int64     `json:"penalty"`
	TotalDue   int64     `json:"total_due"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReturnSettlement is what the operator collects when a car comes back.
type ReturnSettlement struct {
	ReturnedOn Date  `json:"returned_on"`
	DaysLate   int   `json:"days_late"`
	Penalty    int64 `json:"penalty"`
	TotalDue   int64 `json:"total_due"`
}

// ApplySettlement marks the rental completed with the given settlement.
func (r *Rental) ApplySettlement(s ReturnSettlement) {
	returned := s.ReturnedOn
	r.Status = RentalStatusCompleted
	r.ReturnedOn = &returned
	r.DaysLate = s.DaysLate
	r.Penalty = s.Penalty
	r.TotalDue = s.TotalDue
}
