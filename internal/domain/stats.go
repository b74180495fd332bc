package domain

type DashboardStats struct {
	TotalCars        int   `json:"total_cars"`
	AvailableCars    int   `json:"available_cars"`
	RentedCars       int   `json:"rented_cars"`
	OngoingRentals   int   `json:"ongoing_rentals"`
	CompletedRentals int   `json:"completed_rentals"`
	Revenue          int64 `json:"revenue"`         // sum of rental totals
	PenaltyRevenue   int64 `json:"penalty_revenue"` // sum of collected late fees
}
