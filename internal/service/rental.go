package service

import (
	"context"
	"errors"
	"time"

	"rentcar-backend/internal/billing"
	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/logger"
	"rentcar-backend/internal/repository"
	"rentcar-backend/internal/sequence"
)

// maxInvoiceAttempts bounds how often a colliding invoice number is
// regenerated before giving up.
const maxInvoiceAttempts = 3

// RentalSettings holds the business rules of the rental lifecycle.
type RentalSettings struct {
	LateFeePerDay      int64
	AllowSameDayReturn bool
	Location           *time.Location
	Now                func() time.Time
}

func DefaultRentalSettings() RentalSettings {
	return RentalSettings{
		LateFeePerDay: billing.DefaultLateFeePerDay,
		Location:      time.UTC,
		Now:           time.Now,
	}
}

type rentalService struct {
	rentalRepo   repository.RentalRepository
	carRepo      repository.CarRepository
	customerRepo repository.CustomerRepository
	settings     RentalSettings
	policy       CallPolicy
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	customerRepo repository.CustomerRepository,
	settings RentalSettings,
	policy CallPolicy,
) RentalService {
	if settings.LateFeePerDay <= 0 {
		settings.LateFeePerDay = billing.DefaultLateFeePerDay
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &rentalService{
		rentalRepo:   rentalRepo,
		carRepo:      carRepo,
		customerRepo: customerRepo,
		settings:     settings,
		policy:       policy,
	}
}

func (s *rentalService) Today() domain.Date {
	return domain.DateOf(s.settings.Now().In(s.settings.Location))
}

func (s *rentalService) CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.CreateRental", "customerID", input.CustomerID, "carID", input.CarID)

	if err := s.validateCreate(input); err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}

	customer, err := read(ctx, s.policy, "get customer", func(ctx context.Context) (*domain.Customer, error) {
		return s.customerRepo.GetByID(ctx, input.CustomerID)
	})
	if err != nil {
		err = preconditionOnMissing(domain.ReasonCustomerNotEligible, err)
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}
	if customer.Status != domain.CustomerStatusActive {
		err := &domain.PreconditionError{Reason: domain.ReasonCustomerNotEligible}
		logger.ExitMethodWithError("rentalService.CreateRental", err, "customerStatus", customer.Status)
		return nil, err
	}

	car, err := read(ctx, s.policy, "get car", func(ctx context.Context) (*domain.Car, error) {
		return s.carRepo.GetByID(ctx, input.CarID)
	})
	if err != nil {
		err = preconditionOnMissing(domain.ReasonCarNotAvailable, err)
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}
	if car.Status != domain.CarStatusAvailable {
		err := &domain.PreconditionError{Reason: domain.ReasonCarNotAvailable}
		logger.ExitMethodWithError("rentalService.CreateRental", err, "carStatus", car.Status)
		return nil, err
	}

	// The rate is snapshotted now; later edits to the car never reach
	// this rental.
	quote, err := billing.PriceRental(input.StartDate, input.EndDate, car.DailyRate)
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}

	// Claim the car first. The conditional update is the only guard
	// against two operators renting the same car.
	claimed, err := write(ctx, s.policy, "claim car", func(ctx context.Context) (int64, error) {
		return s.carRepo.TransitionStatus(ctx, car.ID, domain.CarStatusAvailable, domain.CarStatusRented)
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err, "step", "claim car")
		return nil, err
	}
	if claimed == 0 {
		err := &domain.PreconditionError{Reason: domain.ReasonCarNotAvailable}
		logger.ExitMethodWithError("rentalService.CreateRental", err, "step", "claim car")
		return nil, err
	}

	rental := &domain.Rental{
		CustomerID:        customer.ID,
		CarID:             car.ID,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		DurationDays:      quote.DurationDays,
		DailyRateSnapshot: quote.DailyRate,
		TotalCharge:       quote.TotalCharge,
		Status:            domain.RentalStatusOngoing,
	}
	if err := s.insertRental(ctx, rental); err != nil {
		// rollbackClaim returns nil when the insert landed despite the error;
		// rental then holds the stored row.
		if err = s.rollbackClaim(ctx, rental, err); err != nil {
			logger.ExitMethodWithError("rentalService.CreateRental", err, "step", "insert rental")
			return nil, err
		}
		logger.Warn("Rental insert reported failure but the row was stored", "rentalID", rental.ID, "invoice", rental.Invoice)
	}

	logger.ExitMethod("rentalService.CreateRental", "rentalID", rental.ID, "invoice", rental.Invoice, "total", rental.TotalCharge)
	return rental, nil
}

func (s *rentalService) validateCreate(input CreateRentalInput) error {
	if input.CustomerID <= 0 {
		return domain.NewValidationError("customer_id", "is required")
	}
	if input.CarID <= 0 {
		return domain.NewValidationError("car_id", "is required")
	}
	if input.StartDate.IsZero() {
		return domain.NewValidationError("start_date", "is required")
	}
	if input.EndDate.IsZero() {
		return domain.NewValidationError("end_date", "is required")
	}
	return billing.ValidateRange(input.StartDate, input.EndDate, s.settings.AllowSameDayReturn)
}

// insertRental assigns an invoice number and inserts the rental,
// regenerating the number when a concurrent creation took it.
func (s *rentalService) insertRental(ctx context.Context, rental *domain.Rental) error {
	var err error
	for attempt := 1; attempt <= maxInvoiceAttempts; attempt++ {
		rental.Invoice, err = s.nextInvoice(ctx)
		if err != nil {
			return err
		}
		err = exec(ctx, s.policy, "insert rental", func(ctx context.Context) error {
			return s.rentalRepo.Create(ctx, rental)
		})
		if !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
		logger.Warn("Invoice number collision, regenerating", "invoice", rental.Invoice, "attempt", attempt)
	}
	return err
}

// rollbackClaim releases a claimed car after the rental insert failed.
// An insert that timed out may still have landed, so that case is checked
// before the car is released.
func (s *rentalService) rollbackClaim(ctx context.Context, rental *domain.Rental, insertErr error) error {
	if domain.IsStore(insertErr) && rental.Invoice != "" {
		existing, err := read(ctx, s.policy, "get rental by invoice", func(ctx context.Context) (*domain.Rental, error) {
			return s.rentalRepo.GetByInvoice(ctx, rental.Invoice)
		})
		if err == nil && existing.CarID == rental.CarID {
			*rental = *existing
			return nil
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return s.partialCreate(ctx, rental, insertErr)
		}
	}

	released, err := write(ctx, s.policy, "release car", func(ctx context.Context) (int64, error) {
		return s.carRepo.TransitionStatus(ctx, rental.CarID, domain.CarStatusRented, domain.CarStatusAvailable)
	})
	if err != nil || released == 0 {
		if err == nil {
			err = errors.New("car was no longer rented")
		}
		return s.partialCreate(ctx, rental, errors.Join(insertErr, err))
	}
	return insertErr
}

func (s *rentalService) partialCreate(ctx context.Context, rental *domain.Rental, err error) error {
	pf := &domain.PartialFailureError{
		Op:        "create rental",
		Completed: "car marked rented",
		Failed:    "rental insert",
		CarID:     rental.CarID,
		Err:       err,
	}
	logger.Reconcile(ctx, pf.Op, err, "car_id", rental.CarID, "invoice", rental.Invoice,
		"customer_id", rental.CustomerID, "expected_car_status", domain.CarStatusAvailable)
	return pf
}

func (s *rentalService) CompleteRental(ctx context.Context, rentalID int64) (*Settlement, error) {
	return s.CompleteRentalOn(ctx, rentalID, s.Today())
}

func (s *rentalService) CompleteRentalOn(ctx context.Context, rentalID int64, processedOn domain.Date) (*Settlement, error) {
	logger.EnterMethod("rentalService.CompleteRental", "rentalID", rentalID, "processedOn", processedOn.String())

	if rentalID <= 0 {
		err := domain.NewValidationError("rental_id", "is required")
		logger.ExitMethodWithError("rentalService.CompleteRental", err)
		return nil, err
	}
	if processedOn.IsZero() {
		err := domain.NewValidationError("returned_on", "is required")
		logger.ExitMethodWithError("rentalService.CompleteRental", err)
		return nil, err
	}

	rental, err := s.loadOngoing(ctx, rentalID)
	if err != nil {
		logger.ExitMethodWithError("rentalService.CompleteRental", err, "rentalID", rentalID)
		return nil, err
	}
	settlement, err := billing.Settle(rental, processedOn, s.settings.LateFeePerDay)
	if err != nil {
		logger.ExitMethodWithError("rentalService.CompleteRental", err, "rentalID", rentalID)
		return nil, err
	}

	completed, err := write(ctx, s.policy, "complete rental", func(ctx context.Context) (int64, error) {
		return s.rentalRepo.Complete(ctx, rental.ID, settlement)
	})
	if err != nil {
		if !s.completionLanded(ctx, rental.ID, settlement) {
			logger.ExitMethodWithError("rentalService.CompleteRental", err, "step", "complete rental")
			return nil, err
		}
		completed = 1
	}
	if completed == 0 {
		err := &domain.PreconditionError{Reason: domain.ReasonRentalNotOngoing}
		logger.ExitMethodWithError("rentalService.CompleteRental", err, "rentalID", rentalID)
		return nil, err
	}
	rental.ApplySettlement(settlement)

	released, err := write(ctx, s.policy, "release car", func(ctx context.Context) (int64, error) {
		return s.carRepo.TransitionStatus(ctx, rental.CarID, domain.CarStatusRented, domain.CarStatusAvailable)
	})
	if err != nil {
		pf := &domain.PartialFailureError{
			Op:        "complete rental",
			Completed: "rental completed",
			Failed:    "car release",
			RentalID:  rental.ID,
			CarID:     rental.CarID,
			Err:       err,
		}
		logger.Reconcile(ctx, pf.Op, err, "rental_id", rental.ID, "car_id", rental.CarID,
			"invoice", rental.Invoice, "expected_car_status", domain.CarStatusAvailable)
		logger.ExitMethodWithError("rentalService.CompleteRental", pf)
		return nil, pf
	}
	if released == 0 {
		// Car and rental now agree; the car was already available.
		logger.Warn("Car was not rented when its rental completed", "rentalID", rental.ID, "carID", rental.CarID)
	}

	logger.ExitMethod("rentalService.CompleteRental", "rentalID", rental.ID, "daysLate", settlement.DaysLate, "penalty", settlement.Penalty)
	return &Settlement{
		Rental:   rental,
		DaysLate: settlement.DaysLate,
		Penalty:  settlement.Penalty,
		TotalDue: settlement.TotalDue,
	}, nil
}

// completionLanded re-reads a rental after a failed completion write to
// find out whether the write was applied anyway.
func (s *rentalService) completionLanded(ctx context.Context, rentalID int64, settlement domain.ReturnSettlement) bool {
	current, err := read(ctx, s.policy, "get rental", func(ctx context.Context) (*domain.Rental, error) {
		return s.rentalRepo.GetByID(ctx, rentalID)
	})
	if err != nil {
		return false
	}
	return current.Status == domain.RentalStatusCompleted &&
		current.ReturnedOn != nil && *current.ReturnedOn == settlement.ReturnedOn
}

func (s *rentalService) loadOngoing(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	rental, err := read(ctx, s.policy, "get rental", func(ctx context.Context) (*domain.Rental, error) {
		return s.rentalRepo.GetByID(ctx, rentalID)
	})
	if err != nil {
		return nil, preconditionOnMissing(domain.ReasonRentalNotFound, err)
	}
	if rental.Status != domain.RentalStatusOngoing {
		return nil, &domain.PreconditionError{Reason: domain.ReasonRentalNotOngoing}
	}
	return rental, nil
}

func (s *rentalService) PreviewReturn(ctx context.Context, rentalID int64, on domain.Date) (*Settlement, error) {
	if on.IsZero() {
		on = s.Today()
	}
	rental, err := s.loadOngoing(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	settlement, err := billing.Settle(rental, on, s.settings.LateFeePerDay)
	if err != nil {
		return nil, err
	}
	return &Settlement{
		Rental:   rental,
		DaysLate: settlement.DaysLate,
		Penalty:  settlement.Penalty,
		TotalDue: settlement.TotalDue,
	}, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	return read(ctx, s.policy, "get rental", func(ctx context.Context) (*domain.Rental, error) {
		return s.rentalRepo.GetByID(ctx, id)
	})
}

func (s *rentalService) ListRentals(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", "must be ongoing or completed")
	}
	return read(ctx, s.policy, "list rentals", func(ctx context.Context) ([]domain.Rental, error) {
		return s.rentalRepo.List(ctx, status)
	})
}

func (s *rentalService) ListOverdue(ctx context.Context) ([]OverdueRental, error) {
	today := s.Today()
	rentals, err := read(ctx, s.policy, "list overdue rentals", func(ctx context.Context) ([]domain.Rental, error) {
		return s.rentalRepo.ListOverdue(ctx, today)
	})
	if err != nil {
		return nil, err
	}
	overdue := make([]OverdueRental, 0, len(rentals))
	for _, rt := range rentals {
		p, err := billing.LatePenalty(rt.EndDate, today, s.settings.LateFeePerDay)
		if err != nil {
			return nil, err
		}
		overdue = append(overdue, OverdueRental{Rental: rt, DaysLate: p.DaysLate, AccruedPenalty: p.Amount})
	}
	return overdue, nil
}

func (s *rentalService) NextInvoiceNumber(ctx context.Context) (string, error) {
	return s.nextInvoice(ctx)
}

func (s *rentalService) nextInvoice(ctx context.Context) (string, error) {
	today := s.Today()
	existing, err := read(ctx, s.policy, "list invoices", func(ctx context.Context) ([]string, error) {
		return s.rentalRepo.ListInvoices(ctx, sequence.InvoicePrefix(today))
	})
	if err != nil {
		return "", err
	}
	return sequence.NextInvoiceNumber(today, existing), nil
}

func (s *rentalService) QuoteRental(start, end domain.Date, dailyRate int64) (billing.Quote, error) {
	return billing.PriceRental(start, end, dailyRate)
}

func (s *rentalService) LatePenalty(scheduled, on domain.Date) (billing.Penalty, error) {
	if on.IsZero() {
		on = s.Today()
	}
	return billing.LatePenalty(scheduled, on, s.settings.LateFeePerDay)
}

// preconditionOnMissing reports a missing referenced record as a failed
// precondition and passes other errors through.
func preconditionOnMissing(reason string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.PreconditionError{Reason: reason, Err: err}
	}
	return err
}
