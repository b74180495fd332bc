package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/logger"
	"rentcar-backend/internal/repository"
	"rentcar-backend/internal/storage"

	"github.com/google/uuid"
)

type carService struct {
	carRepo       repository.CarRepository
	storage       storage.StorageInterface
	maxImageWidth uint
	policy        CallPolicy
}

func NewCarService(carRepo repository.CarRepository, store storage.StorageInterface, maxImageWidth uint, policy CallPolicy) CarService {
	return &carService{
		carRepo:       carRepo,
		storage:       store,
		maxImageWidth: maxImageWidth,
		policy:        policy,
	}
}

func (input CarInput) normalize() (CarInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.PlateNumber = strings.ToUpper(strings.TrimSpace(input.PlateNumber))
	input.Transmission = strings.TrimSpace(input.Transmission)
	input.Fuel = strings.TrimSpace(input.Fuel)
	switch {
	case input.Name == "":
		return input, domain.NewValidationError("name", "is required")
	case input.PlateNumber == "":
		return input, domain.NewValidationError("plate", "is required")
	case input.Seats <= 0:
		return input, domain.NewValidationError("seats", "must be greater than zero")
	case input.DailyRate <= 0:
		return input, domain.NewValidationError("daily_rate", "must be greater than zero")
	}
	return input, nil
}

func (s *carService) CreateCar(ctx context.Context, input CarInput) (*domain.Car, error) {
	logger.EnterMethod("carService.CreateCar")

	input, err := input.normalize()
	if err != nil {
		logger.ExitMethodWithError("carService.CreateCar", err)
		return nil, err
	}
	car := &domain.Car{
		Name:         input.Name,
		PlateNumber:  input.PlateNumber,
		Seats:        input.Seats,
		Transmission: input.Transmission,
		Fuel:         input.Fuel,
		DailyRate:    input.DailyRate,
		Status:       domain.CarStatusAvailable,
	}
	if err := exec(ctx, s.policy, "create car", func(ctx context.Context) error {
		return s.carRepo.Create(ctx, car)
	}); err != nil {
		logger.ExitMethodWithError("carService.CreateCar", err)
		return nil, err
	}

	logger.ExitMethod("carService.CreateCar", "carID", car.ID)
	return car, nil
}

// UpdateCar edits the descriptive fields and the daily rate. Existing
// rentals keep the rate they were priced at.
func (s *carService) UpdateCar(ctx context.Context, id int64, input CarInput) (*domain.Car, error) {
	logger.EnterMethod("carService.UpdateCar", "carID", id)

	input, err := input.normalize()
	if err != nil {
		logger.ExitMethodWithError("carService.UpdateCar", err)
		return nil, err
	}
	car, err := s.GetCar(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("carService.UpdateCar", err)
		return nil, err
	}

	car.Name = input.Name
	car.PlateNumber = input.PlateNumber
	car.Seats = input.Seats
	car.Transmission = input.Transmission
	car.Fuel = input.Fuel
	car.DailyRate = input.DailyRate
	if err := exec(ctx, s.policy, "update car", func(ctx context.Context) error {
		return s.carRepo.Update(ctx, car)
	}); err != nil {
		logger.ExitMethodWithError("carService.UpdateCar", err)
		return nil, err
	}

	logger.ExitMethod("carService.UpdateCar", "carID", id)
	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	return read(ctx, s.policy, "get car", func(ctx context.Context) (*domain.Car, error) {
		return s.carRepo.GetByID(ctx, id)
	})
}

func (s *carService) ListCars(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", "must be available or rented")
	}
	return read(ctx, s.policy, "list cars", func(ctx context.Context) ([]domain.Car, error) {
		return s.carRepo.List(ctx, status)
	})
}

// UploadCarImage normalizes the image, stores it under a fresh key and
// points the car at it. The previous image is removed on success.
func (s *carService) UploadCarImage(ctx context.Context, id int64, image io.Reader) (*domain.Car, error) {
	logger.EnterMethod("carService.UploadCarImage", "carID", id)

	car, err := s.GetCar(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("carService.UploadCarImage", err)
		return nil, err
	}

	data, err := storage.NormalizeImage(image, s.maxImageWidth)
	if err != nil {
		err = domain.NewValidationError("image", err.Error())
		logger.ExitMethodWithError("carService.UploadCarImage", err)
		return nil, err
	}

	key := fmt.Sprintf("cars/%d/%s.jpg", car.ID, uuid.New().String())
	url, err := s.storage.SaveFile(ctx, key, "image/jpeg", bytes.NewReader(data))
	if err != nil {
		err = &domain.StoreError{Op: "save car image", Err: err}
		logger.ExitMethodWithError("carService.UploadCarImage", err)
		return nil, err
	}

	if err := exec(ctx, s.policy, "set car image", func(ctx context.Context) error {
		return s.carRepo.SetImageURL(ctx, car.ID, url)
	}); err != nil {
		if delErr := s.storage.DeleteFile(ctx, key); delErr != nil {
			logger.Warn("Failed to remove orphaned car image", "key", key, "error", delErr)
		}
		logger.ExitMethodWithError("carService.UploadCarImage", err)
		return nil, err
	}

	previous := car.ImageURL
	car.ImageURL = url
	if oldKey := imageKey(previous); oldKey != "" {
		if err := s.storage.DeleteFile(ctx, oldKey); err != nil {
			logger.Warn("Failed to remove previous car image", "key", oldKey, "error", err)
		}
	}

	logger.ExitMethod("carService.UploadCarImage", "carID", id, "key", key)
	return car, nil
}

// imageKey recovers the storage key from a stored image URL.
func imageKey(url string) string {
	i := strings.Index(url, "cars/")
	if i < 0 {
		return ""
	}
	return url[i:]
}
