// Package app assembles the store, storage and services from
// configuration for the server and cron binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentcar-backend/internal/config"
	"rentcar-backend/internal/logger"
	"rentcar-backend/internal/repository"
	"rentcar-backend/internal/repository/postgres"
	"rentcar-backend/internal/repository/supabase"
	"rentcar-backend/internal/security"
	"rentcar-backend/internal/service"
	"rentcar-backend/internal/storage"

	_ "github.com/lib/pq"
	supa "github.com/supabase-community/supabase-go"
)

// Backend is the opened data store plus the Supabase client when one is
// configured.
type Backend struct {
	Store    *repository.Store
	Supabase *supa.Client
	db       *sql.DB
}

// OpenBackend connects to the configured database. For postgres the
// embedded migrations are applied when migrate is set.
func OpenBackend(ctx context.Context, cfg *config.Config, migrate bool) (*Backend, error) {
	b := &Backend{}

	if cfg.Database.Driver == "supabase" || cfg.Storage.Type == "supabase" {
		client, err := supabase.NewClient(cfg.Database.Supabase.URL, cfg.Database.Supabase.ServiceKey)
		if err != nil {
			return nil, err
		}
		b.Supabase = client
	}

	switch cfg.Database.Driver {
	case "supabase":
		logger.Info("Using Supabase backend", "url", cfg.Database.Supabase.URL)
		b.Store = supabase.NewStore(b.Supabase)
	case "postgres":
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, cfg.CallTimeout())
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Info("Database connection established")
		if migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
		}
		b.db = db
		b.Store = postgres.NewStore(db)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	return b, nil
}

func (b *Backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Images opens the configured car image storage.
func (b *Backend) Images(cfg *config.Config) (storage.StorageInterface, error) {
	return storage.New(storage.Config{
		Type:      cfg.Storage.Type,
		UploadDir: cfg.Storage.UploadDir,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Database.Supabase.ImageBucket,
	}, b.Supabase)
}

func CallPolicy(cfg *config.Config) service.CallPolicy {
	return service.CallPolicy{
		Timeout:     cfg.CallTimeout(),
		ReadRetries: cfg.Store.ReadRetries,
		RetryDelay:  cfg.RetryDelay(),
	}
}

func RentalSettings(cfg *config.Config) service.RentalSettings {
	return service.RentalSettings{
		LateFeePerDay:      cfg.Rental.LateFeePerDay,
		AllowSameDayReturn: cfg.Rental.AllowSameDayReturn,
		Location:           cfg.Location(),
		Now:                time.Now,
	}
}

// Services holds every application service.
type Services struct {
	Auth      service.AuthService
	Dashboard service.DashboardService
	Customers service.CustomerService
	Cars      service.CarService
	Rentals   service.RentalService
	Tokens    security.TokenManager
}

// NewServices wires the services over store. images may be nil for
// processes that never upload car photos.
func NewServices(cfg *config.Config, store *repository.Store, images storage.StorageInterface) *Services {
	policy := CallPolicy(cfg)
	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	var bootstrap *service.BootstrapAdmin
	if cfg.Admin.Email != "" {
		bootstrap = &service.BootstrapAdmin{
			Email:        cfg.Admin.Email,
			Name:         cfg.Admin.Name,
			PasswordHash: cfg.Admin.PasswordHash,
		}
	}

	return &Services{
		Auth:      service.NewAuthService(store.AdminRepository, tokens, bootstrap, policy),
		Dashboard: service.NewDashboardService(store.StatsRepository, policy),
		Customers: service.NewCustomerService(store.CustomerRepository, policy),
		Cars:      service.NewCarService(store.CarRepository, images, cfg.Storage.MaxWidth, policy),
		Rentals:   service.NewRentalService(store.RentalRepository, store.CarRepository, store.CustomerRepository, RentalSettings(cfg), policy),
		Tokens:    tokens,
	}
}
