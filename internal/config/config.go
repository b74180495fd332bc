package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Rental    RentalConfig    `yaml:"rental"`
	Store     StoreConfig     `yaml:"store"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Admin     AdminConfig     `yaml:"admin"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"` // CORS origins of the admin panel
}

// DatabaseConfig selects the backend. "postgres" talks to PostgreSQL
// directly; "supabase" goes through the hosted PostgREST API.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	User     string         `yaml:"user"`
	Password string         `yaml:"password"`
	Database string         `yaml:"database"`
	SSLMode  string         `yaml:"ssl_mode"`
	Supabase SupabaseConfig `yaml:"supabase"`
}

type SupabaseConfig struct {
	URL         string `yaml:"url"`
	ServiceKey  string `yaml:"service_key"`
	ImageBucket string `yaml:"image_bucket"`
}

// JWTConfig contains admin token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// StorageConfig contains car image storage settings
type StorageConfig struct {
	Type          string   `yaml:"type"`       // "local" or "supabase"
	UploadDir     string   `yaml:"upload_dir"` // For local storage
	BaseURL       string   `yaml:"base_url"`   // Public URL prefix for local images
	MaxFileSizeMB int64    `yaml:"max_file_size_mb"`
	MaxWidth      uint     `yaml:"max_width"`
	AllowedTypes  []string `yaml:"allowed_types"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// RentalConfig contains billing rules
type RentalConfig struct {
	LateFeePerDay      int64  `yaml:"late_fee_per_day"`
	AllowSameDayReturn bool   `yaml:"allow_same_day_return"`
	Timezone           string `yaml:"timezone"`
}

// StoreConfig bounds every remote call
type StoreConfig struct {
	CallTimeoutSeconds int `yaml:"call_timeout_seconds"`
	ReadRetries        int `yaml:"read_retries"`
	RetryDelayMillis   int `yaml:"retry_delay_ms"`
}

// AdminConfig holds an optional bootstrap administrator that can log in
// before any admin row exists in the database.
type AdminConfig struct {
	Email        string `yaml:"email"`
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"password_hash"` // bcrypt
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ReportOverdueRentals string `yaml:"report_overdue_rentals"`
	LogDashboardSnapshot string `yaml:"log_dashboard_snapshot"`
}

// Load reads configuration from a YAML file. A .env file next to the
// working directory is loaded first so its values take part in the
// environment overrides.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_DRIVER"); val != "" {
		c.Database.Driver = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}
	if val := os.Getenv("SUPABASE_URL"); val != "" {
		c.Database.Supabase.URL = val
	}
	if val := os.Getenv("SUPABASE_SERVICE_ROLE_KEY"); val != "" {
		c.Database.Supabase.ServiceKey = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("CORS_ALLOWED_ORIGINS"); val != "" {
		c.Server.AllowedOrigins = strings.Split(val, ",")
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Admin
	if val := os.Getenv("ADMIN_EMAIL"); val != "" {
		c.Admin.Email = val
	}
	if val := os.Getenv("ADMIN_PASSWORD_HASH"); val != "" {
		c.Admin.PasswordHash = val
	}

	// Rental
	if val := os.Getenv("LATE_FEE_PER_DAY"); val != "" {
		if fee, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.Rental.LateFeePerDay = fee
		}
	}
	if val := os.Getenv("BUSINESS_TIMEZONE"); val != "" {
		c.Rental.Timezone = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	case "supabase":
		if c.Database.Supabase.URL == "" {
			return fmt.Errorf("supabase url is required")
		}
		if c.Database.Supabase.ServiceKey == "" {
			return fmt.Errorf("supabase service key is required")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		c.JWT.AccessTokenExpiry = 12 * 60
	}

	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	switch c.Storage.Type {
	case "local":
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("upload directory is required")
		}
		if c.Storage.BaseURL == "" {
			c.Storage.BaseURL = "/images"
		}
	case "supabase":
		if c.Database.Supabase.URL == "" || c.Database.Supabase.ServiceKey == "" {
			return fmt.Errorf("supabase storage requires supabase url and service key")
		}
		if c.Database.Supabase.ImageBucket == "" {
			c.Database.Supabase.ImageBucket = "car-images"
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Storage.MaxFileSizeMB <= 0 {
		c.Storage.MaxFileSizeMB = 5
	}
	if c.Storage.MaxWidth == 0 {
		c.Storage.MaxWidth = 1280
	}
	if len(c.Storage.AllowedTypes) == 0 {
		c.Storage.AllowedTypes = []string{"image/jpeg", "image/png"}
	}

	if c.Admin.Email != "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("admin password hash is required when admin email is set")
	}
	if c.Admin.Name == "" {
		c.Admin.Name = "Administrator"
	}

	// Rental defaults
	if c.Rental.LateFeePerDay < 0 {
		return fmt.Errorf("late fee per day must not be negative: %d", c.Rental.LateFeePerDay)
	}
	if c.Rental.LateFeePerDay == 0 {
		c.Rental.LateFeePerDay = 50000
	}
	if c.Rental.Timezone == "" {
		c.Rental.Timezone = "Asia/Jakarta"
	}
	if _, err := time.LoadLocation(c.Rental.Timezone); err != nil {
		return fmt.Errorf("invalid rental timezone %q: %w", c.Rental.Timezone, err)
	}

	// Store call defaults
	if c.Store.CallTimeoutSeconds <= 0 {
		c.Store.CallTimeoutSeconds = 10
	}
	if c.Store.ReadRetries < 0 {
		return fmt.Errorf("read retries must not be negative: %d", c.Store.ReadRetries)
	}
	if c.Store.ReadRetries == 0 {
		c.Store.ReadRetries = 2
	}
	if c.Store.RetryDelayMillis <= 0 {
		c.Store.RetryDelayMillis = 200
	}

	// Scheduler defaults
	if c.Scheduler.ReportOverdueRentals == "" {
		c.Scheduler.ReportOverdueRentals = "0 0 8 * * *" // 8 AM business time
	}
	if c.Scheduler.LogDashboardSnapshot == "" {
		c.Scheduler.LogDashboardSnapshot = "0 55 23 * * *" // end of business day
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Location returns the business timezone used to decide "today".
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Rental.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) CallTimeout() time.Duration {
	return time.Duration(c.Store.CallTimeoutSeconds) * time.Second
}

func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Store.RetryDelayMillis) * time.Millisecond
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}
