package storage

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// Config holds storage configuration
type Config struct {
	Type      string // "local" or "supabase"
	UploadDir string // Directory for local storage
	BaseURL   string // Public URL prefix for local images
	Bucket    string // Supabase bucket
}

// New builds the configured backend. client is only used for the
// supabase type.
func New(cfg Config, client *supa.Client) (StorageInterface, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg.BaseURL, cfg.UploadDir)
	case "supabase":
		if client == nil {
			return nil, fmt.Errorf("supabase storage requires a supabase client")
		}
		return NewSupabaseStorage(client, cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
