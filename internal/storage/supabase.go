package storage

import (
	"context"
	"fmt"
	"io"

	storage_go "github.com/supabase-community/storage-go"
	supa "github.com/supabase-community/supabase-go"
)

// SupabaseStorage keeps images in a public Supabase Storage bucket.
type SupabaseStorage struct {
	client *supa.Client
	bucket string
}

func NewSupabaseStorage(client *supa.Client, bucket string) *SupabaseStorage {
	return &SupabaseStorage{client: client, bucket: bucket}
}

func (s *SupabaseStorage) SaveFile(ctx context.Context, key, contentType string, reader io.Reader) (string, error) {
	upsert := true
	_, err := s.client.Storage.UploadFile(s.bucket, key, reader, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, s.bucket, err)
	}
	return s.client.Storage.GetPublicUrl(s.bucket, key).SignedURL, nil
}

func (s *SupabaseStorage) ReadFile(key string) (io.ReadCloser, error) {
	return nil, ErrNotSupported
}

func (s *SupabaseStorage) DeleteFile(ctx context.Context, key string) error {
	if _, err := s.client.Storage.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("failed to delete %s from bucket %s: %w", key, s.bucket, err)
	}
	return nil
}
