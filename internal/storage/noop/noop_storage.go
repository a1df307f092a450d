// Package noop is the ObjectStorage used when no archive bucket is
// configured: invoice uploads are parsed but not retained.
package noop

import (
	"context"

	"printstock/internal/domain"
	"printstock/internal/port"
)

// Storage archives nothing and has nothing to serve back.
type Storage struct{}

// NewStorage creates a noop ObjectStorage.
func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) Upload(ctx context.Context, input port.ArchivePutInput) (*port.ArchivePutOutput, error) {
	return &port.ArchivePutOutput{Location: "noop://" + input.Key}, nil
}

func (s *Storage) Delete(ctx context.Context, bucket, key string) error {
	return nil
}

func (s *Storage) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	return "", domain.ErrNotFound
}
