package port

import (
	"context"
	"io"
)

// ArchivePutInput describes an uploaded invoice file to archive.
type ArchivePutInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ArchivePutOutput holds the result of a successful archive write.
type ArchivePutOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the archive of uploaded invoice files: write on
// session start, presign for later viewing, delete when a session is
// abandoned.
type ObjectStorage interface {
	Upload(ctx context.Context, input ArchivePutInput) (*ArchivePutOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
