package attachment

import (
	"context"
	"io"
)

type Repository interface {
	Create(ctx context.Context, img *Image) error
	ListByContract(ctx context.Context, contractID uint64) ([]Image, error)
	DeleteByPath(ctx context.Context, path string) error
}

// Object is what the blob store hands back after an upload.
type Object struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// BlobStore keeps the binary content; rows above only reference it.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader, contentType string) (*Object, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}
