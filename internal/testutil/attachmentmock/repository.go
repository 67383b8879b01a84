package attachmentmock

import (
	"context"
	"io"

	domain "pawnshop-backoffice/internal/domain/attachment"
)

var (
	_ domain.Repository = (*Repo)(nil)
	_ domain.BlobStore  = (*Blob)(nil)
)

type Repo struct {
	CreateFn         func(ctx context.Context, img *domain.Image) error
	ListByContractFn func(ctx context.Context, contractID uint64) ([]domain.Image, error)
	DeleteByPathFn   func(ctx context.Context, path string) error
}

func (m *Repo) Create(ctx context.Context, img *domain.Image) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, img)
	}
	return nil
}

func (m *Repo) ListByContract(ctx context.Context, contractID uint64) ([]domain.Image, error) {
	if m.ListByContractFn != nil {
		return m.ListByContractFn(ctx, contractID)
	}
	return nil, context.Canceled
}

func (m *Repo) DeleteByPath(ctx context.Context, path string) error {
	if m.DeleteByPathFn != nil {
		return m.DeleteByPathFn(ctx, path)
	}
	return nil
}

// Blob is a function-backed domain.BlobStore. Put drains the reader by
// default and reports its size.
type Blob struct {
	PutFn    func(ctx context.Context, path string, r io.Reader, contentType string) (*domain.Object, error)
	DeleteFn func(ctx context.Context, path string) error
	URLFn    func(path string) string
}

func (m *Blob) Put(ctx context.Context, path string, r io.Reader, contentType string) (*domain.Object, error) {
	if m.PutFn != nil {
		return m.PutFn(ctx, path, r, contentType)
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}
	return &domain.Object{Path: path, URL: m.URL(path), Size: n}, nil
}

func (m *Blob) Delete(ctx context.Context, path string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, path)
	}
	return nil
}

func (m *Blob) URL(path string) string {
	if m.URLFn != nil {
		return m.URLFn(path)
	}
	return "/files/" + path
}
