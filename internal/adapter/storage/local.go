package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/attachment"
)

var _ attachment.BlobStore = (*Local)(nil)

// Local keeps objects on disk under root and serves them from baseURL.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir %s: %w", root, err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) Put(ctx context.Context, path string, r io.Reader, _ string) (*attachment.Object, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return nil, err
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), full)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	return &attachment.Object{Path: path, URL: l.URL(path), Size: n}, nil
}

func (l *Local) Delete(ctx context.Context, path string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFound("object")
		}
		return err
	}
	return nil
}

func (l *Local) URL(path string) string {
	return l.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// resolve maps an object key to a file under root, refusing keys that
// would escape it.
func (l *Local) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if clean == string(filepath.Separator) || strings.Contains(path, "..") {
		return "", apperr.Invalid("path", "is invalid")
	}
	return filepath.Join(l.root, clean), nil
}
