// Package storage keeps uploaded product photos in a directory that the HTTP
// server exposes under a public URL prefix.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"curtain_store/internal/apperr"
)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

type ImageStore interface {
	Upload(ctx context.Context, filename string, r io.Reader, productID string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

type DiskImageStore struct {
	root    string
	baseURL string // e.g. http://localhost:8080/uploads
	maxSize int64
}

func NewDiskImageStore(root, baseURL string, maxSize int64) (*DiskImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskImageStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Upload writes the file under products/<productID or "unassigned">/ with a
// random name and returns its public URL.
func (s *DiskImageStore) Upload(ctx context.Context, filename string, r io.Reader, productID string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", apperr.InvalidArgumentf("unsupported image type %q", ext)
	}

	folder := "unassigned"
	if productID = strings.TrimSpace(productID); productID != "" {
		if strings.ContainsAny(productID, `/\.`) {
			return "", apperr.InvalidArgument("invalid product id")
		}
		folder = productID
	}
	rel := path.Join("products", folder, uuid.NewString()+ext)

	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxSize > 0 && n > s.maxSize {
		err = apperr.InvalidArgumentf("image exceeds %d bytes", s.maxSize)
	}
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		os.Remove(full)
		return "", err
	}

	return s.baseURL + "/" + rel, nil
}

// Delete removes a file previously returned by Upload. Missing files are not
// an error.
func (s *DiskImageStore) Delete(_ context.Context, publicURL string) error {
	rel, ok := strings.CutPrefix(publicURL, s.baseURL+"/")
	if !ok || rel == "" {
		return apperr.InvalidArgument("url does not belong to the image store")
	}
	clean := path.Clean("/" + rel)[1:]
	if clean != rel || !strings.HasPrefix(clean, "products/") {
		return apperr.InvalidArgument("invalid image path")
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
