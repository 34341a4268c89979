package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the destination for uploaded media. Put returns the public
// download URL for the stored object.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, key string) error
}

// DiskStore keeps objects on the local filesystem and serves them as
// static files under BaseURL.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *DiskStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.BaseURL + "/" + key, nil
}

func (s *DiskStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

// KeyFromURL maps a public download URL back to its object key, or ""
// when the URL was not issued by this store.
func (s *DiskStore) KeyFromURL(url string) string {
	if !strings.HasPrefix(url, s.BaseURL+"/") {
		return ""
	}
	return strings.TrimPrefix(url, s.BaseURL+"/")
}

// ObjectKey builds a collision-resistant storage key for an upload:
// a timestamp, a random suffix and a sanitized version of the original
// filename, under the properties/ prefix.
func ObjectKey(filename string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("properties/%d-%s-%s", time.Now().UnixMilli(), suffix, SanitizeFilename(filename))
}

// SanitizeFilename replaces every rune other than letters, digits, '.'
// and '-' so the name is safe to embed in a storage key.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
