package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DyutiRaman/psyche-connect-app/internal/attachments"
)

// Store keeps files in a local directory that the HTTP server exposes
// under baseURL (for example http://localhost:5000/uploads).
type Store struct {
	dir     string
	baseURL string
}

func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &Store{dir: dir, baseURL: baseURL}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	const op = "attachments.disk.Save"

	if err := attachments.ValidateName(name); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err = io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return attachments.JoinURL(s.baseURL, name), nil
}

// Delete removes the file behind publicURL. A missing file is not an error.
func (s *Store) Delete(_ context.Context, publicURL string) error {
	const op = "attachments.disk.Delete"

	name, err := attachments.NameFromURL(s.baseURL, publicURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
