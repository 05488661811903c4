// Package attachments stores case-sheet files and resolves their public URLs.
package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidName = errors.New("invalid attachment name")
	ErrForeignURL  = errors.New("url does not belong to this store")
)

// Store persists files under a name and serves them from a public URL.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// CaseSheetName returns a unique object name for a booking's case sheet.
func CaseSheetName(bookingID int, ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return fmt.Sprintf("casesheet-%d-%s%s", bookingID, uuid.NewString(), ext)
}

func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// NameFromURL extracts the object name from a URL produced under baseURL.
func NameFromURL(baseURL, publicURL string) (string, error) {
	base := strings.TrimSuffix(baseURL, "/") + "/"
	if !strings.HasPrefix(publicURL, base) {
		return "", ErrForeignURL
	}

	rest := strings.TrimPrefix(publicURL, base)
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	name, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}

	if err = ValidateName(name); err != nil {
		return "", err
	}

	return name, nil
}

// JoinURL appends name to baseURL.
func JoinURL(baseURL, name string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + url.PathEscape(name)
}
