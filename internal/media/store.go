// Package media stores user uploads under a root directory and maps stored
// paths to public URLs.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ProfileDir is the subdirectory profile pictures are written to.
const ProfileDir = "profiles"

// Store writes files below Root and serves them under URL.
type Store struct {
	Root string
	URL  string
}

// NewStore constructs a Store. url is normalised to end with a slash.
func NewStore(root, url string) *Store {
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return &Store{Root: root, URL: url}
}

// Save writes data to dir/<uuid><ext>, where ext comes from the sniffed content
// type rather than the client-supplied name, and returns the path relative to
// Root using forward slashes.
func (s *Store) Save(ctx context.Context, dir string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := mimetype.Detect(data).Extension()
	rel := path.Join(dir, uuid.NewString()+ext)
	full := filepath.Join(s.Root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("media.Store.Save: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("media.Store.Save: %w", err)
	}
	return rel, nil
}

// Remove deletes a previously saved file. Removing a missing file is not an
// error; paths escaping Root are refused.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	clean := path.Clean("/" + rel)[1:]
	if clean != rel {
		return fmt.Errorf("media.Store.Remove: refusing path %q", rel)
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("media.Store.Remove: %w", err)
	}
	return nil
}

// URLFor returns the public URL of a stored path, or "" when rel is empty.
func (s *Store) URLFor(rel string) string {
	if rel == "" {
		return ""
	}
	return s.URL + rel
}
