// Package local provides a filesystem implementation of filestore.Store.
package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/filestore"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store writes artifacts below a root directory.
type Store struct {
	root string
}

var _ filestore.Store = (*Store)(nil)

// New returns a Store rooted at root. An empty root means the working
// directory. The directory itself is created lazily by Put.
func New(root string) (*Store, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "resolve output root", err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string {
	return s.root
}

// Ping checks the root, when it already exists, is a directory.
func (s *Store) Ping(_ context.Context) error {
	fi, err := os.Stat(s.root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return mapError(err, "stat output root")
	case !fi.IsDir():
		return errs.Newf(errs.ErrKindFilesystem, "output root %s is not a directory", s.root)
	}
	return nil
}

// Put writes data to root/key, creating parent directories as needed.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return errs.Wrap(errs.ErrKindTimeout, "write cancelled", err)
	}

	clean, err := filestore.CleanKey(key)
	if err != nil {
		return err
	}
	full := filepath.Join(s.root, filepath.FromSlash(clean))

	if err := os.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
		return mapError(err, "create directory for "+clean)
	}
	if err := os.WriteFile(full, data, filePerm); err != nil {
		return mapError(err, "write "+clean)
	}
	return nil
}

// Location returns the absolute file path for key.
func (s *Store) Location(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// Close is a no-op; files are closed as they are written.
func (s *Store) Close() error {
	return nil
}

// mapError wraps os errors (permissions, disk full, invalid path) as
// filesystem errors.
func mapError(err error, msg string) *errs.Error {
	return errs.Wrap(errs.ErrKindFilesystem, msg, err)
}
