package fixture

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// MockBinaryName is the synthetic download target created on first run.
	MockBinaryName = "mock_binary"
	// MockBinarySize is 2 MiB, large enough to exercise chunked downloads.
	MockBinarySize = 2 * 1024 * 1024
)

// Store owns the fixture root directory. Files below the root are served
// verbatim for requests that do not match a failure scenario.
type Store struct {
	l    *zap.Logger
	root string
}

// NewStore creates the fixture root if it does not exist yet.
func NewStore(l *zap.Logger, root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create fixture root")
	}
	return &Store{
		l:    l.Named("fixtures"),
		root: root,
	}, nil
}

// Root returns the fixture root directory.
func (s *Store) Root() string {
	return s.root
}

// EnsureMockBinary writes the zero-filled mock binary once. An existing
// file is left untouched, whatever its size, so repeated startups are
// cheap and externally replaced fixtures survive.
func (s *Store) EnsureMockBinary() error {
	path := filepath.Join(s.root, MockBinaryName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to stat mock binary")
	}
	s.l.Info("creating mock binary fixture",
		zap.String("path", path),
		zap.Int("size", MockBinarySize),
	)
	if err := os.WriteFile(path, make([]byte, MockBinarySize), 0644); err != nil {
		return errors.Wrap(err, "failed to write mock binary")
	}
	return nil
}

// Handler serves files below the fixture root. Path resolution and
// directory traversal protection come from net/http.
func (s *Store) Handler() http.Handler {
	return http.FileServer(http.Dir(s.root))
}
