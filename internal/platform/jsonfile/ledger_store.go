package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/ledger"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/store"
)

// LedgerStore implements the store.LedgerStore interface with a single
// document at <root>/courses.json.
type LedgerStore struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewLedgerStore creates a LedgerStore for <root>/courses.json.
func NewLedgerStore(fsys afero.Fs, root string, logger *slog.Logger) *LedgerStore {
	if fsys == nil {
		panic("fs cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LedgerStore{
		fs:     fsys,
		path:   filepath.Join(root, LedgerFile),
		logger: logger.With(slog.String("component", "ledger_store")),
	}
}

var _ store.LedgerStore = (*LedgerStore)(nil)

// Load implements store.LedgerStore.Load
func (s *LedgerStore) Load(ctx context.Context, l *ledger.Ledger) error {
	f, err := s.fs.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.InfoContext(ctx, "no ledger document, starting empty", slog.String("path", s.path))
			return nil
		}
		return store.NewStoreError("ledger", "load", "failed to open "+s.path, err)
	}
	defer func() { _ = f.Close() }()

	if err := l.Load(f); err != nil {
		return store.NewStoreError("ledger", "load", "failed to read "+s.path,
			fmt.Errorf("%w: %w", store.ErrCorrupt, err))
	}

	s.logger.InfoContext(ctx, "ledger loaded",
		slog.String("path", s.path),
		slog.Int("course_count", l.Len()))
	return nil
}

// Save implements store.LedgerStore.Save
func (s *LedgerStore) Save(ctx context.Context, l *ledger.Ledger) error {
	if err := writeFile(s.fs, s.path, func(w io.Writer) error { return l.Save(w) }); err != nil {
		return store.NewStoreError("ledger", "save", "failed to write "+s.path, err)
	}

	s.logger.InfoContext(ctx, "ledger saved",
		slog.String("path", s.path),
		slog.Int("course_count", l.Len()))
	return nil
}
