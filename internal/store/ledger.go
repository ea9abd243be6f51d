package store

import (
	"context"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/ledger"
)

// LedgerStore persists the whole ledger as a single document.
type LedgerStore interface {
	// Load replaces the ledger state with the persisted document.
	// A missing document leaves the ledger empty and returns nil.
	// An unreadable or invalid document returns an error wrapping ErrCorrupt
	// and leaves the ledger unchanged.
	Load(ctx context.Context, l *ledger.Ledger) error

	// Save writes the whole ledger, replacing the previous document.
	Save(ctx context.Context, l *ledger.Ledger) error
}
