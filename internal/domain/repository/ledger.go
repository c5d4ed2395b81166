package repository

import (
	"context"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
)

// LedgerGateway is the row-oriented remote store behind the invoicing
// ledger. The store offers no transactions and no locking; every operation
// is fallible (network, auth) and callers surface failures as warnings
// rather than retrying.
//
// Coordinates are 1-based sheet positions: row 1 is the header row.
type LedgerGateway interface {
	// ReadAll returns every row in the sheet, header row included.
	ReadAll(ctx context.Context) ([][]string, error)

	// AppendRows appends the given rows after the last non-empty row.
	// Atomicity across rows is whatever the store provides.
	AppendRows(ctx context.Context, rows [][]string) error

	// UpdateCell overwrites a single cell at the 1-based row and column.
	UpdateCell(ctx context.Context, row, col int, value string) error

	// EnsureHeader overwrites row 1 with expected when the current header
	// differs, evolving older sheets forward to the current schema.
	EnsureHeader(ctx context.Context, expected []string) error
}

// SnapshotProvider serves ledger snapshots from a TTL cache. Get may return
// stale data within the TTL; Refresh forces a fetch so a caller sees its own
// write; Invalidate drops the cache without fetching.
type SnapshotProvider interface {
	Get(ctx context.Context) (*entity.LedgerSnapshot, error)
	Refresh(ctx context.Context) (*entity.LedgerSnapshot, error)
	Invalidate()
}
