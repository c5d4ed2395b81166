package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/repository"
)

// SnapshotCache is a read-through cache over the full ledger. Reads within
// the TTL share one snapshot; mutating operations call Invalidate or Refresh
// as part of their own contract so read-after-write sees the new data.
type SnapshotCache struct {
	gateway repository.LedgerGateway
	ttl     time.Duration

	mu   sync.Mutex
	snap *entity.LedgerSnapshot

	now func() time.Time
}

// NewSnapshotCache creates a snapshot cache with the given TTL.
func NewSnapshotCache(gateway repository.LedgerGateway, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		gateway: gateway,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached snapshot, fetching a fresh one when the cache is
// empty or older than the TTL.
func (c *SnapshotCache) Get(ctx context.Context) (*entity.LedgerSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && c.now().Sub(c.snap.FetchedAt) < c.ttl {
		return c.snap, nil
	}
	return c.fetchLocked(ctx)
}

// Refresh discards the cached snapshot and fetches a fresh one. Used
// immediately after any write so numbering and status reads see it.
func (c *SnapshotCache) Refresh(ctx context.Context) (*entity.LedgerSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchLocked(ctx)
}

// Invalidate drops the cached snapshot without fetching.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *SnapshotCache) fetchLocked(ctx context.Context) (*entity.LedgerSnapshot, error) {
	rows, err := c.gateway.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	snap := &entity.LedgerSnapshot{FetchedAt: c.now()}
	if len(rows) > 0 {
		snap.Header = rows[0]
		snap.Rows = rows[1:]
	}
	c.snap = snap
	return snap, nil
}
