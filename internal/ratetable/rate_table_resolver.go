package ratetable

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	ratetableerrors "go-payroll/internal/ratetable/errors"
)

// Resolver answers "which rate table is effective on this date" with an
// in-process cache. The cache has an injected TTL and an explicit
// Invalidate call; concurrent cold lookups for the same key are collapsed
// through singleflight so the repository sees one query.
type Resolver struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	tables   []RateTable
	loadedAt time.Time
}

func NewResolver(repo Repository, ttl time.Duration) *Resolver {
	return &Resolver{
		repo:    repo,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(country, rateType string) string {
	return fmt.Sprintf("%s|%s", country, rateType)
}

// Effective returns the rate table covering the given date, newest
// effective_from first. ErrNoActiveRateTable when nothing covers it.
func (r *Resolver) Effective(ctx context.Context, country, rateType string, on time.Time) (*RateTable, error) {
	tables, err := r.load(ctx, country, rateType)
	if err != nil {
		return nil, err
	}

	// tables are ordered effective_from DESC, so the first cover wins
	for i := range tables {
		if tables[i].Covers(on) {
			return &tables[i], nil
		}
	}

	return nil, ratetableerrors.ErrNoActiveRateTable
}

// Invalidate drops the cached tables for one (country, rateType) pair.
// Call it after writing a new table version.
func (r *Resolver) Invalidate(country, rateType string) {
	r.mu.Lock()
	delete(r.entries, cacheKey(country, rateType))
	r.mu.Unlock()
}

func (r *Resolver) load(ctx context.Context, country, rateType string) ([]RateTable, error) {
	key := cacheKey(country, rateType)

	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()
	if ok && r.now().Sub(entry.loadedAt) < r.ttl {
		return entry.tables, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		tables, err := r.repo.FindByCountryAndType(ctx, country, rateType)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.entries[key] = cacheEntry{tables: tables, loadedAt: r.now()}
		r.mu.Unlock()
		return tables, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]RateTable), nil
}
