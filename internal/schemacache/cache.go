// Package schemacache keeps fetched base schemas for a bounded time so that
// record mapping does not refetch column metadata on every call.
package schemacache

import (
	"context"
	"sync"
	"time"

	"github.com/faciam-dev/airtab/internal/logger"
	"github.com/faciam-dev/airtab/internal/remoteapi"
	"github.com/faciam-dev/airtab/pkg/metrics"
)

// DefaultTTL bounds how long a fetched base schema is trusted.
const DefaultTTL = 120 * time.Second

// maxBases is the ceiling on distinct cached bases. Crossing it clears the
// whole cache: a crude safety valve against unbounded growth in multi-tenant
// use, deliberately not an LRU.
const maxBases = 100

// Fetcher supplies fresh base schemas; satisfied by remoteapi.Client.
type Fetcher interface {
	FetchBaseSchema(ctx context.Context, baseID string) ([]remoteapi.TableSchema, error)
}

type entry struct {
	fetchedAt time.Time
	tables    []remoteapi.TableSchema
}

// Cache is a per-base TTL cache of remote table schemas. Concurrent callers
// requesting the same base during a fetch each issue their own request; a
// redundant schema fetch is cheap and safe, so there is no single-flight
// de-duplication.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// New builds a cache over the given fetcher. A non-positive ttl falls back to
// DefaultTTL.
func New(fetcher Fetcher, ttl time.Duration) *Cache {
	return NewWithClock(fetcher, ttl, time.Now)
}

// NewWithClock injects the clock, for tests.
func NewWithClock(fetcher Fetcher, ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		now:     now,
		entries: map[string]entry{},
	}
}

// Get returns the cached schemas for a base, fetching when the entry is
// missing or older than the TTL.
func (c *Cache) Get(ctx context.Context, baseID string) ([]remoteapi.TableSchema, error) {
	c.mu.Lock()
	e, ok := c.entries[baseID]
	fresh := ok && c.now().Sub(e.fetchedAt) < c.ttl
	c.mu.Unlock()
	if fresh {
		metrics.SchemaCacheHits.Inc()
		return e.tables, nil
	}
	metrics.SchemaCacheMisses.Inc()

	tables, err := c.fetcher.FetchBaseSchema(ctx, baseID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, cached := c.entries[baseID]; !cached && len(c.entries) >= maxBases {
		logger.L.Warnw("schema cache exceeded base ceiling, clearing all entries",
			"bases", len(c.entries), "ceiling", maxBases)
		metrics.SchemaCacheClears.Inc()
		c.entries = map[string]entry{}
	}
	c.entries[baseID] = entry{fetchedAt: c.now(), tables: tables}
	c.mu.Unlock()
	return tables, nil
}

// Table resolves one table of a base by remote table id.
func (c *Cache) Table(ctx context.Context, baseID, tableID string) (*remoteapi.TableSchema, bool, error) {
	tables, err := c.Get(ctx, baseID)
	if err != nil {
		return nil, false, err
	}
	for i := range tables {
		if tables[i].ID == tableID || tables[i].Name == tableID {
			return &tables[i], true, nil
		}
	}
	return nil, false, nil
}
