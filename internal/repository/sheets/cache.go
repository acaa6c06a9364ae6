package sheets

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CachedRepository keeps the last pull of each range for a TTL. Appends to a
// sheet drop every cached range of that sheet. A non-positive TTL disables
// caching.
type CachedRepository struct {
	next   Repository
	cache  *cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRepository wraps next with a read cache.
func NewCachedRepository(next Repository, ttl time.Duration, logger *zap.Logger) *CachedRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	cleanup := 2 * ttl
	if ttl <= 0 {
		cleanup = 0
	}

	return &CachedRepository{
		next:   next,
		cache:  cache.New(ttl, cleanup),
		ttl:    ttl,
		logger: logger,
	}
}

// ReadRange serves the range from cache when fresh, otherwise reads through.
// Failed reads are not cached.
func (r *CachedRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if r.ttl > 0 {
		if v, ok := r.cache.Get(sheetRange); ok {
			r.logger.Debug("sheet cache hit", zap.String("range", sheetRange))
			return v.([][]interface{}), nil
		}
	}

	values, err := r.next.ReadRange(ctx, sheetRange)
	if err != nil {
		return nil, err
	}

	if r.ttl > 0 {
		r.cache.Set(sheetRange, values, cache.DefaultExpiration)
	}
	return values, nil
}

// WriteRow appends through and invalidates the written sheet on success.
func (r *CachedRepository) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if err := r.next.WriteRow(ctx, sheetRange, values); err != nil {
		return err
	}
	r.Invalidate(SheetOf(sheetRange))
	return nil
}

// Invalidate drops every cached range of sheet.
func (r *CachedRepository) Invalidate(sheet string) {
	for key := range r.cache.Items() {
		if SheetOf(key) == sheet {
			r.cache.Delete(key)
		}
	}
	r.logger.Debug("sheet cache invalidated", zap.String("sheet", sheet))
}

// Purge drops the whole cache.
func (r *CachedRepository) Purge() {
	r.cache.Flush()
}
