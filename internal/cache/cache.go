package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/akireev/deckwise/internal/analyze"
)

// ReportCache keeps finished reports keyed by document content hash, so
// re-uploading an identical document returns the stored report instead of
// burning backend tokens again.
type ReportCache struct {
	c *gocache.Cache
}

func NewReportCache(ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ReportCache{
		c: gocache.New(ttl, ttl/2),
	}
}

func (rc *ReportCache) Get(contentHash string) (analyze.Report, bool) {
	v, ok := rc.c.Get(contentHash)
	if !ok {
		return analyze.Report{}, false
	}
	rep, ok := v.(analyze.Report)
	return rep, ok
}

func (rc *ReportCache) Put(contentHash string, rep analyze.Report) {
	rc.c.SetDefault(contentHash, rep)
}
