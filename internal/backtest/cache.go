package backtest

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/footy-value/internal/metrics"
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/strength"
)

// strengthCache memoises strength tables per training window, so the
// accuracy and staking runs over one season estimate once.
type strengthCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

func newStrengthCache(ttl time.Duration) *strengthCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &strengthCache{cache: cache.New(ttl, ttl*2), ttl: ttl}
}

func (c *strengthCache) get(key string) (*strength.Table, bool) {
	if v, found := c.cache.Get(key); found {
		if table, ok := v.(*strength.Table); ok {
			metrics.RecordStrengthCacheLookup(true)
			return table, true
		}
	}
	metrics.RecordStrengthCacheLookup(false)
	return nil, false
}

func (c *strengthCache) set(key string, table *strength.Table) {
	c.cache.Set(key, table, c.ttl)
}

// strengthCacheKey identifies a training window by its cutoff and contents.
func strengthCacheKey(cutoff time.Time, train []models.Match) string {
	h := sha256.New()
	var buf [8]byte
	for _, m := range train {
		binary.BigEndian.PutUint64(buf[:], uint64(m.Date.Unix()))
		h.Write(buf[:])
		h.Write([]byte(m.HomeTeam))
		h.Write([]byte{0})
		h.Write([]byte(m.AwayTeam))
		h.Write([]byte{0, byte(m.HomeGoals), byte(m.AwayGoals)})
	}
	return fmt.Sprintf("%s:%d:%x", cutoff.Format("2006-01-02"), len(train), h.Sum(nil))
}
