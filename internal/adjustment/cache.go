package adjustment

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	cache "github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"
)

// DefaultTTL is used when the cache is created with a non-positive TTL
const DefaultTTL = 10 * time.Minute

// TableCache loads jockey tables from YAML files and keeps them for a TTL,
// keyed by path. An entry is dropped early when its file changes on disk.
type TableCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

type cachedTables struct {
	tables  Tables
	modTime time.Time
}

// NewTableCache creates a new table cache
func NewTableCache(ttl time.Duration) *TableCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TableCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Load returns the tables stored at path. cached reports whether the
// result came from the cache.
func (tc *TableCache) Load(path string) (tables Tables, cached bool, err error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		tc.invalidate(path)
		return nil, false, fmt.Errorf("failed to read jockey table: %w", err)
	}

	if v, found := tc.cache.Get(path); found {
		if entry, ok := v.(cachedTables); ok && entry.modTime.Equal(info.ModTime()) {
			tc.hitCount++
			return entry.tables, true, nil
		}
		tc.invalidate(path)
	}
	tc.missCount++

	tables, err = LoadFile(path)
	if err != nil {
		return nil, false, err
	}
	tc.cache.Set(path, cachedTables{tables: tables, modTime: info.ModTime()}, tc.ttl)
	return tables, false, nil
}

func (tc *TableCache) invalidate(path string) {
	tc.cache.Delete(path)
}

// Stats returns the cache hit and miss counts
func (tc *TableCache) Stats() (hits, misses uint64) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.hitCount, tc.missCount
}

// LoadFile reads a track -> jockey -> stats YAML document
func LoadFile(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jockey table: %w", err)
	}
	return Parse(data)
}

// Parse decodes a jockey table document. Jockey names are stored without
// whitespace so they compare against normalized card names.
func Parse(data []byte) (Tables, error) {
	var raw map[string]map[string]JockeyStats
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse jockey table: %w", err)
	}

	tables := make(Tables, len(raw))
	for track, jockeys := range raw {
		table := make(Table, len(jockeys))
		for name, stats := range jockeys {
			key := stripSpace(name)
			if key == "" {
				continue
			}
			if stats.Win < 0 || stats.Quinella < 0 || stats.Trio < 0 {
				return nil, fmt.Errorf("jockey %q at %s has a negative rate", name, track)
			}
			table[key] = stats
		}
		tables[strings.TrimSpace(track)] = table
	}
	return tables, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
