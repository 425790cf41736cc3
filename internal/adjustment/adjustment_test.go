package adjustment

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJockeyStatsPoints(t *testing.T) {
	s := JockeyStats{Win: 20, Quinella: 35, Trio: 50}
	assert.InDelta(t, 7.8125, s.Points(), 1e-9)
	assert.Equal(t, 0.0, JockeyStats{}.Points())
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"山口 勲", "山口勲"},
		{"◀山口勲", "山口勲"},
		{"▷ 飛田愛斗", "飛田愛"},
		{"(山口)真吾", "山口真"},
		{"（御神本）", "御神本"},
		{"ab", "ab"},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestTableLookup(t *testing.T) {
	tables, err := LoadFile("testdata/jockeys.yaml")
	require.NoError(t, err)
	saga := tables["佐賀"]
	require.Len(t, saga, 3)

	stats, full, ok := saga.Lookup("◀山口勲")
	require.True(t, ok)
	assert.Equal(t, "山口勲", full)
	assert.Equal(t, 20.0, stats.Win)

	// "山口" matches both; the lexicographically first full name wins
	_, full, ok = saga.Lookup("山口")
	require.True(t, ok)
	assert.Equal(t, "山口勲", full)

	_, _, ok = saga.Lookup("鮫島")
	assert.False(t, ok)

	_, _, ok = saga.Lookup("")
	assert.False(t, ok)
}

func TestTablesPoints(t *testing.T) {
	tables, err := LoadFile("testdata/jockeys.yaml")
	require.NoError(t, err)

	assert.InDelta(t, 7.8125, tables.Points("佐賀", "山口 勲"), 1e-9)
	assert.Equal(t, 0.0, tables.Points("佐賀", "鮫島克駿"))
	assert.Equal(t, 0.0, tables.Points("高知", "山口勲"))
}

func TestParseRejectsNegativeRates(t *testing.T) {
	_, err := Parse([]byte("佐賀:\n  山口勲:\n    win: -1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("佐賀: [1, 2"))
	assert.Error(t, err)
}

func TestTableCacheHitAndMiss(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jockeys.yaml")
	data, err := os.ReadFile("testdata/jockeys.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	tc := NewTableCache(time.Hour)

	first, cached, err := tc.Load(path)
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := tc.Load(path)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)

	hits, misses := tc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	require.NoError(t, os.Remove(path))
	_, _, err = tc.Load(path)
	assert.Error(t, err)
	assert.Equal(t, 0, tc.cache.ItemCount())
}

func TestTableCacheReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jockeys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("佐賀:\n  山口勲: {win: 20, quinella: 30, trio: 40}\n"), 0o600))

	tc := NewTableCache(time.Hour)
	first, _, err := tc.Load(path)
	require.NoError(t, err)
	assert.Contains(t, first["佐賀"], "山口勲")

	require.NoError(t, os.WriteFile(path, []byte("佐賀:\n  飛田愛斗: {win: 10, quinella: 20, trio: 30}\n"), 0o600))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	second, cached, err := tc.Load(path)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.NotContains(t, second["佐賀"], "山口勲")
	assert.Contains(t, second["佐賀"], "飛田愛斗")

	_, misses := tc.Stats()
	assert.Equal(t, uint64(2), misses)
}

func TestNewTableCacheDefaultTTL(t *testing.T) {
	tc := NewTableCache(0)
	assert.Equal(t, DefaultTTL, tc.ttl)
}
