// Package adjustment derives the per-entrant adjustment signal from
// per-track jockey statistics.
package adjustment

import (
	"sort"
	"strings"
)

const (
	winWeight      = 0.45
	quinellaWeight = 0.35
	trioWeight     = 0.20
	pointsDivisor  = 4.0

	// prefixRunes is how much of a card name is matched against the table
	prefixRunes = 3
)

// JockeyStats holds a jockey's strike rates at one track, in percent
type JockeyStats struct {
	Win      float64 `yaml:"win" json:"win"`
	Quinella float64 `yaml:"quinella" json:"quinella"`
	Trio     float64 `yaml:"trio" json:"trio"`
}

// Points converts strike rates into adjustment points
func (s JockeyStats) Points() float64 {
	return (s.Win*winWeight + s.Quinella*quinellaWeight + s.Trio*trioWeight) / pointsDivisor
}

// Table maps a jockey's full name to their stats at one track
type Table map[string]JockeyStats

// Tables maps a track name to its jockey table
type Tables map[string]Table

var nameMarkers = strings.NewReplacer(
	"◀", "", "◁", "", "▶", "", "▷", "",
	"(", "", ")", "", "（", "", "）", "",
)

// NormalizeName strips whitespace, weight-allowance markers and parentheses
// and returns the first three characters of what is left.
func NormalizeName(name string) string {
	stripped := nameMarkers.Replace(stripSpace(name))

	runes := []rune(stripped)
	if len(runes) > prefixRunes {
		runes = runes[:prefixRunes]
	}
	return string(runes)
}

// Lookup finds the jockey whose full name starts with the normalized
// prefix of name. Several matches resolve to the lexicographically first
// full name. An empty prefix never matches.
func (t Table) Lookup(name string) (JockeyStats, string, bool) {
	prefix := NormalizeName(name)
	if prefix == "" {
		return JockeyStats{}, "", false
	}

	var matches []string
	for full := range t {
		if strings.HasPrefix(full, prefix) {
			matches = append(matches, full)
		}
	}
	if len(matches) == 0 {
		return JockeyStats{}, "", false
	}
	sort.Strings(matches)
	return t[matches[0]], matches[0], true
}

// Points returns the adjustment points for a jockey at a track, or 0 when
// the track or jockey is unknown.
func (ts Tables) Points(track, jockey string) float64 {
	table, ok := ts[track]
	if !ok {
		return 0
	}
	stats, _, ok := table.Lookup(jockey)
	if !ok {
		return 0
	}
	return stats.Points()
}
