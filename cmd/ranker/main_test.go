package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ranker dev")
}

func TestConfigValidateCommand(t *testing.T) {
	out, err := execute(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration OK")
	assert.Contains(t, out, "normalization=standard")
}

func TestConfigValidateRejectsBadLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "verbose", "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogLevel")
}

func TestEvaluateCommandJSON(t *testing.T) {
	out, err := execute(t, "--log-level", "error", "evaluate", "testdata/card.yaml", "--format", "json")
	require.NoError(t, err)

	var ev struct {
		Date    string `json:"date"`
		Summary struct {
			Total    int `json:"total"`
			Ranked   int `json:"ranked"`
			Excluded int `json:"excluded"`
		} `json:"summary"`
		Races []struct {
			Name   string `json:"name"`
			Result struct {
				Decision struct {
					Kind string `json:"kind"`
				} `json:"decision"`
				TopN []struct {
					Slot int `json:"slot"`
				} `json:"top_n"`
			} `json:"result"`
		} `json:"races"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ev))

	assert.Equal(t, "2026-10-18", ev.Date)
	assert.Equal(t, 2, ev.Summary.Total)
	assert.Equal(t, 1, ev.Summary.Ranked)
	assert.Equal(t, 1, ev.Summary.Excluded)
	require.Len(t, ev.Races, 2)
	assert.Equal(t, "Excluded", ev.Races[0].Result.Decision.Kind)
	assert.Equal(t, "Ranked", ev.Races[1].Result.Decision.Kind)

	slots := make([]int, 0, len(ev.Races[1].Result.TopN))
	for _, e := range ev.Races[1].Result.TopN {
		slots = append(slots, e.Slot)
	}
	assert.Equal(t, []int{8, 7, 6, 5, 4}, slots)
}

func TestEvaluateCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	out, err := execute(t, "--log-level", "error", "evaluate", "testdata/card.yaml", "--format", "yaml", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "佐賀", doc["track"])
}

func TestEvaluateCommandMissingCard(t *testing.T) {
	_, err := execute(t, "--log-level", "error", "evaluate", "testdata/missing.yaml", "--format", "json", "--output", "")
	assert.Error(t, err)
}

func TestSettleCommand(t *testing.T) {
	out, err := execute(t, "--log-level", "error", "settle", "testdata/card.yaml",
		"--results", "testdata/results.yaml", "--force", "--format", "json", "--output", "")
	require.NoError(t, err)

	var rep struct {
		Settlement struct {
			Unit  string `json:"unit"`
			Races []struct {
				Name       string `json:"name"`
				SkipReason string `json:"skip_reason"`
			} `json:"races"`
		} `json:"settlement"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	assert.Equal(t, "100", rep.Settlement.Unit)
	require.Len(t, rep.Settlement.Races, 2)
	assert.Equal(t, "not ranked", rep.Settlement.Races[0].SkipReason)
}

func TestSettleCommandRequiresResults(t *testing.T) {
	_, err := execute(t, "--log-level", "error", "settle", "testdata/card.yaml", "--results", "", "--format", "json", "--output", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--results")
}
