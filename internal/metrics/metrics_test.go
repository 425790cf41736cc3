package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordRaceEvaluated(t *testing.T) {
	InitRegistry()
	counter := RacesEvaluatedTotal.WithLabelValues("Excluded", "LowSignal")
	before := testutil.ToFloat64(counter)

	RecordRaceEvaluated("Excluded", "LowSignal", 0.0002)
	RecordRaceEvaluated("Excluded", "LowSignal", 0.0001)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordEstimationTier(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(EstimationTierTotal.WithLabelValues("B"))

	RecordEstimationTier("B")
	assert.Equal(t, before+1, testutil.ToFloat64(EstimationTierTotal.WithLabelValues("B")))
}

func TestRecordCompetitiveness(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(FocusRacesTotal)

	RecordCompetitiveness(77.6, true)
	RecordCompetitiveness(12.0, false)

	assert.Equal(t, before+1, testutil.ToFloat64(FocusRacesTotal))
}

func TestRecordBoxSettled(t *testing.T) {
	InitRegistry()
	investBefore := testutil.ToFloat64(SettlementInvestTotal)
	payoutBefore := testutil.ToFloat64(SettlementPayoutTotal)
	hitsBefore := testutil.ToFloat64(SettlementHitsTotal)

	RecordBoxSettled(1000, 2350, true)
	RecordBoxSettled(1000, 0, false)
	UpdateSettlementROI(117.5)

	assert.Equal(t, investBefore+2000, testutil.ToFloat64(SettlementInvestTotal))
	assert.Equal(t, payoutBefore+2350, testutil.ToFloat64(SettlementPayoutTotal))
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(SettlementHitsTotal))
	assert.Equal(t, 117.5, testutil.ToFloat64(SettlementROIPercent))
}

func TestWriteTextfile(t *testing.T) {
	InitRegistry()
	RecordRaceRejected()

	path := filepath.Join(t.TempDir(), "race_ranker.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "race_ranker_races_rejected_total")
	assert.Contains(t, string(data), "race_ranker_settlement_roi_percent")
}

func TestWriteTextfileBadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.Error(t, err)
}
