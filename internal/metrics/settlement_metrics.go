package metrics

import "github.com/prometheus/client_golang/prometheus"

// Settlement counters, in stake currency units
var (
	SettlementInvestTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlement_invest_total",
		Help:      "Total amount invested in focus-race trio boxes",
	})
	SettlementPayoutTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlement_payout_total",
		Help:      "Total amount paid out by focus-race trio boxes",
	})
	SettlementHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlement_hits_total",
		Help:      "Total number of trio boxes that hit",
	})
)

// SettlementROIPercent is the ROI of the last settlement run.
var SettlementROIPercent = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "settlement_roi_percent",
	Help:      "Return on investment of the last settlement run in percent",
})

// RecordBoxSettled records one settled trio box.
func RecordBoxSettled(invest, payout float64, hit bool) {
	SettlementInvestTotal.Add(invest)
	SettlementPayoutTotal.Add(payout)
	if hit {
		SettlementHitsTotal.Inc()
	}
}

// UpdateSettlementROI sets the ROI gauge.
func UpdateSettlementROI(percent float64) {
	SettlementROIPercent.Set(percent)
}
