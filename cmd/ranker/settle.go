package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/race-ranker/internal/report"
	"github.com/yourusername/race-ranker/internal/settlement"
)

// SettleReport pairs an evaluation with its settlement
type SettleReport struct {
	Evaluation report.Evaluation `json:"evaluation" yaml:"evaluation"`
	Settlement settlement.Report `json:"settlement" yaml:"settlement"`
}

func newSettleCmd() *cobra.Command {
	var (
		out         outputFlags
		resultsPath string
		unit        int64
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "settle <card>",
		Short: "Evaluate a card and settle its focus races against results",
		Long: `Evaluates the card, then prices a 5-slot trio box for every focus race
using the published trio refunds. Non-focus races are listed but not invested.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if resultsPath == "" {
				return fmt.Errorf("--results is required")
			}
			results, err := settlement.LoadResults(resultsPath)
			if err != nil {
				return err
			}

			ev, err := evaluateCard(cmd.Context(), args[0], 0)
			if err != nil {
				return err
			}
			if results.Date != ev.Date || results.Track != ev.Track {
				log.WithField("card", ev.Date+" "+ev.Track).
					WithField("results", results.Date+" "+results.Track).
					Warn("Results belong to a different meeting; unmatched races settle as misses")
			}

			if unit <= 0 {
				unit = cfg.Betting.Unit
			}
			settler := settlement.NewSettler(unit, cfg.Betting.Enabled || force, log, metricsEnabled())
			defer flushMetrics()

			return out.write(cmd, SettleReport{
				Evaluation: ev,
				Settlement: settler.Settle(ev.Outputs(), results.ByKey()),
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVarP(&resultsPath, "results", "r", "", "Results file (YAML) with finishing order and trio refunds")
	cmd.Flags().Int64Var(&unit, "unit", 0, "Stake per trio ticket (default from config)")
	cmd.Flags().BoolVar(&force, "force", false, "Settle even when betting is disabled in config")
	return cmd
}
