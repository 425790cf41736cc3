package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-ranker/internal/adjustment"
	"github.com/yourusername/race-ranker/internal/logger"
	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/racecard"
)

// CardOptions configure how cards are turned into engine inputs
type CardOptions struct {
	LowInformationKeywords []string
	AdjustmentEnabled      bool
	AdjustmentTablePath    string
	AdjustmentCacheTTL     time.Duration
}

// CardService evaluates whole race cards
type CardService struct {
	evaluator *Evaluator
	validator *DataValidator
	opts      CardOptions
	tables    *adjustment.TableCache
	log       *logger.RaceLogger
}

// NewCardService creates a card service on top of a batch evaluator
func NewCardService(evaluator *Evaluator, log *logrus.Logger, opts CardOptions) *CardService {
	s := &CardService{
		evaluator: evaluator,
		validator: NewDataValidator(log),
		opts:      opts,
		log:       logger.NewRaceLogger(log),
	}
	if opts.AdjustmentEnabled {
		s.tables = adjustment.NewTableCache(opts.AdjustmentCacheTTL)
	}
	return s
}

// Prepare converts a card into engine inputs, applying jockey adjustments
// when enabled.
func (s *CardService) Prepare(card *racecard.Card) ([]models.RaceInput, error) {
	var src racecard.AdjustmentSource
	if s.tables != nil {
		tables, cached, err := s.tables.Load(s.opts.AdjustmentTablePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load jockey adjustments: %w", err)
		}
		s.log.LogAdjustmentTable(s.opts.AdjustmentTablePath, len(tables[card.Track]), cached)
		src = tables
	}

	inputs := racecard.NewPreparer(s.opts.LowInformationKeywords, src).Prepare(card)
	if err := s.validator.ValidateRaceUniqueness(inputs); err != nil {
		return nil, err
	}
	for _, in := range inputs {
		s.validator.ValidateRace(in)
	}
	return inputs, nil
}

// EvaluateCard prepares and evaluates every race on a card
func (s *CardService) EvaluateCard(ctx context.Context, card *racecard.Card) ([]RaceOutcome, error) {
	inputs, err := s.Prepare(card)
	if err != nil {
		return nil, err
	}
	return s.evaluator.EvaluateAll(ctx, inputs)
}
