package racecard

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yourusername/race-ranker/internal/models"
)

// DefaultLowInformationKeywords mark debut races
var DefaultLowInformationKeywords = []string{"新馬"}

// AdjustmentSource supplies adjustment points for a jockey at a track
type AdjustmentSource interface {
	Points(track, jockey string) float64
}

// Preparer turns cards into engine inputs
type Preparer struct {
	keywords    []string
	adjustments AdjustmentSource
}

// NewPreparer creates a preparer. Empty keywords fall back to the
// defaults; adjustments may be nil.
func NewPreparer(keywords []string, adjustments AdjustmentSource) *Preparer {
	if len(keywords) == 0 {
		keywords = DefaultLowInformationKeywords
	}
	return &Preparer{keywords: keywords, adjustments: adjustments}
}

// RaceKey is the deterministic identifier of a race on a card
func RaceKey(date, track string, number int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%s/%d", date, track, number)))
}

// IsLowInformation reports whether a race name contains any of the keywords
func (p *Preparer) IsLowInformation(name string) bool {
	normalized := strings.Join(strings.Fields(strings.ReplaceAll(name, "　", " ")), " ")
	for _, kw := range p.keywords {
		if kw != "" && strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Prepare converts every race on the card into an engine input, in card
// order.
func (p *Preparer) Prepare(card *Card) []models.RaceInput {
	inputs := make([]models.RaceInput, 0, len(card.Races))
	for _, race := range card.Races {
		inputs = append(inputs, p.prepareRace(card, race))
	}
	return inputs
}

func (p *Preparer) prepareRace(card *Card, race Race) models.RaceInput {
	in := models.RaceInput{
		Key:      RaceKey(card.Date, card.Track, race.Number).String(),
		Name:     race.Name,
		Entrants: make([]models.EntrantInput, 0, len(race.Entrants)),
	}
	if race.LowInformation != nil {
		in.LowInformation = *race.LowInformation
	} else {
		in.LowInformation = p.IsLowInformation(race.Name)
	}

	for _, e := range race.Entrants {
		in.Entrants = append(in.Entrants, models.EntrantInput{
			Slot:       e.Slot,
			Name:       e.Name,
			Primary:    copyFloat(e.Primary),
			Secondary:  copyFloat(e.Secondary),
			Adjustment: p.adjustment(card.Track, e),
		})
	}
	return in
}

// adjustment prefers the value printed on the card over the table
func (p *Preparer) adjustment(track string, e Entrant) float64 {
	if e.Adjustment != nil {
		return *e.Adjustment
	}
	if p.adjustments == nil || e.Jockey == "" {
		return 0
	}
	return p.adjustments.Points(track, e.Jockey)
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
