package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/race-ranker/internal/models"
)

func TestValidateEntrant(t *testing.T) {
	v := NewDataValidator(testLogger())

	tests := []struct {
		name       string
		entrant    models.EntrantInput
		shouldHave string
	}{
		{"clean", models.EntrantInput{Slot: 1, Name: "アルファ", Primary: f(55), Secondary: f(60), Adjustment: 3}, ""},
		{"missing signals are fine", models.EntrantInput{Slot: 2, Name: "ブラボー"}, ""},
		{"no name", models.EntrantInput{Slot: 1}, "name is empty"},
		{"slot too high", models.EntrantInput{Slot: 19, Name: "x"}, "slot exceeds"},
		{"primary out of range", models.EntrantInput{Slot: 1, Name: "x", Primary: f(-4)}, "primary -4.0 out of range"},
		{"secondary not finite", models.EntrantInput{Slot: 1, Name: "x", Secondary: f(math.Inf(1))}, "secondary is not finite"},
		{"adjustment too large", models.EntrantInput{Slot: 1, Name: "x", Adjustment: 40}, "adjustment 40 out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := v.ValidateEntrant(tt.entrant)
			if tt.shouldHave == "" {
				assert.Empty(t, warnings)
				return
			}
			assert.NotEmpty(t, warnings)
			assert.Contains(t, warnings[0], tt.shouldHave)
		})
	}
}

func TestValidateRace(t *testing.T) {
	v := NewDataValidator(testLogger())

	assert.Empty(t, v.ValidateRace(rankedRace("ok", 0)))

	warnings := v.ValidateRace(models.RaceInput{})
	assert.Contains(t, warnings, "race name is empty")
	assert.Contains(t, warnings, "race has no entrants")

	bad := rankedRace("bad", 0)
	bad.Entrants[2].Name = ""
	assert.Equal(t, []string{"slot 3: entrant name is empty"}, v.ValidateRace(bad))
}

func TestValidateRaceUniqueness(t *testing.T) {
	v := NewDataValidator(testLogger())

	a := rankedRace("a", 0)
	b := rankedRace("b", 0)
	assert.NoError(t, v.ValidateRaceUniqueness([]models.RaceInput{a, b}))

	b.Key = a.Key
	assert.Error(t, v.ValidateRaceUniqueness([]models.RaceInput{a, b}))

	a.Key, b.Key = "", ""
	assert.NoError(t, v.ValidateRaceUniqueness([]models.RaceInput{a, b}))
}
