package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_IncorrectAwardsNothing(t *testing.T) {
	scoring := NewScoringService()

	assert.Equal(t, 0, scoring.Score(false, 0, 30))
	assert.Equal(t, 0, scoring.Score(false, 29.9, 30))
}

func TestScore_InstantAnswerGetsFullBonus(t *testing.T) {
	scoring := NewScoringService()

	assert.Equal(t, 1500, scoring.Score(true, 0, 30))
}

func TestScore_AtBudgetGetsBaseOnly(t *testing.T) {
	scoring := NewScoringService()

	assert.Equal(t, 1000, scoring.Score(true, 30, 30))
}

func TestScore_PartialElapsed(t *testing.T) {
	scoring := NewScoringService()

	// 5s of a 30s budget: 1000 + floor((1 - 5/30) * 500) = 1416.
	assert.Equal(t, 1416, scoring.Score(true, 5, 30))
	assert.Equal(t, 1250, scoring.Score(true, 15, 30))
}

func TestScore_ClampsElapsedOutsideBudget(t *testing.T) {
	scoring := NewScoringService()

	assert.Equal(t, 1500, scoring.Score(true, -3, 30))
	assert.Equal(t, 1000, scoring.Score(true, 45, 30))
}

func TestScore_MonotonicInElapsed(t *testing.T) {
	scoring := NewScoringService()

	prev := scoring.Score(true, 0, 20)
	for elapsed := 1.0; elapsed <= 20; elapsed++ {
		got := scoring.Score(true, elapsed, 20)
		assert.LessOrEqual(t, got, prev, "score must not grow as elapsed time grows")
		prev = got
	}
}
