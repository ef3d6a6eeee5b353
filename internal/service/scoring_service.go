package service

import "math"

// BasePoints is awarded for any correct answer; SpeedBonusMax decays
// linearly to zero as elapsed time approaches the question's budget.
const (
	BasePoints    = 1000
	SpeedBonusMax = 500
)

type ScoringService interface {
	Score(isCorrect bool, elapsedSec float64, budgetSec int) int
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Score is pure and deterministic. Elapsed time is clamped to
// [0, budget] before the ratio, so a correct answer is always worth
// between BasePoints and BasePoints+SpeedBonusMax.
func (s *scoringService) Score(isCorrect bool, elapsedSec float64, budgetSec int) int {
	if !isCorrect {
		return 0
	}

	budget := float64(budgetSec)
	if elapsedSec < 0 {
		elapsedSec = 0
	}
	if elapsedSec > budget {
		elapsedSec = budget
	}

	bonus := int(math.Floor((1 - elapsedSec/budget) * SpeedBonusMax))
	return BasePoints + bonus
}
