package strategy

import (
	"fmt"
	"math"
)

// DefaultMaxOutcomeOdds caps 1X2 prices considered by the detector.
const DefaultMaxOutcomeOdds = 25.0

// BaseStrategy provides shared functionality for strategies
type BaseStrategy struct {
	MaxOutcomeOdds  float64
	KellyMultiplier float64
	MinEdge         float64
	Legs            LegPolicy
}

// ValidateOdds ensures odds are within acceptable bounds
func (b *BaseStrategy) ValidateOdds(odds float64) error {
	if odds <= 1.0 {
		return fmt.Errorf("odds must be greater than 1.0")
	}
	if b.MaxOutcomeOdds > 0 && odds >= b.MaxOutcomeOdds {
		return fmt.Errorf("odds above maximum")
	}
	return nil
}

// ApplyKellyCriterion calculates stake based on the Kelly criterion
func (b *BaseStrategy) ApplyKellyCriterion(probability float64, odds float64, bankroll float64) float64 {
	if bankroll <= 0 {
		return 0
	}
	kelly := KellyFraction(probability, odds)
	if kelly <= 0 || b.KellyMultiplier <= 0 {
		return 0
	}
	return bankroll * kelly * b.KellyMultiplier
}

// CalculateExpectedValue calculates expected value for a bet
func (b *BaseStrategy) CalculateExpectedValue(probability float64, odds float64, stake float64) float64 {
	if probability <= 0 || odds <= 1 || stake <= 0 {
		return 0
	}
	winProfit := (odds - 1.0) * stake
	return probability*winProfit - (1.0-probability)*stake
}

// NormalizeProbability ensures probability in [0,1]
func (b *BaseStrategy) NormalizeProbability(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// detector returns the value detector configured for this strategy.
func (b *BaseStrategy) detector() ValueDetector {
	return ValueDetector{MaxOutcomeOdds: b.MaxOutcomeOdds}
}

// selectLegs applies the leg policy to detector output.
func (b *BaseStrategy) selectLegs(bets []Signal) []Signal {
	if len(bets) == 0 {
		return nil
	}
	if b.Legs == LegPolicyAll {
		return bets
	}
	return bets[:1]
}
