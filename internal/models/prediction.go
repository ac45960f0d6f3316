package models

// OutcomeProbabilities is the model's 1X2 distribution.
type OutcomeProbabilities struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

// Favourite returns the most likely outcome. Ties go to home, then draw.
func (p OutcomeProbabilities) Favourite() (Outcome, float64) {
	best, prob := OutcomeHomeWin, p.HomeWin
	if p.Draw > prob {
		best, prob = OutcomeDraw, p.Draw
	}
	if p.AwayWin > prob {
		best, prob = OutcomeAwayWin, p.AwayWin
	}
	return best, prob
}

// Of returns the probability assigned to an outcome.
func (p OutcomeProbabilities) Of(o Outcome) float64 {
	switch o {
	case OutcomeHomeWin:
		return p.HomeWin
	case OutcomeDraw:
		return p.Draw
	case OutcomeAwayWin:
		return p.AwayWin
	default:
		return 0
	}
}

// GoalTotalProbabilities is the over/under 2.5 distribution.
type GoalTotalProbabilities struct {
	Over  float64 `json:"over_2.5"`
	Under float64 `json:"under_2.5"`
}

// Prediction bundles everything the model says about one fixture.
type Prediction struct {
	ExpectedHome float64                `json:"expected_home_goals"`
	ExpectedAway float64                `json:"expected_away_goals"`
	Outcome      OutcomeProbabilities   `json:"outcome"`
	Goals        GoalTotalProbabilities `json:"goals"`
}

// Probability returns the model probability for a market leg.
func (p Prediction) Probability(m Market) float64 {
	switch m {
	case MarketHomeWin:
		return p.Outcome.HomeWin
	case MarketDraw:
		return p.Outcome.Draw
	case MarketAwayWin:
		return p.Outcome.AwayWin
	case MarketOver25:
		return p.Goals.Over
	case MarketUnder25:
		return p.Goals.Under
	default:
		return 0
	}
}

// ValueBet is a leg where the model's probability beats the price.
type ValueBet struct {
	Market      Market  `json:"market"`
	Odds        float64 `json:"odds"`
	Probability float64 `json:"probability"`
}

// Edge returns the expected return per unit staked.
func (b ValueBet) Edge() float64 {
	return b.Probability*b.Odds - 1
}
