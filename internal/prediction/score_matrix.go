// Package prediction turns expected goals into match outcome and goal total
// probabilities using independent Poisson scorelines.
package prediction

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/footy-value/internal/models"
)

const (
	// OutcomeBound is the highest goal count per side enumerated for 1X2.
	OutcomeBound = 5
	// TotalsBound is the highest goal count per side enumerated for over/under.
	TotalsBound = 6
)

// ScoreMatrix holds log probabilities for every scoreline up to Bound goals
// per side. Working in log space keeps large expectations from underflowing
// the whole grid to zero.
type ScoreMatrix struct {
	Bound int
	logP  [][]float64

	// shape drops the e^-λ factor of each side. It differs from logP by a
	// constant, so it yields the same conditional 1X2 split without the
	// -λ term swamping k·lnλ at very large expectations.
	shape    [][]float64
	maxShape float64
}

// NewScoreMatrix builds the scoreline grid for two independent Poisson sides.
func NewScoreMatrix(lambdaHome, lambdaAway float64, bound int) (*ScoreMatrix, error) {
	if !validLambda(lambdaHome) || !validLambda(lambdaAway) || bound < 0 {
		return nil, models.ErrInvalidExpectation
	}

	home := logPMF(lambdaHome, bound)
	away := logPMF(lambdaAway, bound)
	homeShape := logShape(lambdaHome, bound)
	awayShape := logShape(lambdaAway, bound)

	m := &ScoreMatrix{
		Bound:    bound,
		logP:     make([][]float64, bound+1),
		shape:    make([][]float64, bound+1),
		maxShape: math.Inf(-1),
	}
	for h := 0; h <= bound; h++ {
		m.logP[h] = make([]float64, bound+1)
		m.shape[h] = make([]float64, bound+1)
		for a := 0; a <= bound; a++ {
			m.logP[h][a] = home[h] + away[a]
			ls := homeShape[h] + awayShape[a]
			m.shape[h][a] = ls
			if ls > m.maxShape {
				m.maxShape = ls
			}
		}
	}
	return m, nil
}

// Probability returns the unconditional probability of a scoreline.
func (m *ScoreMatrix) Probability(homeGoals, awayGoals int) float64 {
	if homeGoals < 0 || awayGoals < 0 || homeGoals > m.Bound || awayGoals > m.Bound {
		return 0
	}
	return math.Exp(m.logP[homeGoals][awayGoals])
}

// TotalProbability returns the probability mass captured by the grid.
func (m *ScoreMatrix) TotalProbability() float64 {
	total := 0.0
	for h := 0; h <= m.Bound; h++ {
		for a := 0; a <= m.Bound; a++ {
			total += math.Exp(m.logP[h][a])
		}
	}
	return total
}

// MatchOdds returns 1X2 probabilities conditioned on the grid, so they sum
// to one regardless of truncation.
func (m *ScoreMatrix) MatchOdds() models.OutcomeProbabilities {
	var homeWin, draw, awayWin float64
	for h := 0; h <= m.Bound; h++ {
		for a := 0; a <= m.Bound; a++ {
			w := math.Exp(m.shape[h][a] - m.maxShape)
			switch {
			case h > a:
				homeWin += w
			case h == a:
				draw += w
			default:
				awayWin += w
			}
		}
	}
	total := homeWin + draw + awayWin
	return models.OutcomeProbabilities{
		HomeWin: homeWin / total,
		Draw:    draw / total,
		AwayWin: awayWin / total,
	}
}

// OverUnder splits total goals around threshold. Under is summed from the
// grid and is exact whenever threshold < Bound; over is its complement.
func (m *ScoreMatrix) OverUnder(threshold float64) models.GoalTotalProbabilities {
	under := 0.0
	for h := 0; h <= m.Bound; h++ {
		for a := 0; a <= m.Bound; a++ {
			if float64(h+a) < threshold {
				under += math.Exp(m.logP[h][a])
			}
		}
	}
	if under > 1 {
		under = 1
	}
	return models.GoalTotalProbabilities{Over: 1 - under, Under: under}
}

func logPMF(lambda float64, bound int) []float64 {
	out := make([]float64, bound+1)
	if lambda == 0 {
		for k := 1; k <= bound; k++ {
			out[k] = math.Inf(-1)
		}
		return out
	}
	dist := distuv.Poisson{Lambda: lambda}
	for k := 0; k <= bound; k++ {
		out[k] = dist.LogProb(float64(k))
	}
	return out
}

// logShape returns k·lnλ - ln k! for k in 0..bound.
func logShape(lambda float64, bound int) []float64 {
	out := make([]float64, bound+1)
	if lambda == 0 {
		for k := 1; k <= bound; k++ {
			out[k] = math.Inf(-1)
		}
		return out
	}
	logLambda := math.Log(lambda)
	for k := 0; k <= bound; k++ {
		lg, _ := math.Lgamma(float64(k) + 1)
		out[k] = float64(k)*logLambda - lg
	}
	return out
}

func validLambda(l float64) bool {
	return l >= 0 && !math.IsNaN(l) && !math.IsInf(l, 0)
}
