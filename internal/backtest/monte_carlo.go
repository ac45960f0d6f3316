package backtest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/footy-value/internal/models"
)

// MonteCarloConfig configures monte carlo simulation
type MonteCarloConfig struct {
	Iterations      int
	Seed            int64
	InitialBankroll float64
}

// MonteCarloResult represents monte carlo outcomes
type MonteCarloResult struct {
	Iterations          int                `json:"iterations"`
	MeanReturn          float64            `json:"mean_return"`
	StdReturn           float64            `json:"std_return"`
	VaR95               float64            `json:"var_95"`
	VaR99               float64            `json:"var_99"`
	ProbabilityOfProfit float64            `json:"probability_of_profit"`
	ProbabilityOfRuin   float64            `json:"probability_of_ruin"`
	ConfidenceIntervals map[string]float64 `json:"confidence_intervals"`
	Distribution        []float64          `json:"-"`
}

// RunMonteCarlo replays the placed bets with outcomes drawn from the
// model's own probabilities and returns the distribution of final bankrolls.
// A path stops once the bankroll cannot cover the next stake.
func RunMonteCarlo(ctx context.Context, bets []models.SettledBet, cfg MonteCarloConfig) (MonteCarloResult, error) {
	if cfg.InitialBankroll <= 0 {
		return MonteCarloResult{}, fmt.Errorf("initial bankroll must be positive")
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	distribution := make([]float64, cfg.Iterations)

	for i := 0; i < cfg.Iterations; i++ {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return MonteCarloResult{}, err
			}
		}
		bankroll := cfg.InitialBankroll
		for _, bet := range bets {
			if bet.Stake > bankroll {
				break
			}
			bankroll -= bet.Stake
			if rng.Float64() < bet.Probability {
				bankroll += bet.Stake * bet.Odds
			}
		}
		distribution[i] = bankroll
	}

	sorted := append([]float64(nil), distribution...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	initial := cfg.InitialBankroll

	return MonteCarloResult{
		Iterations:          cfg.Iterations,
		MeanReturn:          (mean - initial) / initial,
		StdReturn:           std / initial,
		VaR95:               (percentile(sorted, 0.05) - initial) / initial,
		VaR99:               (percentile(sorted, 0.01) - initial) / initial,
		ProbabilityOfProfit: probabilityAbove(sorted, initial),
		ProbabilityOfRuin:   probabilityAtOrBelow(sorted, ruinThreshold(bets)),
		ConfidenceIntervals: CalculateConfidenceIntervals(sorted, []float64{0.9, 0.95, 0.99}),
		Distribution:        distribution,
	}, nil
}

// CalculateConfidenceIntervals returns the width of the central interval
// of a sorted distribution at each level.
func CalculateConfidenceIntervals(sorted []float64, levels []float64) map[string]float64 {
	results := make(map[string]float64)
	for _, level := range levels {
		p := (1.0 - level) / 2.0
		low := percentile(sorted, p)
		high := percentile(sorted, 1.0-p)
		results[formatPercent(level)] = high - low
	}
	return results
}

// ToJSON exports the result without the raw distribution
func (m MonteCarloResult) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ruinThreshold is the smallest stake in the sequence; below it no
// further bet can be placed.
func ruinThreshold(bets []models.SettledBet) float64 {
	if len(bets) == 0 {
		return 0
	}
	smallest := bets[0].Stake
	for _, bet := range bets[1:] {
		if bet.Stake < smallest {
			smallest = bet.Stake
		}
	}
	return smallest
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func probabilityAtOrBelow(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v <= threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func formatPercent(level float64) string {
	return fmt.Sprintf("%.0f%%", level*100)
}
