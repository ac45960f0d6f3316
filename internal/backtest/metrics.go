package backtest

import (
	"encoding/json"
	"math"

	"github.com/yourusername/footy-value/internal/models"
)

// Metrics summarises the bets settled in one financial run
type Metrics struct {
	TotalBets    int     `json:"total_bets"`
	WinningBets  int     `json:"winning_bets"`
	LosingBets   int     `json:"losing_bets"`
	WinRate      float64 `json:"win_rate"`
	TotalStaked  float64 `json:"total_staked"`
	NetProfit    float64 `json:"net_profit"`
	ROI          float64 `json:"roi_percent"`
	ProfitFactor float64 `json:"profit_factor"`
	AverageWin   float64 `json:"average_win"`
	AverageLoss  float64 `json:"average_loss"`
	AverageOdds  float64 `json:"average_odds"`
	Expectancy   float64 `json:"expectancy"`
	LargestWin   float64 `json:"largest_win"`
	LargestLoss  float64 `json:"largest_loss"`
	MaxDrawdown  float64 `json:"max_drawdown"`
}

// CalculateMetrics calculates metrics from a financial report
func CalculateMetrics(report FinancialReport) Metrics {
	metrics := Metrics{TotalBets: len(report.Bets)}
	if len(report.Bets) == 0 {
		return metrics
	}

	oddsSum := 0.0
	for _, bet := range report.Bets {
		metrics.TotalStaked += bet.Stake
		metrics.NetProfit += bet.ProfitLoss
		oddsSum += bet.Odds
	}
	metrics.AverageOdds = oddsSum / float64(len(report.Bets))
	if metrics.TotalStaked > 0 {
		metrics.ROI = metrics.NetProfit / metrics.TotalStaked * 100
	}

	metrics.WinningBets, metrics.LosingBets, metrics.AverageWin, metrics.AverageLoss, metrics.LargestWin, metrics.LargestLoss = calculateBetStats(report.Bets)
	metrics.WinRate = calculateWinRate(metrics.WinningBets, metrics.TotalBets)
	metrics.ProfitFactor = calculateProfitFactor(report.Bets)
	metrics.Expectancy = metrics.NetProfit / float64(metrics.TotalBets)

	for _, league := range report.Leagues {
		if league.MaxDrawdown > metrics.MaxDrawdown {
			metrics.MaxDrawdown = league.MaxDrawdown
		}
	}
	return metrics
}

// ToJSON exports metrics to JSON
func (m Metrics) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

func calculateProfitFactor(bets []models.SettledBet) float64 {
	grossProfit := 0.0
	grossLoss := 0.0
	for _, bet := range bets {
		if bet.ProfitLoss > 0 {
			grossProfit += bet.ProfitLoss
		} else {
			grossLoss += math.Abs(bet.ProfitLoss)
		}
	}
	if grossLoss == 0 {
		if grossProfit > 0 {
			return 999
		}
		return 0
	}
	return grossProfit / grossLoss
}

func calculateBetStats(bets []models.SettledBet) (int, int, float64, float64, float64, float64) {
	wins := 0
	losses := 0
	winSum := 0.0
	lossSum := 0.0
	largestWin := 0.0
	largestLoss := 0.0
	for _, bet := range bets {
		pl := bet.ProfitLoss
		if bet.Won {
			wins++
			winSum += pl
			if pl > largestWin {
				largestWin = pl
			}
		} else {
			losses++
			lossSum += pl
			if pl < largestLoss {
				largestLoss = pl
			}
		}
	}

	avgWin := 0.0
	avgLoss := 0.0
	if wins > 0 {
		avgWin = winSum / float64(wins)
	}
	if losses > 0 {
		avgLoss = lossSum / float64(losses)
	}
	return wins, losses, avgWin, avgLoss, largestWin, largestLoss
}

func calculateWinRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}
