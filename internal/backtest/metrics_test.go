package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/footy-value/internal/models"
)

func TestCalculateMetrics(t *testing.T) {
	report := FinancialReport{
		Leagues: []models.LeagueReport{{MaxDrawdown: 0.1}, {MaxDrawdown: 0.25}},
		Bets: []models.SettledBet{
			{Stake: 10, Odds: 2.0, Won: true, ProfitLoss: 10},
			{Stake: 10, Odds: 3.0, ProfitLoss: -10},
			{Stake: 20, Odds: 1.5, Won: true, ProfitLoss: 10},
		},
	}

	m := CalculateMetrics(report)
	assert.Equal(t, 3, m.TotalBets)
	assert.Equal(t, 2, m.WinningBets)
	assert.Equal(t, 1, m.LosingBets)
	assert.InDelta(t, 2.0/3.0, m.WinRate, 1e-12)
	assert.InDelta(t, 40.0, m.TotalStaked, 1e-12)
	assert.InDelta(t, 10.0, m.NetProfit, 1e-12)
	assert.InDelta(t, 25.0, m.ROI, 1e-12)
	assert.InDelta(t, 2.0, m.ProfitFactor, 1e-12)
	assert.InDelta(t, 0.25, m.MaxDrawdown, 1e-12)
	assert.Equal(t, -10.0, m.LargestLoss)
}

func TestCalculateMetricsEmpty(t *testing.T) {
	m := CalculateMetrics(FinancialReport{})
	assert.Equal(t, 0, m.TotalBets)
	assert.Equal(t, 0.0, m.ROI)
}
