package backtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AccuracyConsoleReport formats an accuracy walk-forward for terminal output
func AccuracyConsoleReport(report AccuracyReport) string {
	var builder strings.Builder
	builder.WriteString("Accuracy Backtest\n")
	builder.WriteString("=================\n")
	for _, s := range report.Seasons {
		builder.WriteString(fmt.Sprintf("%s  accuracy %6.2f%% (%d/%d)  high-confidence %6.2f%% (%d/%d)\n",
			s.Season, s.Accuracy, s.Correct, s.Tested,
			s.HighConfidenceAccuracy, s.HighConfidenceCorrect, s.HighConfidenceTested))
	}
	builder.WriteString(fmt.Sprintf("Trend: %s\n", report.Trend))
	return builder.String()
}

// FinancialConsoleReport formats a staking simulation for terminal output
func FinancialConsoleReport(report FinancialReport) string {
	var builder strings.Builder
	title := fmt.Sprintf("Staking Backtest (%s) %s", report.Strategy, report.Season)
	builder.WriteString(title + "\n")
	builder.WriteString(strings.Repeat("=", len(title)) + "\n")
	for _, l := range report.Leagues {
		builder.WriteString(fmt.Sprintf("%-16s bankroll %8.2f -> %8.2f  P/L %+8.2f  ROI %+7.2f%%  bets %d (won %d)  max drawdown %.2f%%\n",
			l.LeagueName, l.InitialBankroll, l.FinalBankroll, l.ProfitLoss, l.ROI, l.BetsPlaced, l.BetsWon, l.MaxDrawdown*100))
	}

	m := CalculateMetrics(report)
	builder.WriteString(fmt.Sprintf("Total Bets: %d\n", m.TotalBets))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%%\n", m.WinRate*100))
	builder.WriteString(fmt.Sprintf("Total Staked: %.2f\n", m.TotalStaked))
	builder.WriteString(fmt.Sprintf("Net Profit: %.2f\n", m.NetProfit))
	builder.WriteString(fmt.Sprintf("ROI: %.2f%%\n", m.ROI))
	builder.WriteString(fmt.Sprintf("Profit Factor: %.2f\n", m.ProfitFactor))
	return builder.String()
}

// MonteCarloConsoleReport formats a monte carlo result for terminal output
func MonteCarloConsoleReport(result MonteCarloResult) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Monte Carlo (%d paths)\n", result.Iterations))
	builder.WriteString(fmt.Sprintf("Mean Return: %.2f%%\n", result.MeanReturn*100))
	builder.WriteString(fmt.Sprintf("Return Std Dev: %.2f%%\n", result.StdReturn*100))
	builder.WriteString(fmt.Sprintf("VaR 95: %.2f%%\n", result.VaR95*100))
	builder.WriteString(fmt.Sprintf("Probability of Profit: %.2f%%\n", result.ProbabilityOfProfit*100))
	builder.WriteString(fmt.Sprintf("Probability of Ruin: %.2f%%\n", result.ProbabilityOfRuin*100))
	return builder.String()
}

// GenerateBetsCSV exports every settled bet of a report for spreadsheets
func GenerateBetsCSV(report FinancialReport, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	var builder strings.Builder
	builder.WriteString("date,league,home_team,away_team,market,odds,probability,stake,won,profit_loss,bankroll\n")
	for _, b := range report.Bets {
		builder.WriteString(fmt.Sprintf("%s,%s,%q,%q,%s,%.2f,%.4f,%.2f,%t,%.2f,%.2f\n",
			b.Date.Format(time.DateOnly), b.League, b.HomeTeam, b.AwayTeam, b.Market,
			b.Odds, b.Probability, b.Stake, b.Won, b.ProfitLoss, b.Bankroll))
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}
