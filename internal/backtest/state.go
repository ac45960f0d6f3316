package backtest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/footy-value/internal/models"
)

// BankrollState tracks one league's simulated bankroll
type BankrollState struct {
	Initial     decimal.Decimal
	Balance     decimal.Decimal
	Peak        decimal.Decimal
	Staked      decimal.Decimal
	BetsWon     int
	Bets        []models.SettledBet
	EquityCurve EquityCurve
}

// NewBankrollState initializes bankroll state
func NewBankrollState(initialBankroll float64) *BankrollState {
	initial := decimal.NewFromFloat(initialBankroll)
	return &BankrollState{
		Initial: initial,
		Balance: initial,
		Peak:    initial,
		Staked:  decimal.Zero,
	}
}

// Current returns the balance as a float for staking decisions.
func (s *BankrollState) Current() float64 {
	return s.Balance.InexactFloat64()
}

// Settle debits the stake, credits stake × odds on a win and records the bet.
func (s *BankrollState) Settle(bet models.SettledBet) models.SettledBet {
	stake := decimal.NewFromFloat(bet.Stake)
	before := s.Balance

	s.Balance = s.Balance.Sub(stake)
	s.Staked = s.Staked.Add(stake)
	if bet.Won {
		s.Balance = s.Balance.Add(stake.Mul(decimal.NewFromFloat(bet.Odds)))
		s.BetsWon++
	}
	if s.Balance.GreaterThan(s.Peak) {
		s.Peak = s.Balance
	}

	bet.ProfitLoss = s.Balance.Sub(before).InexactFloat64()
	bet.Bankroll = s.Balance.InexactFloat64()
	s.Bets = append(s.Bets, bet)
	s.RecordEquityPoint(bet.Date, bet.Bankroll)
	return bet
}

// ProfitLoss returns final minus initial bankroll
func (s *BankrollState) ProfitLoss() decimal.Decimal {
	return s.Balance.Sub(s.Initial)
}

// ROI returns profit over total staked as a percentage, zero when nothing was staked
func (s *BankrollState) ROI() float64 {
	if s.Staked.IsZero() {
		return 0
	}
	return s.ProfitLoss().Div(s.Staked).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// GetCurrentDrawdown calculates peak-to-trough drawdown
func (s *BankrollState) GetCurrentDrawdown() float64 {
	if !s.Peak.IsPositive() {
		return 0
	}
	drawdown := s.Peak.Sub(s.Balance).Div(s.Peak).InexactFloat64()
	if drawdown < 0 {
		return 0
	}
	return drawdown
}

// RecordEquityPoint adds an equity point to the curve
func (s *BankrollState) RecordEquityPoint(t time.Time, value float64) {
	s.EquityCurve = append(s.EquityCurve, EquityPoint{
		Time:     t,
		Value:    value,
		Drawdown: s.GetCurrentDrawdown(),
	})
}

// Report summarises the state for a league
func (s *BankrollState) Report(season, league string) models.LeagueReport {
	return models.LeagueReport{
		Season:          season,
		League:          league,
		LeagueName:      models.LeagueName(league),
		InitialBankroll: s.Initial.InexactFloat64(),
		FinalBankroll:   s.Balance.InexactFloat64(),
		ProfitLoss:      s.ProfitLoss().InexactFloat64(),
		TotalStaked:     s.Staked.InexactFloat64(),
		ROI:             s.ROI(),
		MaxDrawdown:     s.EquityCurve.MaxDrawdown(s.Initial.InexactFloat64()),
		BetsPlaced:      len(s.Bets),
		BetsWon:         s.BetsWon,
	}
}
