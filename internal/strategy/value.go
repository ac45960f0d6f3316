package strategy

import (
	"fmt"

	"github.com/yourusername/footy-value/internal/models"
)

// ValueDetector finds legs where probability times price exceeds one.
type ValueDetector struct {
	// MaxOutcomeOdds excludes 1X2 prices at or above it as unreliable.
	// Zero means DefaultMaxOutcomeOdds. Goal total legs are not capped.
	MaxOutcomeOdds float64
}

var detectorOrder = []models.Market{
	models.MarketHomeWin,
	models.MarketDraw,
	models.MarketAwayWin,
	models.MarketOver25,
	models.MarketUnder25,
}

// FindValueBets returns value legs in home, draw, away, over, under order.
// Legs without a price are skipped.
func (d ValueDetector) FindValueBets(pred models.Prediction, odds models.MarketOdds) []models.ValueBet {
	maxOdds := d.MaxOutcomeOdds
	if maxOdds <= 0 {
		maxOdds = DefaultMaxOutcomeOdds
	}

	var bets []models.ValueBet
	for _, market := range detectorOrder {
		price, ok := odds.Price(market)
		if !ok {
			continue
		}
		if market.IsOutcomeMarket() && price >= maxOdds {
			continue
		}
		p := pred.Probability(market)
		if p*price > 1.0 {
			bets = append(bets, models.ValueBet{Market: market, Odds: price, Probability: p})
		}
	}
	return bets
}

// KellyFraction returns the full-Kelly bankroll fraction for a bet,
// clamped at zero. Prices at or below 1.0 return zero.
func KellyFraction(probability, odds float64) float64 {
	if odds <= 1.0 {
		return 0
	}
	k := (probability*odds - 1) / (odds - 1)
	if k < 0 {
		return 0
	}
	return k
}

// Edge returns expected return per unit staked.
func Edge(probability, odds float64) float64 {
	return probability*odds - 1
}

// Opportunity grades the size of an edge.
type Opportunity string

const (
	OpportunityVeryHigh Opportunity = "very_high"
	OpportunityGood     Opportunity = "good"
	OpportunitySmall    Opportunity = "small"
)

// OpportunityLevel classifies an edge.
func OpportunityLevel(edge float64) Opportunity {
	switch {
	case edge > 0.5:
		return OpportunityVeryHigh
	case edge > 0.2:
		return OpportunityGood
	default:
		return OpportunitySmall
	}
}

// Describe renders a value bet for reports.
func Describe(bet models.ValueBet) string {
	return fmt.Sprintf("%s @%.2f (model %.2f%%, edge %.2f%%)",
		bet.Market, bet.Odds, bet.Probability*100, bet.Edge()*100)
}

func signalsFor(bets []models.ValueBet) []Signal {
	signals := make([]Signal, 0, len(bets))
	for _, bet := range bets {
		edge := bet.Edge()
		signals = append(signals, Signal{
			Bet:       bet,
			Edge:      edge,
			Kelly:     KellyFraction(bet.Probability, bet.Odds),
			Level:     OpportunityLevel(edge),
			Reasoning: Describe(bet),
		})
	}
	return signals
}
