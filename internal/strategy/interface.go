package strategy

import (
	"time"

	"github.com/yourusername/footy-value/internal/models"
)

// Strategy defines how value bets on a fixture are turned into stakes.
type Strategy interface {
	Name() string
	Evaluate(strategyCtx Context) []Signal
	ShouldBet(signal Signal) bool
	CalculateStake(signal Signal, bankroll float64) float64
	GetParameters() map[string]interface{}
}

// Signal is a candidate bet emitted by a strategy.
type Signal struct {
	Bet       models.ValueBet `json:"bet"`
	Edge      float64         `json:"edge"`
	Kelly     float64         `json:"kelly_fraction"`
	Level     Opportunity     `json:"opportunity"`
	Reasoning string          `json:"reasoning"`
}

// Context carries everything known about a fixture at decision time.
type Context struct {
	Date       time.Time
	League     string
	HomeTeam   string
	AwayTeam   string
	Prediction models.Prediction
	Odds       models.MarketOdds
}

// LegPolicy selects which detected bets a strategy acts on.
type LegPolicy string

const (
	// LegPolicyFirst acts only on the first value bet in detector order.
	LegPolicyFirst LegPolicy = "first"
	// LegPolicyAll acts on every value bet of the fixture.
	LegPolicyAll LegPolicy = "all"
)
