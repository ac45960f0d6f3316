package models

// Outcome is a full-time 1X2 result.
type Outcome string

const (
	OutcomeHomeWin Outcome = "home_win"
	OutcomeDraw    Outcome = "draw"
	OutcomeAwayWin Outcome = "away_win"
)

// Code returns the 1/X/2 notation used in the predictions log.
func (o Outcome) Code() string {
	switch o {
	case OutcomeHomeWin:
		return "1"
	case OutcomeDraw:
		return "X"
	case OutcomeAwayWin:
		return "2"
	default:
		return ""
	}
}

// OutcomeFromCode parses 1/X/2 notation.
func OutcomeFromCode(code string) (Outcome, bool) {
	switch code {
	case "1":
		return OutcomeHomeWin, true
	case "X":
		return OutcomeDraw, true
	case "2":
		return OutcomeAwayWin, true
	default:
		return "", false
	}
}

// Market labels a single bettable leg.
type Market string

const (
	MarketHomeWin  Market = "home_win"
	MarketDraw     Market = "draw"
	MarketAwayWin  Market = "away_win"
	MarketOver25   Market = "over_2.5"
	MarketUnder25  Market = "under_2.5"
	GoalsThreshold        = 2.5
)

// MarketType groups legs the way bookmaker feeds do.
type MarketType string

const (
	MarketTypeOutcome MarketType = "h2h"
	MarketTypeTotals  MarketType = "totals"
)

// Type returns the market group the leg belongs to.
func (m Market) Type() MarketType {
	if m == MarketOver25 || m == MarketUnder25 {
		return MarketTypeTotals
	}
	return MarketTypeOutcome
}

// Outcome returns the 1X2 result the leg backs. Goal legs have none.
func (m Market) Outcome() (Outcome, bool) {
	switch m {
	case MarketHomeWin:
		return OutcomeHomeWin, true
	case MarketDraw:
		return OutcomeDraw, true
	case MarketAwayWin:
		return OutcomeAwayWin, true
	default:
		return "", false
	}
}

// IsOutcomeMarket reports whether the leg is part of the 1X2 market.
func (m Market) IsOutcomeMarket() bool {
	return m.Type() == MarketTypeOutcome
}

// Settles reports whether the leg wins for the given final score.
func (m Market) Settles(homeGoals, awayGoals int) bool {
	total := float64(homeGoals + awayGoals)
	switch m {
	case MarketHomeWin:
		return homeGoals > awayGoals
	case MarketDraw:
		return homeGoals == awayGoals
	case MarketAwayWin:
		return homeGoals < awayGoals
	case MarketOver25:
		return total > GoalsThreshold
	case MarketUnder25:
		return total < GoalsThreshold
	default:
		return false
	}
}

// MarketOdds holds decimal prices for every leg. Nil legs were not offered.
type MarketOdds struct {
	Home  *float64 `json:"home,omitempty"`
	Draw  *float64 `json:"draw,omitempty"`
	Away  *float64 `json:"away,omitempty"`
	Over  *float64 `json:"over,omitempty"`
	Under *float64 `json:"under,omitempty"`
}

// Price returns the price for a leg, false when absent or not positive.
func (o MarketOdds) Price(m Market) (float64, bool) {
	var p *float64
	switch m {
	case MarketHomeWin:
		p = o.Home
	case MarketDraw:
		p = o.Draw
	case MarketAwayWin:
		p = o.Away
	case MarketOver25:
		p = o.Over
	case MarketUnder25:
		p = o.Under
	}
	if !validPrice(p) {
		return 0, false
	}
	return *p, true
}

// OddsLookup resolves bookmaker prices for a fixture.
type OddsLookup interface {
	MarketOdds(homeTeam, awayTeam string, market MarketType) (MarketOdds, bool)
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

func validPrice(p *float64) bool {
	return p != nil && *p > 0
}
