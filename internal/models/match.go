package models

import (
	"sort"
	"time"
)

// Match is one completed fixture from the historical table.
type Match struct {
	Date      time.Time `json:"date" validate:"required"`
	League    string    `json:"league" validate:"required"`
	HomeTeam  string    `json:"home_team" validate:"required"`
	AwayTeam  string    `json:"away_team" validate:"required"`
	HomeGoals int       `json:"home_goals" validate:"gte=0"`
	AwayGoals int       `json:"away_goals" validate:"gte=0"`
	HomeOdds  *float64  `json:"home_odds,omitempty"`
	DrawOdds  *float64  `json:"draw_odds,omitempty"`
	AwayOdds  *float64  `json:"away_odds,omitempty"`
	OverOdds  *float64  `json:"over_odds,omitempty"`
	UnderOdds *float64  `json:"under_odds,omitempty"`
}

// Result returns the realised full-time outcome.
func (m Match) Result() Outcome {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return OutcomeHomeWin
	case m.HomeGoals == m.AwayGoals:
		return OutcomeDraw
	default:
		return OutcomeAwayWin
	}
}

// TotalGoals returns goals scored by both sides.
func (m Match) TotalGoals() int {
	return m.HomeGoals + m.AwayGoals
}

// Odds returns the closing prices recorded against the match.
func (m Match) Odds() MarketOdds {
	return MarketOdds{
		Home:  m.HomeOdds,
		Draw:  m.DrawOdds,
		Away:  m.AwayOdds,
		Over:  m.OverOdds,
		Under: m.UnderOdds,
	}
}

// HasOutcomeOdds reports whether all three 1X2 prices are present.
func (m Match) HasOutcomeOdds() bool {
	return validPrice(m.HomeOdds) && validPrice(m.DrawOdds) && validPrice(m.AwayOdds)
}

// SortByDate orders matches chronologically, keeping input order for equal dates.
func SortByDate(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.Before(matches[j].Date)
	})
}
