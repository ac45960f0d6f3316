// Package strength derives per-team attack and defense coefficients from a
// window of completed matches.
package strength

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/teams"
)

// Strength holds a team's coefficients relative to the league average.
// A value of 1.0 is league average; attack above 1 scores more, defense
// above 1 concedes more.
type Strength struct {
	AttackHome  float64 `json:"attack_home"`
	DefenseHome float64 `json:"defense_home"`
	AttackAway  float64 `json:"attack_away"`
	DefenseAway float64 `json:"defense_away"`
}

// Table is the estimator output for one training window.
type Table struct {
	LeagueAvgHomeGoals float64             `json:"league_avg_home_goals"`
	LeagueAvgAwayGoals float64             `json:"league_avg_away_goals"`
	Teams              map[string]Strength `json:"teams"`
	MatchesUsed        int                 `json:"matches_used"`
}

// Has reports whether the (canonical) team has coefficients.
func (t *Table) Has(team string) bool {
	_, ok := t.Teams[team]
	return ok
}

// ExpectedGoals returns λ for both sides of a fixture between canonical names.
// ok is false when either team has no coefficients.
func (t *Table) ExpectedGoals(home, away string) (float64, float64, bool) {
	h, ok := t.Teams[home]
	if !ok {
		return 0, 0, false
	}
	a, ok := t.Teams[away]
	if !ok {
		return 0, 0, false
	}
	lambdaHome := h.AttackHome * a.DefenseAway * t.LeagueAvgHomeGoals
	lambdaAway := a.AttackAway * h.DefenseHome * t.LeagueAvgAwayGoals
	return lambdaHome, lambdaAway, true
}

// TeamNames returns the covered teams in sorted order.
func (t *Table) TeamNames() []string {
	names := make([]string, 0, len(t.Teams))
	for name := range t.Teams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Estimator builds strength tables.
type Estimator struct {
	aliases teams.Aliases
}

// NewEstimator creates an estimator that resolves names through aliases.
func NewEstimator(aliases teams.Aliases) *Estimator {
	return &Estimator{aliases: aliases}
}

type venueGoals struct {
	scored   []float64
	conceded []float64
}

// Estimate computes the strength table for a training window.
func (e *Estimator) Estimate(matches []models.Match) (*Table, error) {
	if len(matches) == 0 {
		return nil, models.ErrEmptyInput
	}

	homeGoals := make([]float64, len(matches))
	awayGoals := make([]float64, len(matches))
	atHome := make(map[string]*venueGoals)
	away := make(map[string]*venueGoals)

	for i, m := range matches {
		home := e.aliases.Normalize(m.HomeTeam)
		visitor := e.aliases.Normalize(m.AwayTeam)
		hg, ag := float64(m.HomeGoals), float64(m.AwayGoals)
		homeGoals[i] = hg
		awayGoals[i] = ag

		h := venue(atHome, home)
		h.scored = append(h.scored, hg)
		h.conceded = append(h.conceded, ag)

		a := venue(away, visitor)
		a.scored = append(a.scored, ag)
		a.conceded = append(a.conceded, hg)
	}

	common := make([]string, 0, len(atHome))
	for team := range atHome {
		if _, ok := away[team]; ok {
			common = append(common, team)
		}
	}
	if len(common) == 0 {
		return nil, models.ErrNoCommonTeams
	}

	avgHome := stat.Mean(homeGoals, nil)
	avgAway := stat.Mean(awayGoals, nil)
	if avgHome == 0 || avgAway == 0 {
		return nil, models.ErrZeroScoring
	}

	table := &Table{
		LeagueAvgHomeGoals: avgHome,
		LeagueAvgAwayGoals: avgAway,
		Teams:              make(map[string]Strength, len(common)),
		MatchesUsed:        len(matches),
	}
	for _, team := range common {
		h, a := atHome[team], away[team]
		table.Teams[team] = Strength{
			AttackHome:  stat.Mean(h.scored, nil) / avgHome,
			DefenseHome: stat.Mean(h.conceded, nil) / avgAway,
			AttackAway:  stat.Mean(a.scored, nil) / avgAway,
			DefenseAway: stat.Mean(a.conceded, nil) / avgHome,
		}
	}
	return table, nil
}

func venue(m map[string]*venueGoals, team string) *venueGoals {
	v, ok := m[team]
	if !ok {
		v = &venueGoals{}
		m[team] = v
	}
	return v
}
