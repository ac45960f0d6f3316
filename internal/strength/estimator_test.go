package strength

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/teams"
)

func match(home, away string, hg, ag int) models.Match {
	return models.Match{
		Date:      time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
		League:    "E0",
		HomeTeam:  home,
		AwayTeam:  away,
		HomeGoals: hg,
		AwayGoals: ag,
	}
}

func TestEstimateEmptyInput(t *testing.T) {
	_, err := NewEstimator(teams.DefaultAliases()).Estimate(nil)
	assert.ErrorIs(t, err, models.ErrEmptyInput)
}

func TestEstimateSingleMatchHasNoCommonTeams(t *testing.T) {
	_, err := NewEstimator(teams.DefaultAliases()).Estimate([]models.Match{match("A", "B", 2, 0)})
	assert.ErrorIs(t, err, models.ErrNoCommonTeams)
	assert.ErrorIs(t, err, models.ErrDegenerateWindow)
}

func TestEstimateZeroScoringIsDegenerate(t *testing.T) {
	_, err := NewEstimator(teams.DefaultAliases()).Estimate([]models.Match{
		match("A", "B", 0, 0),
		match("B", "A", 0, 0),
	})
	assert.ErrorIs(t, err, models.ErrZeroScoring)
	assert.ErrorIs(t, err, models.ErrDegenerateWindow)
}

func TestEstimateCoefficients(t *testing.T) {
	matches := []models.Match{
		match("A", "B", 3, 0),
		match("B", "A", 0, 2),
	}

	table, err := NewEstimator(teams.DefaultAliases()).Estimate(matches)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, table.LeagueAvgHomeGoals, 1e-12)
	assert.InDelta(t, 1.0, table.LeagueAvgAwayGoals, 1e-12)
	assert.Equal(t, 2, table.MatchesUsed)
	assert.Equal(t, []string{"A", "B"}, table.TeamNames())

	a := table.Teams["A"]
	assert.InDelta(t, 2.0, a.AttackHome, 1e-12)
	assert.InDelta(t, 0.0, a.DefenseHome, 1e-12)
	assert.InDelta(t, 2.0, a.AttackAway, 1e-12)
	assert.InDelta(t, 0.0, a.DefenseAway, 1e-12)

	b := table.Teams["B"]
	assert.InDelta(t, 0.0, b.AttackHome, 1e-12)
	assert.InDelta(t, 2.0, b.DefenseHome, 1e-12)
	assert.InDelta(t, 0.0, b.AttackAway, 1e-12)
	assert.InDelta(t, 2.0, b.DefenseAway, 1e-12)

	home, away, ok := table.ExpectedGoals("A", "B")
	require.True(t, ok)
	assert.InDelta(t, 6.0, home, 1e-12)
	assert.InDelta(t, 0.0, away, 1e-12)
}

func TestEstimateExcludesTeamsWithoutBothVenues(t *testing.T) {
	matches := []models.Match{
		match("A", "B", 1, 1),
		match("B", "A", 2, 1),
		match("A", "C", 1, 0),
	}

	table, err := NewEstimator(teams.DefaultAliases()).Estimate(matches)
	require.NoError(t, err)

	assert.True(t, table.Has("A"))
	assert.True(t, table.Has("B"))
	assert.False(t, table.Has("C"))

	_, _, ok := table.ExpectedGoals("A", "C")
	assert.False(t, ok)
}

func TestEstimateResolvesAliases(t *testing.T) {
	matches := []models.Match{
		match("Manchester United", "Chelsea", 2, 1),
		match("Chelsea", "Man United", 1, 1),
	}

	table, err := NewEstimator(teams.DefaultAliases()).Estimate(matches)
	require.NoError(t, err)

	assert.True(t, table.Has("Man United"))
	assert.False(t, table.Has("Manchester United"))
}

func TestLeagueAverageTeamHasUnitCoefficients(t *testing.T) {
	matches := []models.Match{
		match("A", "B", 1, 1),
		match("B", "A", 1, 1),
	}

	table, err := NewEstimator(teams.DefaultAliases()).Estimate(matches)
	require.NoError(t, err)

	for _, name := range table.TeamNames() {
		s := table.Teams[name]
		assert.InDelta(t, 1.0, s.AttackHome, 1e-12)
		assert.InDelta(t, 1.0, s.DefenseHome, 1e-12)
		assert.InDelta(t, 1.0, s.AttackAway, 1e-12)
		assert.InDelta(t, 1.0, s.DefenseAway, 1e-12)
	}
}

func TestHeadToHeadStats(t *testing.T) {
	matches := []models.Match{
		match("Man City", "Arsenal", 2, 0),
		match("Arsenal", "Manchester City", 1, 0),
		match("Arsenal", "Man City", 1, 1),
		match("Man City", "Chelsea", 3, 0),
	}

	h2h := HeadToHeadStats(matches, teams.DefaultAliases(), "Man City", "Arsenal")
	assert.Equal(t, HeadToHead{Total: 3, TeamAWins: 1, TeamBWins: 1, Draws: 1}, h2h)

	none := HeadToHeadStats(matches, teams.DefaultAliases(), "Chelsea", "Arsenal")
	assert.Equal(t, 0, none.Total)
}
