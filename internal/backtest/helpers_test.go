package backtest

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/footy-value/internal/logger"
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/teams"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fixture builds a match; odds are home, draw, away, over, under.
func fixture(date, league, home, away string, hg, ag int, odds ...float64) models.Match {
	m := models.Match{
		Date:      day(date),
		League:    league,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeGoals: hg,
		AwayGoals: ag,
	}
	prices := []**float64{&m.HomeOdds, &m.DrawOdds, &m.AwayOdds, &m.OverOdds, &m.UnderOdds}
	for i, o := range odds {
		if o > 0 {
			*prices[i] = models.Float(o)
		}
	}
	return m
}

// threeSeasons is a league where Alpha beats Beta home and away every season.
func threeSeasons() []models.Match {
	return []models.Match{
		fixture("2020-09-12", "E0", "Alpha", "Beta", 3, 0),
		fixture("2020-10-10", "E0", "Beta", "Alpha", 0, 2),
		fixture("2021-09-11", "E0", "Alpha", "Beta", 3, 0),
		fixture("2021-10-09", "E0", "Beta", "Alpha", 0, 2),
		fixture("2022-09-10", "E0", "Alpha", "Beta", 1, 0),
		fixture("2022-10-08", "E0", "Beta", "Alpha", 0, 1),
	}
}

// twoLeagues trains on 2020 and tests 2021. Both E0 value bets win and the
// SP1 one loses.
func twoLeagues() []models.Match {
	return []models.Match{
		fixture("2020-09-12", "SP1", "Gamma", "Delta", 3, 0),
		fixture("2020-10-10", "SP1", "Delta", "Gamma", 0, 2),
		fixture("2020-09-12", "E0", "Alpha", "Beta", 3, 0),
		fixture("2020-10-10", "E0", "Beta", "Alpha", 0, 2),
		fixture("2021-10-09", "E0", "Beta", "Alpha", 0, 1, 3.0, 4.0, 1.8),
		fixture("2021-09-11", "E0", "Alpha", "Beta", 1, 0, 1.5, 5.0, 10.0, 2.0, 1.9),
		fixture("2021-09-18", "SP1", "Gamma", "Delta", 0, 1, 1.5, 5.0, 10.0),
		fixture("2021-09-25", "SP1", "Gamma", "Omega", 2, 0, 1.5, 5.0, 10.0),
	}
}

func testLogger() *logrus.Logger {
	return logger.NewLoggerWithOutput("error", io.Discard)
}

func newTestEngine(t *testing.T, mutate func(*BacktestConfig), opts ...Option) *Engine {
	t.Helper()
	cfg := DefaultBacktestConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	engine, err := NewEngine(cfg, teams.DefaultAliases(), testLogger(), opts...)
	require.NoError(t, err)
	return engine
}
