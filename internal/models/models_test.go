package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchResult(t *testing.T) {
	tests := []struct {
		name string
		home int
		away int
		want Outcome
	}{
		{"home win", 2, 1, OutcomeHomeWin},
		{"draw", 1, 1, OutcomeDraw},
		{"away win", 0, 3, OutcomeAwayWin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Match{HomeGoals: tt.home, AwayGoals: tt.away}
			assert.Equal(t, tt.want, m.Result())
		})
	}
}

func TestMarketOutcome(t *testing.T) {
	o, ok := MarketAwayWin.Outcome()
	assert.True(t, ok)
	assert.Equal(t, OutcomeAwayWin, o)

	_, ok = MarketOver25.Outcome()
	assert.False(t, ok)
}

func TestMarketSettles(t *testing.T) {
	assert.True(t, MarketHomeWin.Settles(2, 0))
	assert.False(t, MarketHomeWin.Settles(1, 1))
	assert.True(t, MarketDraw.Settles(2, 2))
	assert.True(t, MarketAwayWin.Settles(0, 1))
	assert.True(t, MarketOver25.Settles(2, 1))
	assert.False(t, MarketOver25.Settles(1, 1))
	assert.True(t, MarketUnder25.Settles(1, 1))
	assert.False(t, MarketUnder25.Settles(3, 0))
}

func TestMarketOddsPrice(t *testing.T) {
	odds := MarketOdds{Home: Float(2.1), Draw: Float(0), Over: Float(1.9)}

	price, ok := odds.Price(MarketHomeWin)
	assert.True(t, ok)
	assert.Equal(t, 2.1, price)

	_, ok = odds.Price(MarketDraw)
	assert.False(t, ok, "zero price is treated as absent")

	_, ok = odds.Price(MarketAwayWin)
	assert.False(t, ok)

	assert.Equal(t, MarketTypeTotals, MarketOver25.Type())
	assert.True(t, MarketDraw.IsOutcomeMarket())
}

func TestFavouriteTieBreak(t *testing.T) {
	outcome, p := OutcomeProbabilities{HomeWin: 0.4, Draw: 0.4, AwayWin: 0.2}.Favourite()
	assert.Equal(t, OutcomeHomeWin, outcome)
	assert.Equal(t, 0.4, p)

	outcome, _ = OutcomeProbabilities{HomeWin: 0.2, Draw: 0.4, AwayWin: 0.4}.Favourite()
	assert.Equal(t, OutcomeDraw, outcome)
}

func TestSeasonHelpers(t *testing.T) {
	assert.Equal(t, time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC), SeasonStart(2023))
	assert.Equal(t, SeasonStart(2024), SeasonEnd(2023))
	assert.Equal(t, "2023/2024", SeasonLabel(2023))
	assert.Equal(t, 2023, SeasonOf(time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2024, SeasonOf(time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)))
}

func TestOutcomeCodes(t *testing.T) {
	for _, o := range []Outcome{OutcomeHomeWin, OutcomeDraw, OutcomeAwayWin} {
		parsed, ok := OutcomeFromCode(o.Code())
		assert.True(t, ok)
		assert.Equal(t, o, parsed)
	}
	_, ok := OutcomeFromCode("?")
	assert.False(t, ok)
}

func TestPredictionRecordReview(t *testing.T) {
	rec := PredictionRecord{PredictedOutcome: OutcomeHomeWin, Status: PredictionPending}
	rec.Review(OutcomeDraw)

	assert.Equal(t, PredictionReviewed, rec.Status)
	assert.Equal(t, OutcomeDraw, *rec.ActualOutcome)
	assert.False(t, *rec.IsCorrect)
}

func TestDegenerateCausesWrapSentinel(t *testing.T) {
	assert.True(t, errors.Is(ErrNoCommonTeams, ErrDegenerateWindow))
	assert.True(t, errors.Is(ErrZeroScoring, ErrDegenerateWindow))
	assert.Equal(t, "Premier League", LeagueName("E0"))
	assert.Equal(t, "X9", LeagueName("X9"))
}
