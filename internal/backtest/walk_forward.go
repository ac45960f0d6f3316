package backtest

import (
	"sort"

	"github.com/yourusername/footy-value/internal/models"
)

// CandidateSeasons returns the season start years that can be tested.
// They are the distinct years of matches played August to December, in
// ascending order, that have at least one match before the season start to
// train on.
func CandidateSeasons(matches []models.Match) ([]int, error) {
	if len(matches) == 0 {
		return nil, models.ErrInsufficientSeasons
	}

	earliest := matches[0].Date
	seen := make(map[int]struct{})
	for _, m := range matches {
		if m.Date.Before(earliest) {
			earliest = m.Date
		}
		if m.Date.Month() >= models.SeasonStartMonth {
			seen[m.Date.Year()] = struct{}{}
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		if earliest.Before(models.SeasonStart(y)) {
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		return nil, models.ErrInsufficientSeasons
	}
	sort.Ints(years)
	return years, nil
}

// SplitSeason splits matches into a training window strictly before the
// season start and the test season [start, next start).
func SplitSeason(matches []models.Match, year int) (train, test []models.Match) {
	start := models.SeasonStart(year)
	end := models.SeasonEnd(year)
	for _, m := range matches {
		switch {
		case m.Date.Before(start):
			train = append(train, m)
		case m.Date.Before(end):
			test = append(test, m)
		}
	}
	return train, test
}

// CompareSeasons classifies the latest season's accuracy against the one
// before it. Differences within band percentage points are stable.
func CompareSeasons(seasons []models.SeasonResult, band float64) models.Trend {
	if len(seasons) < 2 {
		return models.TrendNone
	}
	latest := seasons[len(seasons)-1].Accuracy
	previous := seasons[len(seasons)-2].Accuracy
	diff := latest - previous
	switch {
	case diff > band:
		return models.TrendImproved
	case diff < -band:
		return models.TrendRegressed
	default:
		return models.TrendStable
	}
}
