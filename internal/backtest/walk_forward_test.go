package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/footy-value/internal/models"
)

func TestCandidateSeasons(t *testing.T) {
	tests := []struct {
		name    string
		matches []models.Match
		want    []int
		wantErr error
	}{
		{
			name:    "three seasons",
			matches: threeSeasons(),
			want:    []int{2021, 2022},
		},
		{
			name: "spring matches do not add boundaries",
			matches: []models.Match{
				fixture("2020-09-01", "E0", "A", "B", 1, 0),
				fixture("2021-03-01", "E0", "A", "B", 1, 0),
				fixture("2021-08-01", "E0", "A", "B", 1, 0),
			},
			want: []int{2021},
		},
		{
			name: "data starting mid-season tests its first autumn",
			matches: []models.Match{
				fixture("2021-01-16", "E0", "A", "B", 1, 0),
				fixture("2021-04-03", "E0", "B", "A", 2, 1),
				fixture("2021-09-11", "E0", "A", "B", 0, 0),
				fixture("2022-09-10", "E0", "B", "A", 1, 1),
			},
			want: []int{2021, 2022},
		},
		{
			name: "unsorted input",
			matches: []models.Match{
				fixture("2022-09-10", "E0", "B", "A", 1, 1),
				fixture("2020-08-01", "E0", "A", "B", 1, 0),
				fixture("2021-09-11", "E0", "A", "B", 0, 0),
			},
			want: []int{2021, 2022},
		},
		{
			name: "single season",
			matches: []models.Match{
				fixture("2020-09-01", "E0", "A", "B", 1, 0),
				fixture("2021-05-01", "E0", "B", "A", 1, 0),
			},
			wantErr: models.ErrInsufficientSeasons,
		},
		{
			name:    "no matches",
			wantErr: models.ErrInsufficientSeasons,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CandidateSeasons(tt.matches)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitSeasonBoundaries(t *testing.T) {
	matches := []models.Match{
		fixture("2021-07-31", "E0", "A", "B", 0, 0),
		fixture("2021-08-01", "E0", "A", "B", 0, 0),
		fixture("2022-07-31", "E0", "A", "B", 0, 0),
		fixture("2022-08-01", "E0", "A", "B", 0, 0),
	}

	train, test := SplitSeason(matches, 2021)
	require.Len(t, train, 1)
	require.Len(t, test, 2)
	assert.Equal(t, day("2021-07-31"), train[0].Date)
	assert.Equal(t, day("2021-08-01"), test[0].Date)
	assert.Equal(t, day("2022-07-31"), test[1].Date)
}

func TestCompareSeasons(t *testing.T) {
	seasons := func(acc ...float64) []models.SeasonResult {
		out := make([]models.SeasonResult, len(acc))
		for i, a := range acc {
			out[i] = models.SeasonResult{Accuracy: a}
		}
		return out
	}

	tests := []struct {
		name    string
		seasons []models.SeasonResult
		want    models.Trend
	}{
		{"no seasons", nil, models.TrendNone},
		{"one season", seasons(50), models.TrendNone},
		{"improved", seasons(50, 51.5), models.TrendImproved},
		{"regressed", seasons(50, 48.9), models.TrendRegressed},
		{"stable within band", seasons(50, 50.9), models.TrendStable},
		{"exactly on band", seasons(50, 51), models.TrendStable},
		{"only latest two count", seasons(10, 50, 50.5), models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareSeasons(tt.seasons, 1.0))
		})
	}
}
