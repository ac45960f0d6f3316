package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/strategy"
)

var opportunityLabels = map[strategy.Opportunity]string{
	strategy.OpportunityVeryHigh: "***  very high",
	strategy.OpportunityGood:     "**   good",
	strategy.OpportunitySmall:    "*    small edge",
}

// RenderAnalysis formats an analysis run for the terminal
func RenderAnalysis(report *AnalysisReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Model trained on %d historical matches.\n", report.TrainedOn)
	fmt.Fprintf(&b, "Fetching odds for fixtures in the next %d hours...\n", report.HoursAhead)

	switch {
	case report.EventsFound == 0:
		b.WriteString("\nNo upcoming fixtures with odds were found.\n")
		return b.String()
	case len(report.Fixtures) == 0:
		b.WriteString("\nFixtures were found, but the model has no history for the teams involved.\n")
		return b.String()
	}

	for _, f := range report.Fixtures {
		b.WriteString("\n")
		renderFixture(&b, f)
	}
	return b.String()
}

func renderFixture(b *strings.Builder, f FixtureReport) {
	rule := strings.Repeat("=", 50)
	b.WriteString(rule + "\n")
	fmt.Fprintf(b, "%s vs %s\n", f.HomeTeam, f.AwayTeam)
	fmt.Fprintf(b, "%s\n", f.Kickoff.UTC().Format("Monday, 02 January - 15:04"))
	b.WriteString(rule + "\n")

	b.WriteString("\nHead to head:\n")
	if f.HeadToHead.Total > 0 {
		fmt.Fprintf(b, "  played %d | %s wins %d | %s wins %d | draws %d\n",
			f.HeadToHead.Total, f.HomeTeam, f.HeadToHead.TeamAWins, f.AwayTeam, f.HeadToHead.TeamBWins, f.HeadToHead.Draws)
	} else {
		b.WriteString("  no recent meetings on record\n")
	}

	b.WriteString("\nResult:\n")
	fmt.Fprintf(b, "  most likely %s at %.1f%%\n", favouriteLabel(f), f.Confidence*100)
	fmt.Fprintf(b, "  expected goals %.2f - %.2f\n", f.Prediction.ExpectedHome, f.Prediction.ExpectedAway)
	switch f.GoalsOutlook {
	case GoalsOutlookHigh:
		b.WriteString("  a match with several goals is expected\n")
	case GoalsOutlookLow:
		b.WriteString("  a tight, low-scoring match is expected\n")
	}

	b.WriteString("\nGoals (2.5 line):\n")
	fmt.Fprintf(b, "  over %.1f%% | under %.1f%%\n", f.Prediction.Goals.Over*100, f.Prediction.Goals.Under*100)

	b.WriteString("\nValue:\n")
	if len(f.ValueBets) == 0 {
		b.WriteString("  no clear value in the main markets\n")
		return
	}
	for _, v := range f.ValueBets {
		fmt.Fprintf(b, "  %s @%.2f  model %.2f%%  %s\n",
			marketLabel(v.Bet.Market, f), v.Bet.Odds, v.Bet.Probability*100, opportunityLabels[v.Level])
		fmt.Fprintf(b, "    kelly stake %.2f%% of bankroll\n", v.KellyFraction*100)
	}
	if f.ValueOnUnderdog {
		b.WriteString("  value is in the upset: the model has a favourite but prices the other results too generously\n")
	} else {
		b.WriteString("  value agrees with the model: the most likely result is priced attractively\n")
	}
}

// WriteAnalysisJSON encodes an analysis run as indented JSON
func WriteAnalysisJSON(w io.Writer, report *AnalysisReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	return nil
}

func favouriteLabel(f FixtureReport) string {
	switch f.Favourite {
	case models.OutcomeHomeWin:
		return f.HomeTeam + " win"
	case models.OutcomeAwayWin:
		return f.AwayTeam + " win"
	default:
		return "draw"
	}
}

func marketLabel(m models.Market, f FixtureReport) string {
	switch m {
	case models.MarketHomeWin:
		return f.HomeTeam + " win"
	case models.MarketAwayWin:
		return f.AwayTeam + " win"
	case models.MarketDraw:
		return "Draw"
	case models.MarketOver25:
		return "Over 2.5 goals"
	case models.MarketUnder25:
		return "Under 2.5 goals"
	default:
		return string(m)
	}
}

// RenderReview formats a review run for the terminal
func RenderReview(report *ReviewReport) string {
	if report.Pending == 0 {
		return "No pending predictions to review.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Reviewing %d pending predictions...\n", report.Pending)
	fmt.Fprintf(&b, "Hits: %d | Misses: %d\n", report.Hits, report.Misses)
	if report.Hits+report.Misses > 0 {
		fmt.Fprintf(&b, "Precision this review: %.2f%%\n", report.Precision)
	}
	return b.String()
}

// RenderUpdate formats an update run for the terminal
func RenderUpdate(results []UpdateResult) string {
	if len(results) == 0 {
		return "No season files were updated.\n"
	}
	var b strings.Builder
	for _, r := range results {
		if r.Completed == 0 {
			fmt.Fprintf(&b, "%s: no new completed results\n", r.SportKey)
			continue
		}
		fmt.Fprintf(&b, "%s: added %d of %d completed results to %s\n", r.SportKey, r.Added, r.Completed, r.File)
	}
	return b.String()
}
