package strength

import (
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/teams"
)

// HeadToHead summarises past meetings between two teams at either venue.
type HeadToHead struct {
	Total     int `json:"total_matches"`
	TeamAWins int `json:"team_a_wins"`
	TeamBWins int `json:"team_b_wins"`
	Draws     int `json:"draws"`
}

// HeadToHeadStats counts meetings between canonical teams a and b.
func HeadToHeadStats(matches []models.Match, aliases teams.Aliases, a, b string) HeadToHead {
	var h2h HeadToHead
	for _, m := range matches {
		home := aliases.Normalize(m.HomeTeam)
		away := aliases.Normalize(m.AwayTeam)

		var aIsHome bool
		switch {
		case home == a && away == b:
			aIsHome = true
		case home == b && away == a:
			aIsHome = false
		default:
			continue
		}

		h2h.Total++
		switch m.Result() {
		case models.OutcomeDraw:
			h2h.Draws++
		case models.OutcomeHomeWin:
			if aIsHome {
				h2h.TeamAWins++
			} else {
				h2h.TeamBWins++
			}
		case models.OutcomeAwayWin:
			if aIsHome {
				h2h.TeamBWins++
			} else {
				h2h.TeamAWins++
			}
		}
	}
	return h2h
}
