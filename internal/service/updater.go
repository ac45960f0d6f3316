package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-value/internal/config"
	"github.com/yourusername/footy-value/internal/datasource"
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/teams"
)

// ResultAppender writes completed matches to a season file
type ResultAppender interface {
	AppendResults(path string, results []models.Match) (int, error)
}

// UpdateResult is the outcome for one competition.
type UpdateResult struct {
	SportKey  string `json:"sport_key"`
	File      string `json:"file"`
	Completed int    `json:"completed"`
	Added     int    `json:"added"`
}

// Updater appends recent final scores to the current season files so the
// next analysis trains on them.
type Updater struct {
	feed     datasource.OddsFeed
	appender ResultAppender
	files    map[string]string
	daysFrom int
	aliases  teams.Aliases
	logger   *logrus.Entry
}

// NewUpdater creates an updater over the configured result files
func NewUpdater(
	cfg *config.Config,
	feed datasource.OddsFeed,
	appender ResultAppender,
	aliases teams.Aliases,
	log *logrus.Logger,
) *Updater {
	return &Updater{
		feed:     feed,
		appender: appender,
		files:    cfg.OddsAPI.ResultFiles,
		daysFrom: cfg.OddsAPI.ScoresDaysFrom,
		aliases:  aliases,
		logger:   log.WithField("component", "updater"),
	}
}

// Run fetches scores per sport key, in key order. A feed failure skips the
// competition; a write failure aborts the run.
func (u *Updater) Run(ctx context.Context) ([]UpdateResult, error) {
	keys := make([]string, 0, len(u.files))
	for k := range u.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]UpdateResult, 0, len(keys))
	for _, key := range keys {
		path := u.files[key]
		events, err := u.feed.FetchScores(ctx, key, u.daysFrom)
		if err != nil {
			u.logger.WithError(err).WithField("sport_key", key).Warn("Failed to fetch scores, skipping")
			continue
		}

		league := datasource.LeagueFromPath(path)
		var completed []models.Match
		for _, e := range events {
			home, away, ok := e.Goals()
			if !ok {
				continue
			}
			completed = append(completed, models.Match{
				Date:      e.CommenceTime.UTC().Truncate(24 * time.Hour),
				League:    league,
				HomeTeam:  u.aliases.Normalize(e.HomeTeam),
				AwayTeam:  u.aliases.Normalize(e.AwayTeam),
				HomeGoals: home,
				AwayGoals: away,
			})
		}

		result := UpdateResult{SportKey: key, File: path, Completed: len(completed)}
		if len(completed) > 0 {
			added, err := u.appender.AppendResults(path, completed)
			if err != nil {
				return nil, fmt.Errorf("failed to update %s: %w", path, err)
			}
			result.Added = added
		}

		u.logger.WithFields(logrus.Fields{
			"sport_key": key,
			"file":      path,
			"completed": result.Completed,
			"added":     result.Added,
		}).Info("Season file updated")
		results = append(results, result)
	}
	return results, nil
}
