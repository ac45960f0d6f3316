package backtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-value/internal/logger"
	"github.com/yourusername/footy-value/internal/metrics"
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/prediction"
	"github.com/yourusername/footy-value/internal/repository"
	"github.com/yourusername/footy-value/internal/strategy"
	"github.com/yourusername/footy-value/internal/strength"
	"github.com/yourusername/footy-value/internal/teams"
)

// Engine orchestrates backtesting runs
type Engine struct {
	config      BacktestConfig
	aliases     teams.Aliases
	estimator   *strength.Estimator
	performance repository.PerformanceLogRepository
	financial   repository.FinancialLogRepository
	cache       *strengthCache
	logger      *logrus.Logger
	now         func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithPerformanceLog persists accuracy results by season.
func WithPerformanceLog(repo repository.PerformanceLogRepository) Option {
	return func(e *Engine) { e.performance = repo }
}

// WithFinancialLog persists Kelly results by season and league.
func WithFinancialLog(repo repository.FinancialLogRepository) Option {
	return func(e *Engine) { e.financial = repo }
}

// WithRepositories wires both result logs from a repository container.
func WithRepositories(repos *repository.Repositories) Option {
	return func(e *Engine) {
		if repos == nil {
			return
		}
		e.performance = repos.Performance
		e.financial = repos.Financial
	}
}

// NewEngine creates a new backtesting engine
func NewEngine(cfg BacktestConfig, aliases teams.Aliases, logger *logrus.Logger, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backtest config: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}

	e := &Engine{
		config:    cfg,
		aliases:   aliases,
		estimator: strength.NewEstimator(aliases),
		cache:     newStrengthCache(cfg.StrengthCacheTTL),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the backtest configuration
func (e *Engine) Config() BacktestConfig {
	return e.config
}

// AccuracyReport is the result of an accuracy walk-forward
type AccuracyReport struct {
	RunID   string                `json:"run_id"`
	Seasons []models.SeasonResult `json:"seasons"`
	Trend   models.Trend          `json:"trend"`
}

// FinancialReport is the result of one staking simulation over a season
type FinancialReport struct {
	RunID    string                `json:"run_id"`
	Season   string                `json:"season"`
	Strategy string                `json:"strategy"`
	Leagues  []models.LeagueReport `json:"leagues"`
	Bets     []models.SettledBet   `json:"bets"`
}

// RunAccuracyBacktest walks forward through years in ascending order,
// training on everything before each season and scoring favourites on it.
func (e *Engine) RunAccuracyBacktest(ctx context.Context, matches []models.Match, years []int) (AccuracyReport, error) {
	start := time.Now()
	report, err := e.runAccuracy(ctx, matches, years)
	recordRun("accuracy", start, err)
	return report, err
}

func (e *Engine) runAccuracy(ctx context.Context, matches []models.Match, years []int) (AccuracyReport, error) {
	if len(matches) == 0 {
		return AccuracyReport{}, models.ErrEmptyInput
	}
	if len(years) == 0 {
		return AccuracyReport{}, models.ErrInsufficientSeasons
	}

	report := AccuracyReport{RunID: uuid.New().String(), Trend: models.TrendNone}
	log := logger.NewBacktestLogger(e.logger, report.RunID)

	ordered := append([]int(nil), years...)
	sort.Ints(ordered)

	for _, year := range ordered {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		season := models.SeasonLabel(year)

		train, test := SplitSeason(matches, year)
		if len(train) == 0 || len(test) == 0 {
			log.LogSeasonSkipped(season, "empty training or test window")
			continue
		}
		table, err := e.strengthTable(year, train)
		if err != nil {
			if errors.Is(err, models.ErrDegenerateWindow) || errors.Is(err, models.ErrEmptyInput) {
				log.LogSeasonSkipped(season, err.Error())
				continue
			}
			return report, err
		}

		result := e.scoreSeason(year, table, test)
		if result.Tested == 0 {
			log.LogSeasonSkipped(season, "no test match with resolvable teams")
			continue
		}
		log.LogSeasonEvaluated(season, len(train), result.Tested, result.Accuracy, result.HighConfidenceAccuracy)
		metrics.UpdateSeasonAccuracy(season, result.Accuracy, result.HighConfidenceAccuracy)

		if e.performance != nil {
			entry := &models.PerformanceEntry{
				Timestamp:              e.now().UTC(),
				Season:                 season,
				Accuracy:               result.Accuracy,
				HighConfidenceAccuracy: result.HighConfidenceAccuracy,
			}
			if err := e.performance.Upsert(ctx, entry); err != nil {
				return report, fmt.Errorf("failed to record season %s: %w", season, err)
			}
		}
		report.Seasons = append(report.Seasons, result)
	}

	report.Trend = CompareSeasons(report.Seasons, e.config.TrendBand)
	return report, nil
}

func (e *Engine) scoreSeason(year int, table *strength.Table, test []models.Match) models.SeasonResult {
	predictor := e.predictor(table)
	result := models.SeasonResult{Season: models.SeasonLabel(year), Year: year}

	for _, m := range test {
		pred, ok := predictor.PredictFixture(m.HomeTeam, m.AwayTeam)
		if !ok {
			metrics.RecordMatchSkipped("unresolved_team")
			continue
		}
		metrics.RecordMatchEvaluated("accuracy")

		favourite, confidence := pred.Outcome.Favourite()
		correct := favourite == m.Result()
		result.Tested++
		if correct {
			result.Correct++
		}
		if confidence > e.config.HighConfidenceThreshold {
			result.HighConfidenceTested++
			if correct {
				result.HighConfidenceCorrect++
			}
		}
	}

	result.Accuracy = percentage(result.Correct, result.Tested)
	result.HighConfidenceAccuracy = percentage(result.HighConfidenceCorrect, result.HighConfidenceTested)
	return result
}

// RunFinancialBacktest simulates Kelly staking on season year, per league.
// Results are written to the financial log when one is configured.
func (e *Engine) RunFinancialBacktest(ctx context.Context, matches []models.Match, year int, bankroll, kellyMultiplier, minEdge float64) (FinancialReport, error) {
	if kellyMultiplier <= 0 || kellyMultiplier > 1 {
		return FinancialReport{}, fmt.Errorf("kelly multiplier must be in (0, 1], got %v", kellyMultiplier)
	}
	strat := strategy.NewKellyStrategy(kellyMultiplier, minEdge, e.config.LegPolicy)
	strat.MaxOutcomeOdds = e.config.MaxOutcomeOdds
	return e.RunStrategyBacktest(ctx, matches, year, bankroll, strat, true)
}

// RunFlatBacktest simulates fixed-stake betting on season year, per league.
// Flat runs are not written to the financial log.
func (e *Engine) RunFlatBacktest(ctx context.Context, matches []models.Match, year int, bankroll, stake, minEdge float64) (FinancialReport, error) {
	if stake <= 0 {
		return FinancialReport{}, fmt.Errorf("flat stake must be positive, got %v", stake)
	}
	strat := strategy.NewFlatStrategy(stake, minEdge, e.config.LegPolicy)
	strat.MaxOutcomeOdds = e.config.MaxOutcomeOdds
	return e.RunStrategyBacktest(ctx, matches, year, bankroll, strat, false)
}

// RunStrategyBacktest replays season year league by league with strat.
func (e *Engine) RunStrategyBacktest(ctx context.Context, matches []models.Match, year int, bankroll float64, strat strategy.Strategy, persist bool) (FinancialReport, error) {
	start := time.Now()
	report, err := e.runStrategy(ctx, matches, year, bankroll, strat, persist)
	recordRun(strat.Name(), start, err)
	return report, err
}

func (e *Engine) runStrategy(ctx context.Context, matches []models.Match, year int, bankroll float64, strat strategy.Strategy, persist bool) (FinancialReport, error) {
	if strat == nil {
		return FinancialReport{}, fmt.Errorf("strategy is required")
	}
	if bankroll <= 0 {
		return FinancialReport{}, fmt.Errorf("initial bankroll must be positive")
	}

	train, test := SplitSeason(matches, year)
	if len(train) == 0 || len(test) == 0 {
		return FinancialReport{}, models.ErrEmptyInput
	}
	table, err := e.strengthTable(year, train)
	if err != nil {
		return FinancialReport{}, err
	}

	season := models.SeasonLabel(year)
	report := FinancialReport{
		RunID:    uuid.New().String(),
		Season:   season,
		Strategy: strat.Name(),
	}
	log := logger.NewBacktestLogger(e.logger, report.RunID)
	predictor := e.predictor(table)

	byLeague := groupByLeague(test)
	for _, league := range sortedKeys(byLeague) {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		state := NewBankrollState(bankroll)
		fixtures := byLeague[league]
		models.SortByDate(fixtures)
		for _, m := range fixtures {
			e.playMatch(log, predictor, strat, state, m)
		}

		leagueReport := state.Report(season, league)
		report.Leagues = append(report.Leagues, leagueReport)
		report.Bets = append(report.Bets, state.Bets...)
		log.LogLeagueSettled(strat.Name(), season, leagueReport.LeagueName, leagueReport.FinalBankroll, leagueReport.ROI, leagueReport.BetsPlaced)
		metrics.UpdateLeagueResult(strat.Name(), season, leagueReport.LeagueName, leagueReport.FinalBankroll, leagueReport.ROI)

		if persist && e.financial != nil {
			entry := &models.FinancialEntry{
				Season:        season,
				League:        leagueReport.LeagueName,
				FinalBankroll: leagueReport.FinalBankroll,
				ProfitLoss:    leagueReport.ProfitLoss,
				ROI:           leagueReport.ROI,
			}
			if err := e.financial.Upsert(ctx, entry); err != nil {
				return report, fmt.Errorf("failed to record %s %s: %w", season, leagueReport.LeagueName, err)
			}
		}
	}

	return report, nil
}

// playMatch stakes and settles the bets strat selects on one fixture.
func (e *Engine) playMatch(log *logger.BacktestLogger, predictor *prediction.Predictor, strat strategy.Strategy, state *BankrollState, m models.Match) {
	pred, ok := predictor.PredictFixture(m.HomeTeam, m.AwayTeam)
	if !ok {
		metrics.RecordMatchSkipped("unresolved_team")
		return
	}
	metrics.RecordMatchEvaluated(strat.Name())

	odds := m.Odds()
	if !e.config.IncludeGoalMarkets {
		odds.Over, odds.Under = nil, nil
	}

	signals := strat.Evaluate(strategy.Context{
		Date:       m.Date,
		League:     m.League,
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		Prediction: pred,
		Odds:       odds,
	})
	for _, signal := range signals {
		if !strat.ShouldBet(signal) {
			continue
		}
		stake := strat.CalculateStake(signal, state.Current())
		if stake <= 0 {
			continue
		}

		settled := state.Settle(models.SettledBet{
			Date:        m.Date,
			League:      m.League,
			HomeTeam:    m.HomeTeam,
			AwayTeam:    m.AwayTeam,
			Market:      signal.Bet.Market,
			Odds:        signal.Bet.Odds,
			Probability: signal.Bet.Probability,
			Stake:       stake,
			Won:         signal.Bet.Market.Settles(m.HomeGoals, m.AwayGoals),
		})
		metrics.RecordBacktestBet(strat.Name(), string(settled.Market))
		log.LogBetPlaced(m.League, m.HomeTeam+" v "+m.AwayTeam, string(settled.Market),
			settled.Odds, settled.Probability, settled.Stake, settled.Bankroll, settled.Won)
	}
}

// strengthTable estimates the training window, reusing a cached table for
// an identical window.
func (e *Engine) strengthTable(year int, train []models.Match) (*strength.Table, error) {
	key := strengthCacheKey(models.SeasonStart(year), train)
	if table, ok := e.cache.get(key); ok {
		return table, nil
	}
	table, err := e.estimator.Estimate(train)
	if err != nil {
		return nil, fmt.Errorf("season %s: %w", models.SeasonLabel(year), err)
	}
	e.cache.set(key, table)
	return table, nil
}

func (e *Engine) predictor(table *strength.Table) *prediction.Predictor {
	return prediction.NewPredictor(table, e.aliases,
		prediction.WithBounds(e.config.OutcomeMaxGoals, e.config.TotalsMaxGoals))
}

func groupByLeague(matches []models.Match) map[string][]models.Match {
	groups := make(map[string][]models.Match)
	for _, m := range matches {
		groups[m.League] = append(groups[m.League], m)
	}
	return groups
}

func sortedKeys(groups map[string][]models.Match) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func recordRun(mode string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.RecordBacktestRun(mode, status, time.Since(start).Seconds())
}
