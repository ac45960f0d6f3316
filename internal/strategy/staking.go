package strategy

// KellyStrategy stakes a multiple of the Kelly fraction of the current bankroll.
type KellyStrategy struct {
	BaseStrategy
}

// NewKellyStrategy creates a Kelly staking strategy.
func NewKellyStrategy(multiplier, minEdge float64, legs LegPolicy) *KellyStrategy {
	return &KellyStrategy{BaseStrategy: BaseStrategy{
		MaxOutcomeOdds:  DefaultMaxOutcomeOdds,
		KellyMultiplier: multiplier,
		MinEdge:         minEdge,
		Legs:            legs,
	}}
}

// Name returns strategy name
func (s *KellyStrategy) Name() string {
	return "kelly"
}

// Evaluate returns the value bets the strategy will consider.
func (s *KellyStrategy) Evaluate(strategyCtx Context) []Signal {
	bets := s.detector().FindValueBets(strategyCtx.Prediction, strategyCtx.Odds)
	return s.selectLegs(signalsFor(bets))
}

// ShouldBet determines if signal meets the minimum edge
func (s *KellyStrategy) ShouldBet(signal Signal) bool {
	return signal.Edge >= s.MinEdge
}

// CalculateStake returns bankroll × Kelly fraction × multiplier.
func (s *KellyStrategy) CalculateStake(signal Signal, bankroll float64) float64 {
	return s.ApplyKellyCriterion(signal.Bet.Probability, signal.Bet.Odds, bankroll)
}

// GetParameters returns strategy parameters
func (s *KellyStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"max_outcome_odds": s.MaxOutcomeOdds,
		"kelly_multiplier": s.KellyMultiplier,
		"min_edge":         s.MinEdge,
		"leg_policy":       string(s.Legs),
	}
}

// FlatStrategy stakes a fixed amount on every qualifying bet.
type FlatStrategy struct {
	BaseStrategy
	Stake float64
}

// NewFlatStrategy creates a flat staking strategy.
func NewFlatStrategy(stake, minEdge float64, legs LegPolicy) *FlatStrategy {
	return &FlatStrategy{
		BaseStrategy: BaseStrategy{
			MaxOutcomeOdds: DefaultMaxOutcomeOdds,
			MinEdge:        minEdge,
			Legs:           legs,
		},
		Stake: stake,
	}
}

// Name returns strategy name
func (s *FlatStrategy) Name() string {
	return "flat"
}

// Evaluate returns the value bets the strategy will consider.
func (s *FlatStrategy) Evaluate(strategyCtx Context) []Signal {
	bets := s.detector().FindValueBets(strategyCtx.Prediction, strategyCtx.Odds)
	return s.selectLegs(signalsFor(bets))
}

// ShouldBet determines if signal meets the minimum edge
func (s *FlatStrategy) ShouldBet(signal Signal) bool {
	return signal.Edge >= s.MinEdge
}

// CalculateStake returns the fixed stake; the bankroll is not consulted.
func (s *FlatStrategy) CalculateStake(signal Signal, bankroll float64) float64 {
	_ = bankroll
	if s.Stake <= 0 {
		return 0
	}
	return s.Stake
}

// GetParameters returns strategy parameters
func (s *FlatStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"max_outcome_odds": s.MaxOutcomeOdds,
		"stake":            s.Stake,
		"min_edge":         s.MinEdge,
		"leg_policy":       string(s.Legs),
	}
}

// WithMaxOutcomeOdds overrides the 1X2 price cap on a strategy.
func WithMaxOutcomeOdds(s Strategy, maxOdds float64) Strategy {
	if maxOdds <= 0 {
		return s
	}
	switch v := s.(type) {
	case *KellyStrategy:
		v.MaxOutcomeOdds = maxOdds
	case *FlatStrategy:
		v.MaxOutcomeOdds = maxOdds
	}
	return s
}
