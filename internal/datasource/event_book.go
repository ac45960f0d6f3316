package datasource

import (
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/teams"
)

const (
	marketKeyH2H    = "h2h"
	marketKeyTotals = "totals"
	outcomeDraw     = "Draw"
	outcomeOver     = "Over"
	outcomeUnder    = "Under"
)

// EventBook answers odds lookups over a batch of feed events.
// Fixtures are keyed by normalised team names.
type EventBook struct {
	aliases teams.Aliases
	events  map[fixtureKey]Event
}

type fixtureKey struct{ home, away string }

// NewEventBook indexes events. A repeated fixture keeps its first event.
func NewEventBook(events []Event, aliases teams.Aliases) *EventBook {
	book := &EventBook{aliases: aliases, events: make(map[fixtureKey]Event, len(events))}
	for _, e := range events {
		key := book.key(e.HomeTeam, e.AwayTeam)
		if _, exists := book.events[key]; !exists {
			book.events[key] = e
		}
	}
	return book
}

func (b *EventBook) key(home, away string) fixtureKey {
	return fixtureKey{home: b.aliases.Normalize(home), away: b.aliases.Normalize(away)}
}

// Len returns the number of indexed fixtures
func (b *EventBook) Len() int {
	return len(b.events)
}

// MarketOdds implements models.OddsLookup. The first bookmaker offering
// the market supplies every leg; legs it does not price stay nil.
func (b *EventBook) MarketOdds(homeTeam, awayTeam string, market models.MarketType) (models.MarketOdds, bool) {
	event, ok := b.events[b.key(homeTeam, awayTeam)]
	if !ok {
		return models.MarketOdds{}, false
	}

	switch market {
	case models.MarketTypeOutcome:
		mkt, ok := firstMarket(event.Bookmakers, marketKeyH2H)
		if !ok {
			return models.MarketOdds{}, false
		}
		return models.MarketOdds{
			Home: price(mkt, event.HomeTeam, nil),
			Draw: price(mkt, outcomeDraw, nil),
			Away: price(mkt, event.AwayTeam, nil),
		}, true
	case models.MarketTypeTotals:
		mkt, ok := firstMarket(event.Bookmakers, marketKeyTotals)
		if !ok {
			return models.MarketOdds{}, false
		}
		line := models.GoalsThreshold
		return models.MarketOdds{
			Over:  price(mkt, outcomeOver, &line),
			Under: price(mkt, outcomeUnder, &line),
		}, true
	default:
		return models.MarketOdds{}, false
	}
}

// Odds merges both market types for a fixture.
func (b *EventBook) Odds(homeTeam, awayTeam string) models.MarketOdds {
	odds, _ := b.MarketOdds(homeTeam, awayTeam, models.MarketTypeOutcome)
	if goals, ok := b.MarketOdds(homeTeam, awayTeam, models.MarketTypeTotals); ok {
		odds.Over, odds.Under = goals.Over, goals.Under
	}
	return odds
}

func firstMarket(bookmakers []Bookmaker, key string) (BookmakerMkt, bool) {
	for _, bm := range bookmakers {
		for _, m := range bm.Markets {
			if m.Key == key {
				return m, true
			}
		}
	}
	return BookmakerMkt{}, false
}

func price(m BookmakerMkt, name string, point *float64) *float64 {
	for _, o := range m.Outcomes {
		if o.Name != name {
			continue
		}
		if point != nil && (o.Point == nil || *o.Point != *point) {
			continue
		}
		return models.Float(o.Price)
	}
	return nil
}
