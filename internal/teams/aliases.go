// Package teams resolves the many spellings bookmakers and data providers use
// for the same club to one canonical name.
package teams

import "strings"

// Aliases is an immutable alias-to-canonical lookup. Aliases match
// case-insensitively since config loaders lowercase map keys.
type Aliases struct {
	names map[string]string
}

// NewAliases builds a table from alias -> canonical pairs.
func NewAliases(pairs map[string]string) Aliases {
	names := make(map[string]string, len(pairs))
	for alias, canonical := range pairs {
		names[aliasKey(alias)] = strings.TrimSpace(canonical)
	}
	return Aliases{names: names}
}

// Normalize returns the canonical name, or the trimmed input when unknown.
func (a Aliases) Normalize(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := a.names[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// With returns a new table with extra pairs layered over the receiver.
func (a Aliases) With(extra map[string]string) Aliases {
	merged := make(map[string]string, len(a.names)+len(extra))
	for alias, canonical := range a.names {
		merged[alias] = canonical
	}
	for alias, canonical := range extra {
		merged[aliasKey(alias)] = strings.TrimSpace(canonical)
	}
	return Aliases{names: merged}
}

func aliasKey(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}

// Len returns the number of known aliases.
func (a Aliases) Len() int {
	return len(a.names)
}

// DefaultAliases returns the built-in table for the top five European leagues.
func DefaultAliases() Aliases {
	return NewAliases(defaultAliasPairs())
}

func defaultAliasPairs() map[string]string {
	return map[string]string{
		// Premier League
		"West Ham United":          "West Ham",
		"Wolverhampton Wanderers":  "Wolves",
		"Nott'm Forest":            "Nottingham Forest",
		"Manchester United":        "Man United",
		"Newcastle United":         "Newcastle",
		"Tottenham Hotspur":        "Tottenham",
		"Brighton & Hove Albion":   "Brighton",
		"Brighton and Hove Albion": "Brighton",
		"Leeds United":             "Leeds",
		"Leicester City":           "Leicester",
		"Manchester City":          "Man City",
		"AFC Bournemouth":          "Bournemouth",

		// La Liga
		"Athletic Club":          "Athletic Bilbao",
		"RCD Mallorca":           "Mallorca",
		"CA Osasuna":             "Osasuna",
		"Espanol":                "Espanyol",
		"RCD Espanyol":           "Espanyol",
		"RCD Espanyol Barcelona": "Espanyol",
		"Cádiz CF":               "Cadiz",
		"Atlético Madrid":        "Atletico Madrid",
		"Ath Madrid":             "Atletico Madrid",
		"UD Almería":             "Almeria",
		"RC Celta":               "Celta Vigo",
		"Celta":                  "Celta Vigo",
		"Elche CF":               "Elche",
		"Betis":                  "Real Betis",
		"Real Betis Balompié":    "Real Betis",
		"Sociedad":               "Real Sociedad",
		"Vallecano":              "Rayo Vallecano",
		"Ath Bilbao":             "Athletic Bilbao",

		// Bundesliga
		"Bayer Leverkusen":  "Leverkusen",
		"Borussia Dortmund": "Dortmund",
		"Ein Frankfurt":     "Eintracht Frankfurt",
		"Leipzig":           "RB Leipzig",
		"Koln":              "FC Koln",
		"1. FC Köln":        "FC Koln",
		"Bayern München":    "Bayern Munich",
		"FC Bayern München": "Bayern Munich",

		// Serie A
		"Inter Milan": "Inter",
		"Milan":       "AC Milan",
		"AS Roma":     "Roma",
		"SSC Napoli":  "Napoli",

		// Ligue 1
		"Paris Saint-Germain": "Paris SG",
		"Paris Saint Germain": "Paris SG",
		"Olympique Marseille": "Marseille",
		"Olympique Lyonnais":  "Lyon",
		"AS Monaco":           "Monaco",
		"Stade Rennais":       "Rennes",
	}
}
