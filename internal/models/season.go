package models

import (
	"fmt"
	"time"
)

// SeasonStartMonth is the first month of a European football season.
const SeasonStartMonth = time.August

// SeasonStart returns the first instant of the season starting in year.
func SeasonStart(year int) time.Time {
	return time.Date(year, SeasonStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// SeasonEnd returns the exclusive end of the season starting in year.
func SeasonEnd(year int) time.Time {
	return SeasonStart(year + 1)
}

// SeasonLabel formats a season as "2023/2024".
func SeasonLabel(year int) string {
	return fmt.Sprintf("%d/%d", year, year+1)
}

// SeasonOf returns the starting year of the season a date belongs to.
func SeasonOf(t time.Time) int {
	if t.Month() >= SeasonStartMonth {
		return t.Year()
	}
	return t.Year() - 1
}
