package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"github.com/yourusername/footy-value/internal/config"
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/teams"
)

// football-data.co.uk column names
const (
	colDate      = "Date"
	colHomeTeam  = "HomeTeam"
	colAwayTeam  = "AwayTeam"
	colHomeGoals = "FTHG"
	colAwayGoals = "FTAG"
	colHomeOdds  = "B365H"
	colDrawOdds  = "B365D"
	colAwayOdds  = "B365A"
	colOverOdds  = "B365>2.5"
	colUnderOdds = "B365<2.5"
)

var requiredColumns = []string{colDate, colHomeTeam, colAwayTeam, colHomeGoals, colAwayGoals}

// resultColumns is the header of a season file created from feed results.
var resultColumns = []string{colDate, colHomeTeam, colAwayTeam, colHomeGoals, colAwayGoals, colHomeOdds, colDrawOdds, colAwayOdds}

var dateLayouts = []string{"02/01/2006", "02/01/06"}

// CSVMatchLoader reads football-data.co.uk season files
type CSVMatchLoader struct {
	aliases     teams.Aliases
	requireOdds bool
	latin1      bool
	logger      *logrus.Entry
}

// NewCSVMatchLoader creates a loader for the configured data files
func NewCSVMatchLoader(cfg config.DataConfig, aliases teams.Aliases, logger *logrus.Logger) *CSVMatchLoader {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &CSVMatchLoader{
		aliases:     aliases,
		requireOdds: cfg.RequireOdds,
		latin1:      cfg.Encoding != "utf-8",
		logger:      logger.WithField("component", "csv_loader"),
	}
}

// Load reads every file and returns the matches sorted by date.
// Missing or malformed files are skipped with a warning.
func (l *CSVMatchLoader) Load(ctx context.Context, paths []string) ([]models.Match, error) {
	var all []models.Match
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches, err := l.LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.WithField("file", path).Warn("Data file not found, skipping")
			continue
		}
		if err != nil {
			l.logger.WithError(err).WithField("file", path).Warn("Failed to read data file, skipping")
			continue
		}
		all = append(all, matches...)
	}
	models.SortByDate(all)
	return all, nil
}

// LoadFile reads one season file. The league code is taken from the file name.
func (l *CSVMatchLoader) LoadFile(path string) ([]models.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(l.decode(f))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := indexHeader(records[0])
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	league := LeagueFromPath(path)
	matches := make([]models.Match, 0, len(records)-1)
	skipped := 0
	for _, rec := range records[1:] {
		m, ok := l.parseRow(rec, columns, league)
		if !ok {
			skipped++
			continue
		}
		if l.requireOdds && !m.HasOutcomeOdds() {
			skipped++
			continue
		}
		matches = append(matches, m)
	}

	l.logger.WithFields(logrus.Fields{
		"file":    path,
		"league":  league,
		"matches": len(matches),
		"skipped": skipped,
	}).Debug("Loaded data file")
	return matches, nil
}

func (l *CSVMatchLoader) parseRow(rec []string, columns map[string]int, league string) (models.Match, bool) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	date, err := ParseMatchDate(field(colDate))
	if err != nil {
		return models.Match{}, false
	}
	home, away := field(colHomeTeam), field(colAwayTeam)
	if home == "" || away == "" {
		return models.Match{}, false
	}
	hg, err := strconv.Atoi(field(colHomeGoals))
	if err != nil || hg < 0 {
		return models.Match{}, false
	}
	ag, err := strconv.Atoi(field(colAwayGoals))
	if err != nil || ag < 0 {
		return models.Match{}, false
	}

	return models.Match{
		Date:      date,
		League:    league,
		HomeTeam:  l.aliases.Normalize(home),
		AwayTeam:  l.aliases.Normalize(away),
		HomeGoals: hg,
		AwayGoals: ag,
		HomeOdds:  parseOdds(field(colHomeOdds)),
		DrawOdds:  parseOdds(field(colDrawOdds)),
		AwayOdds:  parseOdds(field(colAwayOdds)),
		OverOdds:  parseOdds(field(colOverOdds)),
		UnderOdds: parseOdds(field(colUnderOdds)),
	}, true
}

// AppendResults adds completed matches to a season file, creating it when
// missing. Rows already present by date and teams are left alone. It
// returns the number of rows added.
func (l *CSVMatchLoader) AppendResults(path string, results []models.Match) (int, error) {
	var records [][]string
	if f, err := os.Open(path); err == nil {
		reader := csv.NewReader(l.decode(f))
		reader.FieldsPerRecord = -1
		records, err = reader.ReadAll()
		f.Close()
		if err != nil {
			return 0, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}
	if len(records) == 0 {
		records = [][]string{append([]string(nil), resultColumns...)}
	}

	columns := indexHeader(records[0])
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return 0, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records[1:] {
		seen[rowKey(rec, columns)] = struct{}{}
	}

	added := 0
	width := len(records[0])
	for _, m := range results {
		row := make([]string, width)
		row[columns[colDate]] = m.Date.Format(dateLayouts[0])
		row[columns[colHomeTeam]] = m.HomeTeam
		row[columns[colAwayTeam]] = m.AwayTeam
		row[columns[colHomeGoals]] = strconv.Itoa(m.HomeGoals)
		row[columns[colAwayGoals]] = strconv.Itoa(m.AwayGoals)

		key := rowKey(row, columns)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		records = append(records, row)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	if err := l.writeRecords(path, records); err != nil {
		return 0, err
	}
	return added, nil
}

func (l *CSVMatchLoader) writeRecords(path string, records [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	var out io.Writer = tmp
	if l.latin1 {
		out = charmap.ISO8859_1.NewEncoder().Writer(tmp)
	}
	writer := csv.NewWriter(out)
	if err := writer.WriteAll(records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func (l *CSVMatchLoader) decode(r io.Reader) io.Reader {
	if l.latin1 {
		return charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	return r
}

// LeagueFromPath returns the league code prefix of a season file name,
// e.g. "SP1" for "data/SP1_2023_2024.csv".
func LeagueFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.Index(base, "_"); i > 0 {
		return base[:i]
	}
	return base
}

// ParseMatchDate parses day-first dates with two or four digit years.
func ParseMatchDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			// byte order mark, raw or as decoded from latin1
			name = strings.TrimPrefix(name, "\ufeff")
			name = strings.TrimPrefix(name, "\u00ef\u00bb\u00bf")
		}
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	return columns
}

func rowKey(rec []string, columns map[string]int) string {
	get := func(col string) string {
		i := columns[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	date := get(colDate)
	if t, err := ParseMatchDate(date); err == nil {
		date = t.Format("2006-01-02")
	}
	return date + "|" + get(colHomeTeam) + "|" + get(colAwayTeam)
}

func parseOdds(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 1.0 {
		return nil
	}
	return &v
}
