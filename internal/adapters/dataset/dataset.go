// Package dataset loads the medal dataset from CSV files or SQLite databases.
package dataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/podium/internal/domain/medal"
)

// Supported data sources.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Column names required in every source.
const (
	ColYear  = "Year"
	ColSport = "Sport"
	ColTeam  = "Team"
	ColSex   = "Sex"
	ColMedal = "Medal"
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "medals"

// RequiredColumns lists the columns every source must provide.
func RequiredColumns() []string {
	return []string{ColYear, ColSport, ColTeam, ColSex, ColMedal}
}

// missingTokens are the cell values treated as "no value". They match the NA
// markers the Olympic athlete dataset uses.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"#n/a": {},
	"<na>": {},
}

// IsMissing reports whether a raw cell value represents a missing value.
func IsMissing(v string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Load reads the dataset from the configured source.
func Load(ctx context.Context, source, path, table string) (*medal.Dataset, error) {
	switch strings.ToLower(source) {
	case "", SourceCSV:
		return LoadCSVFile(ctx, path)
	case SourceSQLite:
		return LoadSQLite(ctx, path, table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}

// parseRecord converts raw cell values into a Record. ok is false for rows
// without a medal, which are skipped. loc identifies the row in errors.
func parseRecord(year, sport, team, sex, medalValue, loc string) (rec medal.Record, ok bool, err error) {
	if IsMissing(medalValue) {
		return medal.Record{}, false, nil
	}
	y, err := parseYear(year)
	if err != nil {
		return medal.Record{}, false, fmt.Errorf("%w: %s: year %q", ErrMalformedRecord, loc, year)
	}
	return medal.Record{
		Year:  y,
		Sport: strings.TrimSpace(sport),
		Team:  strings.TrimSpace(team),
		Sex:   strings.TrimSpace(sex),
		Medal: strings.TrimSpace(medalValue),
	}, true, nil
}

// parseYear accepts integers and integral floats such as "2004.0".
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("year %v is not integral", f)
	}
	return int(f), nil
}
