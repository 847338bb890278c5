// Package medal contains the medal record model and the sport filter.
package medal

import "sort"

// All is the selector value that matches every sport.
const All = "All"

// Record is one medal awarded to one athlete or team in one event.
type Record struct {
	Year  int    `json:"year"`
	Sport string `json:"sport"`
	Team  string `json:"team"`
	Sex   string `json:"sex"`
	Medal string `json:"medal"`
}

// Dataset is the cleaned, medal-only record collection. It is built once and
// never mutated afterwards, so it is safe to share between goroutines.
type Dataset struct {
	records []Record
	sports  []string
}

// NewDataset builds a Dataset from records, dropping rows without a medal.
// The input slice is copied.
func NewDataset(records []Record) *Dataset {
	kept := make([]Record, 0, len(records))
	seen := make(map[string]struct{})
	sports := make([]string, 0)
	for _, r := range records {
		if r.Medal == "" {
			continue
		}
		kept = append(kept, r)
		if _, ok := seen[r.Sport]; !ok {
			seen[r.Sport] = struct{}{}
			sports = append(sports, r.Sport)
		}
	}
	sort.Strings(sports)
	return &Dataset{records: kept, sports: sports}
}

// Records returns the medal records in load order. Callers must not modify
// the returned slice.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of medal records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Sports returns the sorted distinct sport names.
func (d *Dataset) Sports() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.sports))
	copy(out, d.sports)
	return out
}

// Options returns the selector choices: All followed by the sorted sports.
func (d *Dataset) Options() []string {
	return append([]string{All}, d.Sports()...)
}

// HasSport reports whether sport occurs in the dataset.
func (d *Dataset) HasSport(sport string) bool {
	if d == nil {
		return false
	}
	i := sort.SearchStrings(d.sports, sport)
	return i < len(d.sports) && d.sports[i] == sport
}
