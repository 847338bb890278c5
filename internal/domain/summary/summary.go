// Package summary turns filtered medal records into chart-ready tables.
//
// Every aggregator is a pure function of its input and returns an empty,
// non-nil table for an empty subset.
package summary

import (
	"sort"

	"github.com/okian/podium/internal/domain/medal"
)

// LeaderboardSize caps the number of teams in a LeaderboardSummary.
const LeaderboardSize = 10

// YearCount is the number of medals awarded in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// TeamCount is the number of medals won by one team.
type TeamCount struct {
	Team  string `json:"team"`
	Count int    `json:"count"`
}

// SexCount is the number of medals won by one sex category.
type SexCount struct {
	Sex   string `json:"sex"`
	Count int    `json:"count"`
}

// TrendSummary is ordered ascending by Year.
type TrendSummary []YearCount

// LeaderboardSummary is ordered descending by Count, ties in first-seen order.
type LeaderboardSummary []TeamCount

// GenderSummary is ordered descending by Count, ties in first-seen order.
type GenderSummary []SexCount

// Total returns the sum of the counts.
func (s TrendSummary) Total() int {
	n := 0
	for _, p := range s {
		n += p.Count
	}
	return n
}

// Total returns the sum of the counts.
func (s LeaderboardSummary) Total() int {
	n := 0
	for _, p := range s {
		n += p.Count
	}
	return n
}

// Total returns the sum of the counts.
func (s GenderSummary) Total() int {
	n := 0
	for _, p := range s {
		n += p.Count
	}
	return n
}

// group is one key with its row count.
type group[K comparable] struct {
	key   K
	count int
}

// countBy groups records by key, keeping groups in order of first appearance.
func countBy[K comparable](records []medal.Record, key func(medal.Record) K) []group[K] {
	index := make(map[K]int)
	groups := make([]group[K], 0)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K]{key: k})
		}
		groups[i].count++
	}
	return groups
}

// Trend counts medals per year, ascending by year.
func Trend(records []medal.Record) TrendSummary {
	groups := countBy(records, func(r medal.Record) int { return r.Year })
	sort.Slice(groups, func(i, j int) bool { return groups[i].key < groups[j].key })

	out := make(TrendSummary, len(groups))
	for i, g := range groups {
		out[i] = YearCount{Year: g.key, Count: g.count}
	}
	return out
}

// Leaderboard counts medals per team and keeps the top LeaderboardSize teams.
// Teams with equal counts keep the order in which they first appeared.
func Leaderboard(records []medal.Record) LeaderboardSummary {
	groups := countBy(records, func(r medal.Record) string { return r.Team })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })
	if len(groups) > LeaderboardSize {
		groups = groups[:LeaderboardSize]
	}

	out := make(LeaderboardSummary, len(groups))
	for i, g := range groups {
		out[i] = TeamCount{Team: g.key, Count: g.count}
	}
	return out
}

// Gender counts medals per sex category, descending by count.
func Gender(records []medal.Record) GenderSummary {
	groups := countBy(records, func(r medal.Record) string { return r.Sex })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })

	out := make(GenderSummary, len(groups))
	for i, g := range groups {
		out[i] = SexCount{Sex: g.key, Count: g.count}
	}
	return out
}
