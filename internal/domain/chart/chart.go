// Package chart maps summary tables to declarative, renderer-agnostic chart
// specifications. Builders only format; they never aggregate.
package chart

import (
	"errors"
	"fmt"
)

// ErrUnknownChart is returned by ParseName for names outside Names().
var ErrUnknownChart = errors.New("unknown chart")

// Kind is the visual form of a chart.
type Kind string

// Supported chart kinds.
const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
)

// Name identifies one of the dashboard charts.
type Name string

// Dashboard chart names.
const (
	NameTrend       Name = "trend"
	NameLeaderboard Name = "leaderboard"
	NameGender      Name = "gender"
)

// Names returns the dashboard charts in display order.
func Names() []Name {
	return []Name{NameTrend, NameLeaderboard, NameGender}
}

// ParseName validates a chart name.
func ParseName(s string) (Name, error) {
	for _, n := range Names() {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, s)
}

// Spec describes one chart: what to draw and how it is labelled.
type Spec struct {
	Name    Name     `json:"name"`
	Kind    Kind     `json:"kind"`
	Title   string   `json:"title"`
	XLabel  string   `json:"xLabel"`
	YLabel  string   `json:"yLabel"`
	Markers bool     `json:"markers,omitempty"`
	Series  []Series `json:"series"`
	Colors  []string `json:"colors"`
	Empty   bool     `json:"empty"`
}

// Series is a named sequence of points.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Point is one labelled value. X carries the numeric position for
// continuous axes (years); it is zero for categorical charts.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x,omitempty"`
	Value float64 `json:"value"`
}

// Values returns the point values of the first series.
func (s Spec) Values() []float64 {
	if len(s.Series) == 0 {
		return nil
	}
	out := make([]float64, len(s.Series[0].Points))
	for i, p := range s.Series[0].Points {
		out[i] = p.Value
	}
	return out
}
