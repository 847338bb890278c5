package chart

import (
	"fmt"
	"strconv"

	"github.com/okian/podium/internal/domain/summary"
)

// Fixed colors of the dashboard charts.
const (
	TrendColor       = "#FFA07A"
	LeaderboardColor = "#66CDAA"
)

// VividPalette is the qualitative palette used for pie slices.
var VividPalette = []string{
	"#E58606", "#5D69B1", "#52BCA3", "#99C945", "#CC61B0", "#24796C",
	"#DAA51B", "#2F8AC4", "#764E9F", "#ED645A", "#A5AA99",
}

// Title templates; %s is the selector value.
const (
	trendTitle       = "Total Medals Over the Years (%s)"
	leaderboardTitle = "Top 10 Countries by Medal Count (%s)"
	genderTitle      = "Medals by Gender (%s)"
)

// TrendChart builds the medal trend line chart.
func TrendChart(selector string, s summary.TrendSummary) Spec {
	points := make([]Point, len(s))
	for i, p := range s {
		points[i] = Point{Label: strconv.Itoa(p.Year), X: float64(p.Year), Value: float64(p.Count)}
	}
	return Spec{
		Name:    NameTrend,
		Kind:    KindLine,
		Title:   fmt.Sprintf(trendTitle, selector),
		XLabel:  "Year",
		YLabel:  "Total Medals",
		Markers: true,
		Series:  []Series{{Name: "Total Medals", Points: points}},
		Colors:  []string{TrendColor},
		Empty:   len(points) == 0,
	}
}

// LeaderboardChart builds the top countries bar chart.
func LeaderboardChart(selector string, s summary.LeaderboardSummary) Spec {
	points := make([]Point, len(s))
	for i, p := range s {
		points[i] = Point{Label: p.Team, Value: float64(p.Count)}
	}
	return Spec{
		Name:   NameLeaderboard,
		Kind:   KindBar,
		Title:  fmt.Sprintf(leaderboardTitle, selector),
		XLabel: "Country",
		YLabel: "Medal Count",
		Series: []Series{{Name: "Medal Count", Points: points}},
		Colors: []string{LeaderboardColor},
		Empty:  len(points) == 0,
	}
}

// GenderChart builds the gender distribution pie chart. Slice colors cycle
// through VividPalette in slice order.
func GenderChart(selector string, s summary.GenderSummary) Spec {
	points := make([]Point, len(s))
	colors := make([]string, len(s))
	for i, p := range s {
		points[i] = Point{Label: p.Sex, Value: float64(p.Count)}
		colors[i] = VividPalette[i%len(VividPalette)]
	}
	return Spec{
		Name:   NameGender,
		Kind:   KindPie,
		Title:  fmt.Sprintf(genderTitle, selector),
		XLabel: "Sex",
		YLabel: "Count",
		Series: []Series{{Name: "Count", Points: points}},
		Colors: colors,
		Empty:  len(points) == 0,
	}
}
