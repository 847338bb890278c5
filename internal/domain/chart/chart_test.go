package chart_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/podium/internal/domain/chart"
	"github.com/okian/podium/internal/domain/summary"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuilders(t *testing.T) {
	Convey("Given the judo summaries", t, func() {
		trend := summary.TrendSummary{{Year: 2000, Count: 2}, {Year: 2004, Count: 1}}
		board := summary.LeaderboardSummary{{Team: "JPN", Count: 2}, {Team: "FRA", Count: 1}}
		gender := summary.GenderSummary{{Sex: "M", Count: 2}, {Sex: "F", Count: 1}}

		Convey("When building the trend chart", func() {
			spec := chart.TrendChart("Judo", trend)

			Convey("Then it is a marked line chart with the fixed template", func() {
				So(spec.Name, ShouldEqual, chart.NameTrend)
				So(spec.Kind, ShouldEqual, chart.KindLine)
				So(spec.Title, ShouldEqual, "Total Medals Over the Years (Judo)")
				So(spec.XLabel, ShouldEqual, "Year")
				So(spec.YLabel, ShouldEqual, "Total Medals")
				So(spec.Markers, ShouldBeTrue)
				So(spec.Colors, ShouldResemble, []string{chart.TrendColor})
				So(spec.Empty, ShouldBeFalse)
			})

			Convey("Then years map to labelled points", func() {
				points := spec.Series[0].Points
				So(points, ShouldResemble, []chart.Point{
					{Label: "2000", X: 2000, Value: 2},
					{Label: "2004", X: 2004, Value: 1},
				})
			})
		})

		Convey("When building the leaderboard chart", func() {
			spec := chart.LeaderboardChart("Judo", board)

			Convey("Then it is a bar chart in leaderboard order", func() {
				So(spec.Kind, ShouldEqual, chart.KindBar)
				So(spec.Title, ShouldEqual, "Top 10 Countries by Medal Count (Judo)")
				So(spec.XLabel, ShouldEqual, "Country")
				So(spec.YLabel, ShouldEqual, "Medal Count")
				So(spec.Values(), ShouldResemble, []float64{2, 1})
				So(spec.Series[0].Points[0].Label, ShouldEqual, "JPN")
				So(spec.Colors, ShouldResemble, []string{chart.LeaderboardColor})
			})
		})

		Convey("When building the gender chart", func() {
			spec := chart.GenderChart("Judo", gender)

			Convey("Then it is a pie chart with one palette color per slice", func() {
				So(spec.Kind, ShouldEqual, chart.KindPie)
				So(spec.Title, ShouldEqual, "Medals by Gender (Judo)")
				So(spec.Colors, ShouldResemble, chart.VividPalette[:2])
				So(spec.Series[0].Points[1].Label, ShouldEqual, "F")
			})
		})
	})

	Convey("Given empty summaries for an unknown sport", t, func() {
		specs := []chart.Spec{
			chart.TrendChart("Curling", summary.TrendSummary{}),
			chart.LeaderboardChart("Curling", summary.LeaderboardSummary{}),
			chart.GenderChart("Curling", summary.GenderSummary{}),
		}

		Convey("Then every spec is valid, empty and titled with the selector", func() {
			for _, spec := range specs {
				So(spec.Empty, ShouldBeTrue)
				So(spec.Title, ShouldContainSubstring, "Curling")
				So(spec.Series, ShouldHaveLength, 1)
				So(spec.Series[0].Points, ShouldBeEmpty)
			}
		})

		Convey("Then empty specs serialise with empty arrays instead of null", func() {
			b, err := json.Marshal(specs[0])
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"points":[]`)
		})
	})

	Convey("Given the All selector", t, func() {
		Convey("Then the literal selector is embedded in the title", func() {
			So(chart.GenderChart("All", nil).Title, ShouldEqual, "Medals by Gender (All)")
		})
	})
}

func TestParseName(t *testing.T) {
	Convey("Given chart names", t, func() {
		Convey("Then known names parse", func() {
			for _, n := range chart.Names() {
				got, err := chart.ParseName(string(n))
				So(err, ShouldBeNil)
				So(got, ShouldEqual, n)
			}
		})

		Convey("Then unknown names fail with ErrUnknownChart", func() {
			_, err := chart.ParseName("scatter")
			So(errors.Is(err, chart.ErrUnknownChart), ShouldBeTrue)
		})
	})
}
