package render_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/okian/podium/internal/adapters/render"
	"github.com/okian/podium/internal/domain/chart"
	"github.com/okian/podium/internal/domain/summary"
	. "github.com/smartystreets/goconvey/convey"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderer_PNG(t *testing.T) {
	Convey("Given a renderer", t, func() {
		r := render.New(render.WithSize(480, 320))

		Convey("When rendering each dashboard chart with data", func() {
			specs := []chart.Spec{
				chart.TrendChart("Judo", summary.TrendSummary{{Year: 2000, Count: 2}, {Year: 2004, Count: 1}}),
				chart.LeaderboardChart("Judo", summary.LeaderboardSummary{{Team: "JPN", Count: 2}, {Team: "FRA", Count: 1}}),
				chart.GenderChart("Judo", summary.GenderSummary{{Sex: "M", Count: 2}, {Sex: "F", Count: 1}}),
			}

			Convey("Then every chart is written as PNG", func() {
				for _, spec := range specs {
					var buf bytes.Buffer
					So(r.PNG(&buf, spec), ShouldBeNil)
					So(bytes.HasPrefix(buf.Bytes(), pngMagic), ShouldBeTrue)
				}
			})
		})

		Convey("When the trend has a single year", func() {
			spec := chart.TrendChart("Curling", summary.TrendSummary{{Year: 1998, Count: 4}})
			var buf bytes.Buffer

			Convey("Then the x range is widened and rendering succeeds", func() {
				So(r.PNG(&buf, spec), ShouldBeNil)
				So(buf.Len(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the pie has a single slice", func() {
			spec := chart.GenderChart("Softball", summary.GenderSummary{{Sex: "F", Count: 45}})
			var buf bytes.Buffer

			Convey("Then rendering succeeds", func() {
				So(r.PNG(&buf, spec), ShouldBeNil)
			})
		})

		Convey("When the chart is empty", func() {
			spec := chart.LeaderboardChart("Curling", summary.LeaderboardSummary{})
			var buf bytes.Buffer
			err := r.PNG(&buf, spec)

			Convey("Then ErrEmptyChart is returned and nothing is written", func() {
				So(errors.Is(err, render.ErrEmptyChart), ShouldBeTrue)
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the kind is unknown", func() {
			spec := chart.Spec{Kind: "radar", Series: []chart.Series{{Points: []chart.Point{{Label: "a", Value: 1}}}}}
			err := r.PNG(&bytes.Buffer{}, spec)

			Convey("Then ErrUnsupported is returned", func() {
				So(errors.Is(err, render.ErrUnsupported), ShouldBeTrue)
			})
		})
	})
}
