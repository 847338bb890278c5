package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a custom registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with the default namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "podium")
				So(manager.subsystem, ShouldEqual, "dashboard")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("charts"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.SetDataset(3, 1)

			Convey("Then metric names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() == "test_charts_dataset_records" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "podium")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording dataset size", func() {
			manager.SetDataset(271116, 66)

			Convey("Then the gauges hold the values", func() {
				So(testutil.ToFloat64(manager.datasetRecords), ShouldEqual, 271116)
				So(testutil.ToFloat64(manager.datasetSports), ShouldEqual, 66)
			})
		})

		Convey("When recording pipelines", func() {
			manager.RecordPipeline(1.5, false)
			manager.RecordPipeline(0.2, true)
			manager.RecordSelectorChange(SelectorSport)
			manager.RecordSelectorChange(SelectorUnknown)
			manager.RecordSelectorChange(SelectorUnknown)

			Convey("Then empty selections and selector kinds are counted", func() {
				So(testutil.ToFloat64(manager.emptySelections), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.selectorChanges.WithLabelValues(SelectorUnknown)), ShouldEqual, 2)
				So(testutil.CollectAndCount(manager.pipelineDuration), ShouldEqual, 1)
			})
		})

		Convey("When recording renders, requests and errors", func() {
			manager.RecordChartRender("trend", "ok", 12)
			manager.RecordHTTPRequest("charts", "GET", "200", 3)
			manager.RecordError("charts", "GET", "client_error", "medium")
			manager.RecordError("", "", "render_error", "high")

			Convey("Then the counters move", func() {
				So(testutil.ToFloat64(manager.chartRenders.WithLabelValues("trend", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("charts", "GET", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.errorsByType.WithLabelValues("client_error", "medium")), ShouldEqual, 1)
				So(testutil.CollectAndCount(manager.errorsByEndpoint), ShouldEqual, 1)
			})
		})

		Convey("When recording system metrics", func() {
			manager.UpdateSystem(1024, 12)
			manager.RecordGCPause(0.3)

			Convey("Then the gauges hold the values", func() {
				So(testutil.ToFloat64(manager.systemMemoryUsage), ShouldEqual, 1024)
				So(testutil.ToFloat64(manager.systemGoroutineCount), ShouldEqual, 12)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When using package-level helpers", func() {
			So(func() {
				SetDataset(10, 2)
				RecordSelectorChange(SelectorAll)
				RecordPipeline(1, false)
				RecordChartRender("gender", "empty", 0)
				RecordHTTPRequest("sports", "GET", "200", 1)
				RecordError("sports", "GET", "not_found", "medium")
				UpdateSystem(1, 1)
				RecordGCPause(1)
			}, ShouldNotPanic)

			Convey("Then the custom registry exposes podium metrics", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(strings.Join(names, ","), ShouldContainSubstring, "podium_dashboard_dataset_records")
			})
		})
	})
}
