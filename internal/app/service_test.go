package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/chart"
	"github.com/okian/podium/internal/domain/medal"
	"github.com/okian/podium/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func judoDataset() *medal.Dataset {
	return medal.NewDataset([]medal.Record{
		{Year: 2000, Sport: "Judo", Team: "JPN", Sex: "M", Medal: "Gold"},
		{Year: 2000, Sport: "Judo", Team: "FRA", Sex: "F", Medal: "Silver"},
		{Year: 2004, Sport: "Judo", Team: "JPN", Sex: "M", Medal: "Bronze"},
		{Year: 2004, Sport: "Swimming", Team: "USA", Sex: "F", Medal: "Gold"},
		{Year: 2008, Sport: "Judo", Team: "KOR", Sex: "M", Medal: ""},
	})
}

func labels(s chart.Spec) []string {
	out := make([]string, 0, len(s.Series[0].Points))
	for _, p := range s.Series[0].Points {
		out = append(out, p.Label)
	}
	return out
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then the selector is All", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Selector(), ShouldEqual, medal.All)
		})

		Convey("Then starting without a dataset fails", func() {
			So(svc.Start(context.Background()), ShouldEqual, service.ErrNoDataset)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service over the judo dataset", t, func() {
		svc := service.New(service.WithDataset(judoDataset()), service.WithLogger(logger.Get()))
		ctx := context.Background()

		Convey("When the service is not started", func() {
			_, err := svc.Current(ctx)
			_, selErr := svc.Select(ctx, "Judo")

			Convey("Then reads and transitions are rejected", func() {
				So(err, ShouldEqual, service.ErrNotStarted)
				So(selErr, ShouldEqual, service.ErrNotStarted)
			})
		})

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			d, err := svc.Current(ctx)

			Convey("Then the All dashboard is ready", func() {
				So(err, ShouldBeNil)
				So(d.Selector, ShouldEqual, medal.All)
				So(d.Records, ShouldEqual, 4)
				So(d.Trend.Title, ShouldEqual, "Total Medals Over the Years (All)")
				So(d.Leaderboard.Title, ShouldEqual, "Top 10 Countries by Medal Count (All)")
				So(d.Gender.Title, ShouldEqual, "Medals by Gender (All)")
			})

			Convey("Then stats report the dataset", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["records"], ShouldEqual, 4)
				So(stats["sports"], ShouldEqual, 2)
				So(stats["updates"], ShouldEqual, 0)
			})

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Select(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithDataset(judoDataset()))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When selecting Judo", func() {
			d, err := svc.Select(ctx, "Judo")
			So(err, ShouldBeNil)

			Convey("Then all three charts reflect Judo", func() {
				So(d.Selector, ShouldEqual, "Judo")
				So(d.Records, ShouldEqual, 3)
				So(labels(d.Trend), ShouldResemble, []string{"2000", "2004"})
				So(d.Trend.Values(), ShouldResemble, []float64{2, 1})
				So(labels(d.Leaderboard), ShouldResemble, []string{"JPN", "FRA"})
				So(d.Leaderboard.Values(), ShouldResemble, []float64{2, 1})
				So(labels(d.Gender), ShouldResemble, []string{"M", "F"})
				So(d.Gender.Values(), ShouldResemble, []float64{2, 1})
			})

			Convey("Then the selector and current dashboard are updated together", func() {
				So(svc.Selector(), ShouldEqual, "Judo")
				cur, err := svc.Current(ctx)
				So(err, ShouldBeNil)
				So(cur, ShouldResemble, d)
				So(svc.GetStats()["updates"], ShouldEqual, 1)
			})

			Convey("Then selecting Judo again yields the same dashboard", func() {
				again, err := svc.Select(ctx, "Judo")
				So(err, ShouldBeNil)
				So(again, ShouldResemble, d)
			})
		})

		Convey("When selecting a sport with no medals", func() {
			d, err := svc.Select(ctx, "Curling")

			Convey("Then the charts are empty but valid", func() {
				So(err, ShouldBeNil)
				So(d.Records, ShouldEqual, 0)
				for _, spec := range d.Charts() {
					So(spec.Empty, ShouldBeTrue)
					So(spec.Title, ShouldContainSubstring, "(Curling)")
					So(spec.Series[0].Points, ShouldBeEmpty)
				}
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Select(cctx, "Judo")

			Convey("Then the selector is left unchanged", func() {
				So(err, ShouldNotBeNil)
				So(svc.Selector(), ShouldEqual, medal.All)
			})
		})

		Convey("When many requests select concurrently", func() {
			var wg sync.WaitGroup
			sports := []string{"Judo", "Swimming", medal.All, "Curling"}
			for i := 0; i < 40; i++ {
				wg.Add(1)
				go func(sport string) {
					defer wg.Done()
					d, err := svc.Select(ctx, sport)
					if err == nil && d.Selector != sport {
						t.Errorf("dashboard for %q returned selector %q", sport, d.Selector)
					}
				}(sports[i%len(sports)])
			}
			wg.Wait()

			Convey("Then the current dashboard matches the final selector", func() {
				cur, err := svc.Current(ctx)
				So(err, ShouldBeNil)
				So(cur.Selector, ShouldEqual, svc.Selector())
				So(svc.GetStats()["updates"], ShouldEqual, 40)
			})
		})
	})
}

func TestService_Build(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithDataset(judoDataset()))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When building a dashboard for Swimming", func() {
			d, err := svc.Build(ctx, "Swimming")

			Convey("Then the selector state is untouched", func() {
				So(err, ShouldBeNil)
				So(d.Records, ShouldEqual, 1)
				So(svc.Selector(), ShouldEqual, medal.All)
			})

			Convey("Then charts can be looked up by name", func() {
				spec, err := d.Chart(chart.NameLeaderboard)
				So(err, ShouldBeNil)
				So(spec.Kind, ShouldEqual, chart.KindBar)

				_, err = d.Chart("radar")
				So(errors.Is(err, chart.ErrUnknownChart), ShouldBeTrue)
			})
		})

		Convey("Then the options list All first", func() {
			So(svc.Options(), ShouldResemble, []string{medal.All, "Judo", "Swimming"})
		})
	})
}
