package summary_test

import (
	"fmt"
	"testing"

	"github.com/okian/podium/internal/domain/medal"
	"github.com/okian/podium/internal/domain/summary"
	. "github.com/smartystreets/goconvey/convey"
)

func judo() []medal.Record {
	return []medal.Record{
		{Year: 2000, Sport: "Judo", Team: "JPN", Sex: "M", Medal: "Gold"},
		{Year: 2000, Sport: "Judo", Team: "FRA", Sex: "F", Medal: "Silver"},
		{Year: 2004, Sport: "Judo", Team: "JPN", Sex: "M", Medal: "Bronze"},
	}
}

// spread builds records for many teams and years with uneven counts.
func spread() []medal.Record {
	var out []medal.Record
	years := []int{2016, 1996, 2008, 1996, 2000}
	for t := 0; t < 14; t++ {
		for n := 0; n <= t%5; n++ {
			out = append(out, medal.Record{
				Year:  years[(t+n)%len(years)],
				Sport: "Swimming",
				Team:  fmt.Sprintf("T%02d", t),
				Sex:   []string{"M", "F"}[(t+n)%2],
				Medal: "Gold",
			})
		}
	}
	return out
}

func TestTrend(t *testing.T) {
	Convey("Given the judo scenario", t, func() {
		Convey("Then medals are counted per year in ascending order", func() {
			So(summary.Trend(judo()), ShouldResemble, summary.TrendSummary{
				{Year: 2000, Count: 2},
				{Year: 2004, Count: 1},
			})
		})
	})

	Convey("Given records in no particular year order", t, func() {
		records := spread()
		out := summary.Trend(records)

		Convey("Then years are strictly ascending", func() {
			for i := 1; i < len(out); i++ {
				So(out[i].Year, ShouldBeGreaterThan, out[i-1].Year)
			}
		})

		Convey("Then counts sum to the subset size", func() {
			So(out.Total(), ShouldEqual, len(records))
		})
	})

	Convey("Given an empty subset", t, func() {
		Convey("Then the summary is empty", func() {
			out := summary.Trend(nil)
			So(out, ShouldNotBeNil)
			So(out, ShouldBeEmpty)
		})
	})
}

func TestLeaderboard(t *testing.T) {
	Convey("Given the judo scenario", t, func() {
		Convey("Then teams are ranked by medal count", func() {
			So(summary.Leaderboard(judo()), ShouldResemble, summary.LeaderboardSummary{
				{Team: "JPN", Count: 2},
				{Team: "FRA", Count: 1},
			})
		})
	})

	Convey("Given more than ten teams", t, func() {
		out := summary.Leaderboard(spread())

		Convey("Then at most ten entries are returned", func() {
			So(len(out), ShouldEqual, summary.LeaderboardSize)
		})

		Convey("Then entries are sorted descending by count", func() {
			for i := 1; i < len(out); i++ {
				So(out[i].Count, ShouldBeLessThanOrEqualTo, out[i-1].Count)
			}
		})

		Convey("Then ties keep first-seen order", func() {
			// Teams T04, T09 have 5 medals; T03, T08, T13 have 4.
			So(out[0].Team, ShouldEqual, "T04")
			So(out[1].Team, ShouldEqual, "T09")
			So(out[2].Team, ShouldEqual, "T03")
			So(out[3].Team, ShouldEqual, "T08")
			So(out[4].Team, ShouldEqual, "T13")
		})
	})

	Convey("Given teams tied from the start", t, func() {
		records := []medal.Record{
			{Year: 2000, Team: "ZZZ", Sex: "M", Medal: "Gold"},
			{Year: 2000, Team: "AAA", Sex: "M", Medal: "Gold"},
			{Year: 2000, Team: "MMM", Sex: "M", Medal: "Gold"},
		}

		Convey("Then the input order is preserved rather than sorted alphabetically", func() {
			out := summary.Leaderboard(records)
			So(out[0].Team, ShouldEqual, "ZZZ")
			So(out[1].Team, ShouldEqual, "AAA")
			So(out[2].Team, ShouldEqual, "MMM")
		})
	})

	Convey("Given an empty subset", t, func() {
		Convey("Then the summary is empty", func() {
			So(summary.Leaderboard([]medal.Record{}), ShouldBeEmpty)
		})
	})
}

func TestGender(t *testing.T) {
	Convey("Given the judo scenario", t, func() {
		Convey("Then medals are counted per sex", func() {
			So(summary.Gender(judo()), ShouldResemble, summary.GenderSummary{
				{Sex: "M", Count: 2},
				{Sex: "F", Count: 1},
			})
		})
	})

	Convey("Given a larger subset", t, func() {
		records := spread()
		out := summary.Gender(records)

		Convey("Then counts sum to the subset size", func() {
			So(out.Total(), ShouldEqual, len(records))
		})

		Convey("Then the order is descending by count", func() {
			for i := 1; i < len(out); i++ {
				So(out[i].Count, ShouldBeLessThanOrEqualTo, out[i-1].Count)
			}
		})
	})

	Convey("Given an empty subset", t, func() {
		Convey("Then the summary is empty", func() {
			So(summary.Gender(nil), ShouldBeEmpty)
		})
	})
}
