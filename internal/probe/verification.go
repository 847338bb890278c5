package probe

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/adapters/dataset"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/chart"
	"github.com/okian/podium/internal/domain/medal"
	"github.com/okian/podium/internal/domain/summary"
	"github.com/okian/podium/pkg/logger"
)

// Check names reported in failures.
const (
	CheckFetch       = "fetch"
	CheckOptions     = "options"
	CheckTitle       = "title"
	CheckTrendOrder  = "trend_order"
	CheckTrendSum    = "trend_sum"
	CheckLeaderboard = "leaderboard_order"
	CheckGenderSum   = "gender_sum"
	CheckEmpty       = "empty_flag"
	CheckLocal       = "local_match"
	CheckSelector    = "selector"
	CheckImage       = "image"
)

// Verify checks every sport option of a running server.
func Verify(ctx context.Context, cfg VerifyConfig) (*Report, error) {
	report := &Report{BaseURL: cfg.BaseURL, StartTime: time.Now(), Failures: []Failure{}}
	log := logger.Get()
	client := NewHTTPClient(cfg.BaseURL, cfg.Timeout)

	var local *service.Service
	if cfg.DataPath != "" {
		ds, err := dataset.Load(ctx, cfg.Source, cfg.DataPath, cfg.Table)
		if err != nil {
			return nil, fmt.Errorf("load local dataset: %w", err)
		}
		local = service.New(service.WithDataset(ds), service.WithLogger(log))
		report.Compared = true
	}

	var sports Sports
	if err := client.GetJSON(ctx, "/api/sports", &sports); err != nil {
		return nil, fmt.Errorf("fetch sports: %w", err)
	}
	report.Options = len(sports.Options)
	log.Info(ctx, "verifying sport options", logger.Int("options", report.Options))

	var mu sync.Mutex
	fail := func(f Failure) {
		mu.Lock()
		report.Failures = append(report.Failures, f)
		mu.Unlock()
	}

	for _, f := range checkOptions(sports, local) {
		fail(f)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))
	for _, sport := range sports.Options {
		g.Go(func() error {
			var d service.Dashboard
			if err := client.GetJSON(gctx, "/api/charts?sport="+url.QueryEscape(sport), &d); err != nil {
				fail(Failure{Sport: sport, Check: CheckFetch, Detail: err.Error()})
				return nil
			}
			failures := CheckDashboard(sport, d)
			if local != nil {
				want, err := local.Build(gctx, sport)
				if err != nil {
					return err
				}
				failures = append(failures, CompareDashboards(sport, want, d)...)
			}
			failures = append(failures, checkImages(gctx, client, sport, d)...)
			for _, f := range failures {
				fail(f)
			}

			mu.Lock()
			report.Checked++
			if d.Records == 0 {
				report.Empty++
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("verify sports: %w", err)
	}

	if cfg.Selector {
		for _, f := range checkSelector(ctx, client, sports) {
			fail(f)
		}
	}

	slices.SortStableFunc(report.Failures, func(a, b Failure) int {
		return strings.Compare(a.Sport, b.Sport)
	})
	report.Duration = time.Since(report.StartTime)
	log.Info(ctx, "verification finished",
		logger.Int("checked", report.Checked),
		logger.Int("failures", len(report.Failures)),
		logger.Duration("duration", report.Duration),
	)
	return report, nil
}

// checkOptions verifies the dropdown: "All" first, then strictly sorted sports.
func checkOptions(sports Sports, local *service.Service) []Failure {
	var out []Failure
	opts := sports.Options
	if len(opts) == 0 || opts[0] != medal.All {
		out = append(out, Failure{Sport: medal.All, Check: CheckOptions, Detail: "options must start with All"})
		return out
	}
	for i := 2; i < len(opts); i++ {
		if opts[i-1] >= opts[i] {
			out = append(out, Failure{Sport: opts[i], Check: CheckOptions, Detail: "sports are not sorted and distinct"})
		}
	}
	if local != nil && !slices.Equal(opts, local.Options()) {
		out = append(out, Failure{Sport: medal.All, Check: CheckLocal, Detail: "options differ from local dataset"})
	}
	return out
}

// CheckDashboard verifies the invariants of one dashboard response.
func CheckDashboard(sport string, d service.Dashboard) []Failure {
	var out []Failure
	add := func(check, format string, args ...any) {
		out = append(out, Failure{Sport: sport, Check: check, Detail: fmt.Sprintf(format, args...)})
	}

	for _, spec := range d.Charts() {
		if !strings.HasSuffix(spec.Title, "("+sport+")") {
			add(CheckTitle, "%s title %q does not embed the selector", spec.Name, spec.Title)
		}
		points := pointsOf(spec)
		if spec.Empty != (len(points) == 0) {
			add(CheckEmpty, "%s empty=%t with %d points", spec.Name, spec.Empty, len(points))
		}
		if (d.Records == 0) != (len(points) == 0) {
			add(CheckEmpty, "%s has %d points for %d records", spec.Name, len(points), d.Records)
		}
	}

	trend := pointsOf(d.Trend)
	for i := 1; i < len(trend); i++ {
		if trend[i-1].X >= trend[i].X {
			add(CheckTrendOrder, "year %s follows %s", trend[i].Label, trend[i-1].Label)
		}
	}
	if sum := total(trend); sum != d.Records {
		add(CheckTrendSum, "trend counts sum to %d, want %d", sum, d.Records)
	}

	lb := pointsOf(d.Leaderboard)
	if len(lb) > summary.LeaderboardSize {
		add(CheckLeaderboard, "%d teams, at most %d allowed", len(lb), summary.LeaderboardSize)
	}
	for i := 1; i < len(lb); i++ {
		if lb[i-1].Value < lb[i].Value {
			add(CheckLeaderboard, "%s (%v) ranks above %s (%v)", lb[i-1].Label, lb[i-1].Value, lb[i].Label, lb[i].Value)
		}
	}

	if sum := total(pointsOf(d.Gender)); sum != d.Records {
		add(CheckGenderSum, "gender counts sum to %d, want %d", sum, d.Records)
	}
	return out
}

// CompareDashboards reports every chart whose labels or values differ.
func CompareDashboards(sport string, want, got service.Dashboard) []Failure {
	var out []Failure
	if want.Records != got.Records {
		out = append(out, Failure{Sport: sport, Check: CheckLocal, Detail: fmt.Sprintf("records %d, want %d", got.Records, want.Records)})
	}
	for _, name := range chart.Names() {
		w, _ := want.Chart(name)
		g, _ := got.Chart(name)
		if !slices.Equal(pointsOf(w), pointsOf(g)) {
			out = append(out, Failure{Sport: sport, Check: CheckLocal, Detail: fmt.Sprintf("%s points differ", name)})
		}
	}
	return out
}

// checkImages expects 200 for charts with data and 204 for empty ones.
func checkImages(ctx context.Context, client *HTTPClient, sport string, d service.Dashboard) []Failure {
	var out []Failure
	for _, spec := range d.Charts() {
		want := 200
		if spec.Empty {
			want = 204
		}
		status, err := client.Status(ctx, "/api/charts/"+string(spec.Name)+".png?sport="+url.QueryEscape(sport))
		switch {
		case err != nil:
			out = append(out, Failure{Sport: sport, Check: CheckImage, Detail: err.Error()})
		case status != want:
			out = append(out, Failure{Sport: sport, Check: CheckImage, Detail: string(spec.Name) + " status " + strconv.Itoa(status)})
		}
	}
	return out
}

// checkSelector switches to the last sport, verifies the current dashboard
// follows, and restores the previous selection.
func checkSelector(ctx context.Context, client *HTTPClient, sports Sports) []Failure {
	if len(sports.Options) < 2 {
		return nil
	}
	target := sports.Options[len(sports.Options)-1]
	fail := func(format string, args ...any) []Failure {
		return []Failure{{Sport: target, Check: CheckSelector, Detail: fmt.Sprintf(format, args...)}}
	}

	var selected service.Dashboard
	if err := client.PostJSON(ctx, "/api/dashboard/selector", map[string]string{"sport": target}, &selected); err != nil {
		return fail("select: %v", err)
	}
	defer func() {
		var restored service.Dashboard
		_ = client.PostJSON(ctx, "/api/dashboard/selector", map[string]string{"sport": sports.Selected}, &restored)
	}()

	if selected.Selector != target {
		return fail("selected dashboard is for %q", selected.Selector)
	}
	var current service.Dashboard
	if err := client.GetJSON(ctx, "/api/dashboard", &current); err != nil {
		return fail("current: %v", err)
	}
	if current.Selector != target || !slices.Equal(pointsOf(current.Trend), pointsOf(selected.Trend)) {
		return fail("current dashboard does not follow the selector")
	}
	return nil
}

func pointsOf(s chart.Spec) []chart.Point {
	if len(s.Series) == 0 {
		return nil
	}
	return s.Series[0].Points
}

func total(points []chart.Point) int {
	sum := 0
	for _, p := range points {
		sum += int(p.Value)
	}
	return sum
}
