// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/chart"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the dashboard controller.
type Dependencies interface {
	// Select stores sport as the current selector and returns its dashboard.
	Select(ctx context.Context, sport string) (Dashboard, error)
	// Current returns the dashboard for the current selector.
	Current(ctx context.Context) (Dashboard, error)
	// Build computes a dashboard for sport without changing the selector.
	Build(ctx context.Context, sport string) (Dashboard, error)

	Options() []string
	Selector() string
}

// ChartRenderer draws a chart spec as an image.
type ChartRenderer interface {
	PNG(w io.Writer, spec chart.Spec) error
}

// Dashboard mirrors the three-chart shape returned by the controller.
type Dashboard = service.Dashboard

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	sportsHandler    *SportsHandler
	dashboardHandler *DashboardHandler
	chartsHandler    *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, renderer ChartRenderer) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		sportsHandler:    NewSportsHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
		chartsHandler:    NewChartsHandler(deps, renderer),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/sports", MetricsMiddleware(s.sportsHandler.HandleGetSports, "sports"))
	mux.HandleFunc("/api/dashboard", MetricsMiddleware(s.dashboardHandler.HandleGetDashboard, "dashboard"))
	mux.HandleFunc("/api/dashboard/selector", MetricsMiddleware(s.dashboardHandler.HandleSelect, "selector"))
	mux.HandleFunc("/api/charts", MetricsMiddleware(s.chartsHandler.HandleGetCharts, "charts"))
	mux.HandleFunc("/api/charts/", MetricsMiddleware(s.chartsHandler.HandleGetChartImage, "chart_image"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
