package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/podium/internal/adapters/render"
	"github.com/okian/podium/internal/domain/chart"
	"github.com/okian/podium/internal/domain/medal"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// ChartsDependencies defines the interface for stateless chart reads.
type ChartsDependencies interface {
	Build(ctx context.Context, sport string) (Dashboard, error)
}

// ChartsHandler serves chart specs and images for any sport without
// touching the current selector.
type ChartsHandler struct {
	deps     ChartsDependencies
	renderer ChartRenderer
	images   *render.Cache
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartsDependencies, renderer ChartRenderer) *ChartsHandler {
	return &ChartsHandler{deps: deps, renderer: renderer, images: render.NewCache()}
}

// sportParam returns the sport query parameter, defaulting to "All".
func sportParam(r *http.Request) string {
	if s := r.URL.Query().Get("sport"); s != "" {
		return s
	}
	return medal.All
}

// HandleGetCharts handles GET /api/charts?sport=X requests.
func (h *ChartsHandler) HandleGetCharts(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_charts"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	d, err := h.deps.Build(r.Context(), sportParam(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleGetChartImage handles GET /api/charts/{name}.png?sport=X requests.
// Charts without data have nothing to draw and answer 204.
func (h *ChartsHandler) HandleGetChartImage(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart_image"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /api/charts/
	path := strings.TrimPrefix(r.URL.Path, "/api/charts/")
	if !strings.HasSuffix(path, ".png") || strings.Contains(path, "/") {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	name, err := chart.ParseName(strings.TrimSuffix(path, ".png"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sport := sportParam(r)
	key := string(name) + "|" + sport
	if img, ok := h.images.Get(key); ok {
		metrics.RecordChartRender(string(name), "cached", 0)
		writeImage(w, img)
		return
	}

	d, err := h.deps.Build(r.Context(), sport)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	spec, err := d.Chart(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	err = h.renderer.PNG(&buf, spec)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	switch {
	case errors.Is(err, render.ErrEmptyChart):
		metrics.RecordChartRender(string(name), "empty", elapsed)
		h.images.Put(key, nil)
		writeImage(w, nil)
		return
	case err != nil:
		metrics.RecordChartRender(string(name), "error", elapsed)
		logger.Get().Error(r.Context(), "chart render failed",
			logger.String("chart", string(name)),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "render_error", WrapKind(op, ErrRender, err))
		return
	}
	metrics.RecordChartRender(string(name), "ok", elapsed)
	h.images.Put(key, buf.Bytes())
	writeImage(w, buf.Bytes())
}

// writeImage writes a PNG, or 204 when the chart has nothing to draw.
func writeImage(w http.ResponseWriter, img []byte) {
	if img == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
