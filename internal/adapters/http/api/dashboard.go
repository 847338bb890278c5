package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/podium/internal/app"
)

// DashboardDependencies defines the interface for selector transitions.
type DashboardDependencies interface {
	Select(ctx context.Context, sport string) (Dashboard, error)
	Current(ctx context.Context) (Dashboard, error)
}

// DashboardHandler serves the stateful dashboard: the current charts and
// the selector transition.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// selectorRequest mirrors the OpenAPI schema for POST /api/dashboard/selector.
type selectorRequest struct {
	Sport string `json:"sport"`
}

func (s selectorRequest) validate() error {
	if strings.TrimSpace(s.Sport) == "" {
		return errors.New("missing sport")
	}
	return nil
}

// HandleGetDashboard handles GET /api/dashboard requests.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dashboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	d, err := h.deps.Current(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleSelect handles POST /api/dashboard/selector requests. All three
// charts in the response belong to the new selector.
func (h *DashboardHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	const op = "api.select_sport"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req selectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	d, err := h.deps.Select(r.Context(), req.Sport)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrNotStarted) {
		writeError(w, http.StatusServiceUnavailable, "unavailable", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
