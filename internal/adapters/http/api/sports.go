package api

import (
	"net/http"
)

// SportsDependencies defines the interface for the selector options.
type SportsDependencies interface {
	Options() []string
	Selector() string
}

// SportsHandler serves the dropdown options.
type SportsHandler struct {
	deps SportsDependencies
}

// NewSportsHandler creates a new sports handler.
func NewSportsHandler(deps SportsDependencies) *SportsHandler {
	return &SportsHandler{deps: deps}
}

type sportsResponse struct {
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
}

// HandleGetSports handles GET /api/sports requests.
func (h *SportsHandler) HandleGetSports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, sportsResponse{
		Options:  h.deps.Options(),
		Selected: h.deps.Selector(),
	})
}
