// Package status exposes a small read-only HTTP surface on the device so the
// pollers' current snapshots can be inspected without touching the backend.
package status

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/floor/internal/floor"
)

type Handler struct {
	overview *floor.OverviewBoard
	queue    *floor.PrintQueue
	identity *floor.IdentityHolder
	logger   apt.Logger
}

func NewHandler(overview *floor.OverviewBoard, queue *floor.PrintQueue, identity *floor.IdentityHolder, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		overview: overview,
		queue:    queue,
		identity: identity,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Get("/overview", h.Overview)
	r.Get("/print-jobs", h.PrintJobs)
	r.Get("/identity", h.Identity)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	apt.RespondSuccess(w, map[string]string{"status": "ok"})
}

// Overview serves the last successfully polled floor state. A recorded poll
// error rides along without clearing the stale-but-valid rows.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	type overviewStatus struct {
		Rows      []floor.OverviewRow `json:"rows"`
		OpenCount int                 `json:"open_count"`
		Loaded    bool                `json:"loaded"`
		LastError string              `json:"last_error,omitempty"`
	}

	out := overviewStatus{
		Rows:      h.overview.Rows(),
		OpenCount: h.overview.OpenCount(),
		Loaded:    h.overview.Loaded(),
	}
	if err := h.overview.LastError(); err != nil {
		out.LastError = err.Error()
	}
	apt.RespondSuccess(w, out)
}

func (h *Handler) PrintJobs(w http.ResponseWriter, r *http.Request) {
	apt.RespondCollection(w, h.queue.Pending(), "print-job")
}

// Identity reports whether an operational waiter is selected, without
// exposing more than the attribution fields.
func (h *Handler) Identity(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity.Current()
	if !ok {
		apt.RespondSuccess(w, map[string]bool{"selected": false})
		return
	}
	apt.RespondSuccess(w, map[string]string{
		"id":   ident.ID.String(),
		"name": ident.Name,
	})
}
