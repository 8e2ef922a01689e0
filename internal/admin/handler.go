package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osa-portal/osa-portal/internal/audit"
	"github.com/osa-portal/osa-portal/internal/platform/httpx"
)

// Handler serves audit-log review and the admin dashboard. Role gating
// happens where the routes are mounted.
type Handler struct {
	logger  *slog.Logger
	service *Service
	audits  *audit.Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, audits *audit.Service) *Handler {
	return &Handler{logger: logger, service: service, audits: audits}
}

// MountRoutes registers the admin review routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/audit-logs", h.auditLogs)
	r.Get("/dashboard-stats", h.dashboardStats)
}

func (h *Handler) auditLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := h.audits.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("list audit logs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OKList(w, http.StatusOK, len(rows), rows)
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, stats)
}
