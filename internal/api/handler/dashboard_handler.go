package handler

import (
	"isp-billing/internal/api/handler/dto"
	"isp-billing/internal/domain/dashboard"
	"log/slog"
	"net/http"
)

type DashboardHandler struct {
	service *dashboard.Service
	logger  *slog.Logger
}

func NewDashboardHandler(s *dashboard.Service, l *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: s,
		logger:  l.With("component", "DashboardHandler"),
	}
}

// Stats returns the dashboard summary cards.
//
// @Summary Dashboard statistics
// @Description Customer totals by status and the monthly revenue of active customers. Pending invoices and collection rate are fixed placeholders.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.StatsResponse "Dashboard statistics"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /dashboard/stats [get]
// @Security BearerAuth
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewStatsResponse(stats))
}

// RecentPayments lists the latest payments.
//
// @Summary Recent payments
// @Tags Dashboard
// @Produce json
// @Success 200 {array} dto.PaymentResponse "Recent payments"
// @Router /dashboard/payments [get]
// @Security BearerAuth
func (h *DashboardHandler) RecentPayments(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.NewPaymentResponses(h.service.RecentPayments()))
}

// RevenueSeries returns monthly revenue for the chart.
//
// @Summary Monthly revenue
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.RevenueSeriesResponse "Revenue per month"
// @Router /dashboard/revenue [get]
// @Security BearerAuth
func (h *DashboardHandler) RevenueSeries(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.NewRevenueSeriesResponse(h.service.RevenueSeries()))
}
