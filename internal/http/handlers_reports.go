package http

import (
	"log/slog"
	"net/http"

	"appecon/internal/analytics"
)

func (s *Server) handleOperatingCashflow(w http.ResponseWriter, r *http.Request) {
	flow, err := s.analytics.OperatingCashflow(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Operating cashflow failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute operating cashflow")
		return
	}
	if flow == nil {
		flow = []analytics.SignedEntry{}
	}
	writeJSON(w, http.StatusOK, flow)
}

func (s *Server) handleCashflowByAccount(w http.ResponseWriter, r *http.Request) {
	groups, err := s.analytics.CashflowByAccount(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Cashflow by account failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute cashflow by account")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.analytics.ExecutiveMetrics(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Executive metrics failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute executive metrics")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	report, err := s.analytics.Insights(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Insights failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute insights")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
