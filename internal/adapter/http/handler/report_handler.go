package handler

import (
	"context"
	"net/http"

	"github.com/iho/ledgerd/internal/adapter/http/dto"
	"github.com/iho/ledgerd/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Balance(ctx context.Context, filter string) ([]usecase.BalanceLine, error)
	Register(ctx context.Context, filter string) (*usecase.RegisterResult, error)
}

// ReportHandler serves balance and register reports.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Balance returns per-account, per-currency sums.
func (h *ReportHandler) Balance(w http.ResponseWriter, r *http.Request) {
	lines, err := h.reportUC.Balance(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromUseCase(lines))
}

// Register returns the posting register with running totals.
func (h *ReportHandler) Register(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportUC.Register(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute register", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterFromUseCase(result))
}
