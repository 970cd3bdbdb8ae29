package handler

import (
	"context"
	"net/http"

	"github.com/iho/ledgerd/internal/adapter/http/dto"
)

// QueryService defines the engine name queries needed by QueryHandler.
type QueryService interface {
	Accounts(ctx context.Context) ([]string, error)
	Payees(ctx context.Context) ([]string, error)
	Commodities(ctx context.Context) ([]string, error)
}

// QueryHandler serves the engine's account, payee and commodity lists.
type QueryHandler struct {
	queryUC QueryService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(queryUC QueryService) *QueryHandler {
	return &QueryHandler{queryUC: queryUC}
}

// Accounts lists every account the engine knows.
func (h *QueryHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.queryUC.Accounts)
}

// Payees lists every payee the engine knows.
func (h *QueryHandler) Payees(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.queryUC.Payees)
}

// Commodities lists every commodity the engine knows.
func (h *QueryHandler) Commodities(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.queryUC.Commodities)
}

func (h *QueryHandler) serve(w http.ResponseWriter, r *http.Request, query func(context.Context) ([]string, error)) {
	items, err := query(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "ledger query failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NamesResponse{
		Items: items,
		Total: len(items),
	})
}
