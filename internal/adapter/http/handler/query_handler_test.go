package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/ledgerd/internal/adapter/http/dto"
	"github.com/iho/ledgerd/internal/domain"
)

type queryServiceStub struct {
	accountsFn    func(ctx context.Context) ([]string, error)
	payeesFn      func(ctx context.Context) ([]string, error)
	commoditiesFn func(ctx context.Context) ([]string, error)
}

func (s *queryServiceStub) Accounts(ctx context.Context) ([]string, error) {
	return s.accountsFn(ctx)
}

func (s *queryServiceStub) Payees(ctx context.Context) ([]string, error) {
	return s.payeesFn(ctx)
}

func (s *queryServiceStub) Commodities(ctx context.Context) ([]string, error) {
	return s.commoditiesFn(ctx)
}

func TestQueryHandler_Accounts(t *testing.T) {
	handler := NewQueryHandler(&queryServiceStub{
		accountsFn: func(ctx context.Context) ([]string, error) {
			return []string{"Assets:Checking", "Expenses:Food"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()

	handler.Accounts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.NamesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || resp.Items[1] != "Expenses:Food" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestQueryHandler_EngineFailure(t *testing.T) {
	cliErr := &domain.LedgerCliError{
		Stderr: "While parsing file, line 3: error",
		Err:    errors.New("exit status 1"),
	}
	handler := NewQueryHandler(&queryServiceStub{
		payeesFn: func(ctx context.Context) ([]string, error) {
			return nil, cliErr
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payees", nil)
	rec := httptest.NewRecorder()

	handler.Payees(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestQueryHandler_Commodities_Empty(t *testing.T) {
	handler := NewQueryHandler(&queryServiceStub{
		commoditiesFn: func(ctx context.Context) ([]string, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/commodities", nil)
	rec := httptest.NewRecorder()

	handler.Commodities(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.NamesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 0 {
		t.Fatalf("expected empty list, got %+v", resp)
	}
}
