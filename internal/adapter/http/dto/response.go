package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerd/internal/journal"
	"github.com/iho/ledgerd/internal/usecase"
)

// EntryResponse represents a parsed journal entry in API responses.
type EntryResponse struct {
	Body  string `json:"body"`
	Date  string `json:"date"`
	Payee string `json:"payee"`
	Note  string `json:"note"`
}

// EntryFromJournal converts a parsed entry to a response.
func EntryFromJournal(e *journal.ParsedEntry) *EntryResponse {
	return &EntryResponse{
		Body:  e.Body,
		Date:  e.Date,
		Payee: e.Payee,
		Note:  e.Note,
	}
}

// ListEntriesResponse represents the journal listing response.
type ListEntriesResponse struct {
	Entries   []*EntryResponse `json:"entries"`
	Total     int              `json:"total"`
	CanRevert bool             `json:"can_revert"`
}

// ListEntriesFromUseCase converts a listing result to a response.
func ListEntriesFromUseCase(result *usecase.ListResult) *ListEntriesResponse {
	entries := make([]*EntryResponse, len(result.Entries))
	for i, e := range result.Entries {
		entries[i] = EntryFromJournal(e)
	}

	return &ListEntriesResponse{
		Entries:   entries,
		Total:     len(entries),
		CanRevert: result.CanRevert,
	}
}

// SubmitEntryResponse reports where the appended entry landed.
type SubmitEntryResponse struct {
	Text      string `json:"text"`
	OldOffset int64  `json:"old_offset"`
	NewOffset int64  `json:"new_offset"`
}

// SubmitFromUseCase converts a submit result to a response.
func SubmitFromUseCase(result *usecase.SubmitResult) *SubmitEntryResponse {
	return &SubmitEntryResponse{
		Text:      result.Text,
		OldOffset: result.OldOffset,
		NewOffset: result.NewOffset,
	}
}

// NamesResponse represents an engine name-list response.
type NamesResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

// BalanceLineResponse is one account/currency balance.
type BalanceLineResponse struct {
	Account  string          `json:"account"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// BalanceResponse represents the balance report response.
type BalanceResponse struct {
	Lines []BalanceLineResponse `json:"lines"`
}

// BalanceFromUseCase converts balance lines to a response.
func BalanceFromUseCase(lines []usecase.BalanceLine) *BalanceResponse {
	resp := &BalanceResponse{Lines: make([]BalanceLineResponse, len(lines))}
	for i, line := range lines {
		resp.Lines[i] = BalanceLineResponse{
			Account:  line.Account,
			Currency: line.Currency,
			Amount:   line.Amount,
		}
	}
	return resp
}

// RegisterLineResponse is one register row with its running total.
type RegisterLineResponse struct {
	Date     string          `json:"date"`
	Payee    string          `json:"payee"`
	Account  string          `json:"account"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	Total    decimal.Decimal `json:"total"`
}

// RegisterResponse represents the register report response.
type RegisterResponse struct {
	Lines         []RegisterLineResponse `json:"lines"`
	CurrencyCount int                    `json:"currency_count"`
}

// RegisterFromUseCase converts a register result to a response.
func RegisterFromUseCase(result *usecase.RegisterResult) *RegisterResponse {
	resp := &RegisterResponse{
		Lines:         make([]RegisterLineResponse, len(result.Lines)),
		CurrencyCount: result.CurrencyCount,
	}
	for i, line := range result.Lines {
		resp.Lines[i] = RegisterLineResponse{
			Date:     line.Date,
			Payee:    line.Payee,
			Account:  line.Account,
			Currency: line.Currency,
			Amount:   line.Amount,
			Total:    line.Total,
		}
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
