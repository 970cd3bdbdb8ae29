package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/iho/ledgerd/internal/adapter/http/dto"
	"github.com/iho/ledgerd/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	List(input usecase.ListInput) (*usecase.ListResult, error)
	Submit(input usecase.SubmitInput) (*usecase.SubmitResult, error)
	Revert() error
}

// JournalHandler handles journal listing and mutation requests.
type JournalHandler struct {
	journalUC    JournalService
	defaultCount int
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService, defaultCount int) *JournalHandler {
	return &JournalHandler{journalUC: journalUC, defaultCount: defaultCount}
}

// List returns journal entries, newest first by default.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	count, ok := h.parseCount(r)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "bad count", "count must be a number or \"all\"")
		return
	}

	result, err := h.journalUC.List(usecase.ListInput{
		Filter:  r.URL.Query().Get("filter"),
		Count:   count,
		Reverse: parseReverse(r),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list journal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesFromUseCase(result))
}

// Submit appends a new entry, optionally replacing the previous append.
func (h *JournalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if msg := req.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, "invalid entry", msg)
		return
	}

	result, err := h.journalUC.Submit(req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to submit entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SubmitFromUseCase(result))
}

// Revert undoes the most recent append.
func (h *JournalHandler) Revert(w http.ResponseWriter, r *http.Request) {
	if err := h.journalUC.Revert(); err != nil {
		writeError(w, mapDomainError(err), "failed to revert", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseCount reads the count query parameter: a number, "all" (zero,
// meaning unlimited) or absent (the configured default). Anything else
// is a client error.
func (h *JournalHandler) parseCount(r *http.Request) (int, bool) {
	val := r.URL.Query().Get("count")
	switch val {
	case "":
		return h.defaultCount, true
	case "all":
		return 0, true
	}

	count, err := strconv.Atoi(val)
	if err != nil || count < 0 {
		return 0, false
	}
	return count, true
}

// parseReverse defaults to true; only an explicit "false" or "0" turns
// newest-first ordering off.
func parseReverse(r *http.Request) bool {
	switch r.URL.Query().Get("reverse") {
	case "false", "0":
		return false
	default:
		return true
	}
}
