package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerd/internal/domain"
	"github.com/iho/ledgerd/internal/infrastructure/metrics"
	"github.com/iho/ledgerd/internal/journal"
)

// JournalUseCase orchestrates journal reads and mutations. The mutex
// serializes in-process mutation so two handlers cannot interleave an
// append with a revert; conflicts with other processes stay detected
// (not prevented) by the journal's own re-validation.
type JournalUseCase struct {
	mu      sync.Mutex
	journal *journal.Journal
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(j *journal.Journal, m *metrics.Metrics, logger zerolog.Logger) *JournalUseCase {
	return &JournalUseCase{
		journal: j,
		metrics: m,
		logger:  logger,
	}
}

// ListInput represents input for listing journal entries.
type ListInput struct {
	// Filter keeps entries whose raw text contains the string,
	// case-insensitively.
	Filter string
	// Count keeps only the most recent N entries; 0 keeps all.
	Count int
	// Reverse orders newest first.
	Reverse bool
}

// ListResult carries the listed entries plus whether the last append is
// currently revertible. CanRevert is always false for filtered listings:
// a partial view is no basis for an undo decision.
type ListResult struct {
	Entries   []*journal.ParsedEntry
	CanRevert bool
}

// List returns parsed journal entries per the input.
func (uc *JournalUseCase) List(input ListInput) (*ListResult, error) {
	it, err := uc.journal.Entries()
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var entries []*journal.ParsedEntry
	filter := strings.ToLower(input.Filter)
	for it.Next() {
		entry := it.Entry()
		if filter != "" && !strings.Contains(strings.ToLower(entry.Body), filter) {
			continue
		}
		entries = append(entries, entry)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	if input.Count > 0 && len(entries) > input.Count {
		entries = entries[len(entries)-input.Count:]
	}

	if input.Reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	result := &ListResult{Entries: entries}
	if input.Filter == "" {
		// The revert check reads the same append record Submit and
		// Revert write, so it joins their critical section.
		uc.mu.Lock()
		ok, err := uc.journal.CanRevert()
		uc.mu.Unlock()
		if err != nil {
			return nil, err
		}
		result.CanRevert = ok
	}

	return result, nil
}

// CanRevert reports whether the last append is still revertible.
func (uc *JournalUseCase) CanRevert() (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.journal.CanRevert()
}

// Revert undoes the last append.
func (uc *JournalUseCase) Revert() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.revertLocked()
}

func (uc *JournalUseCase) revertLocked() error {
	if err := uc.journal.Revert(); err != nil {
		if errors.Is(err, domain.ErrCannotRevert) {
			uc.metrics.RevertConflicts.Inc()
		}
		return err
	}

	uc.metrics.EntriesReverted.Inc()
	return nil
}

// PostingSpec is one submitted posting line. Empty names are ignored,
// matching how a sparse form submits unused rows.
type PostingSpec struct {
	Name     string
	Amount   string
	Currency string
}

// SubmitInput represents input for appending an entry.
type SubmitInput struct {
	Date     string
	Payee    string
	Note     string
	Postings []PostingSpec
	// Amend reverts the previous append before writing, replacing it.
	Amend bool
}

// SubmitResult reports where the appended entry landed in the file.
// Text is the rendering actually written, under the journal's currency
// rules.
type SubmitResult struct {
	Entry     *domain.Entry
	Text      string
	OldOffset int64
	NewOffset int64
}

// Submit builds an entry from the posting specs and appends it,
// optionally replacing the previous append.
func (uc *JournalUseCase) Submit(input SubmitInput) (*SubmitResult, error) {
	inputs := make([]domain.PostingInput, 0, len(input.Postings))
	for _, spec := range input.Postings {
		if spec.Name == "" {
			continue
		}
		inputs = append(inputs, domain.Explicit{
			Name:     spec.Name,
			Amount:   spec.Amount,
			Currency: spec.Currency,
		})
	}

	entry, err := domain.NewEntry(input.Payee, input.Date, input.Note, inputs...)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if input.Amend {
		if err := uc.revertLocked(); err != nil {
			return nil, err
		}
	}

	oldOffset, newOffset, err := uc.journal.Append(entry)
	if err != nil {
		return nil, err
	}
	uc.metrics.EntriesAppended.Inc()

	return &SubmitResult{
		Entry:     entry,
		Text:      entry.Render(uc.journal.Rules()),
		OldOffset: oldOffset,
		NewOffset: newOffset,
	}, nil
}

// Accounts returns the engine's account list, one per line.
func (uc *JournalUseCase) Accounts(ctx context.Context) ([]string, error) {
	out, err := uc.journal.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Payees returns the engine's payee list, one per line.
func (uc *JournalUseCase) Payees(ctx context.Context) ([]string, error) {
	out, err := uc.journal.Payees(ctx)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Commodities returns the engine's commodity list, one per line.
func (uc *JournalUseCase) Commodities(ctx context.Context) ([]string, error) {
	out, err := uc.journal.Currencies(ctx)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func splitLines(out string) []string {
	trimmed := strings.TrimRight(out, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
