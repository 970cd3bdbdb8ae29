package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerd/internal/journal"
	"github.com/iho/ledgerd/internal/ledgercli"
)

// ReportUseCase computes balance and register reports from the engine's
// csv dump. The engine remains the authority on bookkeeping; this layer
// only aggregates its output.
type ReportUseCase struct {
	journal *journal.Journal
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(j *journal.Journal) *ReportUseCase {
	return &ReportUseCase{journal: j}
}

// BalanceLine is one account/currency pair with its summed amount.
type BalanceLine struct {
	Account  string
	Currency string
	Amount   decimal.Decimal
}

// Balance sums the dump per account and currency. Filter is an optional
// case-insensitive regular expression matched against account names.
func (uc *ReportUseCase) Balance(ctx context.Context, filter string) ([]BalanceLine, error) {
	rows, err := uc.dump(ctx, filter)
	if err != nil {
		return nil, err
	}

	type key struct {
		account  string
		currency string
	}
	totals := make(map[key]decimal.Decimal)
	for _, row := range rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("amount %q for account %s: %w", row.Amount, row.Account, err)
		}
		k := key{account: row.Account, currency: row.Currency}
		totals[k] = totals[k].Add(amount)
	}

	lines := make([]BalanceLine, 0, len(totals))
	for k, total := range totals {
		lines = append(lines, BalanceLine{
			Account:  k.account,
			Currency: k.currency,
			Amount:   total.Round(2),
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Account != lines[j].Account {
			return lines[i].Account < lines[j].Account
		}
		return lines[i].Currency < lines[j].Currency
	})

	return lines, nil
}

// RegisterLine is one dump row with the running total up to and
// including it.
type RegisterLine struct {
	Date     string
	Payee    string
	Account  string
	Currency string
	Amount   decimal.Decimal
	Total    decimal.Decimal
}

// RegisterResult carries the register rows plus how many distinct
// currencies they span. The running total blindly sums across
// currencies, so a count above one tells the consumer the totals column
// is not meaningful as a single figure.
type RegisterResult struct {
	Lines         []RegisterLine
	CurrencyCount int
}

// Register returns the filtered dump rows in file order with a running
// total.
func (uc *ReportUseCase) Register(ctx context.Context, filter string) (*RegisterResult, error) {
	rows, err := uc.dump(ctx, filter)
	if err != nil {
		return nil, err
	}

	currencies := make(map[string]struct{})
	lines := make([]RegisterLine, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("amount %q for account %s: %w", row.Amount, row.Account, err)
		}
		total = total.Add(amount)
		currencies[row.Currency] = struct{}{}

		lines = append(lines, RegisterLine{
			Date:     row.Date,
			Payee:    row.Payee,
			Account:  row.Account,
			Currency: row.Currency,
			Amount:   amount,
			Total:    total.Round(2),
		})
	}

	return &RegisterResult{
		Lines:         lines,
		CurrencyCount: len(currencies),
	}, nil
}

// dump fetches and parses the csv dump, applying the account filter.
func (uc *ReportUseCase) dump(ctx context.Context, filter string) ([]ledgercli.Row, error) {
	var pattern *regexp.Regexp
	if filter != "" {
		var err error
		pattern, err = regexp.Compile("(?i)" + filter)
		if err != nil {
			return nil, fmt.Errorf("account filter: %w", err)
		}
	}

	out, err := uc.journal.Csv(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := ledgercli.ParseDump(out)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return rows, nil
	}

	var filtered []ledgercli.Row
	for _, row := range rows {
		if pattern.MatchString(row.Account) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}
