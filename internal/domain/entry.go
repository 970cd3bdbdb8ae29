package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Posting is a single account line within an entry. Amount is a fixed
// two-decimal string, or "" when the posting carries no value. Currency is
// always "" when Amount is "".
type Posting struct {
	Account  string
	Amount   string
	Currency string
}

// PostingInput is one of the shorthand forms an entry posting can be
// supplied in: Explicit, Merged or Bare.
type PostingInput interface {
	resolve() (Posting, error)
}

// Explicit supplies account, amount and currency separately.
type Explicit struct {
	Name     string
	Amount   string
	Currency string
}

// Merged supplies amount and currency as a single token, split on the
// first space ("19.99 PLN", "5 USD", "5").
type Merged struct {
	Name  string
	Token string
}

// Bare supplies only an account, the balancing posting form.
type Bare struct {
	Name string
}

func (p Explicit) resolve() (Posting, error) {
	return newPosting(p.Name, p.Amount, p.Currency)
}

func (p Merged) resolve() (Posting, error) {
	amount, currency, _ := strings.Cut(p.Token, " ")
	return newPosting(p.Name, amount, currency)
}

func (p Bare) resolve() (Posting, error) {
	return Posting{Account: p.Name}, nil
}

// newPosting normalizes the amount to two decimals and enforces the
// no-currency-without-amount invariant.
func newPosting(name, amount, currency string) (Posting, error) {
	if amount == "" {
		return Posting{Account: name}, nil
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return Posting{}, fmt.Errorf("posting %s: amount %q: %w", name, amount, ErrInvalidAmount)
	}

	return Posting{
		Account:  name,
		Amount:   value.StringFixed(2),
		Currency: currency,
	}, nil
}

// Entry is one journal transaction. It is constructed once and never
// mutated; rendering is a pure function of its fields.
type Entry struct {
	Payee    string
	Date     string
	Note     string
	Postings []Posting
}

// NewEntry builds an entry from posting shorthand forms. Date is expected
// in YYYY-MM-DD or YYYY/MM/DD form but is not validated as a calendar
// date here; the external engine owns that.
func NewEntry(payee, date, note string, postings ...PostingInput) (*Entry, error) {
	entry := &Entry{
		Payee:    payee,
		Date:     date,
		Note:     note,
		Postings: make([]Posting, 0, len(postings)),
	}

	for _, input := range postings {
		posting, err := input.resolve()
		if err != nil {
			return nil, err
		}
		entry.Postings = append(entry.Postings, posting)
	}

	return entry, nil
}

// Render produces the canonical journal text for the entry: a leading
// blank line, the header, one comment line per note line, then the
// postings. There is no trailing newline; Journal.Append adds it.
//
// The column widths are an interoperability contract with external
// tooling that re-parses this format, not cosmetics.
func (e *Entry) Render(rules CurrencyRules) string {
	lines := []string{"", fmt.Sprintf("%s %s", e.Date, e.Payee)}

	if e.Note != "" {
		for _, noteLine := range strings.Split(e.Note, "\n") {
			lines = append(lines, fmt.Sprintf("    ; %s", noteLine))
		}
	}

	for _, posting := range e.Postings {
		if posting.Amount == "" {
			lines = append(lines, fmt.Sprintf("    %s", posting.Account))
			continue
		}

		rule := rules.Resolve(posting.Currency)
		if rule.Position == PositionLeft {
			amount := rule.Symbol + posting.Amount
			lines = append(lines, fmt.Sprintf("    %-34s  %12s", posting.Account, amount))
		} else {
			lines = append(lines, fmt.Sprintf("    %-34s  %12s %s", posting.Account, posting.Amount, rule.Symbol))
		}
	}

	return strings.Join(lines, "\n")
}

// String renders the entry with the default currency rules.
func (e *Entry) String() string {
	return e.Render(DefaultCurrencyRules)
}
