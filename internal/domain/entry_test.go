package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEntry_PostingForms(t *testing.T) {
	tests := []struct {
		name    string
		input   PostingInput
		want    Posting
		wantErr error
	}{
		{
			name:  "explicit form",
			input: Explicit{Name: "Expenses:Food", Amount: "5.00", Currency: "USD"},
			want:  Posting{Account: "Expenses:Food", Amount: "5.00", Currency: "USD"},
		},
		{
			name:  "explicit form normalizes precision",
			input: Explicit{Name: "Expenses:Food", Amount: "5", Currency: "USD"},
			want:  Posting{Account: "Expenses:Food", Amount: "5.00", Currency: "USD"},
		},
		{
			name:  "explicit form without amount drops currency",
			input: Explicit{Name: "Liabilities:Credit Card", Amount: "", Currency: "USD"},
			want:  Posting{Account: "Liabilities:Credit Card"},
		},
		{
			name:  "merged form with currency",
			input: Merged{Name: "Expenses:Food", Token: "19.99 PLN"},
			want:  Posting{Account: "Expenses:Food", Amount: "19.99", Currency: "PLN"},
		},
		{
			name:  "merged form without currency",
			input: Merged{Name: "Expenses:Food", Token: "5"},
			want:  Posting{Account: "Expenses:Food", Amount: "5.00", Currency: ""},
		},
		{
			name:  "merged form with empty token",
			input: Merged{Name: "Expenses:Food", Token: ""},
			want:  Posting{Account: "Expenses:Food"},
		},
		{
			name:  "bare form",
			input: Bare{Name: "Liabilities:Credit Card"},
			want:  Posting{Account: "Liabilities:Credit Card"},
		},
		{
			name:    "explicit form with bad amount",
			input:   Explicit{Name: "Expenses:Food", Amount: "five", Currency: "USD"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "merged form with bad amount",
			input:   Merged{Name: "Expenses:Food", Token: "1,99 PLN"},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewEntry("Payee", "2019-02-15", "", tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := entry.Postings[0]; got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestEntry_Render(t *testing.T) {
	tests := []struct {
		name     string
		payee    string
		date     string
		note     string
		postings []PostingInput
		want     []string
	}{
		{
			name:  "unknown currency right-aligned with suffix",
			payee: "Burger King",
			date:  "2019-02-15",
			postings: []PostingInput{
				Merged{Name: "Expenses:Food", Token: "19.99 PLN"},
				Bare{Name: "Liabilities:Credit Card"},
			},
			want: []string{
				"",
				"2019-02-15 Burger King",
				"    Expenses:Food                              19.99 PLN",
				"    Liabilities:Credit Card",
			},
		},
		{
			name:  "USD renders as left dollar symbol",
			payee: "McDonald's",
			date:  "2019-02-16",
			postings: []PostingInput{
				Merged{Name: "Expenses:Food", Token: "5 USD"},
				Bare{Name: "Liabilities:Credit Card"},
			},
			want: []string{
				"",
				"2019-02-16 McDonald's",
				"    Expenses:Food                              $5.00",
				"    Liabilities:Credit Card",
			},
		},
		{
			name:  "dollar token matches USD handling",
			payee: "McDonald's",
			date:  "2019-02-16",
			postings: []PostingInput{
				Merged{Name: "Expenses:Food", Token: "5 $"},
				Bare{Name: "Liabilities:Credit Card"},
			},
			want: []string{
				"",
				"2019-02-16 McDonald's",
				"    Expenses:Food                              $5.00",
				"    Liabilities:Credit Card",
			},
		},
		{
			name:  "note lines between header and postings",
			payee: "McDonald's",
			date:  "2019-02-16",
			note:  ":loan:",
			postings: []PostingInput{
				Explicit{Name: "Expenses:Food", Amount: "5", Currency: "$"},
				Merged{Name: "Assets:Loans:John", Token: "5 USD"},
				Bare{Name: "Liabilities:Credit Card"},
			},
			want: []string{
				"",
				"2019-02-16 McDonald's",
				"    ; :loan:",
				"    Expenses:Food                              $5.00",
				"    Assets:Loans:John                          $5.00",
				"    Liabilities:Credit Card",
			},
		},
		{
			name:  "multi-line note",
			payee: "Landlord",
			date:  "2019/03/01",
			note:  "march rent\npaid late",
			postings: []PostingInput{
				Merged{Name: "Expenses:Rent", Token: "1200"},
				Bare{Name: "Assets:Checking"},
			},
			want: []string{
				"",
				"2019/03/01 Landlord",
				"    ; march rent",
				"    ; paid late",
				"    Expenses:Rent                            1200.00",
				"    Assets:Checking",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewEntry(tt.payee, tt.date, tt.note, tt.postings...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := strings.Join(tt.want, "\n")
			if got := entry.String(); got != want {
				t.Errorf("rendering mismatch:\ngot:\n%q\nwant:\n%q", got, want)
			}
		})
	}
}

func TestEntry_RenderShorthandEquivalence(t *testing.T) {
	merged, err := NewEntry("Payee", "2019-02-16", "",
		Merged{Name: "Expenses:Food", Token: "5 USD"},
		Bare{Name: "Liabilities:Credit Card"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	explicit, err := NewEntry("Payee", "2019-02-16", "",
		Explicit{Name: "Expenses:Food", Amount: "5.00", Currency: "USD"},
		Bare{Name: "Liabilities:Credit Card"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if merged.String() != explicit.String() {
		t.Errorf("shorthand forms diverge:\nmerged:\n%s\nexplicit:\n%s", merged, explicit)
	}
}

func TestEntry_RenderCustomRules(t *testing.T) {
	rules := CurrencyRules{
		"PLN": {Symbol: "zl", Position: PositionRight},
		"EUR": {Symbol: "E", Position: PositionLeft},
	}

	entry, err := NewEntry("Payee", "2019-02-16", "",
		Merged{Name: "Expenses:Food", Token: "5 EUR"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "\n2019-02-16 Payee\n    Expenses:Food                              E5.00"
	if got := entry.Render(rules); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
