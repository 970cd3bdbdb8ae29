package domain

// Position controls where a currency symbol is placed relative to the
// amount when an entry is rendered.
type Position int

const (
	// PositionLeft prefixes the amount with no separating space ($5.00).
	PositionLeft Position = iota
	// PositionRight suffixes the amount after a single space (5.00 EUR).
	PositionRight
)

// CurrencyRule describes how one currency token is rendered.
type CurrencyRule struct {
	Symbol   string
	Position Position
}

// CurrencyRules maps currency tokens to rendering rules. The zero map is
// usable: every token falls through to the unknown-token default.
type CurrencyRules map[string]CurrencyRule

// DefaultCurrencyRules covers the tokens the journal format treats
// specially. Everything else renders as itself on the right.
var DefaultCurrencyRules = CurrencyRules{
	"USD": {Symbol: "$", Position: PositionLeft},
	"$":   {Symbol: "$", Position: PositionLeft},
	"":    {Symbol: "", Position: PositionLeft},
}

// Resolve returns the rule for currency, falling back to the currency
// itself rendered on the right when no rule is defined.
func (r CurrencyRules) Resolve(currency string) CurrencyRule {
	if rule, ok := r[currency]; ok {
		return rule
	}
	return CurrencyRule{Symbol: currency, Position: PositionRight}
}
