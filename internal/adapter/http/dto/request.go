package dto

import "github.com/iho/ledgerd/internal/usecase"

// PostingRequest is one posting line in a submit request. Rows with an
// empty name are tolerated and dropped, so clients can submit fixed-size
// forms.
type PostingRequest struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// SubmitEntryRequest represents the submit-entry request body.
type SubmitEntryRequest struct {
	Date     string           `json:"date"`
	Payee    string           `json:"payee"`
	Note     string           `json:"note"`
	Postings []PostingRequest `json:"postings"`
	Amend    bool             `json:"amend"`
}

// ToUseCaseInput converts the request to use case input.
func (r *SubmitEntryRequest) ToUseCaseInput() usecase.SubmitInput {
	postings := make([]usecase.PostingSpec, len(r.Postings))
	for i, p := range r.Postings {
		postings[i] = usecase.PostingSpec{
			Name:     p.Name,
			Amount:   p.Amount,
			Currency: p.Currency,
		}
	}

	return usecase.SubmitInput{
		Date:     r.Date,
		Payee:    r.Payee,
		Note:     r.Note,
		Postings: postings,
		Amend:    r.Amend,
	}
}

// Validate checks the request fields that never make sense to pass on.
func (r *SubmitEntryRequest) Validate() string {
	if r.Date == "" {
		return "date is required"
	}
	if r.Payee == "" {
		return "payee is required"
	}

	named := 0
	for _, p := range r.Postings {
		if p.Name != "" {
			named++
		}
	}
	if named == 0 {
		return "at least one posting is required"
	}

	return ""
}
