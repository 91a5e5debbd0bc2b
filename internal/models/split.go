package models

// Participant is a person sharing the costs of an event.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// Name is the display name, trimmed with internal whitespace collapsed.
	// Uniqueness is checked case-insensitively.
	Name string `json:"name"`

	// IsVegetarian excludes the participant from the meat-cost pool.
	IsVegetarian bool `json:"is_vegetarian"`
}

// Expense is the single payment record of one participant.
// GeneralAmount + MeatAmount always equals TotalAmount.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// PayerID references the participant who paid.
	// The expense is deleted together with its payer.
	PayerID string `json:"payer_id"`

	// TotalAmount is what the payer actually paid.
	TotalAmount float64 `json:"total_amount"`

	// GeneralAmount is the part split equally among everyone.
	GeneralAmount float64 `json:"general_amount"`

	// MeatAmount is the part split among non-vegetarian participants only.
	MeatAmount float64 `json:"meat_amount"`
}

// Snapshot is an insertion-ordered, self-contained copy of a ledger.
type Snapshot struct {
	Participants []Participant `json:"participants"`
	Expenses     []Expense     `json:"expenses"`
}

// Participant returns the participant with the given ID, if present.
func (s Snapshot) Participant(id string) (Participant, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// ExpenseFor returns the expense paid by the given participant, if any.
func (s Snapshot) ExpenseFor(payerID string) (Expense, bool) {
	for _, e := range s.Expenses {
		if e.PayerID == payerID {
			return e, true
		}
	}
	return Expense{}, false
}

// Empty reports whether there is nothing to settle.
func (s Snapshot) Empty() bool {
	return len(s.Participants) == 0 || len(s.Expenses) == 0
}
