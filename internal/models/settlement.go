package models

// Settlement is the computed outcome for one snapshot. It is never stored.
type Settlement struct {
	// TotalGeneral is the sum of all general amounts.
	TotalGeneral float64 `json:"total_general"`

	// TotalMeat is the sum of all meat amounts.
	TotalMeat float64 `json:"total_meat"`

	// GeneralPerPerson is TotalGeneral divided by all participants.
	GeneralPerPerson float64 `json:"general_per_person"`

	// MeatPerPerson is TotalMeat divided by non-vegetarian participants,
	// or 0 when there are none.
	MeatPerPerson float64 `json:"meat_per_person"`

	// Balances holds one entry per participant, in insertion order.
	Balances []Balance `json:"balances"`

	// Transactions are the payments that zero all balances, in the order
	// they were produced by the reconciliation.
	Transactions []Transaction `json:"transactions"`
}

// Balance is one participant's position in a settlement.
type Balance struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	IsVegetarian  bool    `json:"is_vegetarian"`
	Share         float64 `json:"share"`   // What the participant should bear
	Paid          float64 `json:"paid"`    // What the participant actually paid
	Balance       float64 `json:"balance"` // Positive = owed money, Negative = owes money
}

// Transaction is a payment from a debtor to a creditor.
type Transaction struct {
	From   string  `json:"from"` // Debtor name
	To     string  `json:"to"`   // Creditor name
	FromID string  `json:"from_id"`
	ToID   string  `json:"to_id"`
	Amount float64 `json:"amount"`
}

// BalanceFor returns the balance entry of the given participant.
func (s *Settlement) BalanceFor(participantID string) (Balance, bool) {
	for _, b := range s.Balances {
		if b.ParticipantID == participantID {
			return b, true
		}
	}
	return Balance{}, false
}

// TotalCost is the full cost of the event.
func (s *Settlement) TotalCost() float64 {
	return s.TotalGeneral + s.TotalMeat
}

// NonVegetarianShare is what a non-vegetarian participant bears.
func (s *Settlement) NonVegetarianShare() float64 {
	return s.GeneralPerPerson + s.MeatPerPerson
}
