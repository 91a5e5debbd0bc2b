// Package ledger holds the participants and expenses of one event and keeps
// them consistent. Every mutation either applies completely or returns an
// error and leaves the ledger untouched.
package ledger

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/evenbetter/backend/internal/models"
)

// AmountTolerance is the absolute slack allowed when checking that
// general + meat == total for amounts up to 1. Larger totals scale it
// proportionally so the check stays within a few ULPs of float64.
const AmountTolerance = 1e-9

// Ledger is the authoritative collection of participants and expenses.
// It is safe for concurrent use.
type Ledger struct {
	mu           sync.RWMutex
	participants []models.Participant
	expenses     []models.Expense
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Restore rebuilds a ledger from a persisted snapshot. The snapshot is
// validated against the same rules as the mutating operations; corrupt data
// is rejected rather than repaired.
func Restore(snap models.Snapshot) (*Ledger, error) {
	l := New()

	ids := make(map[string]bool, len(snap.Participants))
	for _, p := range snap.Participants {
		if p.ID == "" {
			return nil, fmt.Errorf("restore: participant %q has no id", p.Name)
		}
		if ids[p.ID] {
			return nil, fmt.Errorf("restore: participant id %s appears twice", p.ID)
		}
		name, err := l.checkName(p.Name)
		if err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		ids[p.ID] = true
		l.participants = append(l.participants, models.Participant{
			ID:           p.ID,
			Name:         name,
			IsVegetarian: p.IsVegetarian,
		})
	}

	expenseIDs := make(map[string]bool, len(snap.Expenses))
	for _, e := range snap.Expenses {
		if e.ID == "" || expenseIDs[e.ID] {
			return nil, fmt.Errorf("restore: expense id %q is missing or repeated", e.ID)
		}
		if err := l.checkExpense(e.PayerID, e.TotalAmount, e.MeatAmount, e.GeneralAmount); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		expenseIDs[e.ID] = true
		l.expenses = append(l.expenses, e)
	}

	return l, nil
}

// AddParticipant validates the name and appends a new participant.
func (l *Ledger) AddParticipant(name string, isVegetarian bool) (models.Participant, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	normalized, err := l.checkName(name)
	if err != nil {
		return models.Participant{}, err
	}

	p := models.Participant{
		ID:           uuid.NewString(),
		Name:         normalized,
		IsVegetarian: isVegetarian,
	}
	l.participants = append(l.participants, p)
	return p, nil
}

// AddExpense records what a participant paid. A participant has at most one
// expense; a second one is rejected with ErrDuplicateExpense.
func (l *Ledger) AddExpense(payerID string, total, meat, general float64) (models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkExpense(payerID, total, meat, general); err != nil {
		return models.Expense{}, err
	}

	e := newExpense(payerID, Amounts{Total: total, Meat: meat, General: general})
	l.expenses = append(l.expenses, e)
	return e, nil
}

// AddParticipantWithExpense adds a participant together with what they paid.
// Both are validated before either is stored. A nil amounts adds the
// participant alone.
func (l *Ledger) AddParticipantWithExpense(name string, isVegetarian bool, amounts *Amounts) (models.Participant, *models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	normalized, err := l.checkName(name)
	if err != nil {
		return models.Participant{}, nil, err
	}
	if amounts != nil {
		if err := checkAmounts(amounts.Total, amounts.Meat, amounts.General); err != nil {
			return models.Participant{}, nil, err
		}
	}

	p := models.Participant{
		ID:           uuid.NewString(),
		Name:         normalized,
		IsVegetarian: isVegetarian,
	}
	l.participants = append(l.participants, p)

	if amounts == nil {
		return p, nil, nil
	}
	e := newExpense(p.ID, *amounts)
	l.expenses = append(l.expenses, e)
	return p, &e, nil
}

// RemoveParticipant removes the participant and every expense they paid.
// Removing an unknown ID is a no-op.
func (l *Ledger) RemoveParticipant(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	participants := l.participants[:0:0]
	for _, p := range l.participants {
		if p.ID != id {
			participants = append(participants, p)
		}
	}
	expenses := l.expenses[:0:0]
	for _, e := range l.expenses {
		if e.PayerID != id {
			expenses = append(expenses, e)
		}
	}
	l.participants = participants
	l.expenses = expenses
}

// ResetAll clears all participants and expenses.
func (l *Ledger) ResetAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.participants = nil
	l.expenses = nil
}

// Snapshot returns a copy of the current state, safe to hand to the
// calculator or a store while the ledger keeps changing.
func (l *Ledger) Snapshot() models.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := models.Snapshot{
		Participants: make([]models.Participant, len(l.participants)),
		Expenses:     make([]models.Expense, len(l.expenses)),
	}
	copy(snap.Participants, l.participants)
	copy(snap.Expenses, l.expenses)
	return snap
}

// checkName returns the normalized name or why it cannot be added.
// Callers must hold the lock.
func (l *Ledger) checkName(name string) (string, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return "", ErrInvalidName
	}
	key := NameKey(normalized)
	for _, p := range l.participants {
		if NameKey(p.Name) == key {
			return "", fmt.Errorf("%w: %q matches existing participant %q", ErrDuplicateName, normalized, p.Name)
		}
	}
	return normalized, nil
}

// checkExpense validates an expense against the current participants.
// Callers must hold the lock.
func (l *Ledger) checkExpense(payerID string, total, meat, general float64) error {
	found := false
	for _, p := range l.participants {
		if p.ID == payerID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownPayer, payerID)
	}
	if e, ok := (models.Snapshot{Expenses: l.expenses}).ExpenseFor(payerID); ok {
		return fmt.Errorf("%w: expense %s", ErrDuplicateExpense, e.ID)
	}
	return checkAmounts(total, meat, general)
}

// checkAmounts enforces non-negative, finite amounts, a positive total and
// general + meat == total.
func checkAmounts(total, meat, general float64) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"total", total},
		{"meat", meat},
		{"general", general},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s amount is not a finite number", ErrInvalidAmount, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s amount %v is negative", ErrInvalidAmount, f.name, f.value)
		}
	}
	if total == 0 {
		return fmt.Errorf("%w: total amount must be positive", ErrInvalidAmount)
	}

	tolerance := AmountTolerance * math.Max(1, total)
	if math.Abs(meat+general-total) > tolerance {
		return fmt.Errorf("%w: meat %v + general %v does not equal total %v", ErrInvalidAmount, meat, general, total)
	}
	return nil
}

func newExpense(payerID string, a Amounts) models.Expense {
	return models.Expense{
		ID:            uuid.NewString(),
		PayerID:       payerID,
		TotalAmount:   a.Total,
		MeatAmount:    a.Meat,
		GeneralAmount: a.General,
	}
}
