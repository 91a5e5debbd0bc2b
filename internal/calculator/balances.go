package calculator

import (
	"math"

	"github.com/evenbetter/backend/internal/models"
)

// SettleTolerance is one minor currency unit. Balances within it of zero are
// treated as settled, which absorbs the drift of repeated division.
const SettleTolerance = 0.01

// party is a debtor or creditor being worked down during reconciliation.
type party struct {
	id      string
	name    string
	balance float64
}

// Reconcile turns balances into payments that zero them.
//
// Algorithm:
//   - Debtors (balance < -0.01) and creditors (balance > 0.01) keep the order
//     of the balances slice
//   - Repeatedly pair the FIRST debtor with the FIRST creditor and move
//     min(|debt|, credit) from one to the other
//   - Drop a party once its residual is within 0.01 of zero
//   - Stop when either side runs out
//
// Pairing is first-in-first-out, not largest-first. Output order depends only
// on the order of balances, so the result is deterministic.
func Reconcile(balances []models.Balance) []models.Transaction {
	var debtors, creditors []*party
	for _, b := range balances {
		switch {
		case b.Balance < -SettleTolerance:
			debtors = append(debtors, &party{id: b.ParticipantID, name: b.Name, balance: b.Balance})
		case b.Balance > SettleTolerance:
			creditors = append(creditors, &party{id: b.ParticipantID, name: b.Name, balance: b.Balance})
		}
	}

	transactions := make([]models.Transaction, 0, len(debtors)+len(creditors))
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor := debtors[0]
		creditor := creditors[0]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := math.Min(math.Abs(debtor.balance), creditor.balance)

		transactions = append(transactions, models.Transaction{
			From:   debtor.name,
			To:     creditor.name,
			FromID: debtor.id,
			ToID:   creditor.id,
			Amount: amount,
		})

		debtor.balance += amount
		creditor.balance -= amount

		if math.Abs(debtor.balance) < SettleTolerance {
			debtors = debtors[1:]
		}
		if math.Abs(creditor.balance) < SettleTolerance {
			creditors = creditors[1:]
		}
	}

	return transactions
}
