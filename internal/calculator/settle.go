// Package calculator computes settlements. Everything here is a pure function
// of its input: the same snapshot always yields the same settlement.
package calculator

import (
	"errors"
	"fmt"

	"github.com/evenbetter/backend/internal/models"
)

var (
	// ErrNothingToSettle means there are no participants or no expenses.
	// Callers show no settlement rather than an error.
	ErrNothingToSettle = errors.New("nothing to settle")

	// ErrNoEligibleMeatPayers means meat costs exist but every participant
	// is vegetarian. Fix by adding a non-vegetarian or zeroing the meat cost.
	ErrNoEligibleMeatPayers = errors.New("no non-vegetarian participants to split meat costs")
)

// Settle computes shares, balances and the payments that settle them.
func Settle(snap models.Snapshot) (*models.Settlement, error) {
	if snap.Empty() {
		return nil, ErrNothingToSettle
	}

	var totalGeneral, totalMeat float64
	for _, e := range snap.Expenses {
		totalGeneral += e.GeneralAmount
		totalMeat += e.MeatAmount
	}

	nonVegetarians := 0
	for _, p := range snap.Participants {
		if !p.IsVegetarian {
			nonVegetarians++
		}
	}

	if nonVegetarians == 0 && totalMeat > 0 {
		return nil, fmt.Errorf("%w: meat total %.2f", ErrNoEligibleMeatPayers, totalMeat)
	}

	rates := CalculateRates(totalGeneral, totalMeat, len(snap.Participants), nonVegetarians)
	balances := CalculateShares(snap, rates)

	return &models.Settlement{
		TotalGeneral:     totalGeneral,
		TotalMeat:        totalMeat,
		GeneralPerPerson: rates.GeneralPerPerson,
		MeatPerPerson:    rates.MeatPerPerson,
		Balances:         balances,
		Transactions:     Reconcile(balances),
	}, nil
}
