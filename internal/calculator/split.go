package calculator

import "github.com/evenbetter/backend/internal/models"

// Rates are the per-person costs of the two pools.
type Rates struct {
	GeneralPerPerson float64
	MeatPerPerson    float64
}

// CalculateRates divides the pools among the eligible participants.
// General costs are split among everyone, meat costs among non-vegetarians.
// The meat rate is 0 when nobody eats meat.
func CalculateRates(totalGeneral, totalMeat float64, participants, nonVegetarians int) Rates {
	var r Rates
	if participants > 0 {
		r.GeneralPerPerson = totalGeneral / float64(participants)
	}
	if nonVegetarians > 0 {
		r.MeatPerPerson = totalMeat / float64(nonVegetarians)
	}
	return r
}

// CalculateShares computes share, paid and balance for every participant,
// in participant order.
//
// Algorithm:
//   - share = general rate, plus the meat rate for non-vegetarians
//   - paid = sum of the participant's expense totals (at most one in practice)
//   - balance = paid - share
func CalculateShares(snap models.Snapshot, rates Rates) []models.Balance {
	paid := make(map[string]float64, len(snap.Expenses))
	for _, e := range snap.Expenses {
		paid[e.PayerID] += e.TotalAmount
	}

	balances := make([]models.Balance, 0, len(snap.Participants))
	for _, p := range snap.Participants {
		share := rates.GeneralPerPerson
		if !p.IsVegetarian {
			share += rates.MeatPerPerson
		}
		balances = append(balances, models.Balance{
			ParticipantID: p.ID,
			Name:          p.Name,
			IsVegetarian:  p.IsVegetarian,
			Share:         share,
			Paid:          paid[p.ID],
			Balance:       paid[p.ID] - share,
		})
	}
	return balances
}
