package calculator

import (
	"math"
	"testing"

	"github.com/evenbetter/backend/internal/models"
)

func TestCalculateRates(t *testing.T) {
	tests := []struct {
		name           string
		totalGeneral   float64
		totalMeat      float64
		participants   int
		nonVegetarians int
		want           Rates
	}{
		{
			name:           "mixed group",
			totalGeneral:   30,
			totalMeat:      60,
			participants:   3,
			nonVegetarians: 2,
			want:           Rates{GeneralPerPerson: 10, MeatPerPerson: 30},
		},
		{
			name:           "everyone vegetarian, no meat",
			totalGeneral:   40,
			participants:   4,
			nonVegetarians: 0,
			want:           Rates{GeneralPerPerson: 10, MeatPerPerson: 0},
		},
		{
			name:           "no participants",
			totalGeneral:   40,
			totalMeat:      20,
			participants:   0,
			nonVegetarians: 0,
			want:           Rates{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateRates(tt.totalGeneral, tt.totalMeat, tt.participants, tt.nonVegetarians)
			if math.Abs(got.GeneralPerPerson-tt.want.GeneralPerPerson) > 1e-9 {
				t.Errorf("GeneralPerPerson = %v, want %v", got.GeneralPerPerson, tt.want.GeneralPerPerson)
			}
			if math.Abs(got.MeatPerPerson-tt.want.MeatPerPerson) > 1e-9 {
				t.Errorf("MeatPerPerson = %v, want %v", got.MeatPerPerson, tt.want.MeatPerPerson)
			}
		})
	}
}

func TestCalculateShares(t *testing.T) {
	tests := []struct {
		name         string
		snap         models.Snapshot
		rates        Rates
		validateFunc func(t *testing.T, balances []models.Balance)
	}{
		{
			name: "vegetarian pays general only",
			snap: models.Snapshot{
				Participants: []models.Participant{
					{ID: "a", Name: "Alice"},
					{ID: "b", Name: "Bob", IsVegetarian: true},
				},
				Expenses: []models.Expense{
					{ID: "e1", PayerID: "a", TotalAmount: 50, GeneralAmount: 20, MeatAmount: 30},
				},
			},
			rates: Rates{GeneralPerPerson: 10, MeatPerPerson: 30},
			validateFunc: func(t *testing.T, balances []models.Balance) {
				// Alice: share = 10 + 30 = 40, paid 50, balance +10
				// Bob: share = 10, paid 0, balance -10
				alice, bob := balances[0], balances[1]
				if math.Abs(alice.Share-40) > 0.01 {
					t.Errorf("Alice share = %v, want 40", alice.Share)
				}
				if math.Abs(alice.Balance-10) > 0.01 {
					t.Errorf("Alice balance = %v, want 10", alice.Balance)
				}
				if math.Abs(bob.Share-10) > 0.01 {
					t.Errorf("Bob share = %v, want 10", bob.Share)
				}
				if bob.Paid != 0 {
					t.Errorf("Bob paid = %v, want 0", bob.Paid)
				}
				if math.Abs(bob.Balance+10) > 0.01 {
					t.Errorf("Bob balance = %v, want -10", bob.Balance)
				}
			},
		},
		{
			name: "balances follow participant order, not expense order",
			snap: models.Snapshot{
				Participants: []models.Participant{
					{ID: "c", Name: "Carol"},
					{ID: "a", Name: "Alice"},
				},
				Expenses: []models.Expense{
					{ID: "e1", PayerID: "a", TotalAmount: 10, GeneralAmount: 10},
					{ID: "e2", PayerID: "c", TotalAmount: 30, GeneralAmount: 30},
				},
			},
			rates: Rates{GeneralPerPerson: 20},
			validateFunc: func(t *testing.T, balances []models.Balance) {
				if balances[0].Name != "Carol" || balances[1].Name != "Alice" {
					t.Errorf("Unexpected order: %s, %s", balances[0].Name, balances[1].Name)
				}
				if balances[0].Paid != 30 || balances[1].Paid != 10 {
					t.Errorf("Unexpected paid: %v, %v", balances[0].Paid, balances[1].Paid)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := CalculateShares(tt.snap, tt.rates)
			if len(balances) != len(tt.snap.Participants) {
				t.Fatalf("got %d balances, want %d", len(balances), len(tt.snap.Participants))
			}
			tt.validateFunc(t, balances)
		})
	}
}
