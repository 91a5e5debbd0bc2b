package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/evenbetter/backend/internal/models"
)

func TestAddParticipant(t *testing.T) {
	l := New()

	alice, err := l.AddParticipant("  Alice   Cooper ", false)
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	if alice.ID == "" {
		t.Error("Expected participant ID to be generated")
	}
	if alice.Name != "Alice Cooper" {
		t.Errorf("Name = %q, want %q", alice.Name, "Alice Cooper")
	}

	bob, err := l.AddParticipant("Bob", true)
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	if bob.ID == alice.ID {
		t.Error("Expected distinct participant IDs")
	}
	if !bob.IsVegetarian {
		t.Error("Expected Bob to be vegetarian")
	}

	snap := l.Snapshot()
	if len(snap.Participants) != 2 {
		t.Fatalf("Expected 2 participants, got %d", len(snap.Participants))
	}
	if snap.Participants[0].ID != alice.ID || snap.Participants[1].ID != bob.ID {
		t.Error("Expected participants in insertion order")
	}
}

func TestAddParticipant_InvalidName(t *testing.T) {
	l := New()
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := l.AddParticipant(name, false); !errors.Is(err, ErrInvalidName) {
			t.Errorf("AddParticipant(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
	if n := len(l.Snapshot().Participants); n != 0 {
		t.Errorf("Expected no participants after rejected adds, got %d", n)
	}
}

func TestAddParticipant_DuplicateName(t *testing.T) {
	tests := []struct {
		existing string
		added    string
	}{
		{"alice", " Alice "},
		{"Alice Cooper", "alice   cooper"},
		{"STRASSE", "strasse"},
		{"Émile", "émile"},
	}

	for _, tt := range tests {
		t.Run(tt.added, func(t *testing.T) {
			l := New()
			if _, err := l.AddParticipant(tt.existing, false); err != nil {
				t.Fatalf("AddParticipant failed: %v", err)
			}
			_, err := l.AddParticipant(tt.added, true)
			if !errors.Is(err, ErrDuplicateName) {
				t.Fatalf("error = %v, want ErrDuplicateName", err)
			}
			if n := len(l.Snapshot().Participants); n != 1 {
				t.Errorf("Expected 1 participant after rejected add, got %d", n)
			}
		})
	}
}

func TestAddExpense(t *testing.T) {
	l := New()
	alice, _ := l.AddParticipant("Alice", false)

	e, err := l.AddExpense(alice.ID, 90, 60, 30)
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if e.ID == "" || e.PayerID != alice.ID {
		t.Errorf("Unexpected expense: %+v", e)
	}
	if e.TotalAmount != 90 || e.MeatAmount != 60 || e.GeneralAmount != 30 {
		t.Errorf("Unexpected amounts: %+v", e)
	}
}

func TestAddExpense_Errors(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		meat    float64
		general float64
		payer   string
		wantErr error
	}{
		{name: "unknown payer", total: 10, general: 10, payer: "nobody", wantErr: ErrUnknownPayer},
		{name: "negative meat", total: 10, meat: -5, general: 15, wantErr: ErrInvalidAmount},
		{name: "negative general", total: 10, meat: 15, general: -5, wantErr: ErrInvalidAmount},
		{name: "negative total", total: -10, meat: 0, general: -10, wantErr: ErrInvalidAmount},
		{name: "zero total", total: 0, wantErr: ErrInvalidAmount},
		{name: "sum mismatch", total: 10, meat: 3, general: 6, wantErr: ErrInvalidAmount},
		{name: "NaN", total: math.NaN(), meat: 0, general: 0, wantErr: ErrInvalidAmount},
		{name: "Inf", total: math.Inf(1), meat: 0, general: math.Inf(1), wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			p, _ := l.AddParticipant("Alice", false)
			payer := tt.payer
			if payer == "" {
				payer = p.ID
			}
			_, err := l.AddExpense(payer, tt.total, tt.meat, tt.general)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if n := len(l.Snapshot().Expenses); n != 0 {
				t.Errorf("Expected no expenses after rejected add, got %d", n)
			}
		})
	}
}

func TestAddExpense_FloatTolerance(t *testing.T) {
	l := New()
	p, _ := l.AddParticipant("Alice", false)

	// 0.1 + 0.2 != 0.3 in float64, but is within tolerance.
	if _, err := l.AddExpense(p.ID, 0.3, 0.1, 0.2); err != nil {
		t.Fatalf("AddExpense rejected float drift: %v", err)
	}

	q, _ := l.AddParticipant("Bob", false)
	if _, err := l.AddExpense(q.ID, 100, 50, 49.99); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("error = %v, want ErrInvalidAmount for a one-cent mismatch", err)
	}

	r, _ := l.AddParticipant("Carol", false)
	if _, err := l.AddExpense(r.ID, 1234567.89, 1234567.89-0.07, 0.07); err != nil {
		t.Errorf("AddExpense rejected large amount drift: %v", err)
	}
}

func TestAddExpense_Duplicate(t *testing.T) {
	l := New()
	p, _ := l.AddParticipant("Alice", false)
	if _, err := l.AddExpense(p.ID, 10, 0, 10); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := l.AddExpense(p.ID, 20, 0, 20); !errors.Is(err, ErrDuplicateExpense) {
		t.Fatalf("error = %v, want ErrDuplicateExpense", err)
	}
	snap := l.Snapshot()
	if len(snap.Expenses) != 1 || snap.Expenses[0].TotalAmount != 10 {
		t.Errorf("Expected original expense untouched, got %+v", snap.Expenses)
	}
}

func TestAddParticipantWithExpense(t *testing.T) {
	l := New()

	p, e, err := l.AddParticipantWithExpense("Alice", false, &Amounts{Total: 90, Meat: 60, General: 30})
	if err != nil {
		t.Fatalf("AddParticipantWithExpense failed: %v", err)
	}
	if e == nil || e.PayerID != p.ID {
		t.Fatalf("Expected expense linked to participant, got %+v", e)
	}

	q, e, err := l.AddParticipantWithExpense("Bob", true, nil)
	if err != nil {
		t.Fatalf("AddParticipantWithExpense failed: %v", err)
	}
	if e != nil || q.Name != "Bob" {
		t.Errorf("Expected participant only, got %+v / %+v", q, e)
	}

	// Invalid amounts must not leave a participant behind.
	_, _, err = l.AddParticipantWithExpense("Carol", false, &Amounts{Total: 10, Meat: 5, General: 4})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("error = %v, want ErrInvalidAmount", err)
	}
	snap := l.Snapshot()
	if len(snap.Participants) != 2 || len(snap.Expenses) != 1 {
		t.Errorf("Expected 2 participants and 1 expense, got %d and %d", len(snap.Participants), len(snap.Expenses))
	}
}

func TestRemoveParticipant_Cascades(t *testing.T) {
	l := New()
	p, _ := l.AddParticipant("Alice", false)
	q, _ := l.AddParticipant("Bob", false)
	e, _ := l.AddExpense(p.ID, 10, 0, 10)
	f, _ := l.AddExpense(q.ID, 20, 5, 15)

	l.RemoveParticipant(p.ID)

	snap := l.Snapshot()
	if _, ok := snap.Participant(p.ID); ok {
		t.Error("Expected participant to be removed")
	}
	for _, got := range snap.Expenses {
		if got.ID == e.ID {
			t.Error("Expected the removed participant's expense to be removed")
		}
	}
	if len(snap.Expenses) != 1 || snap.Expenses[0].ID != f.ID {
		t.Errorf("Expected Bob's expense to remain, got %+v", snap.Expenses)
	}

	// The name is free again.
	if _, err := l.AddParticipant("alice", false); err != nil {
		t.Errorf("AddParticipant after removal failed: %v", err)
	}
}

func TestRemoveParticipant_UnknownIsNoop(t *testing.T) {
	l := New()
	l.AddParticipant("Alice", false)
	l.RemoveParticipant("does-not-exist")
	if n := len(l.Snapshot().Participants); n != 1 {
		t.Errorf("Expected 1 participant, got %d", n)
	}
}

func TestResetAll(t *testing.T) {
	l := New()
	p, _ := l.AddParticipant("Alice", false)
	l.AddExpense(p.ID, 10, 0, 10)

	l.ResetAll()

	snap := l.Snapshot()
	if len(snap.Participants) != 0 || len(snap.Expenses) != 0 {
		t.Errorf("Expected empty ledger, got %+v", snap)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	l := New()
	l.AddParticipant("Alice", false)

	snap := l.Snapshot()
	snap.Participants[0].Name = "Mallory"
	snap.Participants = append(snap.Participants, models.Participant{ID: "x", Name: "Eve"})

	again := l.Snapshot()
	if len(again.Participants) != 1 || again.Participants[0].Name != "Alice" {
		t.Errorf("Snapshot mutation leaked into ledger: %+v", again.Participants)
	}
}

func TestRestore(t *testing.T) {
	original := New()
	p, _ := original.AddParticipant("Alice", false)
	original.AddParticipant("Bob", true)
	original.AddExpense(p.ID, 90, 60, 30)

	restored, err := Restore(original.Snapshot())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	snap := restored.Snapshot()
	if len(snap.Participants) != 2 || len(snap.Expenses) != 1 {
		t.Fatalf("Unexpected restored snapshot: %+v", snap)
	}

	// Invariants still apply after restore.
	if _, err := restored.AddParticipant("BOB", false); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("error = %v, want ErrDuplicateName", err)
	}
}

func TestRestore_RejectsCorruptSnapshots(t *testing.T) {
	alice := models.Participant{ID: "p1", Name: "Alice"}
	tests := []struct {
		name string
		snap models.Snapshot
	}{
		{
			name: "missing participant id",
			snap: models.Snapshot{Participants: []models.Participant{{Name: "Alice"}}},
		},
		{
			name: "repeated participant id",
			snap: models.Snapshot{Participants: []models.Participant{alice, {ID: "p1", Name: "Bob"}}},
		},
		{
			name: "duplicate names",
			snap: models.Snapshot{Participants: []models.Participant{alice, {ID: "p2", Name: "ALICE"}}},
		},
		{
			name: "dangling payer",
			snap: models.Snapshot{
				Participants: []models.Participant{alice},
				Expenses:     []models.Expense{{ID: "e1", PayerID: "p9", TotalAmount: 10, GeneralAmount: 10}},
			},
		},
		{
			name: "bad amounts",
			snap: models.Snapshot{
				Participants: []models.Participant{alice},
				Expenses:     []models.Expense{{ID: "e1", PayerID: "p1", TotalAmount: 10, GeneralAmount: 4}},
			},
		},
		{
			name: "two expenses for one payer",
			snap: models.Snapshot{
				Participants: []models.Participant{alice},
				Expenses: []models.Expense{
					{ID: "e1", PayerID: "p1", TotalAmount: 10, GeneralAmount: 10},
					{ID: "e2", PayerID: "p1", TotalAmount: 5, GeneralAmount: 5},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Restore(tt.snap); err == nil {
				t.Error("Expected Restore to fail")
			}
		})
	}
}

func TestNameKey(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"alice", " Alice ", true},
		{"Mary  Ann", "mary ann", true},
		{"Mary Ann", "MaryAnn", false},
		{"דני", " דני", true},
	}
	for _, tt := range tests {
		if got := NameKey(tt.a) == NameKey(tt.b); got != tt.same {
			t.Errorf("NameKey(%q) == NameKey(%q) is %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}
