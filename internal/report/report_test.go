package report

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/evenbetter/backend/internal/models"
)

func sampleSettlement() *models.Settlement {
	return &models.Settlement{
		TotalGeneral:     30,
		TotalMeat:        60,
		GeneralPerPerson: 10,
		MeatPerPerson:    30,
		Balances: []models.Balance{
			{ParticipantID: "a", Name: "A", Share: 40, Paid: 90, Balance: 50},
			{ParticipantID: "b", Name: "B", IsVegetarian: true, Share: 10, Paid: 0, Balance: -10},
			{ParticipantID: "c", Name: "C", Share: 40, Paid: 0, Balance: -40},
		},
		Transactions: []models.Transaction{
			{From: "B", To: "A", FromID: "b", ToID: "a", Amount: 10.4},
			{From: "C", To: "A", FromID: "c", ToID: "a", Amount: 39.6},
		},
	}
}

func TestCurrencySymbol(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ILS", "₪"},
		{"usd", "$"},
		{" EUR ", "€"},
		{"GBP", "£"},
		{"JPY", "₪"},
		{"", "₪"},
	}
	for _, tt := range tests {
		if got := CurrencySymbol(tt.code); got != tt.want {
			t.Errorf("CurrencySymbol(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		v     float64
		round bool
		want  string
	}{
		{10, false, "10.00"},
		{33.333333, false, "33.33"},
		{33.333333, true, "33"},
		{12.5, true, "13"},
		{0.49, true, "0"},
		{1234.567, false, "1234.57"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.v, tt.round); got != tt.want {
			t.Errorf("FormatAmount(%v, %v) = %q, want %q", tt.v, tt.round, got, tt.want)
		}
	}
}

func TestDisplayTransactions_RoundingIndependence(t *testing.T) {
	s := sampleSettlement()
	before := *s
	balancesBefore := append([]models.Balance(nil), s.Balances...)

	rounded := DisplayTransactions(s.Transactions, true)
	if rounded[0].Amount != 10 || rounded[1].Amount != 40 {
		t.Errorf("Unexpected rounded amounts: %+v", rounded)
	}

	if s.Transactions[0].Amount != 10.4 || s.Transactions[1].Amount != 39.6 {
		t.Errorf("Original transactions were modified: %+v", s.Transactions)
	}
	for i, b := range s.Balances {
		if b != balancesBefore[i] {
			t.Errorf("Balance %d changed: %+v -> %+v", i, balancesBefore[i], b)
		}
	}
	if s.GeneralPerPerson != before.GeneralPerPerson || s.MeatPerPerson != before.MeatPerPerson {
		t.Error("Rates changed by rounding")
	}

	plain := DisplayTransactions(s.Transactions, false)
	if plain[0].Amount != 10.4 {
		t.Errorf("Unrounded amount = %v, want 10.4", plain[0].Amount)
	}
}

func TestShareText_English(t *testing.T) {
	msg := ShareText(sampleSettlement(), ShareOptions{
		Preferences:  models.Preferences{Language: "en", Currency: "USD"},
		RoundAmounts: true,
	})

	for _, want := range []string{
		"Expense Split Report",
		"Total Cost: $90.00",
		"General Expenses: $30.00",
		"Meat Expenses: $60.00",
		"Cost Vegetarian: $10.00",
		"Cost Non-Veg: $40.00",
		"1. B → A",
		"$10\n",
		"2. C → A",
		"$40\n",
		"Created with EvenBetter",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if !strings.HasPrefix(msg, lrm) {
		t.Error("Expected left-to-right mark for English")
	}
}

func TestShareText_HebrewAndEventName(t *testing.T) {
	s := sampleSettlement()
	s.Transactions[0].From = "דני"

	msg := ShareText(s, ShareOptions{
		Preferences: models.Preferences{Language: "he", Currency: "ILS"},
		EventName:   "  *Friday* BBQ ",
	})

	if !strings.HasPrefix(msg, rlm+"*Friday BBQ*") {
		t.Errorf("Unexpected title line: %q", strings.SplitN(msg, "\n", 2)[0])
	}
	if !strings.Contains(msg, rlm+"1. דני ← A") {
		t.Errorf("Expected right-to-left arrow for Hebrew names:\n%s", msg)
	}
	if !strings.Contains(msg, lrm+"2. C → A") {
		t.Errorf("Expected left-to-right arrow for Latin names:\n%s", msg)
	}
	if !strings.Contains(msg, "₪10.40") {
		t.Errorf("Expected unrounded shekel amount:\n%s", msg)
	}
	if !strings.Contains(msg, "הוצאות בשר") {
		t.Error("Expected Hebrew labels")
	}
}

func TestSplitMessage(t *testing.T) {
	short := "hello"
	if got := SplitMessage(short, 10); len(got) != 1 || got[0] != short {
		t.Errorf("SplitMessage(short) = %q", got)
	}

	long := strings.Repeat("שלום", 500) // 2000 runes, multi-byte
	parts := SplitMessage(long, MaxSafeMessage)
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	if utf8.RuneCountInString(parts[0]) != MaxSafeMessage {
		t.Errorf("first part has %d runes", utf8.RuneCountInString(parts[0]))
	}
	if utf8.RuneCountInString(parts[1]) != 2000-MaxSafeMessage {
		t.Errorf("second part has %d runes, want the whole remainder", utf8.RuneCountInString(parts[1]))
	}
	if strings.Join(parts, "") != long {
		t.Error("parts do not reassemble the message")
	}
	for i, p := range parts {
		if !utf8.ValidString(p) {
			t.Errorf("part %d is not valid UTF-8", i)
		}
	}
}

func TestNoDataToShareMessage(t *testing.T) {
	if got := NoDataToShareMessage("en"); got != "No data to share" {
		t.Errorf("NoDataToShareMessage(en) = %q", got)
	}
	if got := NoDataToShareMessage("he"); got != "אין נתונים לשיתוף" {
		t.Errorf("NoDataToShareMessage(he) = %q", got)
	}
}

func TestT_Fallbacks(t *testing.T) {
	if got := T("meatExpenses", "fr"); got != "הוצאות בשר" {
		t.Errorf("unknown language should fall back to Hebrew, got %q", got)
	}
	if got := T("nope", "en"); got != "nope" {
		t.Errorf("unknown key should echo, got %q", got)
	}
}
