package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/evenbetter/backend/internal/models"
)

const (
	lrm       = "\u200E"
	rlm       = "\u200F"
	separator = "━━━━━━━━━━━━━━━━━━━━"

	// MaxSafeMessage is how many characters survive next to a shared image
	// before some messengers drop the text.
	MaxSafeMessage = 900
)

var translations = map[string]map[string]string{
	"he": {
		"shareMessage":       "דוח חלוקת הוצאות",
		"totalCost":          "סה\"כ עלויות",
		"generalExpenses":    "הוצאות כלליות",
		"meatExpenses":       "הוצאות בשר",
		"costVegetarian":     "עלות צמחוני",
		"costNonVegetarian":  "עלות לא צמחוני",
		"paymentsToTransfer": "תשלומים להעברה",
		"footer":             "נוצר עם EvenBetter 🦊",
		"noMeatPayers":       "אין משתתפים שאינם צמחונים לחלוקת עלויות הבשר",
		"noDataToShare":      "אין נתונים לשיתוף",
	},
	"en": {
		"shareMessage":       "Expense Split Report",
		"totalCost":          "Total Cost",
		"generalExpenses":    "General Expenses",
		"meatExpenses":       "Meat Expenses",
		"costVegetarian":     "Cost Vegetarian",
		"costNonVegetarian":  "Cost Non-Veg",
		"paymentsToTransfer": "Payments to Transfer",
		"footer":             "Created with EvenBetter 🦊",
		"noMeatPayers":       "No non-vegetarian participants to split meat costs",
		"noDataToShare":      "No data to share",
	},
}

// T looks up a label. Unknown languages fall back to Hebrew, unknown keys to
// the key itself.
func T(key, language string) string {
	table, ok := translations[language]
	if !ok {
		table = translations["he"]
	}
	if s, ok := table[key]; ok {
		return s
	}
	return key
}

// SupportedLanguage reports whether there are labels for language.
func SupportedLanguage(language string) bool {
	_, ok := translations[language]
	return ok
}

// NoMeatPayersMessage is the user-facing text for a meat pool nobody can bear.
func NoMeatPayersMessage(language string) string {
	return T("noMeatPayers", language)
}

// NoDataToShareMessage is the user-facing text for an empty ledger.
func NoDataToShareMessage(language string) string {
	return T("noDataToShare", language)
}

// ShareOptions control how a settlement is rendered.
type ShareOptions struct {
	Preferences  models.Preferences
	RoundAmounts bool
	EventName    string
}

// ShareText renders the settlement as the message sent to the group.
func ShareText(s *models.Settlement, opts ShareOptions) string {
	lang := opts.Preferences.Language
	symbol := CurrencySymbol(opts.Preferences.Currency)
	dir := lrm
	if lang == "he" {
		dir = rlm
	}
	money := func(v float64) string {
		return symbol + FormatAmount(v, false)
	}

	var b strings.Builder

	eventName := strings.TrimSpace(strings.ReplaceAll(opts.EventName, "*", ""))
	if eventName != "" {
		fmt.Fprintf(&b, "%s*%s*\n%s", dir, eventName, dir)
	} else {
		fmt.Fprintf(&b, "%s%s\n%s", dir, T("shareMessage", lang), dir)
	}
	b.WriteString(separator + "\n\n")

	fmt.Fprintf(&b, "%s📊 %s: %s\n\n", dir, T("totalCost", lang), money(s.TotalCost()))
	fmt.Fprintf(&b, "%s💰 %s: %s\n", dir, T("generalExpenses", lang), money(s.TotalGeneral))
	fmt.Fprintf(&b, "%s🥩 %s: %s\n\n", dir, T("meatExpenses", lang), money(s.TotalMeat))
	fmt.Fprintf(&b, "%s🌱 %s: %s\n", dir, T("costVegetarian", lang), money(s.GeneralPerPerson))
	fmt.Fprintf(&b, "%s🍖 %s: %s\n\n", dir, T("costNonVegetarian", lang), money(s.NonVegetarianShare()))

	fmt.Fprintf(&b, "%s💸 %s:\n", dir, T("paymentsToTransfer", lang))
	b.WriteString(separator + "\n")

	for i, tx := range s.Transactions {
		mark, arrow := lrm, "→"
		if isRTL(tx.From) || isRTL(tx.To) {
			mark, arrow = rlm, "←"
		}
		fmt.Fprintf(&b, "%s%d. %s %s %s\n", mark, i+1, tx.From, arrow, tx.To)
		fmt.Fprintf(&b, "   %s%s%s\n\n", mark, symbol, FormatAmount(tx.Amount, opts.RoundAmounts))
	}

	b.WriteString(separator + "\n")
	b.WriteString(T("footer", lang))

	return b.String()
}

// SplitMessage cuts a message in two: the first limit characters and the
// rest. Cuts fall on rune boundaries.
func SplitMessage(message string, limit int) []string {
	runes := []rune(message)
	if limit <= 0 || len(runes) <= limit {
		return []string{message}
	}
	return []string{string(runes[:limit]), string(runes[limit:])}
}

// isRTL reports whether text contains Hebrew or Arabic script.
func isRTL(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Hebrew, unicode.Arabic) {
			return true
		}
	}
	return false
}
