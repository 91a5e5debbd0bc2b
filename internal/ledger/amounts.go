package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts is a validated split of one payment.
type Amounts struct {
	Total   float64
	Meat    float64
	General float64
}

// ResolveAmounts parses user-entered amounts and completes the split the way
// the entry form does: a missing side is derived from the total and the
// given side is clamped to [0, total]; with neither side the whole payment is
// general. When both sides are given they must add up to the total exactly.
//
// Parsing is decimal, so "0.1" + "0.2" == "0.3" holds here even though it
// does not in float64.
func ResolveAmounts(total string, meat, general *string) (Amounts, error) {
	t, err := parseAmount("total", total)
	if err != nil {
		return Amounts{}, err
	}
	if !t.IsPositive() {
		return Amounts{}, fmt.Errorf("%w: total amount must be positive", ErrInvalidAmount)
	}

	meat, general = blankToNil(meat), blankToNil(general)

	var m, g decimal.Decimal
	switch {
	case meat == nil && general == nil:
		m, g = decimal.Zero, t
	case general == nil:
		if m, err = parseAmount("meat", *meat); err != nil {
			return Amounts{}, err
		}
		m = clamp(m, t)
		g = t.Sub(m)
	case meat == nil:
		if g, err = parseAmount("general", *general); err != nil {
			return Amounts{}, err
		}
		g = clamp(g, t)
		m = t.Sub(g)
	default:
		if m, err = parseAmount("meat", *meat); err != nil {
			return Amounts{}, err
		}
		if g, err = parseAmount("general", *general); err != nil {
			return Amounts{}, err
		}
		if m.IsNegative() || g.IsNegative() {
			return Amounts{}, fmt.Errorf("%w: meat and general amounts must not be negative", ErrInvalidAmount)
		}
		if !m.Add(g).Equal(t) {
			return Amounts{}, fmt.Errorf("%w: meat %s + general %s does not equal total %s", ErrInvalidAmount, m, g, t)
		}
	}

	return Amounts{
		Total:   t.InexactFloat64(),
		Meat:    m.InexactFloat64(),
		General: g.InexactFloat64(),
	}, nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s amount %q is not a number", ErrInvalidAmount, field, s)
	}
	return d, nil
}

func clamp(d, total decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(total) {
		return total
	}
	return d
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
