package fundval

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a refund rate expressed in percent (1.5 means +1.5%).
type Percent float64

// percentOf converts a refund fraction (0.015) to a Percent (1.5).
func percentOf(fraction decimal.Decimal) Percent {
	return Percent(fraction.InexactFloat64() * 100)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
