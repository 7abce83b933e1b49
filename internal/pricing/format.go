package pricing

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts with exactly two decimals using the locale's
// grouping and decimal separators, followed by the ISO currency code, e.g.
// "1 234,50 CHF" for fr-CH.
type Formatter struct {
	unit currency.Unit
	tag  language.Tag
}

func NewFormatter(code, locale string) (*Formatter, error) {
	const op = "pricing.NewFormatter"

	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("%s: currency %q: %w", op, code, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%s: locale %q: %w", op, locale, err)
	}

	return &Formatter{unit: unit, tag: tag}, nil
}

// Format rounds v half away from zero to cents. NaN and infinities render
// as zero.
func (f *Formatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	v = math.Round(v*100) / 100
	if v == 0 {
		// drops the sign of -0
		v = 0
	}

	p := message.NewPrinter(f.tag)
	return p.Sprint(number.Decimal(v, number.Scale(2))) + " " + f.unit.String()
}

// Breakdown holds the three formatted amounts of a calculation.
type Breakdown struct {
	GrossRevenue    string `json:"gross_revenue"`
	TotalCommission string `json:"total_commission"`
	NetRevenue      string `json:"net_revenue"`
}

func (f *Formatter) Breakdown(gross, commission, net float64) Breakdown {
	return Breakdown{
		GrossRevenue:    f.Format(gross),
		TotalCommission: f.Format(commission),
		NetRevenue:      f.Format(net),
	}
}
