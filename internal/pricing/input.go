package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/kirinyoku/eventdocs/internal/domain"
)

// Upper bounds keep P*Q and the commission finite.
const (
	MaxTicketPrice = 1e9
	MaxNumTickets  = math.MaxInt32
)

// ParseInput builds a calculation input from raw form values as typed by a
// user. Anything that is not a usable number becomes 0.
func ParseInput(price, qty string, noThirdPartyAds bool) domain.CalculationInput {
	return domain.CalculationInput{
		TicketPrice:     ParseAmount(price),
		NumTickets:      ParseQuantity(qty),
		NoThirdPartyAds: noThirdPartyAds,
	}
}

// ParseAmount parses a decimal amount. A comma is accepted as the decimal
// separator when the value has no dot ("30,5").
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return clampAmount(v)
}

// ParseQuantity parses a ticket count, truncating fractional values.
func ParseQuantity(s string) int {
	return clampQuantity(ParseAmount(s))
}

// Sanitize coerces an input built elsewhere into the calculator's domain.
func Sanitize(in domain.CalculationInput) domain.CalculationInput {
	in.TicketPrice = clampAmount(in.TicketPrice)
	if in.NumTickets < 0 {
		in.NumTickets = 0
	}
	if in.NumTickets > MaxNumTickets {
		in.NumTickets = MaxNumTickets
	}
	return in
}

func clampAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v > MaxTicketPrice {
		return MaxTicketPrice
	}
	return v
}

func clampQuantity(v float64) int {
	v = math.Trunc(clampAmount(v))
	if v > MaxNumTickets {
		return MaxNumTickets
	}
	return int(v)
}
