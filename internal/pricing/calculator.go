package pricing

import (
	"fmt"
	"slices"

	"github.com/kirinyoku/eventdocs/internal/domain"
)

// Calculator selects a plan and computes the revenue breakdown. It holds an
// immutable copy of its catalog and is safe for concurrent use.
type Calculator struct {
	plans    map[string]domain.PricingPlan
	order    []string
	rules    []Rule
	fallback string
	currency string
}

func NewCalculator(cat Catalog) (*Calculator, error) {
	const op = "pricing.NewCalculator"

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &Calculator{
		plans:    make(map[string]domain.PricingPlan, len(cat.Plans)),
		rules:    make([]Rule, 0, len(cat.Rules)),
		fallback: cat.Fallback,
		currency: cat.Currency,
	}

	for _, p := range cat.Plans {
		p.Features = slices.Clone(p.Features)
		c.plans[p.Name] = p
		c.order = append(c.order, p.Name)
	}

	for _, r := range cat.Rules {
		if r.PriceAbove != nil {
			v := *r.PriceAbove
			r.PriceAbove = &v
		}
		c.rules = append(c.rules, r)
	}

	return c, nil
}

// Currency returns the ISO code the catalog's fees are expressed in.
func (c *Calculator) Currency() string {
	return c.currency
}

// Plans returns the catalog plans in declaration order.
func (c *Calculator) Plans() []domain.PricingPlan {
	out := make([]domain.PricingPlan, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.plan(name))
	}
	return out
}

// Select returns the plan of the first matching rule, or the fallback plan.
func (c *Calculator) Select(in domain.CalculationInput) domain.PricingPlan {
	in = Sanitize(in)

	for _, r := range c.rules {
		if r.matches(in) {
			return c.plan(r.Plan)
		}
	}

	return c.plan(c.fallback)
}

// Calculate recomputes the full breakdown from in:
//
//	gross      = P * Q
//	commission = (P * fee_percent + fee_fixed) * Q
//	net        = gross - commission
func (c *Calculator) Calculate(in domain.CalculationInput) domain.CalculationResult {
	in = Sanitize(in)
	plan := c.Select(in)

	price := in.TicketPrice
	qty := float64(in.NumTickets)

	gross := price * qty
	commission := (price*plan.FeePercent + plan.FeeFixed) * qty

	return domain.CalculationResult{
		Plan:            plan,
		GrossRevenue:    gross,
		TotalCommission: commission,
		NetRevenue:      gross - commission,
	}
}

func (c *Calculator) plan(name string) domain.PricingPlan {
	p := c.plans[name]
	p.Features = slices.Clone(p.Features)
	return p
}
