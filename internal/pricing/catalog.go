package pricing

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/kirinyoku/eventdocs/internal/domain"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoPlans       = errors.New("catalog has no plans")
	ErrDuplicatePlan = errors.New("duplicate plan name")
	ErrUnknownPlan   = errors.New("unknown plan")
	ErrInvalidFee    = errors.New("invalid plan fee")
)

const (
	PlanFree = "Gratuito"
	PlanPlus = "Plus"
	PlanPro  = "Pro"
)

// Rule selects Plan when every condition it sets holds. A rule without
// conditions matches any input.
type Rule struct {
	Plan            string   `yaml:"plan"`
	NoThirdPartyAds bool     `yaml:"no_third_party_ads"`
	PriceAbove      *float64 `yaml:"price_above"`
}

func (r Rule) matches(in domain.CalculationInput) bool {
	if r.NoThirdPartyAds && !in.NoThirdPartyAds {
		return false
	}
	if r.PriceAbove != nil && !(in.TicketPrice > *r.PriceAbove) {
		return false
	}
	return true
}

// Catalog is an ordered plan list plus ordered selection rules. Rules are
// evaluated top to bottom and the first match wins; Fallback is used when
// nothing matches.
type Catalog struct {
	Currency string               `yaml:"currency"`
	Plans    []domain.PricingPlan `yaml:"plans"`
	Rules    []Rule               `yaml:"rules"`
	Fallback string               `yaml:"fallback"`
}

// DefaultCatalog returns the platform's built-in plans.
func DefaultCatalog() Catalog {
	above := 50.0
	return Catalog{
		Currency: "CHF",
		Plans: []domain.PricingPlan{
			{
				Name:       PlanFree,
				FeePercent: 0,
				FeeFixed:   0.50,
				Features: []string{
					"Vendas de ingressos ilimitadas",
					"Check-in pelo aplicativo",
					"Certificados e crachás",
					"Anúncios de terceiros na página do evento",
				},
			},
			{
				Name:       PlanPlus,
				FeePercent: 0.039,
				FeeFixed:   0.49,
				Features: []string{
					"Tudo do Gratuito",
					"Taxa fixa reduzida",
					"Relatórios de vendas",
					"Suporte por e-mail",
				},
			},
			{
				Name:       PlanPro,
				FeePercent: 0.049,
				FeeFixed:   0.89,
				Features: []string{
					"Tudo do Plus",
					"Sem anúncios de terceiros",
					"Marca própria nos documentos",
					"Suporte prioritário",
				},
			},
		},
		Rules: []Rule{
			{Plan: PlanPro, NoThirdPartyAds: true},
			{Plan: PlanPlus, PriceAbove: &above},
		},
		Fallback: PlanFree,
	}
}

// LoadCatalog reads a YAML catalog from path. Missing top-level fields are
// taken from DefaultCatalog.
func LoadCatalog(path string) (Catalog, error) {
	const op = "pricing.LoadCatalog"

	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	return parseCatalog(b)
}

func parseCatalog(b []byte) (Catalog, error) {
	const op = "pricing.parseCatalog"

	var cat Catalog
	if err := yaml.Unmarshal(b, &cat); err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	def := DefaultCatalog()
	if cat.Currency == "" {
		cat.Currency = def.Currency
	}
	if len(cat.Plans) == 0 {
		cat.Plans = def.Plans
	}
	if len(cat.Rules) == 0 {
		cat.Rules = def.Rules
	}
	if cat.Fallback == "" {
		cat.Fallback = def.Fallback
	}

	if err := cat.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	return cat, nil
}

// Validate checks that selection is total: every rule and the fallback name
// an existing plan, and every fee is a finite non-negative number.
func (c Catalog) Validate() error {
	if len(c.Plans) == 0 {
		return ErrNoPlans
	}

	seen := make(map[string]struct{}, len(c.Plans))
	for _, p := range c.Plans {
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicatePlan, p.Name)
		}
		seen[p.Name] = struct{}{}

		if !finite(p.FeePercent) || p.FeePercent < 0 || p.FeePercent > 1 {
			return fmt.Errorf("%w: %q fee_percent %v", ErrInvalidFee, p.Name, p.FeePercent)
		}
		if !finite(p.FeeFixed) || p.FeeFixed < 0 {
			return fmt.Errorf("%w: %q fee_fixed %v", ErrInvalidFee, p.Name, p.FeeFixed)
		}
	}

	for i, r := range c.Rules {
		if _, ok := seen[r.Plan]; !ok {
			return fmt.Errorf("%w: rule %d selects %q", ErrUnknownPlan, i, r.Plan)
		}
	}

	if _, ok := seen[c.Fallback]; !ok {
		return fmt.Errorf("%w: fallback %q", ErrUnknownPlan, c.Fallback)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
