package httpgin

import (
	"bytes"
	"encoding/json"

	"github.com/kirinyoku/eventdocs/internal/domain"
	"github.com/kirinyoku/eventdocs/internal/pricing"
)

// FlexNumber accepts a JSON number or a JSON string. Form fields arrive as
// strings, API clients tend to send numbers; both are coerced later by
// pricing.ParseInput.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = FlexNumber(s)
		return nil
	}

	*n = FlexNumber(b)
	return nil
}

type CalculateRequest struct {
	TicketPrice     FlexNumber `json:"ticket_price"`
	NumTickets      FlexNumber `json:"num_tickets"`
	NoThirdPartyAds bool       `json:"no_third_party_ads"`
}

func (r CalculateRequest) Input() domain.CalculationInput {
	return pricing.ParseInput(string(r.TicketPrice), string(r.NumTickets), r.NoThirdPartyAds)
}

type CalculateResponse struct {
	Input           domain.CalculationInput `json:"input"`
	Plan            domain.PricingPlan      `json:"plan"`
	GrossRevenue    float64                 `json:"gross_revenue"`
	TotalCommission float64                 `json:"total_commission"`
	NetRevenue      float64                 `json:"net_revenue"`
	Currency        string                  `json:"currency"`
	Formatted       pricing.Breakdown       `json:"formatted"`
}

type PlansResponse struct {
	Currency string               `json:"currency"`
	Plans    []domain.PricingPlan `json:"plans"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
