package domain

// ParticipantRecord identifies the person a certificate or badge is issued to.
type ParticipantRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CollaboratorRecord is a staff member working an event.
type CollaboratorRecord struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type OrganizerRecord struct {
	CompanyName    string `json:"company_name,omitempty"`
	Name           string `json:"name,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	BannerImageURL string `json:"banner_image_url,omitempty"`
}

// DisplayName returns the company name, then the personal name, then fallback.
func (o *OrganizerRecord) DisplayName(fallback string) string {
	if o == nil {
		return fallback
	}
	if o.CompanyName != "" {
		return o.CompanyName
	}
	if o.Name != "" {
		return o.Name
	}
	return fallback
}

type EventRecord struct {
	Name           string           `json:"name"`
	Date           string           `json:"date"`
	Organizer      *OrganizerRecord `json:"organizer,omitempty"`
	BannerImageURL string           `json:"banner_image_url,omitempty"`
}

// PricingPlan is a fee structure applied per ticket sold. FeePercent is a
// fraction (0.039 means 3.9%).
type PricingPlan struct {
	Name       string   `json:"name" yaml:"name"`
	FeePercent float64  `json:"fee_percent" yaml:"fee_percent"`
	FeeFixed   float64  `json:"fee_fixed" yaml:"fee_fixed"`
	Features   []string `json:"features" yaml:"features"`
}

type CalculationInput struct {
	TicketPrice     float64 `json:"ticket_price"`
	NumTickets      int     `json:"num_tickets"`
	NoThirdPartyAds bool    `json:"no_third_party_ads"`
}

type CalculationResult struct {
	Plan            PricingPlan `json:"plan"`
	GrossRevenue    float64     `json:"gross_revenue"`
	TotalCommission float64     `json:"total_commission"`
	NetRevenue      float64     `json:"net_revenue"`
}
