package service

import (
	"github.com/kirinyoku/eventdocs/internal/pricing"
	"github.com/kirinyoku/eventdocs/internal/service/admin"
	"github.com/kirinyoku/eventdocs/internal/service/documents"
)

type Services struct {
	Documents *documents.Service
	Admin     *admin.Service
	Pricing   *pricing.Calculator
	Money     *pricing.Formatter
}

func NewServices(
	docs *documents.Service,
	adm *admin.Service,
	calc *pricing.Calculator,
	money *pricing.Formatter,
) *Services {
	return &Services{
		Documents: docs,
		Admin:     adm,
		Pricing:   calc,
		Money:     money,
	}
}
