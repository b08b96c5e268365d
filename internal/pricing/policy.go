// Package pricing decides which line items an order carries. The tabulation
// engine only computes; every fee rule lives here.
package pricing

import (
	"commission_go/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fee is a percentage-plus-static charge.
type Fee struct {
	Percentage decimal.Decimal `yaml:"percentage"`
	Static     decimal.Decimal `yaml:"static"`
}

// Rates holds the fee schedule applied to new orders.
type Rates struct {
	Currency     string          `yaml:"currency"`
	Shield       Fee             `yaml:"shield"`
	Bonus        Fee             `yaml:"bonus"`
	TableService Fee             `yaml:"table_service"`
	TableTax     decimal.Decimal `yaml:"table_tax"`
}

// DefaultRates is the stock fee schedule.
func DefaultRates() Rates {
	return Rates{
		Currency:     domain.DefaultCurrency,
		Shield:       Fee{Percentage: decimal.NewFromInt(4), Static: decimal.RequireFromString("0.50")},
		Bonus:        Fee{Percentage: decimal.NewFromInt(4), Static: decimal.RequireFromString("0.25")},
		TableService: Fee{Percentage: decimal.NewFromInt(10), Static: decimal.RequireFromString("5.00")},
		TableTax:     decimal.RequireFromString("8.25"),
	}
}

// InvoiceRequest describes the order being priced.
type InvoiceRequest struct {
	BasePrice decimal.Decimal
	AddOn     decimal.Decimal
	Tip       decimal.Decimal

	// EscrowDisabled orders are paid to the seller directly and carry no
	// shield or bonus lines.
	EscrowDisabled bool
	// TableOrder orders are sold in person and carry table service and tax
	// instead of shield and bonus.
	TableOrder bool
}

// Policy builds line items from Rates.
type Policy struct {
	rates Rates
	newID func() domain.LineID
}

// NewPolicy creates a Policy that assigns random line identities.
func NewPolicy(rates Rates) *Policy {
	return &Policy{
		rates: rates,
		newID: func() domain.LineID { return domain.LineID(uuid.NewString()) },
	}
}

// Rates returns the fee schedule in use.
func (p *Policy) Rates() Rates {
	return p.rates
}

func (p *Policy) money(d decimal.Decimal) domain.Money {
	return domain.NewMoney(d, p.rates.Currency)
}

func (p *Policy) line(t domain.LineType, amount decimal.Decimal, description string) domain.LineItem {
	return domain.LineItem{
		ID:          p.newID(),
		Type:        t,
		Priority:    t.DefaultPriority(),
		Amount:      p.money(amount),
		Description: description,
	}
}

func (p *Policy) fee(t domain.LineType, fee Fee, description string) domain.LineItem {
	l := p.line(t, fee.Static, description)
	l.Percentage = fee.Percentage
	l.CascadePercentage = true
	l.CascadeAmount = true
	return l
}

// Lines returns the line items for req.
func (p *Policy) Lines(req InvoiceRequest) []domain.LineItem {
	lines := []domain.LineItem{p.line(domain.LineBasePrice, req.BasePrice, "Base price")}

	if !req.AddOn.IsZero() {
		lines = append(lines, p.line(domain.LineAddOn, req.AddOn, "Add-on"))
	}
	if !req.Tip.IsZero() {
		lines = append(lines, p.line(domain.LineTip, req.Tip, "Tip"))
	}

	// Fees cascade onto the lines above; with nothing to carve from there is
	// nothing to charge.
	if req.BasePrice.Add(req.AddOn).Add(req.Tip).IsZero() {
		return lines
	}

	switch {
	case req.TableOrder:
		table := p.fee(domain.LineTableService, p.rates.TableService, "Table service")
		// The static part of table service is charged on top of the order.
		table.CascadeAmount = false

		tax := p.line(domain.LineTax, decimal.Zero, "Tax")
		tax.Percentage = p.rates.TableTax
		tax.CascadePercentage = true
		tax.CascadeAmount = true
		tax.BackIntoPercentage = true

		lines = append(lines, table, tax)
	case !req.EscrowDisabled:
		lines = append(lines,
			p.fee(domain.LineShield, p.rates.Shield, "Shield protection"),
			p.fee(domain.LineBonus, p.rates.Bonus, "Premium bonus"),
		)
	}

	return lines
}
