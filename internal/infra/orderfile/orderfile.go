// Package orderfile reads order descriptions from YAML.
//
//	order: ORD-1001
//	currency: USD
//	lines:
//	  - id: base
//	    type: base_price
//	    amount: "15.00"
//	  - id: shield
//	    type: shield
//	    percentage: 4
//	    amount: "0.25"
//	    cascade_percentage: true
//	    cascade_amount: true
//
// A line without a priority takes its type's default priority.
package orderfile

import (
	"fmt"
	"os"
	"strings"

	"commission_go/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Order is a decoded order file.
type Order struct {
	ID       string
	Currency string
	Lines    []domain.LineItem
}

type fileLine struct {
	ID                 string          `yaml:"id"`
	Type               domain.LineType `yaml:"type"`
	Priority           *int            `yaml:"priority"`
	Percentage         decimal.Decimal `yaml:"percentage"`
	Amount             decimal.Decimal `yaml:"amount"`
	CascadePercentage  bool            `yaml:"cascade_percentage"`
	CascadeAmount      bool            `yaml:"cascade_amount"`
	BackIntoPercentage bool            `yaml:"back_into_percentage"`
	Description        string          `yaml:"description"`
}

type file struct {
	Order    string     `yaml:"order"`
	Currency string     `yaml:"currency"`
	Lines    []fileLine `yaml:"lines"`
}

// Load reads and parses the order file at path.
func Load(path string) (*Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes an order from YAML.
func Parse(data []byte) (*Order, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}

	currency := strings.ToUpper(f.Currency)
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	order := &Order{ID: f.Order, Currency: currency}
	for i, l := range f.Lines {
		if l.ID == "" {
			return nil, fmt.Errorf("line %d: missing id", i+1)
		}

		priority := l.Type.DefaultPriority()
		if l.Priority != nil {
			priority = *l.Priority
		}

		order.Lines = append(order.Lines, domain.LineItem{
			ID:                 domain.LineID(l.ID),
			Type:               l.Type,
			Priority:           priority,
			Percentage:         l.Percentage,
			Amount:             domain.NewMoney(l.Amount, currency),
			CascadePercentage:  l.CascadePercentage,
			CascadeAmount:      l.CascadeAmount,
			BackIntoPercentage: l.BackIntoPercentage,
			Description:        l.Description,
		})
	}

	return order, nil
}
