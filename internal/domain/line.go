package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LineID identifies a line item within one tabulation.
type LineID string

// LineType tags what a line item represents. The tabulation engine treats it
// as opaque metadata; only display, policy and ledger code look at it.
type LineType int

const (
	LineBasePrice LineType = iota
	LineAddOn
	LineShield
	LineBonus
	LineTip
	LineTableService
	LineTax
	LineExtra
)

var lineTypeNames = map[LineType]string{
	LineBasePrice:    "base_price",
	LineAddOn:        "add_on",
	LineShield:       "shield",
	LineBonus:        "bonus",
	LineTip:          "tip",
	LineTableService: "table_service",
	LineTax:          "tax",
	LineExtra:        "extra",
}

// defaultPriorities is the priority each line type is created with.
var defaultPriorities = map[LineType]int{
	LineBasePrice:    0,
	LineAddOn:        100,
	LineTip:          200,
	LineShield:       300,
	LineBonus:        300,
	LineTableService: 300,
	LineExtra:        400,
	LineTax:          600,
}

func (t LineType) String() string {
	if name, ok := lineTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("line_type(%d)", int(t))
}

// DefaultPriority returns the priority a line of this type normally carries.
func (t LineType) DefaultPriority() int {
	return defaultPriorities[t]
}

// ParseLineType accepts the snake_case names returned by String.
func ParseLineType(s string) (LineType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range lineTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown line type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t LineType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *LineType) UnmarshalText(b []byte) error {
	parsed, err := ParseLineType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// LineItem is one priced component of an order. It is immutable for the
// duration of a tabulation.
type LineItem struct {
	ID       LineID
	Type     LineType
	Priority int

	// Percentage is applied to the running total of all lower priorities.
	// Zero means the line has no percentage term.
	Percentage decimal.Decimal
	// Amount is the static term. It may be zero or negative.
	Amount Money

	// CascadePercentage carves the percentage term out of lower-priority
	// lines instead of adding it to the total. CascadeAmount does the same
	// for the static term.
	CascadePercentage bool
	CascadeAmount     bool

	// BackIntoPercentage treats the running total as already containing the
	// percentage (tax-inclusive pricing).
	BackIntoPercentage bool

	Description string
}

// Cascades reports whether any part of the line is carved out of earlier lines.
func (l LineItem) Cascades() bool {
	return l.CascadePercentage || l.CascadeAmount
}
