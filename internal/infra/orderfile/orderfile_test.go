package orderfile

import (
	"os"
	"path/filepath"
	"testing"

	"commission_go/internal/domain"
	"commission_go/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
order: ORD-1001
currency: usd
lines:
  - id: base
    type: base_price
    amount: "15.00"
  - id: add_on
    type: add_on
    amount: 2
  - id: shield
    type: shield
    priority: 300
    percentage: 4
    amount: "0.25"
    cascade_percentage: true
    cascade_amount: true
    description: Shield protection
`

func TestParse(t *testing.T) {
	order, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "ORD-1001", order.ID)
	assert.Equal(t, "USD", order.Currency)
	require.Len(t, order.Lines, 3)

	base := order.Lines[0]
	assert.Equal(t, domain.LineBasePrice, base.Type)
	assert.Equal(t, 0, base.Priority)
	assert.True(t, base.Amount.Equal(domain.MustParseMoney("15", "USD")))

	addOn := order.Lines[1]
	assert.Equal(t, 100, addOn.Priority, "priority defaults from type")

	shield := order.Lines[2]
	assert.True(t, shield.Percentage.Equal(decimal.NewFromInt(4)))
	assert.True(t, shield.CascadePercentage)
	assert.True(t, shield.CascadeAmount)
	assert.Equal(t, "Shield protection", shield.Description)

	result, err := engine.Tabulate(order.Lines)
	require.NoError(t, err)
	assert.Equal(t, "17.00", result.Total.Amount.StringFixed(2))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("lines:\n  - type: tip\n    amount: 1\n"))
	assert.ErrorContains(t, err, "missing id")

	_, err = Parse([]byte("lines:\n  - id: x\n    type: surcharge\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("lines:\n  - id: x\n    amount: lots\n"))
	assert.Error(t, err)
}

func TestParse_DefaultCurrency(t *testing.T) {
	order, err := Parse([]byte("lines:\n  - id: base\n    amount: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCurrency, order.Currency)
	assert.Equal(t, domain.DefaultCurrency, order.Lines[0].Amount.Currency)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	order, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, order.Lines, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
