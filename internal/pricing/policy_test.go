package pricing

import (
	"testing"

	"commission_go/internal/domain"
	"commission_go/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byType(lines []domain.LineItem) map[domain.LineType]domain.LineItem {
	out := make(map[domain.LineType]domain.LineItem, len(lines))
	for _, l := range lines {
		out[l.Type] = l
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPolicy_EscrowOrder(t *testing.T) {
	policy := NewPolicy(DefaultRates())

	lines := policy.Lines(InvoiceRequest{BasePrice: dec("15.00")})
	require.Len(t, lines, 3)

	types := byType(lines)
	base := types[domain.LineBasePrice]
	assert.True(t, base.Amount.Equal(domain.MustParseMoney("15.00", "USD")))
	assert.True(t, base.Percentage.IsZero())
	assert.Equal(t, 0, base.Priority)

	shield := types[domain.LineShield]
	assert.True(t, shield.Percentage.Equal(dec("4")))
	assert.True(t, shield.Amount.Amount.Equal(dec("0.50")))
	assert.True(t, shield.CascadePercentage)
	assert.True(t, shield.CascadeAmount)

	bonus := types[domain.LineBonus]
	assert.True(t, bonus.CascadePercentage)
	assert.True(t, bonus.CascadeAmount)
	assert.Equal(t, shield.Priority, bonus.Priority)

	result, err := engine.Tabulate(lines)
	require.NoError(t, err)
	assert.Equal(t, "15.00", result.Total.Amount.StringFixed(2))
	assert.Equal(t, "13.05", result.TotalForTypes(domain.LineBasePrice).Amount.StringFixed(2))
}

func TestPolicy_EscrowDisabled(t *testing.T) {
	policy := NewPolicy(DefaultRates())

	lines := policy.Lines(InvoiceRequest{BasePrice: dec("15.00"), EscrowDisabled: true})
	require.Len(t, lines, 1)
	assert.Equal(t, domain.LineBasePrice, lines[0].Type)
}

func TestPolicy_AddOnAndTip(t *testing.T) {
	policy := NewPolicy(DefaultRates())

	lines := policy.Lines(InvoiceRequest{BasePrice: dec("10"), AddOn: dec("5"), Tip: dec("3"), EscrowDisabled: true})
	require.Len(t, lines, 3)

	types := byType(lines)
	assert.Equal(t, 100, types[domain.LineAddOn].Priority)
	assert.Equal(t, 200, types[domain.LineTip].Priority)

	total, err := engine.TotalOnly(lines)
	require.NoError(t, err)
	assert.Equal(t, "18.00", total.Amount.StringFixed(2))
}

func TestPolicy_TableOrder(t *testing.T) {
	rates := DefaultRates()
	rates.TableService = Fee{Percentage: dec("20"), Static: dec("2.00")}
	rates.TableTax = dec("8")
	policy := NewPolicy(rates)

	lines := policy.Lines(InvoiceRequest{BasePrice: dec("15.00"), TableOrder: true})
	require.Len(t, lines, 3)

	types := byType(lines)
	table := types[domain.LineTableService]
	assert.True(t, table.Percentage.Equal(dec("20")))
	assert.True(t, table.CascadePercentage)
	assert.False(t, table.CascadeAmount)
	assert.False(t, table.BackIntoPercentage)

	tax := types[domain.LineTax]
	assert.True(t, tax.Percentage.Equal(dec("8")))
	assert.True(t, tax.Amount.IsZero())
	assert.True(t, tax.BackIntoPercentage)
	assert.Greater(t, tax.Priority, table.Priority)

	_, hasShield := types[domain.LineShield]
	assert.False(t, hasShield, "table orders carry no shield line")

	result, err := engine.Tabulate(lines)
	require.NoError(t, err)
	assert.Equal(t, "17.00", result.Total.Amount.StringFixed(2))
	assert.Equal(t, "1.26", result.TotalForTypes(domain.LineTax).Amount.StringFixed(2))
}

func TestPolicy_UniqueIdentities(t *testing.T) {
	policy := NewPolicy(DefaultRates())
	lines := policy.Lines(InvoiceRequest{BasePrice: dec("10"), AddOn: dec("1"), Tip: dec("1")})

	seen := make(map[domain.LineID]bool)
	for _, l := range lines {
		assert.NotEmpty(t, l.ID)
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
}

func TestPolicy_ZeroOrderCarriesNoFees(t *testing.T) {
	policy := NewPolicy(DefaultRates())

	for _, req := range []InvoiceRequest{{}, {TableOrder: true}} {
		lines := policy.Lines(req)
		require.Len(t, lines, 1)
		assert.Equal(t, domain.LineBasePrice, lines[0].Type)

		total, err := engine.TotalOnly(lines)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	}
}
