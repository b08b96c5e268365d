package domain

import "testing"

func TestLineType_RoundTrip(t *testing.T) {
	for lt := LineBasePrice; lt <= LineExtra; lt++ {
		parsed, err := ParseLineType(lt.String())
		if err != nil {
			t.Fatalf("ParseLineType(%q) failed: %v", lt.String(), err)
		}
		if parsed != lt {
			t.Errorf("Expected %v, got %v", lt, parsed)
		}
	}

	if _, err := ParseLineType("surcharge"); err == nil {
		t.Error("Expected error for unknown line type")
	}
}

func TestLineType_DefaultPriority(t *testing.T) {
	if LineShield.DefaultPriority() != LineBonus.DefaultPriority() {
		t.Error("Shield and bonus must share a priority so their percentages do not stack")
	}
	if LineBasePrice.DefaultPriority() >= LineAddOn.DefaultPriority() {
		t.Error("Base price must resolve before add-ons")
	}
	if LineTax.DefaultPriority() <= LineTableService.DefaultPriority() {
		t.Error("Tax must resolve after table service")
	}
}

func TestLineType_Text(t *testing.T) {
	var lt LineType
	if err := lt.UnmarshalText([]byte(" Table_Service ")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if lt != LineTableService {
		t.Errorf("Expected table_service, got %v", lt)
	}
	b, _ := LineTax.MarshalText()
	if string(b) != "tax" {
		t.Errorf("MarshalText = %q, want %q", b, "tax")
	}
}

func TestLineItem_Cascades(t *testing.T) {
	if (LineItem{}).Cascades() {
		t.Error("Plain line should not cascade")
	}
	if !(LineItem{CascadeAmount: true}).Cascades() {
		t.Error("Line with CascadeAmount should cascade")
	}
}
