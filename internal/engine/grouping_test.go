package engine

import (
	"testing"

	"commission_go/internal/domain"
)

func TestGroupByPriority(t *testing.T) {
	lines := []domain.LineItem{
		plainLine("shield", 300, "0"),
		plainLine("base", 0, "15"),
		plainLine("add_on", 100, "2"),
		plainLine("bonus", 300, "0"),
		plainLine("discount", 0, "-1"),
	}

	groups := GroupByPriority(lines)

	wantPriorities := []int{0, 100, 300}
	if len(groups) != len(wantPriorities) {
		t.Fatalf("Expected %d groups, got %d", len(wantPriorities), len(groups))
	}
	for i, p := range wantPriorities {
		if groups[i].Priority != p {
			t.Errorf("Group %d: expected priority %d, got %d", i, p, groups[i].Priority)
		}
	}

	t.Run("Stable within priority", func(t *testing.T) {
		if groups[0].Lines[0].ID != "base" || groups[0].Lines[1].ID != "discount" {
			t.Errorf("Expected [base discount], got [%s %s]", groups[0].Lines[0].ID, groups[0].Lines[1].ID)
		}
		if groups[2].Lines[0].ID != "shield" || groups[2].Lines[1].ID != "bonus" {
			t.Errorf("Expected [shield bonus], got [%s %s]", groups[2].Lines[0].ID, groups[2].Lines[1].ID)
		}
	})

	t.Run("Empty input", func(t *testing.T) {
		if got := GroupByPriority(nil); len(got) != 0 {
			t.Errorf("Expected no groups, got %d", len(got))
		}
	})

	t.Run("Negative priorities sort first", func(t *testing.T) {
		got := GroupByPriority([]domain.LineItem{plainLine("a", 5, "1"), plainLine("b", -5, "1")})
		if got[0].Priority != -5 {
			t.Errorf("Expected -5 first, got %d", got[0].Priority)
		}
	})
}
