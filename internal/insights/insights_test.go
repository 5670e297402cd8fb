// AngelaMos | 2026
// insights_test.go

package insights

import (
	"strings"
	"testing"
)

func findCard(cards []Card, id string) *Card {
	for i := range cards {
		if cards[i].ID == id {
			return &cards[i]
		}
	}
	return nil
}

func TestIncomeChangeRule(t *testing.T) {
	tests := []struct {
		name        string
		prior       float64
		current     float64
		wantID      string
		wantType    string
		wantMessage string
	}{
		{
			name:        "growth above threshold",
			prior:       1000,
			current:     1150,
			wantID:      "income-growth",
			wantType:    TypePositive,
			wantMessage: "15.0%",
		},
		{
			name:        "decline below threshold",
			prior:       1000,
			current:     850,
			wantID:      "income-decline",
			wantType:    TypeWarning,
			wantMessage: "15.0%",
		},
		{
			name:    "small change produces nothing",
			prior:   1000,
			current: 1050,
		},
		{
			name:    "zero prior month is skipped",
			prior:   0,
			current: 5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := Generate(Aggregates{
				PriorMonthIncome:   tt.prior,
				CurrentMonthIncome: tt.current,
			})

			growth := findCard(cards, "income-growth")
			decline := findCard(cards, "income-decline")

			if tt.wantID == "" {
				if growth != nil || decline != nil {
					t.Fatalf("expected no income card, got %+v", cards)
				}
				return
			}

			card := findCard(cards, tt.wantID)
			if card == nil {
				t.Fatalf("expected card %q, got %+v", tt.wantID, cards)
			}
			if card.Type != tt.wantType {
				t.Errorf("card type = %q, want %q", card.Type, tt.wantType)
			}
			if !strings.Contains(card.Message, tt.wantMessage) {
				t.Errorf(
					"message %q does not contain %q",
					card.Message,
					tt.wantMessage,
				)
			}
		})
	}
}

func TestExpenseChangeRule(t *testing.T) {
	cards := Generate(Aggregates{
		PriorMonthExpenses:   100,
		CurrentMonthExpenses: 140,
	})
	if findCard(cards, "expense-spike") == nil {
		t.Fatalf("expected expense-spike card, got %+v", cards)
	}

	cards = Generate(Aggregates{
		PriorMonthExpenses:   0,
		CurrentMonthExpenses: 50,
	})
	if findCard(cards, "expense-tracking-start") == nil {
		t.Fatalf("expected expense-tracking-start card, got %+v", cards)
	}

	cards = Generate(Aggregates{
		PriorMonthExpenses:   100,
		CurrentMonthExpenses: 120,
	})
	if findCard(cards, "expense-spike") != nil {
		t.Fatalf("20%% rise should not trigger a spike card")
	}
}

func TestMilestoneHighestWins(t *testing.T) {
	agg := Aggregates{
		Incomes: []IncomeRow{
			{Name: "a", GuestCount: 400},
			{Name: "b", GuestCount: 400},
			{Name: "c", GuestCount: 400},
		},
	}

	cards := Generate(agg)

	if findCard(cards, "milestone-1000") == nil {
		t.Fatalf("expected milestone-1000 card, got %+v", cards)
	}
	if findCard(cards, "milestone-500") != nil ||
		findCard(cards, "milestone-100") != nil {
		t.Fatalf("lower milestones must not fire alongside the highest")
	}
}

func TestAttendanceRule(t *testing.T) {
	cards := Generate(Aggregates{
		RecentWorkshops: []WorkshopRow{
			{Name: "Half full", Capacity: 20, Attendance: 10},
			{Name: "Packed pottery", Capacity: 20, Attendance: 19},
		},
	})

	card := findCard(cards, "attendance-high")
	if card == nil {
		t.Fatalf("expected attendance card, got %+v", cards)
	}
	if !strings.Contains(card.Message, "Packed pottery") {
		t.Errorf("message should name the first qualifying workshop: %q",
			card.Message)
	}

	cards = Generate(Aggregates{
		RecentWorkshops: []WorkshopRow{
			{Name: "No capacity", Capacity: 0, Attendance: 50},
		},
	})
	if findCard(cards, "attendance-high") != nil {
		t.Fatalf("rows without capacity must be ignored")
	}
}

func TestGuestOutlierRule(t *testing.T) {
	cards := Generate(Aggregates{
		Incomes: []IncomeRow{
			{Name: "Quiet class", GuestCount: 4},
			{Name: "Quiet class", GuestCount: 4},
			{Name: "Big workshop", GuestCount: 20},
		},
	})

	card := findCard(cards, "popular-class")
	if card == nil {
		t.Fatalf("expected outlier card, got %+v", cards)
	}
	if !strings.Contains(card.Message, "Big workshop") {
		t.Errorf("message should name the outlier row: %q", card.Message)
	}

	cards = Generate(Aggregates{
		Incomes: []IncomeRow{
			{Name: "a", GuestCount: 10},
			{Name: "b", GuestCount: 10},
		},
	})
	if findCard(cards, "popular-class") != nil {
		t.Fatalf("uniform guest counts are not outliers")
	}
}

func TestPlatformRule(t *testing.T) {
	cards := Generate(Aggregates{
		Incomes: []IncomeRow{
			{Name: "a", Platform: "Airbnb", GuestCount: 1},
			{Name: "b", Platform: "Airbnb", GuestCount: 1},
			{Name: "c", Platform: "Direct", GuestCount: 1},
		},
	})

	card := findCard(cards, "platform-top")
	if card == nil {
		t.Fatalf("expected platform card, got %+v", cards)
	}
	if !strings.Contains(card.Message, "Airbnb") {
		t.Errorf("message should name the mode: %q", card.Message)
	}

	cards = Generate(Aggregates{
		Incomes: []IncomeRow{
			{Name: "a", Platform: "", GuestCount: 1},
			{Name: "b", Platform: "", GuestCount: 1},
		},
	})
	if findCard(cards, "platform-top") != nil {
		t.Fatalf("the Unknown sentinel must never be announced")
	}
}

func TestProfitMarginRule(t *testing.T) {
	cards := Generate(Aggregates{
		CurrentMonthIncome:   1000,
		CurrentMonthExpenses: 100,
	})
	if findCard(cards, "margin-high") == nil {
		t.Fatalf("expected high margin card, got %+v", cards)
	}

	cards = Generate(Aggregates{
		CurrentMonthIncome:   1000,
		CurrentMonthExpenses: 900,
	})
	if findCard(cards, "margin-low") == nil {
		t.Fatalf("expected low margin card, got %+v", cards)
	}

	cards = Generate(Aggregates{
		CurrentMonthIncome:   1000,
		CurrentMonthExpenses: 500,
	})
	if findCard(cards, "margin-high") != nil ||
		findCard(cards, "margin-low") != nil {
		t.Fatalf("a 50%% margin triggers neither card")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	agg := Aggregates{
		CurrentMonthIncome:   1150,
		PriorMonthIncome:     1000,
		CurrentMonthExpenses: 700,
		PriorMonthExpenses:   400,
		Incomes: []IncomeRow{
			{Name: "a", Platform: "Direct", GuestCount: 60},
			{Name: "b", Platform: "Direct", GuestCount: 50},
		},
	}

	first := Generate(agg)
	second := Generate(agg)

	if len(first) != len(second) {
		t.Fatalf("card counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("card %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	if len(first) > 8 {
		t.Errorf("card list exceeds cap: %d", len(first))
	}
}
