// AngelaMos | 2026
// insights.go

package insights

import (
	"fmt"
)

const (
	TypePositive    = "positive"
	TypeWarning     = "warning"
	TypeInfo        = "info"
	TypeAchievement = "achievement"
	TypeSuggestion  = "suggestion"
)

const maxCards = 8

// unknownPlatform is the sentinel value the platform rule skips.
const unknownPlatform = "Unknown"

type Card struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

type IncomeRow struct {
	Name       string
	Platform   string
	GuestCount int
}

type WorkshopRow struct {
	Name       string
	Capacity   int
	Attendance int
}

// Aggregates is everything the generator looks at. Callers compute it
// from fetched rows; Generate itself does no I/O.
type Aggregates struct {
	CurrentMonthIncome   float64
	PriorMonthIncome     float64
	CurrentMonthExpenses float64
	PriorMonthExpenses   float64
	Incomes              []IncomeRow
	RecentWorkshops      []WorkshopRow
}

// Generate evaluates every rule in order and returns at most eight
// cards. Deterministic for identical input.
func Generate(a Aggregates) []Card {
	cards := make([]Card, 0, maxCards)

	if c := incomeChangeCard(a); c != nil {
		cards = append(cards, *c)
	}
	if c := expenseChangeCard(a); c != nil {
		cards = append(cards, *c)
	}
	if c := expenseRatioCard(a); c != nil {
		cards = append(cards, *c)
	}
	if c := attendanceCard(a); c != nil {
		cards = append(cards, *c)
	}
	if c := guestOutlierCard(a); c != nil {
		cards = append(cards, *c)
	}
	if c := milestoneCard(a); c != nil {
		cards = append(cards, *c)
	}
	if c := platformCard(a); c != nil {
		cards = append(cards, *c)
	}
	if c := profitMarginCard(a); c != nil {
		cards = append(cards, *c)
	}

	if len(cards) > maxCards {
		cards = cards[:maxCards]
	}

	return cards
}

// Rule 1: month-over-month income change, only when the prior month
// earned anything.
func incomeChangeCard(a Aggregates) *Card {
	if a.PriorMonthIncome <= 0 {
		return nil
	}

	change := (a.CurrentMonthIncome - a.PriorMonthIncome) /
		a.PriorMonthIncome * 100

	switch {
	case change > 10:
		return &Card{
			ID:    "income-growth",
			Type:  TypePositive,
			Title: "Income is growing",
			Message: fmt.Sprintf(
				"Your income is up %.1f%% compared to last month.",
				change,
			),
			Action: "View income",
		}
	case change < -10:
		return &Card{
			ID:    "income-decline",
			Type:  TypeWarning,
			Title: "Income dropped",
			Message: fmt.Sprintf(
				"Your income is down %.1f%% compared to last month.",
				-change,
			),
			Action: "View income",
		}
	default:
		return nil
	}
}

// Rule 2: expense spike, or the first month expenses show up at all.
func expenseChangeCard(a Aggregates) *Card {
	if a.PriorMonthExpenses == 0 {
		if a.CurrentMonthExpenses > 0 {
			return &Card{
				ID:      "expense-tracking-start",
				Type:    TypeInfo,
				Title:   "Expense tracking started",
				Message: "You logged your first expenses this month.",
				Action:  "View expenses",
			}
		}
		return nil
	}

	change := (a.CurrentMonthExpenses - a.PriorMonthExpenses) /
		a.PriorMonthExpenses * 100
	if change > 30 {
		return &Card{
			ID:    "expense-spike",
			Type:  TypeWarning,
			Title: "Expenses jumped",
			Message: fmt.Sprintf(
				"Your expenses rose %.1f%% compared to last month.",
				change,
			),
			Action: "View expenses",
		}
	}

	return nil
}

// Rule 3: expense-to-income ratio over 50% for the current month.
func expenseRatioCard(a Aggregates) *Card {
	if a.CurrentMonthIncome <= 0 || a.CurrentMonthExpenses <= 0 {
		return nil
	}

	ratio := a.CurrentMonthExpenses / a.CurrentMonthIncome * 100
	if ratio > 50 {
		return &Card{
			ID:    "expense-ratio",
			Type:  TypeWarning,
			Title: "High expense ratio",
			Message: fmt.Sprintf(
				"Expenses are eating %.1f%% of this month's income.",
				ratio,
			),
			Action: "Review costs",
		}
	}

	return nil
}

// Rule 4: first recent workshop filled past 90% of capacity.
func attendanceCard(a Aggregates) *Card {
	for _, ws := range a.RecentWorkshops {
		if ws.Capacity <= 0 || ws.Attendance <= 0 {
			continue
		}

		rate := float64(ws.Attendance) / float64(ws.Capacity) * 100
		if rate > 90 {
			return &Card{
				ID:    "attendance-high",
				Type:  TypeAchievement,
				Title: "Nearly sold out",
				Message: fmt.Sprintf(
					"%s filled %.1f%% of its seats.",
					ws.Name,
					rate,
				),
				Action: "View workshops",
			}
		}
	}

	return nil
}

// Rule 5: one workshop drew far more guests than the average.
func guestOutlierCard(a Aggregates) *Card {
	if len(a.Incomes) == 0 {
		return nil
	}

	var sum int
	top := a.Incomes[0]
	for _, row := range a.Incomes {
		sum += row.GuestCount
		if row.GuestCount > top.GuestCount {
			top = row
		}
	}

	mean := float64(sum) / float64(len(a.Incomes))
	if mean > 0 && float64(top.GuestCount) > 1.5*mean {
		return &Card{
			ID:    "popular-class",
			Type:  TypeSuggestion,
			Title: "A class stands out",
			Message: fmt.Sprintf(
				"%s drew %d guests, well above your average of %.1f. Consider running it more often.",
				top.Name,
				top.GuestCount,
				mean,
			),
			Action: "View income",
		}
	}

	return nil
}

// Rule 6: cumulative participant milestones, highest threshold wins.
func milestoneCard(a Aggregates) *Card {
	var total int
	for _, row := range a.Incomes {
		total += row.GuestCount
	}

	switch {
	case total > 1000:
		return &Card{
			ID:    "milestone-1000",
			Type:  TypeAchievement,
			Title: "1,000 participants",
			Message: fmt.Sprintf(
				"You have hosted %d participants all-time.",
				total,
			),
			Action: "View analytics",
		}
	case total > 500:
		return &Card{
			ID:    "milestone-500",
			Type:  TypeAchievement,
			Title: "500 participants",
			Message: fmt.Sprintf(
				"You have hosted %d participants all-time.",
				total,
			),
			Action: "View analytics",
		}
	case total > 100:
		return &Card{
			ID:    "milestone-100",
			Type:  TypePositive,
			Title: "100 participants",
			Message: fmt.Sprintf(
				"You have hosted %d participants all-time.",
				total,
			),
			Action: "View analytics",
		}
	default:
		return nil
	}
}

// Rule 7: most-used booking platform, ties broken by first appearance.
func platformCard(a Aggregates) *Card {
	counts := make(map[string]int)
	var order []string

	for _, row := range a.Incomes {
		platform := row.Platform
		if platform == "" {
			platform = unknownPlatform
		}
		if _, seen := counts[platform]; !seen {
			order = append(order, platform)
		}
		counts[platform]++
	}

	var mode string
	var best int
	for _, platform := range order {
		if counts[platform] > best {
			mode = platform
			best = counts[platform]
		}
	}

	if mode == "" || mode == unknownPlatform {
		return nil
	}

	return &Card{
		ID:    "platform-top",
		Type:  TypeInfo,
		Title: "Top booking source",
		Message: fmt.Sprintf(
			"%s brings in most of your bookings (%d).",
			mode,
			best,
		),
		Action: "View income",
	}
}

// Rule 8: current-month profit margin extremes.
func profitMarginCard(a Aggregates) *Card {
	if a.CurrentMonthIncome <= 0 || a.CurrentMonthExpenses <= 0 {
		return nil
	}

	margin := (a.CurrentMonthIncome - a.CurrentMonthExpenses) /
		a.CurrentMonthIncome * 100

	switch {
	case margin > 70:
		return &Card{
			ID:    "margin-high",
			Type:  TypePositive,
			Title: "Healthy margin",
			Message: fmt.Sprintf(
				"Your profit margin is %.1f%% this month.",
				margin,
			),
			Action: "View analytics",
		}
	case margin < 20:
		return &Card{
			ID:    "margin-low",
			Type:  TypeWarning,
			Title: "Thin margin",
			Message: fmt.Sprintf(
				"Your profit margin is only %.1f%% this month.",
				margin,
			),
			Action: "Review costs",
		}
	default:
		return nil
	}
}
