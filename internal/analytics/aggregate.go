// AngelaMos | 2026
// aggregate.go

package analytics

import (
	"sort"
	"time"

	"github.com/atelierlabs/workshop-tracker/internal/expense"
	"github.com/atelierlabs/workshop-tracker/internal/income"
)

const monthKeyLayout = "2006-01"

type MonthlyBucket struct {
	Month        string  `json:"month"`
	Income       float64 `json:"income"`
	Expenses     float64 `json:"expenses"`
	Profit       float64 `json:"profit"`
	Transactions int     `json:"transactions"`
}

type CategoryTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type InstructorStat struct {
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	TotalIncome    float64 `json:"total_income"`
	Participants   int     `json:"participants"`
	Workshops      int     `json:"workshops"`
	AvgPerWorkshop float64 `json:"avg_per_workshop"`
}

type Summary struct {
	TotalIncome          float64 `json:"total_income"`
	TotalExpenses        float64 `json:"total_expenses"`
	NetProfit            float64 `json:"net_profit"`
	WorkshopCount        int     `json:"workshop_count"`
	ParticipantCount     int     `json:"participant_count"`
	AvgIncomePerWorkshop float64 `json:"avg_income_per_workshop"`
	ProfitMarginPercent  float64 `json:"profit_margin_percent"`
}

// MonthlyTrend buckets rows by YYYY-MM, ascending. Only months with at
// least one row appear; the transaction count covers income rows only.
func MonthlyTrend(
	incomes []income.Income,
	expenses []expense.Expense,
) []MonthlyBucket {
	buckets := make(map[string]*MonthlyBucket)

	bucketFor := func(key string) *MonthlyBucket {
		if b, ok := buckets[key]; ok {
			return b
		}
		b := &MonthlyBucket{Month: key}
		buckets[key] = b
		return b
	}

	for _, row := range incomes {
		b := bucketFor(row.CreatedAt.Format(monthKeyLayout))
		b.Income += row.Payment
		b.Transactions++
	}

	for _, row := range expenses {
		b := bucketFor(row.CreatedAt.Format(monthKeyLayout))
		b.Expenses += row.Cost
	}

	result := make([]MonthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		b.Profit = b.Income - b.Expenses
		result = append(result, *b)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})

	return result
}

// RecentTrend is the zero-filled six month window ending at now, for
// the mini chart. Months without rows still appear with zero values,
// unlike MonthlyTrend.
func RecentTrend(
	incomes []income.Income,
	expenses []expense.Expense,
	now time.Time,
) []MonthlyBucket {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -5, 0)

	result := make([]MonthlyBucket, 6)
	index := make(map[string]int, 6)
	for i := range result {
		key := start.AddDate(0, i, 0).Format(monthKeyLayout)
		result[i] = MonthlyBucket{Month: key}
		index[key] = i
	}

	for _, row := range incomes {
		if i, ok := index[row.CreatedAt.Format(monthKeyLayout)]; ok {
			result[i].Income += row.Payment
			result[i].Transactions++
		}
	}

	for _, row := range expenses {
		if i, ok := index[row.CreatedAt.Format(monthKeyLayout)]; ok {
			result[i].Expenses += row.Cost
		}
	}

	for i := range result {
		result[i].Profit = result[i].Income - result[i].Expenses
	}

	return result
}

// CategoryDistribution sums payments per class-type name, descending.
// Rows without a class type fall into "Other".
func CategoryDistribution(
	incomes []income.Income,
	classTypeNames map[string]string,
) []CategoryTotal {
	totals := make(map[string]float64)

	for _, row := range incomes {
		name := "Other"
		if row.ClassTypeID != nil {
			if n, ok := classTypeNames[*row.ClassTypeID]; ok && n != "" {
				name = n
			}
		}
		totals[name] += row.Payment
	}

	result := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		result = append(result, CategoryTotal{Name: name, Total: total})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// InstructorLeaderboard groups income by owning user and returns the
// top ten earners.
func InstructorLeaderboard(
	incomes []income.Income,
	instructorNames map[string]string,
) []InstructorStat {
	stats := make(map[string]*InstructorStat)
	var order []string

	for _, row := range incomes {
		s, ok := stats[row.UserID]
		if !ok {
			s = &InstructorStat{
				UserID: row.UserID,
				Name:   instructorNames[row.UserID],
			}
			stats[row.UserID] = s
			order = append(order, row.UserID)
		}
		s.TotalIncome += row.Payment
		s.Participants += row.GuestCount
		s.Workshops++
	}

	result := make([]InstructorStat, 0, len(stats))
	for _, id := range order {
		s := stats[id]
		if s.Workshops > 0 {
			s.AvgPerWorkshop = s.TotalIncome / float64(s.Workshops)
		}
		result = append(result, *s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalIncome > result[j].TotalIncome
	})

	if len(result) > 10 {
		result = result[:10]
	}

	return result
}

// Summarize reduces the window to headline numbers. Every division is
// guarded so an empty window yields zeros rather than NaN.
func Summarize(
	incomes []income.Income,
	expenses []expense.Expense,
) Summary {
	var s Summary

	for _, row := range incomes {
		s.TotalIncome += row.Payment
		s.ParticipantCount += row.GuestCount
	}
	s.WorkshopCount = len(incomes)

	for _, row := range expenses {
		s.TotalExpenses += row.Cost
	}

	s.NetProfit = s.TotalIncome - s.TotalExpenses

	if s.WorkshopCount > 0 {
		s.AvgIncomePerWorkshop = s.TotalIncome / float64(s.WorkshopCount)
	}
	if s.TotalIncome > 0 {
		s.ProfitMarginPercent = s.NetProfit / s.TotalIncome * 100
	}

	return s
}
