// AngelaMos | 2026
// aggregate_test.go

package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/workshop-tracker/internal/expense"
	"github.com/atelierlabs/workshop-tracker/internal/income"
)

func day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestMonthlyTrendBuckets(t *testing.T) {
	incomes := []income.Income{
		{Payment: 100, CreatedAt: day(2026, time.March, 3)},
		{Payment: 50, CreatedAt: day(2026, time.March, 20)},
		{Payment: 75, CreatedAt: day(2026, time.May, 1)},
	}
	expenses := []expense.Expense{
		{Cost: 30, CreatedAt: day(2026, time.March, 15)},
	}

	trend := MonthlyTrend(incomes, expenses)

	// Sparse: April has no rows, so only two buckets come back.
	require.Len(t, trend, 2)

	march := trend[0]
	require.Equal(t, "2026-03", march.Month)
	require.Equal(t, 150.0, march.Income)
	require.Equal(t, 30.0, march.Expenses)
	require.Equal(t, 120.0, march.Profit)
	require.Equal(t, 2, march.Transactions)

	may := trend[1]
	require.Equal(t, "2026-05", may.Month)
	require.Equal(t, 75.0, may.Income)
	require.Equal(t, 1, may.Transactions)
}

func TestMonthlyTrendExpenseOnlyMonth(t *testing.T) {
	trend := MonthlyTrend(nil, []expense.Expense{
		{Cost: 40, CreatedAt: day(2026, time.January, 2)},
	})

	require.Len(t, trend, 1)
	require.Equal(t, 0.0, trend[0].Income)
	require.Equal(t, 40.0, trend[0].Expenses)
	require.Equal(t, -40.0, trend[0].Profit)
	require.Zero(t, trend[0].Transactions)
}

func TestRecentTrendZeroFills(t *testing.T) {
	now := day(2026, time.June, 15)
	incomes := []income.Income{
		{Payment: 200, CreatedAt: day(2026, time.June, 1)},
		// Outside the six-month window, must be dropped.
		{Payment: 999, CreatedAt: day(2025, time.December, 31)},
	}

	trend := RecentTrend(incomes, nil, now)

	require.Len(t, trend, 6)
	require.Equal(t, "2026-01", trend[0].Month)
	require.Equal(t, "2026-06", trend[5].Month)

	for _, b := range trend[:5] {
		require.Zero(t, b.Income, "month %s", b.Month)
		require.Zero(t, b.Transactions, "month %s", b.Month)
	}
	require.Equal(t, 200.0, trend[5].Income)
	require.Equal(t, 1, trend[5].Transactions)
}

func TestCategoryDistribution(t *testing.T) {
	pottery := "ct-1"
	unknown := "ct-missing"
	incomes := []income.Income{
		{Payment: 100, ClassTypeID: &pottery},
		{Payment: 40, ClassTypeID: &pottery},
		{Payment: 60, ClassTypeID: nil},
		{Payment: 10, ClassTypeID: &unknown},
	}

	dist := CategoryDistribution(incomes, map[string]string{
		"ct-1": "Pottery",
	})

	require.Equal(t, []CategoryTotal{
		{Name: "Pottery", Total: 140},
		{Name: "Other", Total: 70},
	}, dist)
}

func TestCategoryDistributionTieBreak(t *testing.T) {
	a, b := "ct-a", "ct-b"
	dist := CategoryDistribution([]income.Income{
		{Payment: 50, ClassTypeID: &b},
		{Payment: 50, ClassTypeID: &a},
	}, map[string]string{"ct-a": "Ceramics", "ct-b": "Weaving"})

	require.Equal(t, "Ceramics", dist[0].Name)
	require.Equal(t, "Weaving", dist[1].Name)
}

func TestInstructorLeaderboard(t *testing.T) {
	incomes := []income.Income{
		{UserID: "u1", Payment: 100, GuestCount: 5},
		{UserID: "u2", Payment: 300, GuestCount: 8},
		{UserID: "u1", Payment: 50, GuestCount: 2},
	}

	board := InstructorLeaderboard(incomes, map[string]string{
		"u1": "Ana",
		"u2": "Bram",
	})

	require.Len(t, board, 2)
	require.Equal(t, "u2", board[0].UserID)
	require.Equal(t, "Bram", board[0].Name)
	require.Equal(t, 300.0, board[0].TotalIncome)
	require.Equal(t, 1, board[0].Workshops)
	require.Equal(t, 300.0, board[0].AvgPerWorkshop)

	require.Equal(t, "u1", board[1].UserID)
	require.Equal(t, 150.0, board[1].TotalIncome)
	require.Equal(t, 7, board[1].Participants)
	require.Equal(t, 75.0, board[1].AvgPerWorkshop)
}

func TestInstructorLeaderboardTopTen(t *testing.T) {
	var incomes []income.Income
	for i := 0; i < 12; i++ {
		incomes = append(incomes, income.Income{
			UserID:  string(rune('a' + i)),
			Payment: float64(i + 1),
		})
	}

	board := InstructorLeaderboard(incomes, nil)

	require.Len(t, board, 10)
	require.Equal(t, 12.0, board[0].TotalIncome)
	require.Equal(t, 3.0, board[9].TotalIncome)
}

func TestSummarizeEmptyWindow(t *testing.T) {
	s := Summarize(nil, nil)

	require.Zero(t, s.TotalIncome)
	require.Zero(t, s.AvgIncomePerWorkshop)
	require.Zero(t, s.ProfitMarginPercent)
}

func TestSummarize(t *testing.T) {
	incomes := []income.Income{
		{Payment: 300, GuestCount: 10},
		{Payment: 100, GuestCount: 4},
	}
	expenses := []expense.Expense{{Cost: 100}}

	s := Summarize(incomes, expenses)

	require.Equal(t, 400.0, s.TotalIncome)
	require.Equal(t, 100.0, s.TotalExpenses)
	require.Equal(t, 300.0, s.NetProfit)
	require.Equal(t, 2, s.WorkshopCount)
	require.Equal(t, 14, s.ParticipantCount)
	require.Equal(t, 200.0, s.AvgIncomePerWorkshop)
	require.Equal(t, 75.0, s.ProfitMarginPercent)
}
