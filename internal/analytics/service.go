// AngelaMos | 2026
// service.go

package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/atelierlabs/workshop-tracker/internal/classtype"
	"github.com/atelierlabs/workshop-tracker/internal/expense"
	"github.com/atelierlabs/workshop-tracker/internal/income"
	"github.com/atelierlabs/workshop-tracker/internal/insights"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
	"github.com/atelierlabs/workshop-tracker/internal/workshop"
)

// ErrDataLoad marks a failure of one of the required fan-out fetches;
// the whole dashboard load is abandoned, never partially served.
var ErrDataLoad = errors.New("dashboard data load failed")

const summaryCacheTTL = 60 * time.Second

type IncomeSource interface {
	ListInWindow(
		ctx context.Context,
		userID string,
		from, to time.Time,
	) ([]income.Income, error)
}

type ExpenseSource interface {
	ListInWindow(
		ctx context.Context,
		userID string,
		from, to time.Time,
	) ([]expense.Expense, error)
}

type ClassTypeSource interface {
	List(ctx context.Context) ([]classtype.ClassType, error)
}

type WorkshopSource interface {
	ListRecent(ctx context.Context) ([]workshop.Workshop, error)
}

type InstructorSource interface {
	ListInstructorNames(ctx context.Context) (map[string]string, error)
}

type DashboardParams struct {
	Year         int
	Month        time.Month
	ClassTypeID  string
	InstructorID string
}

type DashboardResponse struct {
	Summary      Summary          `json:"summary"`
	MonthlyTrend []MonthlyBucket  `json:"monthly_trend"`
	RecentTrend  []MonthlyBucket  `json:"recent_trend"`
	Categories   []CategoryTotal  `json:"categories"`
	Instructors  []InstructorStat `json:"instructors,omitempty"`
	Insights     []insights.Card  `json:"insights"`
}

type Service struct {
	incomes     IncomeSource
	expenses    ExpenseSource
	classTypes  ClassTypeSource
	workshops   WorkshopSource
	instructors InstructorSource
	cache       *redis.Client
	now         func() time.Time
}

func NewService(
	incomes IncomeSource,
	expenses ExpenseSource,
	classTypes ClassTypeSource,
	workshops WorkshopSource,
	instructors InstructorSource,
	cache *redis.Client,
) *Service {
	return &Service{
		incomes:     incomes,
		expenses:    expenses,
		classTypes:  classTypes,
		workshops:   workshops,
		instructors: instructors,
		cache:       cache,
		now:         time.Now,
	}
}

// Dashboard fans out the fetches concurrently. Income and expense rows
// are required: either failing aborts the load. Class types, recent
// workshops, and instructor names are optional and degrade to empty.
func (s *Service) Dashboard(
	ctx context.Context,
	callerID, callerRole string,
	params DashboardParams,
) (*DashboardResponse, error) {
	scopeUserID := callerID
	if callerRole == middleware.RoleAdmin {
		scopeUserID = params.InstructorID
	}

	from, to := windowBounds(params.Year, params.Month)

	var (
		incomeRows      []income.Income
		expenseRows     []expense.Expense
		classTypes      []classtype.ClassType
		recentWorkshops []workshop.Workshop
		instructorNames map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.incomes.ListInWindow(gctx, scopeUserID, from, to)
		if err != nil {
			return fmt.Errorf("%w: incomes: %w", ErrDataLoad, err)
		}
		incomeRows = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.expenses.ListInWindow(gctx, scopeUserID, from, to)
		if err != nil {
			return fmt.Errorf("%w: expenses: %w", ErrDataLoad, err)
		}
		expenseRows = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.classTypes.List(gctx)
		if err != nil {
			slog.Debug("class type fetch failed", "error", err)
			return nil
		}
		classTypes = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.workshops.ListRecent(gctx)
		if err != nil {
			slog.Debug("workshop fetch failed", "error", err)
			return nil
		}
		recentWorkshops = rows
		return nil
	})

	if callerRole == middleware.RoleAdmin {
		g.Go(func() error {
			names, err := s.instructors.ListInstructorNames(gctx)
			if err != nil {
				slog.Debug("instructor name fetch failed", "error", err)
				return nil
			}
			instructorNames = names
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if params.ClassTypeID != "" {
		incomeRows = filterByClassType(incomeRows, params.ClassTypeID)
	}

	classTypeNames := make(map[string]string, len(classTypes))
	for _, ct := range classTypes {
		classTypeNames[ct.ID] = ct.Name
	}

	resp := &DashboardResponse{
		Summary:      s.summary(ctx, callerID, params, incomeRows, expenseRows),
		MonthlyTrend: MonthlyTrend(incomeRows, expenseRows),
		RecentTrend:  RecentTrend(incomeRows, expenseRows, s.now()),
		Categories:   CategoryDistribution(incomeRows, classTypeNames),
		Insights: insights.Generate(buildAggregates(
			incomeRows,
			expenseRows,
			recentWorkshops,
			s.now(),
		)),
	}

	if callerRole == middleware.RoleAdmin {
		resp.Instructors = InstructorLeaderboard(incomeRows, instructorNames)
	}

	return resp, nil
}

// summary serves the headline numbers from a short-lived redis cache
// keyed by caller and window. Cache trouble falls through to a fresh
// computation.
func (s *Service) summary(
	ctx context.Context,
	callerID string,
	params DashboardParams,
	incomeRows []income.Income,
	expenseRows []expense.Expense,
) Summary {
	key := fmt.Sprintf(
		"dashboard:summary:%s:%d-%02d:%s:%s",
		callerID,
		params.Year,
		int(params.Month),
		params.ClassTypeID,
		params.InstructorID,
	)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached Summary
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	summary := Summarize(incomeRows, expenseRows)

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(
				ctx,
				key,
				data,
				summaryCacheTTL,
			).Err(); err != nil {
				slog.Debug("summary cache write failed", "error", err)
			}
		}
	}

	return summary
}

// buildAggregates shapes the fetched rows into the generator's input.
// Current and prior month are relative to now, not the window filter.
func buildAggregates(
	incomeRows []income.Income,
	expenseRows []expense.Expense,
	recentWorkshops []workshop.Workshop,
	now time.Time,
) insights.Aggregates {
	// Step back from the first of the month, not from now: AddDate
	// normalizes day-of-month overflow, so May 31 minus one month
	// would land on May 1 and alias the prior key to the current one.
	monthStart := time.Date(
		now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC,
	)
	currentKey := monthStart.Format(monthKeyLayout)
	priorKey := monthStart.AddDate(0, -1, 0).Format(monthKeyLayout)

	var agg insights.Aggregates

	for _, row := range incomeRows {
		switch row.CreatedAt.Format(monthKeyLayout) {
		case currentKey:
			agg.CurrentMonthIncome += row.Payment
		case priorKey:
			agg.PriorMonthIncome += row.Payment
		}
		agg.Incomes = append(agg.Incomes, insights.IncomeRow{
			Name:       row.Name,
			Platform:   row.Platform,
			GuestCount: row.GuestCount,
		})
	}

	for _, row := range expenseRows {
		switch row.CreatedAt.Format(monthKeyLayout) {
		case currentKey:
			agg.CurrentMonthExpenses += row.Cost
		case priorKey:
			agg.PriorMonthExpenses += row.Cost
		}
	}

	for _, ws := range recentWorkshops {
		agg.RecentWorkshops = append(
			agg.RecentWorkshops,
			insights.WorkshopRow{
				Name:       ws.Name,
				Capacity:   ws.Capacity,
				Attendance: ws.Attendance,
			},
		)
	}

	return agg
}

func filterByClassType(
	rows []income.Income,
	classTypeID string,
) []income.Income {
	filtered := rows[:0:0]
	for _, row := range rows {
		if row.ClassTypeID != nil && *row.ClassTypeID == classTypeID {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func windowBounds(year int, month time.Month) (time.Time, time.Time) {
	if year == 0 {
		return time.Time{}, time.Time{}
	}

	if month != 0 {
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0)
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}
