// AngelaMos | 2026
// service.go

package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atelierlabs/workshop-tracker/internal/core"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateExpenseRequest,
) (*ExpenseResponse, error) {
	expense := &Expense{
		ID:       uuid.New().String(),
		UserID:   userID,
		Name:     req.Name,
		Cost:     req.Cost,
		Category: req.Category,
		WhoPaid:  req.WhoPaid,
		Month:    req.Month,
		ClientID: req.ClientID,
	}
	if req.CreatedAt != nil {
		expense.CreatedAt = *req.CreatedAt
	}
	if expense.Month == "" {
		bookedAt := expense.CreatedAt
		if bookedAt.IsZero() {
			bookedAt = time.Now()
		}
		expense.Month = bookedAt.Format("2006-01")
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

func (s *Service) Get(
	ctx context.Context,
	callerID, callerRole, id string,
) (*ExpenseResponse, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeRow(callerID, callerRole, expense.UserID); err != nil {
		return nil, err
	}

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	callerID, callerRole, id string,
	req UpdateExpenseRequest,
) (*ExpenseResponse, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeRow(callerID, callerRole, expense.UserID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		expense.Name = *req.Name
	}
	if req.Cost != nil {
		expense.Cost = *req.Cost
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.WhoPaid != nil {
		expense.WhoPaid = *req.WhoPaid
	}
	if req.Month != nil {
		expense.Month = *req.Month
	}
	if req.ClientID != nil {
		expense.ClientID = req.ClientID
	}
	if req.CreatedAt != nil {
		expense.CreatedAt = *req.CreatedAt
	}

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

func (s *Service) Delete(
	ctx context.Context,
	callerID, callerRole, id string,
) error {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeRow(callerID, callerRole, expense.UserID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	callerID, callerRole string,
	params ListExpensesParams,
) ([]Expense, int, error) {
	if callerRole != middleware.RoleAdmin {
		params.UserID = callerID
	}

	return s.repo.List(ctx, params)
}

func (s *Service) ListInWindow(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]Expense, error) {
	return s.repo.ListInWindow(ctx, userID, from, to)
}

func authorizeRow(callerID, callerRole, ownerID string) error {
	if callerID == ownerID || callerRole == middleware.RoleAdmin {
		return nil
	}
	return fmt.Errorf("authorize expense: %w", core.ErrForbidden)
}
