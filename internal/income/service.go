// AngelaMos | 2026
// service.go

package income

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
	req CreateIncomeRequest,
) (*IncomeResponse, error) {
	income := &Income{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        req.Name,
		Payment:     req.Payment,
		Platform:    req.Platform,
		GuestCount:  req.GuestCount,
		ClassTypeID: req.ClassTypeID,
		ClientID:    req.ClientID,
	}
	if req.CreatedAt != nil {
		income.CreatedAt = *req.CreatedAt
	}

	if err := s.repo.Create(ctx, income); err != nil {
		return nil, err
	}

	resp := ToIncomeResponse(income)
	return &resp, nil
}

func (s *Service) Get(
	ctx context.Context,
	callerID, callerRole, id string,
) (*IncomeResponse, error) {
	income, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeRow(callerID, callerRole, income.UserID); err != nil {
		return nil, err
	}

	resp := ToIncomeResponse(income)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	callerID, callerRole, id string,
	req UpdateIncomeRequest,
) (*IncomeResponse, error) {
	income, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeRow(callerID, callerRole, income.UserID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		income.Name = *req.Name
	}
	if req.Payment != nil {
		income.Payment = *req.Payment
	}
	if req.Platform != nil {
		income.Platform = *req.Platform
	}
	if req.GuestCount != nil {
		income.GuestCount = *req.GuestCount
	}
	if req.ClassTypeID != nil {
		income.ClassTypeID = req.ClassTypeID
	}
	if req.ClientID != nil {
		income.ClientID = req.ClientID
	}
	if req.CreatedAt != nil {
		income.CreatedAt = *req.CreatedAt
	}

	if err := s.repo.Update(ctx, income); err != nil {
		return nil, err
	}

	resp := ToIncomeResponse(income)
	return &resp, nil
}

func (s *Service) Delete(
	ctx context.Context,
	callerID, callerRole, id string,
) error {
	income, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeRow(callerID, callerRole, income.UserID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// List scopes non-admin callers to their own rows regardless of the
// requested filter.
func (s *Service) List(
	ctx context.Context,
	callerID, callerRole string,
	params ListIncomesParams,
) ([]Income, int, error) {
	if callerRole != middleware.RoleAdmin {
		params.UserID = callerID
	}

	return s.repo.List(ctx, params)
}

func (s *Service) ListInWindow(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]Income, error) {
	return s.repo.ListInWindow(ctx, userID, from, to)
}

func authorizeRow(callerID, callerRole, ownerID string) error {
	if callerID == ownerID || callerRole == middleware.RoleAdmin {
		return nil
	}
	return fmt.Errorf("authorize income: %w", core.ErrForbidden)
}
