// AngelaMos | 2026
// service.go

package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

// ReferenceChecker reports whether any row in another table still
// points at the client. Income and expense repositories both satisfy
// it.
type ReferenceChecker interface {
	ExistsByClientID(ctx context.Context, clientID string) (bool, error)
}

type Service struct {
	repo     Repository
	checkers []ReferenceChecker
}

func NewService(repo Repository, checkers ...ReferenceChecker) *Service {
	return &Service{repo: repo, checkers: checkers}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateClientRequest,
) (*ClientResponse, error) {
	client := &Client{
		ID:        uuid.New().String(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Address:   req.Address,
		Notes:     req.Notes,
		IsActive:  true,
		CreatedBy: userID,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

func (s *Service) Get(
	ctx context.Context,
	id string,
) (*ClientResponse, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateClientRequest,
) (*ClientResponse, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		client.FullName = *req.FullName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Company != nil {
		client.Company = *req.Company
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// Delete refuses to remove a client any income or expense row still
// references, so history never dangles.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	for _, checker := range s.checkers {
		referenced, err := checker.ExistsByClientID(ctx, id)
		if err != nil {
			return fmt.Errorf("check client references: %w", err)
		}
		if referenced {
			return core.ConflictError(
				"client has associated records",
				"CLIENT_IN_USE",
			)
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListClientsParams,
) ([]Client, int, error) {
	return s.repo.List(ctx, params)
}
