// AngelaMos | 2026
// service.go

package workshop

import (
	"context"

	"github.com/google/uuid"
)

const recentWindow = 10

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateWorkshopRequest,
) (*WorkshopResponse, error) {
	ws := &Workshop{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Capacity:     req.Capacity,
		Attendance:   req.Attendance,
		Date:         req.Date,
		InstructorID: req.InstructorID,
	}

	if err := s.repo.Create(ctx, ws); err != nil {
		return nil, err
	}

	resp := ToWorkshopResponse(ws)
	return &resp, nil
}

func (s *Service) Get(
	ctx context.Context,
	id string,
) (*WorkshopResponse, error) {
	ws, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToWorkshopResponse(ws)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateWorkshopRequest,
) (*WorkshopResponse, error) {
	ws, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		ws.Name = *req.Name
	}
	if req.Capacity != nil {
		ws.Capacity = *req.Capacity
	}
	if req.Attendance != nil {
		ws.Attendance = *req.Attendance
	}
	if req.Date != nil {
		ws.Date = *req.Date
	}
	if req.InstructorID != nil {
		ws.InstructorID = req.InstructorID
	}

	if err := s.repo.Update(ctx, ws); err != nil {
		return nil, err
	}

	resp := ToWorkshopResponse(ws)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Workshop, error) {
	return s.repo.List(ctx)
}

// ListRecent feeds the attendance and guest-count insight rules.
func (s *Service) ListRecent(ctx context.Context) ([]Workshop, error) {
	return s.repo.ListRecent(ctx, recentWindow)
}
