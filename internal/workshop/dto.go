// AngelaMos | 2026
// dto.go

package workshop

import (
	"time"
)

type CreateWorkshopRequest struct {
	Name         string    `json:"name"          validate:"required,min=1,max=200"`
	Capacity     int       `json:"capacity"      validate:"gte=0"`
	Attendance   int       `json:"attendance"    validate:"gte=0"`
	Date         time.Time `json:"date"          validate:"required"`
	InstructorID *string   `json:"instructor_id" validate:"omitempty,uuid"`
}

type UpdateWorkshopRequest struct {
	Name         *string    `json:"name"          validate:"omitempty,min=1,max=200"`
	Capacity     *int       `json:"capacity"      validate:"omitempty,gte=0"`
	Attendance   *int       `json:"attendance"    validate:"omitempty,gte=0"`
	Date         *time.Time `json:"date"`
	InstructorID *string    `json:"instructor_id" validate:"omitempty,uuid"`
}

type WorkshopResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	Attendance   int       `json:"attendance"`
	Date         time.Time `json:"date"`
	InstructorID *string   `json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToWorkshopResponse(ws *Workshop) WorkshopResponse {
	return WorkshopResponse{
		ID:           ws.ID,
		Name:         ws.Name,
		Capacity:     ws.Capacity,
		Attendance:   ws.Attendance,
		Date:         ws.Date,
		InstructorID: ws.InstructorID,
		CreatedAt:    ws.CreatedAt,
		UpdatedAt:    ws.UpdatedAt,
	}
}

func ToWorkshopResponseList(workshops []Workshop) []WorkshopResponse {
	responses := make([]WorkshopResponse, 0, len(workshops))
	for _, ws := range workshops {
		responses = append(responses, ToWorkshopResponse(&ws))
	}
	return responses
}
