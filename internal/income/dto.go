// AngelaMos | 2026
// dto.go

package income

import (
	"time"
)

type CreateIncomeRequest struct {
	Name        string     `json:"name"          validate:"required,min=1,max=200"`
	Payment     float64    `json:"payment"       validate:"required,gte=0"`
	Platform    string     `json:"platform"      validate:"omitempty,max=100"`
	GuestCount  int        `json:"guest_count"   validate:"gte=0"`
	ClassTypeID *string    `json:"class_type_id" validate:"omitempty,uuid"`
	ClientID    *string    `json:"client_id"     validate:"omitempty,uuid"`
	CreatedAt   *time.Time `json:"created_at"`
}

type UpdateIncomeRequest struct {
	Name        *string    `json:"name"          validate:"omitempty,min=1,max=200"`
	Payment     *float64   `json:"payment"       validate:"omitempty,gte=0"`
	Platform    *string    `json:"platform"      validate:"omitempty,max=100"`
	GuestCount  *int       `json:"guest_count"   validate:"omitempty,gte=0"`
	ClassTypeID *string    `json:"class_type_id" validate:"omitempty,uuid"`
	ClientID    *string    `json:"client_id"     validate:"omitempty,uuid"`
	CreatedAt   *time.Time `json:"created_at"`
}

type IncomeResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Payment     float64   `json:"payment"`
	Platform    string    `json:"platform"`
	GuestCount  int       `json:"guest_count"`
	ClassTypeID *string   `json:"class_type_id"`
	ClientID    *string   `json:"client_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListIncomesParams narrows the listing by time window (all rows, one
// year, or one month of a year) plus optional class type.
type ListIncomesParams struct {
	Page        int
	PageSize    int
	Year        int
	Month       time.Month
	ClassTypeID string
	UserID      string
}

func (p *ListIncomesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

func (p *ListIncomesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToIncomeResponse(i *Income) IncomeResponse {
	return IncomeResponse{
		ID:          i.ID,
		UserID:      i.UserID,
		Name:        i.Name,
		Payment:     i.Payment,
		Platform:    i.Platform,
		GuestCount:  i.GuestCount,
		ClassTypeID: i.ClassTypeID,
		ClientID:    i.ClientID,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func ToIncomeResponseList(incomes []Income) []IncomeResponse {
	responses := make([]IncomeResponse, 0, len(incomes))
	for _, i := range incomes {
		responses = append(responses, ToIncomeResponse(&i))
	}
	return responses
}
