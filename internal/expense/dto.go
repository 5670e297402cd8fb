// AngelaMos | 2026
// dto.go

package expense

import (
	"time"
)

type CreateExpenseRequest struct {
	Name      string     `json:"name"      validate:"required,min=1,max=200"`
	Cost      float64    `json:"cost"      validate:"required,gte=0"`
	Category  string     `json:"category"  validate:"omitempty,max=100"`
	WhoPaid   string     `json:"who_paid"  validate:"omitempty,max=100"`
	Month     string     `json:"month"     validate:"omitempty,len=7"`
	ClientID  *string    `json:"client_id" validate:"omitempty,uuid"`
	CreatedAt *time.Time `json:"created_at"`
}

type UpdateExpenseRequest struct {
	Name      *string    `json:"name"      validate:"omitempty,min=1,max=200"`
	Cost      *float64   `json:"cost"      validate:"omitempty,gte=0"`
	Category  *string    `json:"category"  validate:"omitempty,max=100"`
	WhoPaid   *string    `json:"who_paid"  validate:"omitempty,max=100"`
	Month     *string    `json:"month"     validate:"omitempty,len=7"`
	ClientID  *string    `json:"client_id" validate:"omitempty,uuid"`
	CreatedAt *time.Time `json:"created_at"`
}

type ExpenseResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Cost      float64   `json:"cost"`
	Category  string    `json:"category"`
	WhoPaid   string    `json:"who_paid"`
	Month     string    `json:"month"`
	ClientID  *string   `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListExpensesParams struct {
	Page     int
	PageSize int
	Year     int
	Month    time.Month
	Category string
	UserID   string
}

func (p *ListExpensesParams) Normalize() {
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

func (p *ListExpensesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToExpenseResponse(e *Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Name:      e.Name,
		Cost:      e.Cost,
		Category:  e.Category,
		WhoPaid:   e.WhoPaid,
		Month:     e.Month,
		ClientID:  e.ClientID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToExpenseResponseList(expenses []Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, ToExpenseResponse(&e))
	}
	return responses
}
