// AngelaMos | 2026
// dto.go

package client

import (
	"time"
)

type CreateClientRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Email    string `json:"email"     validate:"omitempty,email,max=255"`
	Phone    string `json:"phone"     validate:"omitempty,max=30"`
	Company  string `json:"company"   validate:"omitempty,max=100"`
	Address  string `json:"address"   validate:"omitempty,max=500"`
	Notes    string `json:"notes"     validate:"omitempty,max=2000"`
}

type UpdateClientRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email,max=255"`
	Phone    *string `json:"phone"     validate:"omitempty,max=30"`
	Company  *string `json:"company"   validate:"omitempty,max=100"`
	Address  *string `json:"address"   validate:"omitempty,max=500"`
	Notes    *string `json:"notes"     validate:"omitempty,max=2000"`
	IsActive *bool   `json:"is_active"`
}

type ClientResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Company       string    `json:"company"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	TotalSpent    float64   `json:"total_spent"`
	TotalSessions int       `json:"total_sessions"`
	IsActive      bool      `json:"is_active"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListClientsParams struct {
	Page      int
	PageSize  int
	Search    string
	Active    *bool
	CreatedBy string
}

func (p *ListClientsParams) Normalize() {
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

func (p *ListClientsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToClientResponse(c *Client) ClientResponse {
	return ClientResponse{
		ID:            c.ID,
		FullName:      c.FullName,
		Email:         c.Email,
		Phone:         c.Phone,
		Company:       c.Company,
		Address:       c.Address,
		Notes:         c.Notes,
		TotalSpent:    c.TotalSpent,
		TotalSessions: c.TotalSessions,
		IsActive:      c.IsActive,
		CreatedBy:     c.CreatedBy,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ToClientResponseList(clients []Client) []ClientResponse {
	responses := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, ToClientResponse(&c))
	}
	return responses
}
