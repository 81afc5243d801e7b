package dto

import "time"

// ==================== COMMON RESPONSE DTOs ====================

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Invalid request"`
}

type HealthCheckResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp time.Time              `json:"timestamp" example:"2026-01-15T10:30:00Z"`
	Version   string                 `json:"version" example:"1.0.0"`
	Uptime    string                 `json:"uptime" example:"2h30m15s"`
	Details   map[string]interface{} `json:"details"`
}

// ==================== PAGINATION DTOs ====================

type PaginationRequest struct {
	Page  int `json:"page" query:"page" validate:"omitempty,min=1" example:"1"`
	Limit int `json:"limit" query:"limit" validate:"omitempty,min=1,max=100" example:"20"`
}

func (p PaginationRequest) Validate() error {
	return GetValidator().Struct(p)
}

// Normalize fills in the defaults used by the repositories.
func (p PaginationRequest) Normalize() PaginationRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

type PaginationResponse struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"20"`
	Total      int64 `json:"total" example:"100"`
	TotalPages int   `json:"totalPages" example:"5"`
	HasNext    bool  `json:"hasNext" example:"true"`
	HasPrev    bool  `json:"hasPrev" example:"false"`
}

func NewPaginationResponse(p PaginationRequest, total int64) PaginationResponse {
	p = p.Normalize()
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return PaginationResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}
