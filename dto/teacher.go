package dto

import "time"

// ==================== TEACHER DTOs ====================

type LinkStudentRequest struct {
	Email string `json:"email" validate:"required,email" example:"student@example.com"`
}

func (r LinkStudentRequest) Validate() error {
	return GetValidator().Struct(r)
}

type StudentSummary struct {
	ID       string          `json:"id"`
	Username string          `json:"username" example:"janedoe"`
	Email    string          `json:"email" example:"student@example.com"`
	FullName string          `json:"fullName" example:"Jane Doe"`
	LinkedAt time.Time       `json:"linkedAt"`
	Progress ProgressSummary `json:"progress"`
}

type StudentListResponse struct {
	Students []StudentSummary `json:"students"`
	Total    int              `json:"total" example:"12"`
}

type StudentProgressResponse struct {
	Student      UserInfo             `json:"student"`
	Stats        StatsResponse        `json:"stats"`
	Achievements AchievementsResponse `json:"achievements"`
}
