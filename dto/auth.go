package dto

import "time"

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum" example:"johndoe"`
	Password string `json:"password" validate:"required,strong_password" example:"SecurePass123!"`
	FullName string `json:"fullName" validate:"omitempty,max=100" example:"John Doe"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher" example:"student"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required,email_or_username" example:"user@example.com"`
	Password        string `json:"password" validate:"required" example:"SecurePass123!"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type RegisterResponse struct {
	User    UserInfo `json:"user"`
	Message string   `json:"message" example:"Registration successful"`
}

type LoginResponse struct {
	AccessToken string   `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn   int64    `json:"expiresIn" example:"86400"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	ID              string     `json:"id" example:"0190f0c2-7e51-7a4b-9c1e-3f1d2c4b5a69"`
	Username        string     `json:"username" example:"johndoe"`
	Email           string     `json:"email" example:"user@example.com"`
	FullName        string     `json:"fullName" example:"John Doe"`
	Role            string     `json:"role" example:"student"`
	TeacherStatus   string     `json:"teacherStatus" example:"none"`
	RejectionReason string     `json:"rejectionReason,omitempty" example:""`
	CreatedAt       time.Time  `json:"createdAt" example:"2026-01-01T00:00:00Z"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" example:"2026-01-15T10:30:00Z"`
}

// ==================== USER PROFILE DTOs ====================

type UserProfileResponse struct {
	User     UserInfo        `json:"user"`
	Progress ProgressSummary `json:"progress"`
	Credits  *CreditsSummary `json:"credits,omitempty"`
}
