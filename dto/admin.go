package dto

// ==================== ADMIN DTOs ====================

type TeacherListRequest struct {
	PaginationRequest
	Status string `json:"status" query:"status" validate:"omitempty,oneof=pending approved rejected" example:"pending"`
}

func (r TeacherListRequest) Validate() error {
	return GetValidator().Struct(r)
}

type TeacherListResponse struct {
	Teachers   []UserInfo         `json:"teachers"`
	Pagination PaginationResponse `json:"pagination"`
}

type RejectTeacherRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500" example:"Please provide teaching credentials"`
}

func (r RejectTeacherRequest) Validate() error {
	return GetValidator().Struct(r)
}

type GrantCreditsRequest struct {
	Amount int    `json:"amount" validate:"required,min=1,max=10000" example:"20"`
	Note   string `json:"note" validate:"omitempty,max=200" example:"classroom pilot"`
}

func (r GrantCreditsRequest) Validate() error {
	return GetValidator().Struct(r)
}

type PlatformStatsResponse struct {
	Users            map[string]int64 `json:"users"`
	PendingTeachers  int64            `json:"pendingTeachers" example:"2"`
	Courses          int64            `json:"courses" example:"14"`
	Lessons          int64            `json:"lessons" example:"120"`
	PublishedLessons int64            `json:"publishedLessons" example:"96"`
	ActiveLearners7d int64            `json:"activeLearners7d" example:"40"`
	AIGenerations24h int64            `json:"aiGenerations24h" example:"9"`
	CreditsConsumed  int64            `json:"creditsConsumed" example:"310"`
}

type UserListRequest struct {
	PaginationRequest
	Search string `json:"search" query:"search" validate:"omitempty,max=100" example:"jane"`
}

func (r UserListRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UserListResponse struct {
	Users      []UserInfo         `json:"users"`
	Pagination PaginationResponse `json:"pagination"`
}
