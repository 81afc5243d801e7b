package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/services/repositories"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AdminService struct {
	context.DefaultService

	db         *PostgresService
	users      *repositories.UserRepository
	billingSvc *BillingService
	notifier   Notifier
}

const ADMIN_SVC = "admin_svc"

func (svc AdminService) Id() string {
	return ADMIN_SVC
}

func (svc *AdminService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AdminService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.users = svc.db.Users()
	svc.billingSvc = svc.Service(BILLING_SVC).(*BillingService)
	svc.notifier = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

// ==================== USERS ====================

func (svc *AdminService) ListUsers(req dto.UserListRequest) (*dto.UserListResponse, error) {
	p := req.PaginationRequest.Normalize()
	users, total, err := svc.users.SearchUsers(req.Search, p.Page, p.Limit)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := &dto.UserListResponse{
		Users:      make([]dto.UserInfo, len(users)),
		Pagination: dto.NewPaginationResponse(p, total),
	}
	for i := range users {
		resp.Users[i] = mapUserToInfo(&users[i])
	}
	return resp, nil
}

// ==================== TEACHER REVIEW ====================

func (svc *AdminService) ListTeachers(req dto.TeacherListRequest) (*dto.TeacherListResponse, error) {
	p := req.PaginationRequest.Normalize()
	teachers, total, err := svc.users.ListTeachers(req.Status, p.Page, p.Limit)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := &dto.TeacherListResponse{
		Teachers:   make([]dto.UserInfo, len(teachers)),
		Pagination: dto.NewPaginationResponse(p, total),
	}
	for i := range teachers {
		resp.Teachers[i] = mapUserToInfo(&teachers[i])
	}
	return resp, nil
}

func (svc *AdminService) ApproveTeacher(userID string) (*dto.UserInfo, error) {
	user, err := svc.setTeacherStatus(userID, shared.TeacherStatusApproved, "")
	if err != nil {
		return nil, err
	}

	go func() {
		if err := svc.notifier.SendTeacherApprovedEmail(user.Email, user.Username); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Failed to send approval email")
		}
	}()

	info := mapUserToInfo(user)
	return &info, nil
}

func (svc *AdminService) RejectTeacher(userID string, req dto.RejectTeacherRequest) (*dto.UserInfo, error) {
	user, err := svc.setTeacherStatus(userID, shared.TeacherStatusRejected, req.Reason)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := svc.notifier.SendTeacherRejectedEmail(user.Email, user.Username, req.Reason); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Failed to send rejection email")
		}
	}()

	info := mapUserToInfo(user)
	return &info, nil
}

func (svc *AdminService) setTeacherStatus(userID, status, reason string) (*model.User, error) {
	err := svc.users.UpdateTeacherStatus(userID, status, reason)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError(err, "Teacher not found")
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	user, err := svc.users.GetUserByID(userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	log.WithFields(log.Fields{"user_id": userID, "status": status}).Info("Teacher status changed")
	return user, nil
}

// ==================== CREDITS ====================

func (svc *AdminService) GrantCredits(userID string, req dto.GrantCreditsRequest) (*dto.CreditsSummary, error) {
	if _, err := svc.users.GetUserByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, svc.db.HandleError(err)
	}
	return svc.billingSvc.Grant(userID, req.Amount, req.Note)
}

// ==================== PLATFORM STATS ====================

func (svc *AdminService) GetPlatformStats() (*dto.PlatformStatsResponse, error) {
	return collectPlatformStats(svc.db, time.Now())
}

// collectPlatformStats is shared with the scheduler's gauge refresh.
func collectPlatformStats(db *PostgresService, now time.Time) (*dto.PlatformStatsResponse, error) {
	stats := &dto.PlatformStatsResponse{}
	var err error

	if stats.Users, err = db.Users().CountByRole(); err != nil {
		return nil, db.HandleError(err)
	}

	_, pending, err := db.Users().ListTeachers(shared.TeacherStatusPending, 1, 1)
	if err != nil {
		return nil, db.HandleError(err)
	}
	stats.PendingTeachers = pending

	if stats.Courses, err = db.Content().CountCourses(); err != nil {
		return nil, db.HandleError(err)
	}
	if stats.Lessons, err = db.Content().CountLessons(false); err != nil {
		return nil, db.HandleError(err)
	}
	if stats.PublishedLessons, err = db.Content().CountLessons(true); err != nil {
		return nil, db.HandleError(err)
	}
	if stats.ActiveLearners7d, err = db.Progress().CountActiveSince(now.Add(-7 * 24 * time.Hour)); err != nil {
		return nil, db.HandleError(err)
	}
	if stats.AIGenerations24h, err = db.AILogs().CountSince(now.Add(-24 * time.Hour)); err != nil {
		return nil, db.HandleError(err)
	}
	if stats.CreditsConsumed, err = db.Billing().TotalConsumed(); err != nil {
		return nil, db.HandleError(err)
	}
	return stats, nil
}
