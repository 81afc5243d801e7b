// services/user.go
package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/services/repositories"
	"github.com/lac-hong-legacy/english_api/shared"
	"gorm.io/gorm"
)

type UserService struct {
	context.DefaultService

	db          *PostgresService
	users       *repositories.UserRepository
	progressSvc *ProgressService
	billingSvc  *BillingService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.users = svc.db.Users()
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.billingSvc = svc.Service(BILLING_SVC).(*BillingService)
	return nil
}

func (svc *UserService) getUser(userID string) (*model.User, error) {
	user, err := svc.users.GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError(err, "User not found")
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	return user, nil
}

func (svc *UserService) GetUserProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := svc.getUser(userID)
	if err != nil {
		return nil, err
	}

	record, err := svc.progressSvc.EnsureProgress(userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserProfileResponse{
		User:     mapUserToInfo(user),
		Progress: svc.progressSvc.Summary(record),
	}

	// Credits only matter to accounts that can generate content.
	if user.Role != shared.RoleStudent {
		credits, err := svc.billingSvc.Summary(userID)
		if err != nil {
			return nil, err
		}
		resp.Credits = credits
	}
	return resp, nil
}

func mapUserToInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            user.Role,
		TeacherStatus:   user.TeacherStatus,
		RejectionReason: user.RejectionReason,
		CreatedAt:       user.CreatedAt,
		LastLoginAt:     user.LastLogin,
	}
}
