package services

import (
	"errors"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/services/repositories"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = errors.New("invalid credentials")

// AuthService handles registration, login and the auth middleware.
type AuthService struct {
	context.DefaultService

	db          *PostgresService
	users       *repositories.UserRepository
	jwtSvc      *JWTService
	progressSvc *ProgressService
	billingSvc  *BillingService
	notifier    Notifier

	bcryptCost int
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	svc.bcryptCost = bcrypt.DefaultCost
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.users = svc.db.Users()
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.billingSvc = svc.Service(BILLING_SVC).(*BillingService)
	svc.notifier = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

// Register creates the account together with its progress record and
// credit account. Teachers start in the pending review state.
func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	available, err := svc.users.IsEmailAvailable(email)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if !available {
		return nil, shared.NewConflictError(nil, "Email is already registered")
	}

	available, err = svc.users.IsUsernameAvailable(req.Username)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if !available {
		return nil, shared.NewConflictError(nil, "Username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), svc.bcryptCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to process password")
	}

	role := req.Role
	if role == "" {
		role = shared.RoleStudent
	}
	teacherStatus := shared.TeacherStatusNone
	if role == shared.RoleTeacher {
		teacherStatus = shared.TeacherStatusPending
	}

	user, err := svc.users.CreateUser(&model.User{
		Email:         email,
		Username:      req.Username,
		Password:      string(hashed),
		FullName:      strings.TrimSpace(req.FullName),
		Role:          role,
		TeacherStatus: teacherStatus,
		IsActive:      true,
	})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	// both are also created lazily on first use
	if _, err := svc.progressSvc.EnsureProgress(user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to create progress record at registration")
	}
	if err := svc.billingSvc.OpenAccount(user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to open credit account at registration")
	}

	go func() {
		if err := svc.notifier.SendWelcomeEmail(user.Email, user.Username, user.Role); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Failed to send welcome email")
		}
	}()

	log.WithFields(log.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")

	message := "Registration successful"
	if role == shared.RoleTeacher {
		message = "Registration successful. Your teacher account is pending approval."
	}
	return &dto.RegisterResponse{User: mapUserToInfo(user), Message: message}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.users.GetUserByEmailOrUsername(strings.TrimSpace(req.EmailOrUsername))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewUnauthorizedError(errInvalidCredentials, "Invalid email/username or password")
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.WithField("user_id", user.ID).Warn("Failed login attempt")
		return nil, shared.NewUnauthorizedError(errInvalidCredentials, "Invalid email/username or password")
	}

	if !user.IsActive {
		return nil, shared.NewForbiddenError(nil, "Account is disabled")
	}

	now := time.Now()
	if err := svc.users.UpdateLastLogin(user.ID, now); err != nil {
		return nil, svc.db.HandleError(err)
	}
	user.LastLogin = &now

	if err := svc.progressSvc.TouchLogin(user.ID); err != nil {
		return nil, err
	}

	token, err := svc.jwtSvc.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}

	return &dto.LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
		User:        mapUserToInfo(user),
	}, nil
}

// ==================== MIDDLEWARE ====================

func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return shared.NewUnauthorizedError(err, err.Error())
		}

		claims, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.NewUnauthorizedError(err, "Invalid JWT token")
		}

		c.Locals(shared.UserID, claims.UserID)
		c.Locals(shared.UserRole, claims.Role)
		return c.Next()
	}
}

// RequireRole admits requests whose token role is one of roles.
func (svc *AuthService) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(shared.UserRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return shared.NewForbiddenError(nil, "You do not have access to this resource")
	}
}

// RequireApprovedTeacher reads the current review state, so approval or
// rejection applies without a new token. Admins always pass.
func (svc *AuthService) RequireApprovedTeacher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(shared.UserRole).(string)
		if role == shared.RoleAdmin {
			return c.Next()
		}
		if role != shared.RoleTeacher {
			return shared.NewForbiddenError(nil, "Teacher account required")
		}

		userID, _ := c.Locals(shared.UserID).(string)
		user, err := svc.users.GetUserByID(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewUnauthorizedError(err, "Account no longer exists")
		}
		if err != nil {
			return svc.db.HandleError(err)
		}
		if user.TeacherStatus != shared.TeacherStatusApproved {
			return shared.NewForbiddenError(nil, "Teacher account is "+user.TeacherStatus+", approval required")
		}
		return c.Next()
	}
}
