package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/lac-hong-legacy/english_api/docs"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/services/handlers"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
)

const (
	defaultHTTPPort = 8000
	apiVersion      = "1.0.0"
	bodyLimit       = 25 * 1024 * 1024
)

type HttpService struct {
	appContext.DefaultService

	port      int
	startedAt time.Time
	app       *fiber.App

	db            *PostgresService
	redisSvc      *RedisService
	authSvc       *AuthService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	authHandler     *handlers.AuthHandler
	progressHandler *handlers.ProgressHandler
	contentHandler  *handlers.ContentHandler
	teacherHandler  *handlers.TeacherHandler
	adminHandler    *handlers.AdminHandler
	billingHandler  *handlers.BillingHandler
	aiHandler       *handlers.AIHandler
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *appContext.Context) error {
	svc.port = defaultHTTPPort
	if port := os.Getenv("PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
	}
	return svc.DefaultService.Configure(ctx)
}

// Start builds the router and blocks serving requests, so this service is
// registered last.
func (svc *HttpService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	contentSvc := svc.Service(CONTENT_SVC).(*ContentService)

	svc.authHandler = handlers.NewAuthHandler(svc.authSvc, svc.Service(USER_SVC).(*UserService))
	svc.progressHandler = handlers.NewProgressHandler(svc.Service(PROGRESS_SVC).(*ProgressService))
	svc.contentHandler = handlers.NewContentHandler(contentSvc, svc.Service(MEDIA_SVC).(*MediaService))
	svc.teacherHandler = handlers.NewTeacherHandler(svc.Service(TEACHER_SVC).(*TeacherService))
	svc.adminHandler = handlers.NewAdminHandler(svc.Service(ADMIN_SVC).(*AdminService), contentSvc)
	svc.billingHandler = handlers.NewBillingHandler(svc.Service(BILLING_SVC).(*BillingService))
	svc.aiHandler = handlers.NewAIHandler(svc.Service(AI_SVC).(*AIService))

	svc.startedAt = time.Now()
	svc.app = svc.newApp()
	svc.setupRoutes()

	log.WithField("port", svc.port).Info("HTTP server listening")
	return svc.app.Listen(fmt.Sprintf(":%d", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.ShutdownWithTimeout(10 * time.Second)
	}
}

func (svc *HttpService) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "english_api",
		BodyLimit:    bodyLimit,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	if os.Getenv("LOG_LEVEL") == "TRACE" {
		app.Use(logger.New())
	}
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	return app
}

func (svc *HttpService) setupRoutes() {
	app := svc.app
	auth := svc.authSvc.RequiredAuth()
	limit := svc.rateLimitSvc.RateLimit

	docs.SwaggerInfo.BasePath = "/"
	app.Get("/health", svc.health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1", svc.rateLimitSvc.IPRateLimit())

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", limit(RateLimitRegister), svc.authHandler.Register)
	authGroup.Post("/login", limit(RateLimitLogin), svc.authHandler.Login)

	v1.Get("/user/profile", auth, svc.authHandler.GetProfile)

	v1.Get("/progress", auth, svc.progressHandler.GetProgress)
	progressGroup := v1.Group("/progress", auth)
	progressGroup.Post("/lessons/complete", limit(RateLimitLessonComplete), svc.progressHandler.CompleteLesson)
	progressGroup.Get("/stats", svc.progressHandler.GetStats)
	progressGroup.Get("/achievements", svc.progressHandler.GetAchievements)
	progressGroup.Put("/weekly-goal", svc.progressHandler.UpdateWeeklyGoal)

	v1.Get("/courses", auth, svc.contentHandler.ListCourses)
	v1.Get("/courses/:courseId", auth, svc.contentHandler.GetCourse)
	v1.Get("/courses/:courseId/lessons", auth, svc.contentHandler.ListCourseLessons)
	v1.Get("/lessons/:lessonId", auth, svc.contentHandler.GetLesson)

	v1.Get("/billing/credits", auth, svc.billingHandler.GetCredits)

	teacher := v1.Group("/teacher", auth, svc.authSvc.RequireApprovedTeacher())
	teacher.Get("/courses", svc.contentHandler.ListMyCourses)
	teacher.Post("/courses", svc.contentHandler.CreateCourse)
	teacher.Put("/courses/:courseId", svc.contentHandler.UpdateCourse)
	teacher.Delete("/courses/:courseId", svc.contentHandler.DeleteCourse)
	teacher.Post("/courses/:courseId/lessons", svc.contentHandler.CreateLesson)
	teacher.Put("/lessons/:lessonId", svc.contentHandler.UpdateLesson)
	teacher.Delete("/lessons/:lessonId", svc.contentHandler.DeleteLesson)
	teacher.Post("/lessons/:lessonId/media", svc.contentHandler.UploadLessonMedia)
	teacher.Get("/students", svc.teacherHandler.ListStudents)
	teacher.Post("/students", svc.teacherHandler.LinkStudent)
	teacher.Get("/students/export", svc.teacherHandler.ExportStudents)
	teacher.Delete("/students/:studentId", svc.teacherHandler.UnlinkStudent)
	teacher.Get("/students/:studentId/progress", svc.teacherHandler.GetStudentProgress)

	ai := v1.Group("/ai", auth, svc.authSvc.RequireApprovedTeacher())
	ai.Post("/lessons/generate", limit(RateLimitAIGenerate), svc.aiHandler.GenerateLesson)
	ai.Post("/questions/generate", limit(RateLimitAIGenerate), svc.aiHandler.GenerateQuestions)
	ai.Get("/history", svc.aiHandler.History)

	admin := v1.Group("/admin", auth, svc.authSvc.RequireRole(shared.RoleAdmin))
	admin.Get("/users", svc.adminHandler.ListUsers)
	admin.Get("/teachers", svc.adminHandler.ListTeachers)
	admin.Put("/teachers/:userId/approve", svc.adminHandler.ApproveTeacher)
	admin.Put("/teachers/:userId/reject", svc.adminHandler.RejectTeacher)
	admin.Get("/lessons", svc.adminHandler.ListLessons)
	admin.Put("/lessons/:lessonId", svc.adminHandler.UpdateLesson)
	admin.Delete("/lessons/:lessonId", svc.adminHandler.DeleteLesson)
	admin.Post("/credits/:userId", svc.adminHandler.GrantCredits)
	admin.Get("/stats", svc.adminHandler.GetStats)
	admin.Get("/rate-limits", svc.rateLimitSvc.ListRateLimits())
	admin.Delete("/rate-limits/:endpointType/:identifier", svc.rateLimitSvc.ResetRateLimit())

	app.Use(func(c *fiber.Ctx) error {
		return shared.NewNotFoundError(nil, "Route not found")
	})
}

// health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthCheckResponse
// @Failure 503 {object} dto.HealthCheckResponse
// @Router /health [get]
func (svc *HttpService) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	details := map[string]interface{}{}
	healthy := true

	if sqlDB, err := svc.db.Db().DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		details["database"] = "unreachable"
		healthy = false
	} else {
		details["database"] = "ok"
	}

	if err := svc.redisSvc.GetClient().Ping(ctx).Err(); err != nil {
		details["redis"] = "unreachable"
		healthy = false
	} else {
		details["redis"] = "ok"
	}

	resp := dto.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   apiVersion,
		Uptime:    time.Since(svc.startedAt).Round(time.Second).String(),
		Details:   details,
	}
	status := fiber.StatusOK
	if !healthy {
		resp.Status = "degraded"
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}

// errorHandler renders every error returned by a handler in the response
// envelope. Causes are logged, never sent to the client.
func errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("Request failed")
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	return shared.ResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
}
