package main

import (
	"os"

	"github.com/lac-hong-legacy/english_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
)

// @title English Learning API
// @version 1.0
// @description Progress tracking, course content and AI lesson generation for English learners.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file, using process environment")
	}

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}
	if os.Getenv("LOG_FORMAT") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.EmailService{},
		&services.MonitoringService{},
		&services.JWTService{},
		&services.RateLimitService{},

		&services.ProgressService{},
		&services.BillingService{},
		&services.UserService{},
		&services.AuthService{},
		&services.ContentService{},
		&services.MediaService{},
		&services.TeacherService{},
		&services.AdminService{},
		&services.AIService{},
		&services.SchedulerService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service context stopped")
		return
	}
}
