package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/services/repositories"
	"github.com/lac-hong-legacy/english_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// PostgresService owns the database handle and the repositories built on it.
// DB_DRIVER=sqlite swaps in a file database for local runs and the seeder.
type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	driver   string
	database string

	users    *repositories.UserRepository
	progress *repositories.ProgressRepository
	content  *repositories.ContentRepository
	billing  *repositories.BillingRepository
	aiLogs   *repositories.AILogRepository
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Users() *repositories.UserRepository        { return ds.users }
func (ds *PostgresService) Progress() *repositories.ProgressRepository { return ds.progress }
func (ds *PostgresService) Content() *repositories.ContentRepository   { return ds.content }
func (ds *PostgresService) Billing() *repositories.BillingRepository   { return ds.billing }
func (ds *PostgresService) AILogs() *repositories.AILogRepository      { return ds.aiLogs }

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.driver = strings.ToLower(os.Getenv("DB_DRIVER"))
	if ds.driver == "" {
		ds.driver = DriverPostgres
	}

	if ds.driver == DriverSqlite {
		ds.database = os.Getenv("DB_DATABASE")
		if ds.database == "" {
			ds.database = "english_api.db"
		}
		return ds.DefaultService.Configure(ctx)
	}

	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "english_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) dialector() gorm.Dialector {
	if ds.driver == DriverSqlite {
		return sqlite.Open(ds.database)
	}
	return postgres.Open(ds.database)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.WithFields(log.Fields{"driver": ds.driver, "attempt": attempt}).Info("Connecting to database")

		ds.db, err = gorm.Open(ds.dialector(), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Error),
			TranslateError: true,
		})

		if err == nil {
			// Test the connection
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if err = ds.Attach(ds.db); err != nil {
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

// Attach migrates db and builds the repositories on it.
func (ds *PostgresService) Attach(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	ds.db = db
	ds.users = repositories.NewUserRepository(db)
	ds.progress = repositories.NewProgressRepository(db)
	ds.content = repositories.NewContentRepository(db)
	ds.billing = repositories.NewBillingRepository(db)
	ds.aiLogs = repositories.NewAILogRepository(db)
	return nil
}

func (ds *PostgresService) Shutdown() {
	if ds.db == nil {
		return
	}
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// HandleError classifies a storage error, logs it and returns an AppError
// carrying the matching status. The original error stays reachable through
// errors.Is.
func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string
	var message string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound // 404
		errorType = "NOT_FOUND"
		message = "Resource not found"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict // 409
		errorType = "CONFLICT"
		message = "Resource already exists"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest // 400
		errorType = "FOREIGN_KEY_VIOLATION"
		message = "Referenced resource does not exist"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError // 500
		errorType = "TRANSACTION_ERROR"
		message = "Database error"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict // 409
			errorType = "UNIQUE_CONSTRAINT"
			message = "Resource already exists"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable // 503
			errorType = "DATABASE_CONNECTION_ERROR"
			message = "Database unavailable"
		} else {
			statusCode = http.StatusInternalServerError // 500
			errorType = "INTERNAL_ERROR"
			message = "Database error"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return &shared.AppError{
		StatusCode: statusCode,
		Message:    message,
		Err:        fmt.Errorf("%s: %w", errorType, err),
	}
}
