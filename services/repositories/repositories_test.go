package repositories

import (
	"testing"

	"github.com/lac-hong-legacy/english_api/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func createUser(t *testing.T, repo *UserRepository, username, role, status string) *model.User {
	t.Helper()
	u, err := repo.CreateUser(&model.User{
		Email:         username + "@example.com",
		Username:      username,
		Password:      "hash",
		Role:          role,
		TeacherStatus: status,
		IsActive:      true,
	})
	require.NoError(t, err)
	return u
}
