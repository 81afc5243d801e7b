package seeders

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs the user seeder before the course seeder, which needs the
// demo teacher to own its courses.
func (s *MainSeeder) SeedAll() error {
	log.Info("Starting database seeding")

	if err := s.SeedUsersOnly(); err != nil {
		log.WithError(err).Error("User seeding failed")
		return err
	}

	if err := s.SeedCoursesOnly(); err != nil {
		log.WithError(err).Error("Course seeding failed")
		return err
	}

	log.Info("Database seeding completed")
	return nil
}

func (s *MainSeeder) SeedUsersOnly() error {
	return NewUserSeeder(s.db).SeedUsers()
}

func (s *MainSeeder) SeedCoursesOnly() error {
	return NewCourseSeeder(s.db).SeedCourses()
}
