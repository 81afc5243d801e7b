package seeders

import (
	"errors"
	"time"

	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AdminID   = "seed-admin"
	TeacherID = "seed-teacher"

	demoPassword       = "Password123!"
	demoTeacherCredits = 50
)

type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

// SeedUsers creates the demo accounts, links the students to the demo
// teacher and gives the teacher a starting credit balance.
func (s *UserSeeder) SeedUsers() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	users := []model.User{
		{ID: AdminID, Email: "admin@english.local", Username: "admin", FullName: "Platform Admin", Role: shared.RoleAdmin, TeacherStatus: shared.TeacherStatusNone},
		{ID: TeacherID, Email: "teacher@english.local", Username: "ms_nguyen", FullName: "Lan Nguyen", Role: shared.RoleTeacher, TeacherStatus: shared.TeacherStatusApproved},
		{ID: "seed-student-1", Email: "minh@english.local", Username: "minh", FullName: "Minh Tran", Role: shared.RoleStudent, TeacherStatus: shared.TeacherStatusNone},
		{ID: "seed-student-2", Email: "an@english.local", Username: "an", FullName: "An Pham", Role: shared.RoleStudent, TeacherStatus: shared.TeacherStatusNone},
	}

	for _, user := range users {
		user.Password = string(hash)
		user.IsActive = true
		user.CreatedAt = now
		user.UpdatedAt = now

		created, err := createIfMissing(s.db, &model.User{}, user.ID, &user)
		if err != nil {
			log.WithError(err).WithField("email", user.Email).Error("Error creating user")
			return err
		}
		if created {
			log.WithFields(log.Fields{"email": user.Email, "role": user.Role}).Info("Created user")
		}
	}

	for _, studentID := range []string{"seed-student-1", "seed-student-2"} {
		link := model.TeacherStudent{ID: TeacherID + ":" + studentID, TeacherID: TeacherID, StudentID: studentID, CreatedAt: now}
		if _, err := createIfMissing(s.db, &model.TeacherStudent{}, link.ID, &link); err != nil {
			return err
		}
	}

	account := model.CreditAccount{UserID: TeacherID, Balance: demoTeacherCredits, TotalGranted: demoTeacherCredits, UpdatedAt: now}
	var existing model.CreditAccount
	err = s.db.Where("user_id = ?", TeacherID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.Create(&account).Error; err != nil {
			return err
		}
		log.WithField("balance", demoTeacherCredits).Info("Opened teacher credit account")
		return nil
	}
	return err
}

// createIfMissing inserts row unless a record with the same primary key exists.
func createIfMissing(db *gorm.DB, probe interface{}, id string, row interface{}) (bool, error) {
	err := db.Where("id = ?", id).First(probe).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, db.Create(row).Error
}
