package repositories

import (
	"strings"
	"time"

	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) CreateUser(user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = newID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := ds.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ds *UserRepository) GetUserByID(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetUserByEmailOrUsername(emailOrUsername string) (*model.User, error) {
	var user model.User
	err := ds.db.Where("LOWER(email) = LOWER(?) OR username = ?", emailOrUsername, emailOrUsername).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) IsEmailAvailable(email string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	return count == 0, err
}

func (ds *UserRepository) IsUsernameAvailable(username string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(username) = LOWER(?)", username).Count(&count).Error
	return count == 0, err
}

func (ds *UserRepository) UpdateLastLogin(userID string, at time.Time) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_login": at,
		"updated_at": time.Now(),
	}).Error
}

// UpdateTeacherStatus moves a teacher between review states. It reports
// gorm.ErrRecordNotFound when no teacher account has the id.
func (ds *UserRepository) UpdateTeacherStatus(userID, status, reason string) error {
	res := ds.db.Model(&model.User{}).
		Where("id = ? AND role = ?", userID, shared.RoleTeacher).
		Updates(map[string]interface{}{
			"teacher_status":   status,
			"rejection_reason": reason,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ds *UserRepository) ListTeachers(status string, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := ds.db.Model(&model.User{}).Where("role = ?", shared.RoleTeacher)
	if status != "" {
		query = query.Where("teacher_status = ?", status)
	}

	query.Count(&total)

	offset, limit := paginate(page, limit)
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (ds *UserRepository) SearchUsers(search string, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := ds.db.Model(&model.User{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	query.Count(&total)

	offset, limit := paginate(page, limit)
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountByRole returns the number of accounts per role.
func (ds *UserRepository) CountByRole() (map[string]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	err := ds.db.Model(&model.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Role] = r.Count
	}
	return out, nil
}

// LinkStudent is idempotent: linking an already linked pair is a no-op.
func (ds *UserRepository) LinkStudent(teacherID, studentID string) (*model.TeacherStudent, error) {
	link := &model.TeacherStudent{
		ID:        newID(),
		TeacherID: teacherID,
		StudentID: studentID,
		CreatedAt: time.Now(),
	}
	err := ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "teacher_id"}, {Name: "student_id"}},
		DoNothing: true,
	}).Create(link).Error
	if err != nil {
		return nil, err
	}

	var stored model.TeacherStudent
	err = ds.db.Where("teacher_id = ? AND student_id = ?", teacherID, studentID).First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (ds *UserRepository) UnlinkStudent(teacherID, studentID string) error {
	res := ds.db.Where("teacher_id = ? AND student_id = ?", teacherID, studentID).Delete(&model.TeacherStudent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ds *UserRepository) IsLinked(teacherID, studentID string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.TeacherStudent{}).
		Where("teacher_id = ? AND student_id = ?", teacherID, studentID).
		Count(&count).Error
	return count > 0, err
}

// ListStudents returns the teacher's links, oldest first, with Student loaded.
func (ds *UserRepository) ListStudents(teacherID string) ([]model.TeacherStudent, error) {
	var links []model.TeacherStudent
	err := ds.db.Preload("Student").
		Where("teacher_id = ?", teacherID).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
