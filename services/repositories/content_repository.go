package repositories

import (
	"time"

	"github.com/lac-hong-legacy/english_api/model"
	"gorm.io/gorm"
)

type ContentRepository struct {
	BaseRepository
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// CourseFilter narrows course listings. Empty fields match everything.
type CourseFilter struct {
	TeacherID     string
	Level         string
	PublishedOnly bool
}

// LessonFilter narrows lesson listings. Empty fields match everything.
type LessonFilter struct {
	CourseID      string
	TeacherID     string
	Skill         string
	Level         string
	Source        string
	PublishedOnly bool
}

func (ds *ContentRepository) CreateCourse(course *model.Course) (*model.Course, error) {
	if course.ID == "" {
		course.ID = newID()
	}
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()

	if err := ds.db.Create(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (ds *ContentRepository) GetCourse(id string) (*model.Course, error) {
	var course model.Course
	if err := ds.db.Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (ds *ContentRepository) UpdateCourse(course *model.Course) error {
	course.UpdatedAt = time.Now()
	return ds.db.Save(course).Error
}

// DeleteCourse removes the course together with its lessons.
func (ds *ContentRepository) DeleteCourse(id string) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Course{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (ds *ContentRepository) ListCourses(filter CourseFilter, page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := ds.db.Model(&model.Course{})
	if filter.TeacherID != "" {
		query = query.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	query.Count(&total)

	offset, limit := paginate(page, limit)
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (ds *ContentRepository) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		lesson.ID = newID()
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	if err := ds.db.Omit("Course").Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (ds *ContentRepository) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (ds *ContentRepository) UpdateLesson(lesson *model.Lesson) error {
	lesson.UpdatedAt = time.Now()
	return ds.db.Omit("Course").Save(lesson).Error
}

func (ds *ContentRepository) DeleteLesson(id string) error {
	res := ds.db.Where("id = ?", id).Delete(&model.Lesson{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ds *ContentRepository) ListLessons(filter LessonFilter, page, limit int) ([]model.Lesson, int64, error) {
	var lessons []model.Lesson
	var total int64

	query := ds.db.Model(&model.Lesson{})
	if filter.CourseID != "" {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.TeacherID != "" {
		query = query.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.Skill != "" {
		query = query.Where("skill = ?", filter.Skill)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	query.Count(&total)

	offset, limit := paginate(page, limit)
	err := query.Order(`"order" ASC, created_at ASC`).
		Limit(limit).
		Offset(offset).
		Find(&lessons).Error
	if err != nil {
		return nil, 0, err
	}
	return lessons, total, nil
}

// NextLessonOrder returns the order value for a lesson appended to a course.
func (ds *ContentRepository) NextLessonOrder(courseID string) (int, error) {
	var max int64
	err := ds.db.Model(&model.Lesson{}).
		Where("course_id = ?", courseID).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return int(max) + 1, nil
}

func (ds *ContentRepository) CountCourses() (int64, error) {
	var count int64
	err := ds.db.Model(&model.Course{}).Count(&count).Error
	return count, err
}

func (ds *ContentRepository) CountLessons(publishedOnly bool) (int64, error) {
	var count int64
	query := ds.db.Model(&model.Lesson{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}
