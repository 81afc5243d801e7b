package repositories

import (
	"errors"
	"testing"

	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestContentRepository_CourseAndLessons(t *testing.T) {
	repo := NewContentRepository(newTestDB(t))

	course, err := repo.CreateCourse(&model.Course{TeacherID: "t1", Title: "Everyday English", Level: shared.LevelBeginner})
	require.NoError(t, err)

	order, err := repo.NextLessonOrder(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, order)

	lesson, err := repo.CreateLesson(&model.Lesson{
		CourseID:  course.ID,
		TeacherID: "t1",
		Title:     "Greetings",
		Skill:     "speaking",
		Level:     shared.LevelBeginner,
		Order:     order,
		Source:    shared.LessonSourceManual,
		Content:   datatypes.JSONSlice[model.LessonSection]{{Heading: "Hello", Body: "Say hello"}},
		Questions: datatypes.JSONSlice[model.Question]{{ID: "q1", Type: shared.QuestionTypeTrueFalse, Prompt: "Hi is a greeting", Answer: "true"}},
	})
	require.NoError(t, err)

	_, err = repo.CreateLesson(&model.Lesson{CourseID: course.ID, TeacherID: "t1", Title: "Numbers", Skill: "vocab", Order: 2, IsPublished: true})
	require.NoError(t, err)

	order, err = repo.NextLessonOrder(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, order)

	got, err := repo.GetLesson(lesson.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "q1", got.Questions[0].ID)
	assert.Equal(t, "Hello", got.Content[0].Heading)

	all, total, err := repo.ListLessons(LessonFilter{CourseID: course.ID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Greetings", all[0].Title)

	published, total, err := repo.ListLessons(LessonFilter{CourseID: course.ID, PublishedOnly: true}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Numbers", published[0].Title)

	count, err := repo.CountLessons(true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.DeleteCourse(course.ID))
	_, err = repo.GetLesson(lesson.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.True(t, errors.Is(repo.DeleteCourse(course.ID), gorm.ErrRecordNotFound))
}

func TestContentRepository_ListCoursesFilters(t *testing.T) {
	repo := NewContentRepository(newTestDB(t))

	_, err := repo.CreateCourse(&model.Course{TeacherID: "t1", Title: "A", Level: shared.LevelBeginner, IsPublished: true})
	require.NoError(t, err)
	_, err = repo.CreateCourse(&model.Course{TeacherID: "t1", Title: "B", Level: shared.LevelAdvanced})
	require.NoError(t, err)
	_, err = repo.CreateCourse(&model.Course{TeacherID: "t2", Title: "C", Level: shared.LevelBeginner, IsPublished: true})
	require.NoError(t, err)

	_, total, err := repo.ListCourses(CourseFilter{TeacherID: "t1"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.ListCourses(CourseFilter{PublishedOnly: true, Level: shared.LevelBeginner}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	page, total, err := repo.ListCourses(CourseFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)

	n, err := repo.CountCourses()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
