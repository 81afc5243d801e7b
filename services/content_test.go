package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent_DraftsHiddenFromStudents(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestContentService(ds, newFakeObjectStore())
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	student := seedUser(t, ds, "stud", shared.RoleStudent, shared.TeacherStatusNone)

	published := seedCourse(t, ds, teacher.ID, true)
	draft := seedCourse(t, ds, teacher.ID, false)
	seedLesson(t, ds, published, "grammar", true)
	hidden := seedLesson(t, ds, published, "reading", false)

	studentView := shared.Viewer{UserID: student.ID, Role: student.Role}
	ownerView := shared.Viewer{UserID: teacher.ID, Role: teacher.Role}

	courses, err := svc.ListCourses(studentView, dto.CourseListRequest{})
	require.NoError(t, err)
	require.Len(t, courses.Courses, 1)
	assert.Equal(t, published.ID, courses.Courses[0].ID)

	_, err = svc.GetCourse(studentView, draft.ID)
	requireStatus(t, err, 404)
	_, err = svc.GetCourse(ownerView, draft.ID)
	require.NoError(t, err)

	lessons, err := svc.ListCourseLessons(studentView, published.ID, dto.LessonListRequest{})
	require.NoError(t, err)
	assert.Len(t, lessons.Lessons, 1)

	lessons, err = svc.ListCourseLessons(ownerView, published.ID, dto.LessonListRequest{})
	require.NoError(t, err)
	assert.Len(t, lessons.Lessons, 2)

	_, err = svc.GetLesson(context.Background(), studentView, hidden.ID)
	requireStatus(t, err, 404)

	admin := shared.Viewer{UserID: "admin", Role: shared.RoleAdmin}
	all, err := svc.ListCourses(admin, dto.CourseListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Courses, 2)
}

func TestContent_AnswersOnlyForOwners(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestContentService(ds, newFakeObjectStore())
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	student := seedUser(t, ds, "stud", shared.RoleStudent, shared.TeacherStatusNone)
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "grammar", true)

	asStudent, err := svc.GetLesson(context.Background(), shared.Viewer{UserID: student.ID, Role: student.Role}, lesson.ID)
	require.NoError(t, err)
	require.Len(t, asStudent.Questions, 1)
	assert.Empty(t, asStudent.Questions[0].Answer)

	asOwner, err := svc.GetLesson(context.Background(), shared.Viewer{UserID: teacher.ID, Role: teacher.Role}, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "walked", asOwner.Questions[0].Answer)
}

func TestContent_OwnershipEnforced(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestContentService(ds, newFakeObjectStore())
	owner := seedUser(t, ds, "owner", shared.RoleTeacher, shared.TeacherStatusApproved)
	other := seedUser(t, ds, "other", shared.RoleTeacher, shared.TeacherStatusApproved)
	course := seedCourse(t, ds, owner.ID, true)
	lesson := seedLesson(t, ds, course, "grammar", true)

	otherView := shared.Viewer{UserID: other.ID, Role: other.Role}
	title := "Hijacked"

	_, err := svc.UpdateCourse(otherView, course.ID, dto.UpdateCourseRequest{Title: &title})
	requireStatus(t, err, 403)
	_, err = svc.UpdateLesson(otherView, lesson.ID, dto.UpdateLessonRequest{Title: &title})
	requireStatus(t, err, 403)
	_, err = svc.CreateLesson(otherView, course.ID, dto.CreateLessonRequest{Title: "Extra", Skill: "reading"})
	requireStatus(t, err, 403)
	requireStatus(t, svc.DeleteCourse(otherView, course.ID), 403)

	admin := shared.Viewer{UserID: "admin", Role: shared.RoleAdmin}
	updated, err := svc.UpdateLesson(admin, lesson.ID, dto.UpdateLessonRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestContent_CreateLessonAppendsOrder(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestContentService(ds, newFakeObjectStore())
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	viewer := shared.Viewer{UserID: teacher.ID, Role: teacher.Role}

	course, err := svc.CreateCourse(teacher.ID, dto.CreateCourseRequest{Title: "Business English", Level: shared.LevelAdvanced})
	require.NoError(t, err)

	first, err := svc.CreateLesson(viewer, course.ID, dto.CreateLessonRequest{Title: "Emails", Skill: "writing"})
	require.NoError(t, err)
	second, err := svc.CreateLesson(viewer, course.ID, dto.CreateLessonRequest{Title: "Meetings", Skill: "speaking"})
	require.NoError(t, err)

	assert.Greater(t, second.Order, first.Order)
	assert.Equal(t, shared.LevelBeginner, first.Level)
	assert.Equal(t, 10, first.DurationMinutes)
	assert.Equal(t, shared.LessonSourceManual, first.Source)
}

func TestContent_MediaURLAndCleanup(t *testing.T) {
	ds := newTestDatabase(t)
	store := newFakeObjectStore()
	svc := newTestContentService(ds, store)
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	viewer := shared.Viewer{UserID: teacher.ID, Role: teacher.Role}
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "listening", true)

	lesson.MediaObject = "lessons/" + lesson.ID + "/audio.mp3"
	require.NoError(t, ds.Content().UpdateLesson(lesson))

	resp, err := svc.GetLesson(context.Background(), viewer, lesson.ID)
	require.NoError(t, err)
	assert.Contains(t, resp.MediaURL, lesson.MediaObject)

	store.urlErr = errors.New("minio down")
	resp, err = svc.GetLesson(context.Background(), viewer, lesson.ID)
	require.NoError(t, err, "a signing failure still returns the lesson")
	assert.Empty(t, resp.MediaURL)

	require.NoError(t, svc.DeleteLesson(context.Background(), viewer, lesson.ID))
	assert.Equal(t, []string{lesson.MediaObject}, store.deleted)

	_, err = svc.GetLesson(context.Background(), viewer, lesson.ID)
	requireStatus(t, err, 404)
}
