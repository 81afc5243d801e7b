// services/content.go
package services

import (
	"context"
	"errors"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/services/repositories"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const mediaURLExpiry = time.Hour

type ContentService struct {
	appContext.DefaultService

	db      *PostgresService
	content *repositories.ContentRepository
	storage ObjectStore
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.content = svc.db.Content()
	svc.storage = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// ==================== COURSE METHODS ====================

func (svc *ContentService) ListCourses(viewer shared.Viewer, req dto.CourseListRequest) (*dto.CourseListResponse, error) {
	req.PaginationRequest = req.PaginationRequest.Normalize()
	filter := repositories.CourseFilter{Level: req.Level, PublishedOnly: !viewer.IsAdmin()}
	return svc.listCourses(filter, req.PaginationRequest)
}

// ListTeacherCourses returns every course the teacher owns, drafts included.
func (svc *ContentService) ListTeacherCourses(teacherID string, req dto.CourseListRequest) (*dto.CourseListResponse, error) {
	req.PaginationRequest = req.PaginationRequest.Normalize()
	filter := repositories.CourseFilter{TeacherID: teacherID, Level: req.Level}
	return svc.listCourses(filter, req.PaginationRequest)
}

func (svc *ContentService) listCourses(filter repositories.CourseFilter, p dto.PaginationRequest) (*dto.CourseListResponse, error) {
	courses, total, err := svc.content.ListCourses(filter, p.Page, p.Limit)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := &dto.CourseListResponse{
		Courses:    make([]dto.CourseResponse, len(courses)),
		Pagination: dto.NewPaginationResponse(p, total),
	}
	for i := range courses {
		resp.Courses[i] = mapCourseToResponse(&courses[i])
	}
	return resp, nil
}

func (svc *ContentService) GetCourse(viewer shared.Viewer, courseID string) (*dto.CourseResponse, error) {
	course, err := svc.visibleCourse(viewer, courseID)
	if err != nil {
		return nil, err
	}
	resp := mapCourseToResponse(course)
	return &resp, nil
}

func (svc *ContentService) CreateCourse(teacherID string, req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course, err := svc.content.CreateCourse(&model.Course{
		TeacherID:   teacherID,
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	log.WithFields(log.Fields{"course_id": course.ID, "teacher_id": teacherID}).Info("Course created")
	resp := mapCourseToResponse(course)
	return &resp, nil
}

func (svc *ContentService) UpdateCourse(viewer shared.Viewer, courseID string, req dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := svc.ownedCourse(viewer, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := svc.content.UpdateCourse(course); err != nil {
		return nil, svc.db.HandleError(err)
	}
	resp := mapCourseToResponse(course)
	return &resp, nil
}

func (svc *ContentService) DeleteCourse(viewer shared.Viewer, courseID string) error {
	if _, err := svc.ownedCourse(viewer, courseID); err != nil {
		return err
	}
	if err := svc.content.DeleteCourse(courseID); err != nil {
		return svc.db.HandleError(err)
	}
	log.WithFields(log.Fields{"course_id": courseID, "user_id": viewer.UserID}).Info("Course deleted")
	return nil
}

func (svc *ContentService) getCourse(courseID string) (*model.Course, error) {
	course, err := svc.content.GetCourse(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError(err, "Course not found")
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	return course, nil
}

// visibleCourse hides unpublished courses from everyone but their owner.
func (svc *ContentService) visibleCourse(viewer shared.Viewer, courseID string) (*model.Course, error) {
	course, err := svc.getCourse(courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished && !viewer.Owns(course.TeacherID) {
		return nil, shared.NewNotFoundError(nil, "Course not found")
	}
	return course, nil
}

func (svc *ContentService) ownedCourse(viewer shared.Viewer, courseID string) (*model.Course, error) {
	course, err := svc.getCourse(courseID)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(course.TeacherID) {
		return nil, shared.NewForbiddenError(nil, "You do not own this course")
	}
	return course, nil
}

// ==================== LESSON METHODS ====================

func (svc *ContentService) ListCourseLessons(viewer shared.Viewer, courseID string, req dto.LessonListRequest) (*dto.LessonListResponse, error) {
	course, err := svc.visibleCourse(viewer, courseID)
	if err != nil {
		return nil, err
	}

	req.PaginationRequest = req.PaginationRequest.Normalize()
	filter := repositories.LessonFilter{
		CourseID:      courseID,
		Skill:         req.Skill,
		Level:         req.Level,
		PublishedOnly: !viewer.Owns(course.TeacherID),
	}
	return svc.listLessons(viewer, filter, req.PaginationRequest)
}

// ListAllLessons is the moderation listing: every lesson, any state.
func (svc *ContentService) ListAllLessons(viewer shared.Viewer, req dto.LessonListRequest) (*dto.LessonListResponse, error) {
	req.PaginationRequest = req.PaginationRequest.Normalize()
	filter := repositories.LessonFilter{
		CourseID: req.CourseID,
		Skill:    req.Skill,
		Level:    req.Level,
		Source:   req.Source,
	}
	return svc.listLessons(viewer, filter, req.PaginationRequest)
}

func (svc *ContentService) listLessons(viewer shared.Viewer, filter repositories.LessonFilter, p dto.PaginationRequest) (*dto.LessonListResponse, error) {
	lessons, total, err := svc.content.ListLessons(filter, p.Page, p.Limit)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := &dto.LessonListResponse{
		Lessons:    make([]dto.LessonResponse, len(lessons)),
		Pagination: dto.NewPaginationResponse(p, total),
	}
	for i := range lessons {
		resp.Lessons[i] = mapLessonToResponse(&lessons[i], viewer.Owns(lessons[i].TeacherID))
	}
	return resp, nil
}

func (svc *ContentService) GetLesson(ctx context.Context, viewer shared.Viewer, lessonID string) (*dto.LessonResponse, error) {
	lesson, err := svc.getLesson(lessonID)
	if err != nil {
		return nil, err
	}
	owner := viewer.Owns(lesson.TeacherID)
	if !lesson.IsPublished && !owner {
		return nil, shared.NewNotFoundError(nil, "Lesson not found")
	}

	resp := mapLessonToResponse(lesson, owner)
	if lesson.MediaObject != "" {
		url, err := svc.storage.GetFileURL(ctx, lesson.MediaObject, mediaURLExpiry)
		if err != nil {
			log.WithError(err).WithField("lesson_id", lessonID).Warn("Failed to sign lesson media URL")
		} else {
			resp.MediaURL = url
		}
	}
	return &resp, nil
}

func (svc *ContentService) CreateLesson(viewer shared.Viewer, courseID string, req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	course, err := svc.ownedCourse(viewer, courseID)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:        course.ID,
		TeacherID:       course.TeacherID,
		Title:           req.Title,
		Description:     req.Description,
		Skill:           req.Skill,
		Level:           req.Level,
		Content:         toLessonSections(req.Content),
		Questions:       toQuestions(req.Questions),
		DurationMinutes: req.DurationMinutes,
		IsPublished:     req.IsPublished,
		Source:          shared.LessonSourceManual,
	}
	return svc.insertLesson(lesson, req.Order)
}

// SaveGeneratedLesson stores an AI-written lesson as an unpublished draft.
func (svc *ContentService) SaveGeneratedLesson(viewer shared.Viewer, courseID string, skill, level string, gen dto.GeneratedLesson) (*dto.LessonResponse, error) {
	course, err := svc.ownedCourse(viewer, courseID)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:    course.ID,
		TeacherID:   course.TeacherID,
		Title:       gen.Title,
		Description: gen.Description,
		Skill:       skill,
		Level:       level,
		Content:     toLessonSections(gen.Content),
		Questions:   toQuestions(gen.Questions),
		Source:      shared.LessonSourceAI,
	}
	return svc.insertLesson(lesson, nil)
}

func (svc *ContentService) insertLesson(lesson *model.Lesson, order *int) (*dto.LessonResponse, error) {
	if lesson.Level == "" {
		lesson.Level = shared.LevelBeginner
	}
	if lesson.DurationMinutes == 0 {
		lesson.DurationMinutes = 10
	}
	if order != nil {
		lesson.Order = *order
	} else {
		next, err := svc.content.NextLessonOrder(lesson.CourseID)
		if err != nil {
			return nil, svc.db.HandleError(err)
		}
		lesson.Order = next
	}

	created, err := svc.content.CreateLesson(lesson)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	log.WithFields(log.Fields{
		"lesson_id": created.ID,
		"course_id": created.CourseID,
		"source":    created.Source,
	}).Info("Lesson created")

	resp := mapLessonToResponse(created, true)
	return &resp, nil
}

func (svc *ContentService) UpdateLesson(viewer shared.Viewer, lessonID string, req dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	lesson, err := svc.ownedLesson(viewer, lessonID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.Skill != nil {
		lesson.Skill = *req.Skill
	}
	if req.Level != nil {
		lesson.Level = *req.Level
	}
	if req.Content != nil {
		lesson.Content = toLessonSections(req.Content)
	}
	if req.Questions != nil {
		lesson.Questions = toQuestions(req.Questions)
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}
	if req.DurationMinutes != nil {
		lesson.DurationMinutes = *req.DurationMinutes
	}
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}

	if err := svc.content.UpdateLesson(lesson); err != nil {
		return nil, svc.db.HandleError(err)
	}
	resp := mapLessonToResponse(lesson, true)
	return &resp, nil
}

func (svc *ContentService) DeleteLesson(ctx context.Context, viewer shared.Viewer, lessonID string) error {
	lesson, err := svc.ownedLesson(viewer, lessonID)
	if err != nil {
		return err
	}
	if err := svc.content.DeleteLesson(lessonID); err != nil {
		return svc.db.HandleError(err)
	}

	if lesson.MediaObject != "" {
		if err := svc.storage.DeleteFile(ctx, lesson.MediaObject); err != nil {
			log.WithError(err).WithField("object", lesson.MediaObject).Warn("Failed to delete lesson media")
		}
	}
	log.WithFields(log.Fields{"lesson_id": lessonID, "user_id": viewer.UserID}).Info("Lesson deleted")
	return nil
}

func (svc *ContentService) getLesson(lessonID string) (*model.Lesson, error) {
	lesson, err := svc.content.GetLesson(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError(err, "Lesson not found")
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	return lesson, nil
}

func (svc *ContentService) ownedLesson(viewer shared.Viewer, lessonID string) (*model.Lesson, error) {
	lesson, err := svc.getLesson(lessonID)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(lesson.TeacherID) {
		return nil, shared.NewForbiddenError(nil, "You do not own this lesson")
	}
	return lesson, nil
}

// ==================== MAPPERS ====================

func mapCourseToResponse(course *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          course.ID,
		TeacherID:   course.TeacherID,
		Title:       course.Title,
		Description: course.Description,
		Level:       course.Level,
		IsPublished: course.IsPublished,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}

// mapLessonToResponse strips answers unless withAnswers is set.
func mapLessonToResponse(lesson *model.Lesson, withAnswers bool) dto.LessonResponse {
	content := make([]dto.LessonSectionPayload, len(lesson.Content))
	for i, s := range lesson.Content {
		content[i] = dto.LessonSectionPayload{Heading: s.Heading, Body: s.Body, Examples: s.Examples}
	}

	questions := make([]dto.QuestionResponse, len(lesson.Questions))
	for i, q := range lesson.Questions {
		questions[i] = dto.QuestionResponse{
			ID:      q.ID,
			Type:    q.Type,
			Prompt:  q.Prompt,
			Options: q.Options,
		}
		if withAnswers {
			questions[i].Answer = q.Answer
			questions[i].Explanation = q.Explanation
		}
	}

	return dto.LessonResponse{
		ID:              lesson.ID,
		CourseID:        lesson.CourseID,
		TeacherID:       lesson.TeacherID,
		Title:           lesson.Title,
		Description:     lesson.Description,
		Skill:           lesson.Skill,
		Level:           lesson.Level,
		Content:         content,
		Questions:       questions,
		Order:           lesson.Order,
		DurationMinutes: lesson.DurationMinutes,
		IsPublished:     lesson.IsPublished,
		Source:          lesson.Source,
		CreatedAt:       lesson.CreatedAt,
		UpdatedAt:       lesson.UpdatedAt,
	}
}

func toLessonSections(in []dto.LessonSectionPayload) []model.LessonSection {
	out := make([]model.LessonSection, len(in))
	for i, s := range in {
		out[i] = model.LessonSection{Heading: s.Heading, Body: s.Body, Examples: s.Examples}
	}
	return out
}

func toQuestions(in []dto.QuestionPayload) []model.Question {
	out := make([]model.Question, len(in))
	for i, q := range in {
		id := q.ID
		if id == "" {
			id = uuid.NewString()
		}
		out[i] = model.Question{
			ID:          id,
			Type:        q.Type,
			Prompt:      q.Prompt,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		}
	}
	return out
}
