package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
	mediaSvc   MediaServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface, mediaSvc MediaServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
		mediaSvc:   mediaSvc,
	}
}

// ==================== CATALOG ====================

// @Summary List courses
// @Description Published courses, newest first
// @Tags content
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param level query string false "Course level" Enums(beginner, intermediate, advanced)
// @Success 200 {object} shared.Response{data=dto.CourseListResponse}
// @Router /api/v1/courses [get]
func (h *ContentHandler) ListCourses(c *fiber.Ctx) error {
	var req dto.CourseListRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.contentSvc.ListCourses(currentViewer(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Get course
// @Tags content
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/courses/{courseId} [get]
func (h *ContentHandler) GetCourse(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetCourse(currentViewer(c), c.Params("courseId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary List course lessons
// @Description Lessons of a course in order. Drafts are only listed for the owner.
// @Tags content
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param skill query string false "Skill filter"
// @Success 200 {object} shared.Response{data=dto.LessonListResponse}
// @Router /api/v1/courses/{courseId}/lessons [get]
func (h *ContentHandler) ListCourseLessons(c *fiber.Ctx) error {
	var req dto.LessonListRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.contentSvc.ListCourseLessons(currentViewer(c), c.Params("courseId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Get lesson
// @Description Lesson content and questions. Answers are only included for the owner.
// @Tags content
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/lessons/{lessonId} [get]
func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetLesson(c.UserContext(), currentViewer(c), c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// ==================== TEACHER AUTHORING ====================

// @Summary List my courses
// @Description All courses owned by the teacher, drafts included
// @Tags teacher
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} shared.Response{data=dto.CourseListResponse}
// @Router /api/v1/teacher/courses [get]
func (h *ContentHandler) ListMyCourses(c *fiber.Ctx) error {
	var req dto.CourseListRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.contentSvc.ListTeacherCourses(currentUserID(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Create course
// @Tags teacher
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param body body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/teacher/courses [post]
func (h *ContentHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.contentSvc.CreateCourse(currentUserID(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Course created", resp)
}

// @Summary Update course
// @Tags teacher
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Param body body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.CourseResponse}
// @Failure 403 {object} shared.Response
// @Router /api/v1/teacher/courses/{courseId} [put]
func (h *ContentHandler) UpdateCourse(c *fiber.Ctx) error {
	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.contentSvc.UpdateCourse(currentViewer(c), c.Params("courseId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Course updated", resp)
}

// @Summary Delete course
// @Description Deletes the course and all of its lessons
// @Tags teacher
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/teacher/courses/{courseId} [delete]
func (h *ContentHandler) DeleteCourse(c *fiber.Ctx) error {
	if err := h.contentSvc.DeleteCourse(currentViewer(c), c.Params("courseId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Course deleted", nil)
}

// @Summary Create lesson
// @Tags teacher
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Param body body dto.CreateLessonRequest true "Lesson details"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/teacher/courses/{courseId}/lessons [post]
func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.contentSvc.CreateLesson(currentViewer(c), c.Params("courseId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Lesson created", resp)
}

// @Summary Update lesson
// @Description Also used by admins for moderation (publish, unpublish, edit)
// @Tags teacher
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Param body body dto.UpdateLessonRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/teacher/lessons/{lessonId} [put]
func (h *ContentHandler) UpdateLesson(c *fiber.Ctx) error {
	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.contentSvc.UpdateLesson(currentViewer(c), c.Params("lessonId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Lesson updated", resp)
}

// @Summary Delete lesson
// @Tags teacher
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/teacher/lessons/{lessonId} [delete]
func (h *ContentHandler) DeleteLesson(c *fiber.Ctx) error {
	if err := h.contentSvc.DeleteLesson(c.UserContext(), currentViewer(c), c.Params("lessonId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Lesson deleted", nil)
}

// @Summary Upload lesson media
// @Description Attach an audio clip or image (max 20MB) to a lesson
// @Tags teacher
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Param file formData file true "Audio or image file"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/teacher/lessons/{lessonId}/media [post]
func (h *ContentHandler) UploadLessonMedia(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "No file uploaded")
	}

	resp, err := h.mediaSvc.UploadLessonMedia(c.UserContext(), currentViewer(c), c.Params("lessonId"), file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Media uploaded", resp)
}
